package action

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
)

// Value is a sealed interface over the attribute types an Action may carry.
// Only String, Int, Bool, Array, and Object implement it. Floats and null
// are rejected at conversion time: attribute values feed content-addressed
// identity, and float formatting is not stable across encoders.
type Value interface {
	attrValue() // sealed
}

// String is a string attribute value.
type String string

func (String) attrValue() {}

// Int is an integer attribute value. Always int64, never float64.
type Int int64

func (Int) attrValue() {}

// Bool is a boolean attribute value.
type Bool bool

func (Bool) attrValue() {}

// Array is an ordered sequence of attribute values.
type Array []Value

func (Array) attrValue() {}

// Object is a mapping of string keys to attribute values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) attrValue() {}

// SortedKeys returns the object's keys in RFC 8785 canonical order
// (UTF-16 code units). Go's sort.Strings compares UTF-8 bytes, which
// produces a different order for strings outside the ASCII range.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required
// by RFC 8785. Surrogate pairs make this differ from byte comparison.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}

// ToValue converts a plain Go value into a Value.
// Accepts Value, string, int, int64, bool, []any, and map[string]any.
// Rejects nil and floats.
func ToValue(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not a valid attribute value")
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case bool:
		return Bool(val), nil
	case json.Number:
		s := string(val)
		if strings.ContainsAny(s, ".eE") {
			return nil, fmt.Errorf("floats are not valid attribute values: %s", s)
		}
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", s)
		}
		return Int(n), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are not valid attribute values: %v", val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			av, err := ToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = av
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			av, err := ToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = av
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported attribute value type: %T", v)
	}
}

// valueEqual reports structural equality of two Values.
func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			ov, ok := bv[k]
			if !ok || !valueEqual(v, ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FormatValue renders a Value for human-readable output. Same notation
// as action descriptions.
func FormatValue(v Value) string {
	return formatValue(v)
}

// formatValue renders a Value for human-readable action descriptions.
// Strings are bare (no quotes), arrays as [a, b], objects as {k=v, ...}
// with keys in canonical order.
func formatValue(v Value) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case Int:
		return fmt.Sprintf("%d", int64(val))
	case Bool:
		return fmt.Sprintf("%t", bool(val))
	case Array:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = formatValue(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		keys := val.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + formatValue(val[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
