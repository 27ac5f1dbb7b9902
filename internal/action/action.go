// Package action defines the value model of the schema-change engine:
// immutable Actions describing intended operations, the Result variants a
// handler may produce, and the ValidationErrors accumulator. No execution
// logic lives here; the engine package interprets these values.
package action

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Domain prefix for content-addressed action identity.
// Version suffix enables future algorithm migration.
const keyDomain = "chisel/action/v1"

// Attrs is the attribute map accepted by New. Values are constrained to
// the sealed Value types; see ToValue for converting plain Go values.
type Attrs map[string]Value

// Action is an immutable value describing one intended database operation:
// a variant name plus named, typed attributes.
//
// Two Actions are equal iff their name and all attributes are structurally
// equal. Actions carry map-typed attributes and therefore cannot be used
// directly as Go map keys; Key() provides a content-addressed surrogate
// that is stable and consistent with Equal.
type Action struct {
	name  string
	attrs Object
}

// New constructs an Action. The attribute map is copied, so callers may
// reuse or mutate theirs afterwards without affecting the Action.
func New(name string, attrs Attrs) Action {
	copied := make(Object, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return Action{name: name, attrs: copied}
}

// Name returns the action's variant name, e.g. "createTable".
func (a Action) Name() string {
	return a.name
}

// Equal reports structural equality: same name, same attributes.
func (a Action) Equal(other Action) bool {
	return a.name == other.name && valueEqual(a.attrs, other.attrs)
}

// Key returns the content-addressed identity of the action:
// SHA-256 over domain-separated canonical JSON of name and attributes.
// Structurally equal Actions always produce the same Key.
func (a Action) Key() string {
	canonical, err := marshalCanonical(Object{
		"name":  String(a.name),
		"attrs": a.attrs,
	})
	if err != nil {
		// Attributes are validated at construction boundaries (ToValue);
		// a marshal failure here means a sealed-type invariant was broken.
		panic(fmt.Sprintf("action key for %q: %v", a.name, err))
	}

	h := sha256.New()
	h.Write([]byte(keyDomain))
	h.Write([]byte{0x00}) // null separator prevents domain/data ambiguity
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil))
}

// Describe renders the action for diagnostics: the variant name followed
// by its attributes in canonical key order, e.g.
// "createTable(tableName=people)". An action with no attributes renders
// as "name()". The output feeds error messages only, never identity.
func (a Action) Describe() string {
	var b strings.Builder
	b.WriteString(a.name)
	b.WriteByte('(')
	for i, k := range a.attrs.SortedKeys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(a.attrs[k]))
	}
	b.WriteByte(')')
	return b.String()
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return a.Describe()
}

// Has reports whether the named attribute is present.
func (a Action) Has(name string) bool {
	_, ok := a.attrs[name]
	return ok
}

// Attr returns the named attribute value, if present.
func (a Action) Attr(name string) (Value, bool) {
	v, ok := a.attrs[name]
	return v, ok
}

// AttributeError reports a missing or mistyped attribute access.
// Callers own deciding severity: a lowering handler may treat a missing
// optional attribute as a default, a validator as a hard error.
type AttributeError struct {
	Action string // action description
	Attr   string // attribute name
	Want   string // expected type, e.g. "string"
	Got    Value  // actual value, nil if absent
}

func (e *AttributeError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: missing attribute %q (want %s)", e.Action, e.Attr, e.Want)
	}
	return fmt.Sprintf("%s: attribute %q is %T, want %s", e.Action, e.Attr, e.Got, e.Want)
}

// StringAttr returns the named attribute as a string.
func (a Action) StringAttr(name string) (string, error) {
	v, ok := a.attrs[name]
	if !ok {
		return "", &AttributeError{Action: a.Describe(), Attr: name, Want: "string"}
	}
	s, ok := v.(String)
	if !ok {
		return "", &AttributeError{Action: a.Describe(), Attr: name, Want: "string", Got: v}
	}
	return string(s), nil
}

// IntAttr returns the named attribute as an int64.
func (a Action) IntAttr(name string) (int64, error) {
	v, ok := a.attrs[name]
	if !ok {
		return 0, &AttributeError{Action: a.Describe(), Attr: name, Want: "int"}
	}
	n, ok := v.(Int)
	if !ok {
		return 0, &AttributeError{Action: a.Describe(), Attr: name, Want: "int", Got: v}
	}
	return int64(n), nil
}

// BoolAttr returns the named attribute as a bool.
func (a Action) BoolAttr(name string) (bool, error) {
	v, ok := a.attrs[name]
	if !ok {
		return false, &AttributeError{Action: a.Describe(), Attr: name, Want: "bool"}
	}
	b, ok := v.(Bool)
	if !ok {
		return false, &AttributeError{Action: a.Describe(), Attr: name, Want: "bool", Got: v}
	}
	return bool(b), nil
}

// ArrayAttr returns the named attribute as an Array.
func (a Action) ArrayAttr(name string) (Array, error) {
	v, ok := a.attrs[name]
	if !ok {
		return nil, &AttributeError{Action: a.Describe(), Attr: name, Want: "array"}
	}
	arr, ok := v.(Array)
	if !ok {
		return nil, &AttributeError{Action: a.Describe(), Attr: name, Want: "array", Got: v}
	}
	return arr, nil
}

// ObjectAttr returns the named attribute as an Object.
func (a Action) ObjectAttr(name string) (Object, error) {
	v, ok := a.attrs[name]
	if !ok {
		return nil, &AttributeError{Action: a.Describe(), Attr: name, Want: "object"}
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, &AttributeError{Action: a.Describe(), Attr: name, Want: "object", Got: v}
	}
	return obj, nil
}
