package action

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// marshalCanonical produces canonical JSON for content-addressed identity.
// Object keys are sorted by UTF-16 code units (RFC 8785), strings are NFC
// normalized, and HTML characters are not escaped. This is the only
// serialization that may feed Key computation: any byte difference for
// structurally equal values would split identities.
func marshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case String:
		return canonicalString(string(val))
	case Int:
		return []byte(fmt.Sprintf("%d", int64(val))), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Object:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := canonicalString(k)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := marshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("value for key %q: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// canonicalString encodes a string with NFC normalization and HTML
// escaping disabled. The < > & characters must survive unescaped or the
// same string would hash differently depending on the encoder used.
func canonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder appends a trailing newline.
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}
