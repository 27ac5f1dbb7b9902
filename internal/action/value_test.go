package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToValue_Primitives tests conversion of plain Go values.
func TestToValue_Primitives(t *testing.T) {
	v, err := ToValue("hello")
	require.NoError(t, err)
	assert.Equal(t, String("hello"), v)

	v, err = ToValue(42)
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)

	v, err = ToValue(int64(42))
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)

	v, err = ToValue(true)
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)
}

// TestToValue_Composite tests recursive conversion of slices and maps.
func TestToValue_Composite(t *testing.T) {
	v, err := ToValue(map[string]any{
		"name": "people",
		"cols": []any{"id", "name"},
		"opts": map[string]any{"ifNotExists": true},
	})
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, String("people"), obj["name"])
	assert.Equal(t, Array{String("id"), String("name")}, obj["cols"])
	assert.Equal(t, Object{"ifNotExists": Bool(true)}, obj["opts"])
}

// TestToValue_RejectsFloats tests the no-float rule.
func TestToValue_RejectsFloats(t *testing.T) {
	_, err := ToValue(1.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats")

	_, err = ToValue([]any{1.5})
	require.Error(t, err)
}

// TestToValue_RejectsNull tests the no-null rule.
func TestToValue_RejectsNull(t *testing.T) {
	_, err := ToValue(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

// TestMarshalCanonical_SortsKeys tests deterministic key ordering.
func TestMarshalCanonical_SortsKeys(t *testing.T) {
	obj := Object{"b": Int(2), "a": Int(1), "c": Bool(false)}

	got, err := marshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":false}`, string(got))
}

// TestMarshalCanonical_NoHTMLEscaping tests that < > & survive unescaped.
func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	got, err := marshalCanonical(String("a < b && c > d"))
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(got))
}

// TestMarshalCanonical_NFCNormalization tests that composed and
// decomposed forms of the same string hash identically.
func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	composed := "caf\u00e9"      // single code point form
	decomposed := "cafe\u0301" // e + combining acute

	a, err := marshalCanonical(String(composed))
	require.NoError(t, err)
	b, err := marshalCanonical(String(decomposed))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

// TestValueEqual_DeepStructures tests structural equality across
// nesting and ordering.
func TestValueEqual_DeepStructures(t *testing.T) {
	a := Object{"x": Array{Int(1), Object{"k": String("v")}}}
	b := Object{"x": Array{Int(1), Object{"k": String("v")}}}
	c := Object{"x": Array{Int(1), Object{"k": String("other")}}}

	assert.True(t, valueEqual(a, b))
	assert.False(t, valueEqual(a, c))
	assert.False(t, valueEqual(Array{Int(1)}, Array{Int(1), Int(2)}))
	assert.False(t, valueEqual(String("1"), Int(1)))
}
