package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAction_Equal_SameNameAndAttrs tests structural equality.
func TestAction_Equal_SameNameAndAttrs(t *testing.T) {
	a := New("createTable", Attrs{
		"tableName": String("people"),
		"columns":   Array{String("id"), String("name")},
	})
	b := New("createTable", Attrs{
		"tableName": String("people"),
		"columns":   Array{String("id"), String("name")},
	})

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

// TestAction_Equal_DifferentName tests that variant name participates
// in equality.
func TestAction_Equal_DifferentName(t *testing.T) {
	a := New("createTable", Attrs{"tableName": String("people")})
	b := New("dropTable", Attrs{"tableName": String("people")})

	assert.False(t, a.Equal(b))
}

// TestAction_Equal_DifferentAttrs tests that attribute values
// participate in equality.
func TestAction_Equal_DifferentAttrs(t *testing.T) {
	a := New("createTable", Attrs{"tableName": String("people")})
	b := New("createTable", Attrs{"tableName": String("places")})
	c := New("createTable", Attrs{"tableName": String("people"), "extra": Bool(true)})

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

// TestAction_Key_ConsistentWithEqual tests that structurally equal
// actions share a key and unequal actions do not.
func TestAction_Key_ConsistentWithEqual(t *testing.T) {
	a := New("mock", Attrs{"n": Int(1), "nested": Object{"x": Bool(true)}})
	b := New("mock", Attrs{"nested": Object{"x": Bool(true)}, "n": Int(1)})
	c := New("mock", Attrs{"n": Int(2), "nested": Object{"x": Bool(true)}})

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Len(t, a.Key(), 64) // hex-encoded SHA-256
}

// TestAction_Key_UsableAsMapKey tests the surrogate-key use case.
func TestAction_Key_UsableAsMapKey(t *testing.T) {
	a := New("mock", Attrs{"n": Int(1)})
	b := New("mock", Attrs{"n": Int(1)})

	m := map[string]string{a.Key(): "seen"}
	assert.Equal(t, "seen", m[b.Key()])
}

// TestAction_Describe_NoAttrs tests the empty-attribute rendering.
func TestAction_Describe_NoAttrs(t *testing.T) {
	a := New("mock", nil)
	assert.Equal(t, "mock()", a.Describe())
	assert.Equal(t, "mock()", a.String())
}

// TestAction_Describe_AttrsInCanonicalOrder tests deterministic
// description formatting.
func TestAction_Describe_AttrsInCanonicalOrder(t *testing.T) {
	a := New("addColumns", Attrs{
		"tableName": String("people"),
		"columns":   Array{String("age"), String("email")},
	})

	assert.Equal(t, "addColumns(columns=[age, email], tableName=people)", a.Describe())
}

// TestAction_New_CopiesAttrs tests that mutating the caller's map after
// construction does not affect the action.
func TestAction_New_CopiesAttrs(t *testing.T) {
	attrs := Attrs{"tableName": String("people")}
	a := New("createTable", attrs)

	attrs["tableName"] = String("changed")

	got, err := a.StringAttr("tableName")
	require.NoError(t, err)
	assert.Equal(t, "people", got)
}

// TestAction_StringAttr_Missing tests the missing-attribute failure mode.
func TestAction_StringAttr_Missing(t *testing.T) {
	a := New("mock", nil)

	_, err := a.StringAttr("tableName")
	require.Error(t, err)

	var attrErr *AttributeError
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, "tableName", attrErr.Attr)
	assert.Contains(t, err.Error(), "missing attribute")
}

// TestAction_StringAttr_Mistyped tests the mistyped-attribute failure mode.
func TestAction_StringAttr_Mistyped(t *testing.T) {
	a := New("mock", Attrs{"count": Int(3)})

	_, err := a.StringAttr("count")
	require.Error(t, err)

	var attrErr *AttributeError
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, "count", attrErr.Attr)
	assert.Equal(t, "string", attrErr.Want)
	assert.Contains(t, err.Error(), "want string")
}

// TestAction_TypedAttrs tests each typed accessor round-trips its value.
func TestAction_TypedAttrs(t *testing.T) {
	a := New("mock", Attrs{
		"s":   String("hello"),
		"n":   Int(42),
		"b":   Bool(true),
		"arr": Array{Int(1), Int(2)},
		"obj": Object{"k": String("v")},
	})

	s, err := a.StringAttr("s")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	n, err := a.IntAttr("n")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	b, err := a.BoolAttr("b")
	require.NoError(t, err)
	assert.True(t, b)

	arr, err := a.ArrayAttr("arr")
	require.NoError(t, err)
	assert.Equal(t, Array{Int(1), Int(2)}, arr)

	obj, err := a.ObjectAttr("obj")
	require.NoError(t, err)
	assert.Equal(t, Object{"k": String("v")}, obj)
}
