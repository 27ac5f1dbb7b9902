package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompoundResult_PreservesOrder tests that entries come back in the
// order they were built, independent of action identity.
func TestCompoundResult_PreservesOrder(t *testing.T) {
	a1 := New("updateSql", Attrs{"sql": String("sql action 1")})
	a2 := New("updateSql", Attrs{"sql": String("sql action 2")})

	r := NewCompoundResult([]CompoundEntry{
		{Source: a1, Result: ExecuteResult{Message: "executed sql: sql action 1"}},
		{Source: a2, Result: ExecuteResult{Message: "executed sql: sql action 2"}},
	})

	require.Equal(t, 2, r.Len())
	entries := r.Entries()
	assert.True(t, entries[0].Source.Equal(a1))
	assert.True(t, entries[1].Source.Equal(a2))
	assert.Equal(t, ExecuteResult{Message: "executed sql: sql action 1"}, entries[0].Result)
	assert.Equal(t, ExecuteResult{Message: "executed sql: sql action 2"}, entries[1].Result)
}

// TestCompoundResult_GetByStructuralEquality tests lookup with an equal
// (but distinct) Action value.
func TestCompoundResult_GetByStructuralEquality(t *testing.T) {
	a := New("executeSql", Attrs{"sql": String("CREATE TABLE t")})
	r := NewCompoundResult([]CompoundEntry{
		{Source: a, Result: ExecuteResult{Message: "done"}},
	})

	lookup := New("executeSql", Attrs{"sql": String("CREATE TABLE t")})
	got, ok := r.Get(lookup)
	require.True(t, ok)
	assert.Equal(t, ExecuteResult{Message: "done"}, got)

	_, ok = r.Get(New("executeSql", Attrs{"sql": String("other")}))
	assert.False(t, ok)
}

// TestCompoundResult_Nesting tests that an entry value may itself be a
// CompoundResult, giving the tree shape.
func TestCompoundResult_Nesting(t *testing.T) {
	leaf := New("updateSql", Attrs{"sql": String("nested 1")})
	inner := NewCompoundResult([]CompoundEntry{
		{Source: leaf, Result: ExecuteResult{Message: "executed sql: nested 1"}},
	})

	outerAction := New("execSql", Attrs{"sql": String("exec sql action")})
	outer := NewCompoundResult([]CompoundEntry{
		{Source: outerAction, Result: inner},
	})

	got, ok := outer.Get(outerAction)
	require.True(t, ok)

	nested, ok := got.(CompoundResult)
	require.True(t, ok)
	assert.Equal(t, 1, nested.Len())
}

// TestRowBasedQueryResult_SatisfiesQueryCapability tests the QueryResult
// capability contract.
func TestRowBasedQueryResult_SatisfiesQueryCapability(t *testing.T) {
	var qr QueryResult = RowBasedQueryResult{
		Data:    []Object{{"id": Int(1)}},
		Message: "query logic ran",
	}

	assert.Equal(t, "query logic ran", qr.QueryMessage())

	// A QueryResult is also a Result and survives generic dispatch.
	var r Result = qr
	_, isQuery := r.(QueryResult)
	assert.True(t, isQuery)
}

// TestResult_VariantDispatch tests that each variant is distinguishable
// by type switch, the executor's dispatch mechanism.
func TestResult_VariantDispatch(t *testing.T) {
	kind := func(r Result) string {
		switch r.(type) {
		case UpdateResult:
			return "update"
		case ExecuteResult:
			return "execute"
		case RewriteResult:
			return "rewrite"
		case CompoundResult:
			return "compound"
		case QueryResult:
			return "query"
		default:
			return "unknown"
		}
	}

	assert.Equal(t, "update", kind(UpdateResult{NumberAffected: 12}))
	assert.Equal(t, "execute", kind(ExecuteResult{}))
	assert.Equal(t, "rewrite", kind(RewriteResult{}))
	assert.Equal(t, "compound", kind(CompoundResult{}))
	assert.Equal(t, "query", kind(RowBasedQueryResult{}))
}
