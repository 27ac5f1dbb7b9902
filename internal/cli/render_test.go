package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/chisel-db/chisel/internal/action"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func execEntry(stmt string) action.CompoundEntry {
	return action.CompoundEntry{
		Source: action.New("executeSql", action.Attrs{"sql": action.String(stmt)}),
		Result: action.ExecuteResult{Message: "executed sql: " + stmt},
	}
}

// TestRenderResult_Terminal tests rendering of single terminal results.
func TestRenderResult_Terminal(t *testing.T) {
	assert.Equal(t, "executed sql: CREATE TABLE t (id INTEGER)\n",
		RenderResult(action.ExecuteResult{Message: "executed sql: CREATE TABLE t (id INTEGER)"}))

	assert.Equal(t, "updated sql: UPDATE t SET x = 1 (3 row(s) affected)\n",
		RenderResult(action.UpdateResult{NumberAffected: 3, Message: "updated sql: UPDATE t SET x = 1"}))
}

// TestRenderResult_CompoundGolden tests the rendered compound tree
// against a golden file.
func TestRenderResult_CompoundGolden(t *testing.T) {
	compound := action.NewCompoundResult([]action.CompoundEntry{
		execEntry("CREATE TABLE people (id INTEGER)"),
		{
			Source: action.New("updateSql", action.Attrs{"sql": action.String("UPDATE people SET id = id + 1")}),
			Result: action.UpdateResult{NumberAffected: 2, Message: "updated sql: UPDATE people SET id = id + 1"},
		},
		{
			Source: action.New("querySql", action.Attrs{"sql": action.String("SELECT * FROM people")}),
			Result: action.RowBasedQueryResult{
				Message: "queried sql: SELECT * FROM people",
				Data: []action.Object{
					{"id": action.Int(1), "name": action.String("ada")},
				},
			},
		},
	})

	newGoldie(t).Assert(t, "compound_result", []byte(RenderResult(compound)))
}

// TestRenderResult_NestedCompoundGolden tests nesting: a compound entry
// whose result is itself a compound.
func TestRenderResult_NestedCompoundGolden(t *testing.T) {
	nested := action.NewCompoundResult([]action.CompoundEntry{
		execEntry("ALTER TABLE people ADD COLUMN age INTEGER"),
		execEntry("ALTER TABLE people ADD COLUMN email TEXT"),
	})

	compound := action.NewCompoundResult([]action.CompoundEntry{
		execEntry("CREATE TABLE people (id INTEGER)"),
		{
			Source: action.New("addColumns", action.Attrs{
				"tableName": action.String("people"),
				"columns":   action.Array{action.String("age INTEGER"), action.String("email TEXT")},
			}),
			Result: nested,
		},
	})

	newGoldie(t).Assert(t, "nested_compound", []byte(RenderResult(compound)))
}

// TestResultJSON_Shapes tests the JSON conversion for each result kind.
func TestResultJSON_Shapes(t *testing.T) {
	exec := resultJSON(action.ExecuteResult{Message: "executed sql: X"})
	assert.Equal(t, map[string]any{"kind": "execute", "message": "executed sql: X"}, exec)

	update := resultJSON(action.UpdateResult{NumberAffected: 5, Message: "updated sql: Y"})
	assert.Equal(t, map[string]any{
		"kind":            "update",
		"message":         "updated sql: Y",
		"number_affected": int64(5),
	}, update)

	query := resultJSON(action.RowBasedQueryResult{
		Message: "queried sql: Z",
		Data:    []action.Object{{"id": action.Int(7)}},
	}).(map[string]any)
	assert.Equal(t, "query", query["kind"])
	assert.Equal(t, []map[string]any{{"id": int64(7)}}, query["rows"])

	compound := resultJSON(action.NewCompoundResult([]action.CompoundEntry{
		execEntry("A"),
	})).(map[string]any)
	assert.Equal(t, "compound", compound["kind"])
	results := compound["results"].([]map[string]any)
	assert.Equal(t, "executeSql(sql=A)", results[0]["action"])
}
