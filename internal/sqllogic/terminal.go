package sqllogic

import (
	"context"
	"fmt"

	"github.com/chisel-db/chisel/internal/action"
	"github.com/chisel-db/chisel/internal/engine"
)

// ExecuteSQL is the terminal handler for raw side-effecting statements
// (DDL, maintenance). It reports no affected-row count; use UpdateSQL
// for DML where the count matters.
type ExecuteSQL struct{}

func (ExecuteSQL) Name() string       { return "execute-sql" }
func (ExecuteSQL) Priority() int      { return engine.PriorityDefault }
func (ExecuteSQL) ActionName() string { return ActionExecuteSQL }

func (ExecuteSQL) Validate(ctx context.Context, a action.Action, sc engine.Scope) *action.ValidationErrors {
	var errs action.ValidationErrors
	requireSQL(a, &errs)
	if _, err := database(sc); err != nil {
		errs.AddError(err.Error())
	}
	return &errs
}

func (ExecuteSQL) Execute(ctx context.Context, a action.Action, sc engine.Scope) (action.Result, error) {
	stmt, err := a.StringAttr("sql")
	if err != nil {
		return nil, err
	}
	db, err := database(sc)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return nil, fmt.Errorf("execute sql %q: %w", stmt, err)
	}
	return action.ExecuteResult{Message: "executed sql: " + stmt}, nil
}

// UpdateSQL is the terminal handler for DML statements where the
// affected-row count is part of the outcome.
type UpdateSQL struct{}

func (UpdateSQL) Name() string       { return "update-sql" }
func (UpdateSQL) Priority() int      { return engine.PriorityDefault }
func (UpdateSQL) ActionName() string { return ActionUpdateSQL }

func (UpdateSQL) Validate(ctx context.Context, a action.Action, sc engine.Scope) *action.ValidationErrors {
	var errs action.ValidationErrors
	requireSQL(a, &errs)
	if _, err := database(sc); err != nil {
		errs.AddError(err.Error())
	}
	return &errs
}

func (UpdateSQL) Execute(ctx context.Context, a action.Action, sc engine.Scope) (action.Result, error) {
	stmt, err := a.StringAttr("sql")
	if err != nil {
		return nil, err
	}
	db, err := database(sc)
	if err != nil {
		return nil, err
	}

	res, err := db.ExecContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("update sql %q: %w", stmt, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update sql %q: rows affected: %w", stmt, err)
	}
	return action.UpdateResult{
		NumberAffected: affected,
		Message:        "updated sql: " + stmt,
	}, nil
}

// QuerySQL is the terminal handler for read statements. It returns a
// RowBasedQueryResult with one object per row.
type QuerySQL struct{}

func (QuerySQL) Name() string       { return "query-sql" }
func (QuerySQL) Priority() int      { return engine.PriorityDefault }
func (QuerySQL) ActionName() string { return ActionQuerySQL }

func (QuerySQL) Validate(ctx context.Context, a action.Action, sc engine.Scope) *action.ValidationErrors {
	var errs action.ValidationErrors
	requireSQL(a, &errs)
	if _, err := database(sc); err != nil {
		errs.AddError(err.Error())
	}
	return &errs
}

func (QuerySQL) Execute(ctx context.Context, a action.Action, sc engine.Scope) (action.Result, error) {
	stmt, err := a.StringAttr("sql")
	if err != nil {
		return nil, err
	}
	db, err := database(sc)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query sql %q: %w", stmt, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query sql %q: columns: %w", stmt, err)
	}

	var data []action.Object
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("query sql %q: scan: %w", stmt, err)
		}

		row := make(action.Object, len(cols))
		for i, col := range cols {
			v, ok := columnValue(raw[i])
			if !ok {
				// NULL columns are omitted; the value model has no null.
				continue
			}
			row[col] = v
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sql %q: %w", stmt, err)
	}

	return action.RowBasedQueryResult{
		Data:    data,
		Message: "queried sql: " + stmt,
	}, nil
}

// columnValue converts a scanned database value into an attribute Value.
// Types outside the value model (floats, times) are rendered as strings.
func columnValue(v any) (action.Value, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case int64:
		return action.Int(val), true
	case bool:
		return action.Bool(val), true
	case string:
		return action.String(val), true
	case []byte:
		return action.String(string(val)), true
	default:
		return action.String(fmt.Sprintf("%v", val)), true
	}
}
