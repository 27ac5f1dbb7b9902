package sqllogic

import (
	"context"
	"fmt"
	"strings"

	"github.com/chisel-db/chisel/internal/action"
	"github.com/chisel-db/chisel/internal/engine"
)

// CreateTable lowers an abstract createTable action into a single
// executeSql action. One replacement makes this a transparent rewrite:
// callers see the terminal handler's result directly.
type CreateTable struct{}

func (CreateTable) Name() string       { return "create-table" }
func (CreateTable) Priority() int      { return engine.PriorityDefault }
func (CreateTable) ActionName() string { return ActionCreateTable }

func (CreateTable) Validate(ctx context.Context, a action.Action, sc engine.Scope) *action.ValidationErrors {
	var errs action.ValidationErrors
	requireTableName(a, &errs)

	cols, err := a.ArrayAttr("columns")
	if err != nil {
		errs.AddError(err.Error())
		return &errs
	}
	if len(cols) == 0 {
		errs.AddError(fmt.Sprintf("%s: at least one column is required", a.Describe()))
	}
	for i, col := range cols {
		if _, err := columnDef(col); err != nil {
			errs.AddError(fmt.Sprintf("%s: columns[%d]: %v", a.Describe(), i, err))
		}
	}
	return &errs
}

func (CreateTable) Execute(ctx context.Context, a action.Action, sc engine.Scope) (action.Result, error) {
	table, err := a.StringAttr("tableName")
	if err != nil {
		return nil, err
	}
	cols, err := a.ArrayAttr("columns")
	if err != nil {
		return nil, err
	}

	defs := make([]string, len(cols))
	for i, col := range cols {
		def, err := columnDef(col)
		if err != nil {
			return nil, fmt.Errorf("%s: columns[%d]: %w", a.Describe(), i, err)
		}
		defs[i] = def
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if ifNotExists, err := a.BoolAttr("ifNotExists"); err == nil && ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(defs, ", "))
	b.WriteString(")")

	return action.RewriteResult{
		Replacements: []action.Action{executeSQLAction(b.String())},
	}, nil
}

// DropTable lowers an abstract dropTable action into a single executeSql
// action.
type DropTable struct{}

func (DropTable) Name() string       { return "drop-table" }
func (DropTable) Priority() int      { return engine.PriorityDefault }
func (DropTable) ActionName() string { return ActionDropTable }

func (DropTable) Validate(ctx context.Context, a action.Action, sc engine.Scope) *action.ValidationErrors {
	var errs action.ValidationErrors
	requireTableName(a, &errs)
	return &errs
}

func (DropTable) Execute(ctx context.Context, a action.Action, sc engine.Scope) (action.Result, error) {
	table, err := a.StringAttr("tableName")
	if err != nil {
		return nil, err
	}

	stmt := "DROP TABLE "
	if ifExists, err := a.BoolAttr("ifExists"); err == nil && ifExists {
		stmt += "IF EXISTS "
	}
	stmt += quoteIdent(table)

	return action.RewriteResult{
		Replacements: []action.Action{executeSQLAction(stmt)},
	}, nil
}

// AddColumns lowers an abstract addColumns action into one executeSql
// action per column. Multiple columns produce a multi-action rewrite, so
// the caller receives a CompoundResult with one entry per column in
// declaration order.
type AddColumns struct{}

func (AddColumns) Name() string       { return "add-columns" }
func (AddColumns) Priority() int      { return engine.PriorityDefault }
func (AddColumns) ActionName() string { return ActionAddColumns }

func (AddColumns) Validate(ctx context.Context, a action.Action, sc engine.Scope) *action.ValidationErrors {
	var errs action.ValidationErrors
	requireTableName(a, &errs)

	cols, err := a.ArrayAttr("columns")
	if err != nil {
		errs.AddError(err.Error())
		return &errs
	}
	if len(cols) == 0 {
		errs.AddError(fmt.Sprintf("%s: at least one column is required", a.Describe()))
	}
	for i, col := range cols {
		if _, err := columnDef(col); err != nil {
			errs.AddError(fmt.Sprintf("%s: columns[%d]: %v", a.Describe(), i, err))
		}
	}
	return &errs
}

func (AddColumns) Execute(ctx context.Context, a action.Action, sc engine.Scope) (action.Result, error) {
	table, err := a.StringAttr("tableName")
	if err != nil {
		return nil, err
	}
	cols, err := a.ArrayAttr("columns")
	if err != nil {
		return nil, err
	}

	replacements := make([]action.Action, len(cols))
	for i, col := range cols {
		def, err := columnDef(col)
		if err != nil {
			return nil, fmt.Errorf("%s: columns[%d]: %w", a.Describe(), i, err)
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", quoteIdent(table), def)
		replacements[i] = executeSQLAction(stmt)
	}

	return action.RewriteResult{Replacements: replacements}, nil
}
