// Package sqllogic provides the built-in handlers of the schema-change
// engine: terminal handlers that run SQL against the scope's target
// database, and lowering handlers that rewrite abstract schema operations
// (createTable, dropTable, addColumns) into raw-SQL actions.
//
// Lowering handlers never touch the database; the executor drives their
// rewrites down to the terminal handlers, which own all I/O.
package sqllogic

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/chisel-db/chisel/internal/action"
	"github.com/chisel-db/chisel/internal/engine"
	"github.com/chisel-db/chisel/internal/scope"
)

// Action variant names handled by this package.
const (
	ActionExecuteSQL  = "executeSql"
	ActionUpdateSQL   = "updateSql"
	ActionQuerySQL    = "querySql"
	ActionCreateTable = "createTable"
	ActionDropTable   = "dropTable"
	ActionAddColumns  = "addColumns"
)

// RegisterAll registers every built-in handler with the factory.
// This stands in for runtime handler discovery: the registry is
// populated explicitly before any action executes.
func RegisterAll(f *engine.Factory) {
	f.Register(ExecuteSQL{})
	f.Register(UpdateSQL{})
	f.Register(QuerySQL{})
	f.Register(CreateTable{})
	f.Register(DropTable{})
	f.Register(AddColumns{})
}

// database pulls the target *sql.DB from the scope.
func database(sc engine.Scope) (*sql.DB, error) {
	db, ok := scope.Database(sc)
	if !ok {
		return nil, fmt.Errorf("no target database in scope")
	}
	return db, nil
}

// quoteIdent quotes an SQL identifier with double quotes, doubling any
// embedded quote characters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnDef renders one column definition from a changelog value.
// Accepts a bare string (used verbatim) or an object with "name" and
// "type" plus an optional "constraints" string.
func columnDef(v action.Value) (string, error) {
	switch col := v.(type) {
	case action.String:
		return string(col), nil
	case action.Object:
		name, ok := col["name"].(action.String)
		if !ok || name == "" {
			return "", fmt.Errorf("column definition missing name")
		}
		typ, ok := col["type"].(action.String)
		if !ok || typ == "" {
			return "", fmt.Errorf("column %q missing type", string(name))
		}
		def := quoteIdent(string(name)) + " " + string(typ)
		if c, ok := col["constraints"].(action.String); ok && c != "" {
			def += " " + string(c)
		}
		return def, nil
	default:
		return "", fmt.Errorf("column definition must be a string or object, got %T", v)
	}
}

// executeSQLAction builds the raw-SQL action lowering handlers rewrite to.
func executeSQLAction(sql string) action.Action {
	return action.New(ActionExecuteSQL, action.Attrs{"sql": action.String(sql)})
}

// requireSQL reads the mandatory "sql" attribute into the accumulator.
func requireSQL(a action.Action, errs *action.ValidationErrors) {
	sql, err := a.StringAttr("sql")
	if err != nil {
		errs.AddError(err.Error())
		return
	}
	if strings.TrimSpace(sql) == "" {
		errs.AddError(fmt.Sprintf("%s: sql must not be empty", a.Describe()))
	}
}

// requireTableName reads the mandatory "tableName" attribute into the
// accumulator.
func requireTableName(a action.Action, errs *action.ValidationErrors) {
	name, err := a.StringAttr("tableName")
	if err != nil {
		errs.AddError(err.Error())
		return
	}
	if strings.TrimSpace(name) == "" {
		errs.AddError(fmt.Sprintf("%s: tableName must not be empty", a.Describe()))
	}
}
