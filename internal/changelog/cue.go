package changelog

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/chisel-db/chisel/internal/action"
)

// LoadCUE parses a CUE changelog file.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// Expected shape:
//
//	changesets: [{
//		id:     "001-create-people"
//		author: "ada"
//		changes: [{type: "createTable", tableName: "people", ...}]
//	}]
func LoadCUE(path string) (*ChangeLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read changelog file: %w", err)
	}

	ctx := cuecontext.New()
	root := ctx.CompileBytes(data, cue.Filename(path))
	if err := root.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	setsVal := root.LookupPath(cue.ParsePath("changesets"))
	if !setsVal.Exists() {
		return nil, &CompileError{
			Field:   "changesets",
			Message: "changesets list is required",
			Pos:     root.Pos(),
		}
	}

	iter, err := setsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	cl := &ChangeLog{Path: path}
	for iter.Next() {
		cs, err := parseChangeSet(iter.Value())
		if err != nil {
			return nil, err
		}
		cl.ChangeSets = append(cl.ChangeSets, cs)
	}

	if err := validateChangeLog(cl); err != nil {
		return nil, fmt.Errorf("invalid changelog %s: %w", path, err)
	}
	return cl, nil
}

// parseChangeSet parses one changeset struct.
func parseChangeSet(v cue.Value) (ChangeSet, error) {
	var cs ChangeSet

	id, err := requiredString(v, "id")
	if err != nil {
		return cs, err
	}
	cs.ID = id

	author, err := requiredString(v, "author")
	if err != nil {
		return cs, err
	}
	cs.Author = author

	changesVal := v.LookupPath(cue.ParsePath("changes"))
	if !changesVal.Exists() {
		return cs, &CompileError{
			Field:   fmt.Sprintf("changesets.%s.changes", id),
			Message: "changes list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := changesVal.List()
	if err != nil {
		return cs, formatCUEError(err)
	}
	for iter.Next() {
		a, err := parseChange(iter.Value())
		if err != nil {
			return cs, err
		}
		cs.Changes = append(cs.Changes, a)
	}
	return cs, nil
}

// parseChange converts one change struct into an action. The type field
// names the action; every other field becomes an attribute.
func parseChange(v cue.Value) (action.Action, error) {
	name, err := requiredString(v, "type")
	if err != nil {
		return action.Action{}, err
	}

	attrs := action.Attrs{}
	fields, err := v.Fields()
	if err != nil {
		return action.Action{}, formatCUEError(err)
	}
	for fields.Next() {
		label := fields.Label()
		if label == "type" {
			continue
		}
		av, err := convertCUEValue(fields.Value())
		if err != nil {
			return action.Action{}, err
		}
		attrs[label] = av
	}
	return action.New(name, attrs), nil
}

// convertCUEValue converts a concrete CUE value into an attribute value.
// Floats and null are rejected: attribute values feed content-addressed
// identity and must be exactly representable.
func convertCUEValue(v cue.Value) (action.Value, error) {
	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return action.String(s), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return action.Int(n), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return action.Bool(b), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var arr action.Array
		for iter.Next() {
			elem, err := convertCUEValue(iter.Value())
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case cue.StructKind:
		fields, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		obj := action.Object{}
		for fields.Next() {
			elem, err := convertCUEValue(fields.Value())
			if err != nil {
				return nil, err
			}
			obj[fields.Label()] = elem
		}
		return obj, nil
	case cue.FloatKind, cue.NumberKind:
		return nil, &CompileError{
			Field:   "value",
			Message: "float values are not allowed in changelogs, use int",
			Pos:     v.Pos(),
		}
	case cue.NullKind:
		return nil, &CompileError{
			Field:   "value",
			Message: "null values are not allowed in changelogs",
			Pos:     v.Pos(),
		}
	default:
		return nil, &CompileError{
			Field:   "value",
			Message: fmt.Sprintf("unsupported value kind: %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

// requiredString looks up a required string field.
func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// CompileError represents a changelog compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
