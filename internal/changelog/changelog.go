// Package changelog loads declarative change definitions from CUE or
// YAML files and compiles them into executable actions. A changelog is
// an ordered list of changesets; each changeset carries an id, an
// author, and the schema changes to apply.
package changelog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chisel-db/chisel/internal/action"
)

// ChangeSet is one named unit of schema changes. Changes execute in
// declaration order.
type ChangeSet struct {
	ID      string
	Author  string
	Changes []action.Action
}

// ChangeLog is the parsed content of a changelog file.
type ChangeLog struct {
	Path       string
	ChangeSets []ChangeSet
}

// Load parses a changelog file, picking the codec by extension.
// Supports .cue, .yaml, and .yml.
func Load(path string) (*ChangeLog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported changelog format %q (want .cue, .yaml, or .yml)", filepath.Ext(path))
	}
}

// validateChangeLog checks structural requirements common to both codecs.
func validateChangeLog(cl *ChangeLog) error {
	if len(cl.ChangeSets) == 0 {
		return fmt.Errorf("changelog has no changesets")
	}

	seen := make(map[string]bool, len(cl.ChangeSets))
	for i, cs := range cl.ChangeSets {
		if cs.ID == "" {
			return fmt.Errorf("changesets[%d]: id is required", i)
		}
		if seen[cs.ID] {
			return fmt.Errorf("changesets[%d]: duplicate id %q", i, cs.ID)
		}
		seen[cs.ID] = true
		if cs.Author == "" {
			return fmt.Errorf("changeset %q: author is required", cs.ID)
		}
		if len(cs.Changes) == 0 {
			return fmt.Errorf("changeset %q: at least one change is required", cs.ID)
		}
	}
	return nil
}

// changeAction converts a decoded change mapping into an action.
// The "type" key names the action; every other key becomes an attribute.
func changeAction(change map[string]any) (action.Action, error) {
	typeVal, ok := change["type"]
	if !ok {
		return action.Action{}, fmt.Errorf("change is missing type")
	}
	name, ok := typeVal.(string)
	if !ok || name == "" {
		return action.Action{}, fmt.Errorf("change type must be a non-empty string, got %v", typeVal)
	}

	attrs := make(action.Attrs, len(change)-1)
	for k, v := range change {
		if k == "type" {
			continue
		}
		av, err := action.ToValue(v)
		if err != nil {
			return action.Action{}, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs[k] = av
	}
	return action.New(name, attrs), nil
}
