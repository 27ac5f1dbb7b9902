package changelog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlChangeLog mirrors the YAML changelog file shape.
type yamlChangeLog struct {
	ChangeSets []yamlChangeSet `yaml:"changesets"`
}

type yamlChangeSet struct {
	ID      string           `yaml:"id"`
	Author  string           `yaml:"author"`
	Changes []map[string]any `yaml:"changes"`
}

// LoadYAML parses a YAML changelog file.
//
// Expected shape:
//
//	changesets:
//	  - id: 001-create-people
//	    author: ada
//	    changes:
//	      - type: createTable
//	        tableName: people
//	        columns: [...]
func LoadYAML(path string) (*ChangeLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read changelog file: %w", err)
	}

	// Strict field validation catches typos like "changeset:" vs "changesets:".
	var doc yamlChangeLog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse changelog YAML: %w", err)
	}

	cl := &ChangeLog{Path: path}
	for i, set := range doc.ChangeSets {
		cs := ChangeSet{ID: set.ID, Author: set.Author}
		for j, change := range set.Changes {
			a, err := changeAction(change)
			if err != nil {
				return nil, fmt.Errorf("changesets[%d].changes[%d]: %w", i, j, err)
			}
			cs.Changes = append(cs.Changes, a)
		}
		cl.ChangeSets = append(cl.ChangeSets, cs)
	}

	if err := validateChangeLog(cl); err != nil {
		return nil, fmt.Errorf("invalid changelog %s: %w", path, err)
	}
	return cl, nil
}
