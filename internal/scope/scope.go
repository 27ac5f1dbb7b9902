// Package scope provides the request-scoped container that supplies
// shared singletons to the execution engine and its handlers. The engine
// treats it as opaque: it fetches the handler registry from it and passes
// it through unchanged, and handlers pull named resources out of it.
package scope

import (
	"database/sql"
	"sync"

	"github.com/chisel-db/chisel/internal/engine"
)

// Well-known resource keys.
const (
	// KeyDatabase holds the *sql.DB leaf handlers execute against.
	KeyDatabase = "database"
)

// Scope carries the handler registry singleton plus named resources
// placed by outer layers. Safe for concurrent use: reads take a shared
// lock, Set an exclusive one.
type Scope struct {
	factory *engine.Factory

	mu     sync.RWMutex
	values map[string]any
}

var _ engine.Scope = (*Scope)(nil)

// New creates a Scope with a fresh, empty handler registry.
func New() *Scope {
	return &Scope{
		factory: engine.NewFactory(),
		values:  make(map[string]any),
	}
}

// LogicFactory returns the handler registry singleton.
// Implements engine.Scope.
func (s *Scope) LogicFactory() *engine.Factory {
	return s.factory
}

// Value returns the named resource and whether it was present.
// Implements engine.Scope.
func (s *Scope) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set places a named resource in the scope, replacing any previous value
// under the same key.
func (s *Scope) Set(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = v
}

// SetDatabase places the target database under KeyDatabase.
func (s *Scope) SetDatabase(db *sql.DB) {
	s.Set(KeyDatabase, db)
}

// Database returns the target database from an engine.Scope, if an outer
// layer supplied one. Works for any scope implementation, so handlers can
// use it with test doubles too.
func Database(sc engine.Scope) (*sql.DB, bool) {
	v, ok := sc.Value(KeyDatabase)
	if !ok {
		return nil, false
	}
	db, ok := v.(*sql.DB)
	return db, ok
}
