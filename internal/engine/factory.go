package engine

import (
	"sync"

	"github.com/chisel-db/chisel/internal/action"
)

// Factory is the handler registry: it resolves, for a given action, the
// single best-matching Logic among everything registered.
//
// Registration is additive only and typically happens once at startup,
// but the contract does not assume it: Register and Resolve are safe
// under concurrent use, and Resolve observes a consistent snapshot of
// the registry even while registrations are interleaved from other
// goroutines.
type Factory struct {
	mu      sync.RWMutex
	byName  map[string][]registration
	nextSeq uint64
}

// registration pairs a handler with its registration sequence number,
// which implements the deterministic tie-break.
type registration struct {
	logic Logic
	seq   uint64
}

// NewFactory creates an empty registry.
func NewFactory() *Factory {
	return &Factory{
		byName: make(map[string][]registration),
	}
}

// Register adds a handler under its declared action name. There is no
// uniqueness constraint: multiple handlers may share a name and/or
// priority.
func (f *Factory) Register(l Logic) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := l.ActionName()
	f.byName[name] = append(f.byName[name], registration{logic: l, seq: f.nextSeq})
	f.nextSeq++
}

// Resolve returns the single handler with the highest priority among all
// registered handlers matching the action's variant, either by exact name
// or via an ActionAny registration. Returns nil if nothing matches; the
// caller (the Executor) turns that into a failure.
//
// Tie-break: when two matching handlers share the maximum priority, the
// most recently registered one wins. This is deliberate and stable:
// resolving the same action against an unchanged registry always selects
// the same handler, and late registrations can override built-ins.
func (f *Factory) Resolve(a action.Action, sc Scope) Logic {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var (
		best  Logic
		seq   uint64
		found bool
	)
	consider := func(r registration) {
		if !found ||
			r.logic.Priority() > best.Priority() ||
			(r.logic.Priority() == best.Priority() && r.seq > seq) {
			best = r.logic
			seq = r.seq
			found = true
		}
	}

	for _, r := range f.byName[a.Name()] {
		consider(r)
	}
	for _, r := range f.byName[ActionAny] {
		consider(r)
	}

	return best
}

// Registered returns the number of handlers registered for the given
// action name. Used for diagnostics and tests.
func (f *Factory) Registered(actionName string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.byName[actionName])
}
