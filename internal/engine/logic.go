package engine

import (
	"context"

	"github.com/chisel-db/chisel/internal/action"
)

// ActionAny is the declared action name for handlers that match every
// variant. It is the capability-wide generalization of an exact-name
// binding: a fallback handler registers under ActionAny and loses to any
// higher-priority exact match.
const ActionAny = "*"

// Handler priorities. Higher wins. These are conventions, not an
// enumeration: any int is a valid priority.
const (
	// PriorityDefault is the baseline for generic handlers.
	PriorityDefault = 1

	// PrioritySpecialized is for handlers overriding a generic one for
	// a particular dialect or deployment.
	PrioritySpecialized = 10
)

// Scope is the opaque, externally supplied context object threaded
// through every call. The engine requires exactly two things of it:
// yield the singleton Factory, and be passed through unchanged so
// handlers can pull shared resources (the target database,
// configuration) out of it. Its broader lifecycle is the container's
// contract, not the engine's.
type Scope interface {
	// LogicFactory returns the handler registry singleton.
	LogicFactory() *Factory

	// Value returns a named resource placed in the scope by an outer
	// layer, and whether it was present.
	Value(key string) (any, bool)
}

// Logic is a handler for one action variant: it validates an action
// against its own requirements and, if valid, executes it.
//
// Execute may return any Result variant. Returning a RewriteResult makes
// this a lowering handler: the executor replaces the action with the
// replacements and runs those instead. Leaf handlers may perform blocking
// I/O; the engine neither times out nor cancels such calls beyond
// honoring ctx between recursion steps.
type Logic interface {
	// Name identifies the handler in logs and diagnostics.
	Name() string

	// Priority orders handlers competing for the same action variant.
	Priority() int

	// ActionName is the action variant this handler is bound to, or
	// ActionAny to match every variant.
	ActionName() string

	// Validate checks the action before execution. A nil return or an
	// empty accumulator means valid. All messages are surfaced; none
	// are dropped.
	Validate(ctx context.Context, a action.Action, sc Scope) *action.ValidationErrors

	// Execute performs the action. Called only after Validate reported
	// no errors for this handler.
	Execute(ctx context.Context, a action.Action, sc Scope) (action.Result, error)
}
