package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chisel-db/chisel/internal/action"
)

// DefaultMaxDepth bounds rewrite recursion. The rewrite contract gives
// no termination guarantee on its own: a handler that rewrites an action
// into itself (or a cycle of handlers) would otherwise recurse until the
// stack is exhausted. 100 comfortably covers legitimate lowering chains,
// which in practice are two or three levels deep.
const DefaultMaxDepth = 100

// Executor drives actions to terminal results: it resolves a handler,
// validates, executes, and recursively lowers RewriteResults until only
// terminal results remain.
//
// Executor is stateless apart from configuration and is safe for
// concurrent use; each Execute call drives an independent rewrite tree
// and blocks its calling goroutine until that tree resolves or a failure
// propagates.
type Executor struct {
	maxDepth int
}

// Option configures an Executor.
type Option func(*Executor)

// WithMaxDepth overrides the rewrite depth limit.
// Use a small value in tests to exercise the guard.
func WithMaxDepth(n int) Option {
	return func(e *Executor) {
		e.maxDepth = n
	}
}

// NewExecutor creates an Executor with the default depth limit.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the configured rewrite depth limit.
func (e *Executor) MaxDepth() int {
	return e.maxDepth
}

// Execute performs the action and returns its terminal result.
//
// The algorithm, applied recursively:
//
//  1. Resolve the highest-priority matching handler from the scope's
//     Factory; none matching is a failure.
//  2. Validate with the selected handler; any messages abort execution,
//     joined by "; " in order.
//  3. Execute. Handler-internal failures propagate unchanged.
//  4. Interpret the result. Terminal kinds pass through untouched. A
//     RewriteResult with one replacement is transparent: its result IS
//     this action's result. Two or more replacements execute depth-first
//     in order, and their results aggregate into a CompoundResult keyed
//     by the original replacement actions, preserving order and nesting.
//
// The first failure anywhere in the tree aborts the whole call;
// replacements after the failing one are never attempted, and there is
// no partial-success result.
func (e *Executor) Execute(ctx context.Context, a action.Action, sc Scope) (action.Result, error) {
	return e.execute(ctx, a, sc, 0)
}

func (e *Executor) execute(ctx context.Context, a action.Action, sc Scope, depth int) (action.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("execute %s: %w", a.Describe(), err)
	}
	if depth > e.maxDepth {
		slog.Error("rewrite depth limit exceeded",
			"action", a.Describe(),
			"depth", depth,
			"limit", e.maxDepth,
		)
		return nil, newDepthExceededError(a.Describe(), depth, e.maxDepth)
	}

	logic := sc.LogicFactory().Resolve(a, sc)
	if logic == nil {
		return nil, newNoLogicError(a.Describe())
	}

	slog.Debug("executing action",
		"action", a.Describe(),
		"logic", logic.Name(),
		"priority", logic.Priority(),
		"depth", depth,
	)

	if errs := logic.Validate(ctx, a, sc); errs.HasErrors() {
		return nil, newValidationError(a.Describe(), errs.Join())
	}

	result, err := logic.Execute(ctx, a, sc)
	if err != nil {
		// Handler failures propagate unchanged; the handler's own error
		// contract is the one callers see.
		return nil, err
	}

	rewrite, ok := result.(action.RewriteResult)
	if !ok {
		// Terminal: Update, Execute, any QueryResult, or a Compound the
		// handler assembled itself.
		return result, nil
	}

	switch len(rewrite.Replacements) {
	case 0:
		return nil, newEmptyRewriteError(logic, a.Describe())

	case 1:
		// Transparent rewrite: the replacement's result is this
		// action's result, with no wrapping.
		return e.execute(ctx, rewrite.Replacements[0], sc, depth+1)

	default:
		entries := make([]action.CompoundEntry, 0, len(rewrite.Replacements))
		for _, repl := range rewrite.Replacements {
			sub, err := e.execute(ctx, repl, sc, depth+1)
			if err != nil {
				// Abort the whole tree; later siblings never run.
				return nil, err
			}
			entries = append(entries, action.CompoundEntry{Source: repl, Result: sub})
		}
		return action.NewCompoundResult(entries), nil
	}
}
