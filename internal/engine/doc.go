// Package engine is the execution core of the schema-change engine: it
// selects, validates, and invokes handlers for abstract actions, and
// recursively lowers higher-level actions into lower-level ones until a
// terminal result is produced.
//
// The three pieces are:
//
//   - Logic: a named, prioritized handler bound to one action variant.
//     Leaf handlers perform real work (SQL against a live database);
//     lowering handlers return RewriteResults that replace their action
//     with simpler ones.
//
//   - Factory: the handler registry. Resolution picks the single
//     highest-priority handler matching the action's variant. Ties break
//     toward the most recently registered handler, so later registrations
//     override built-ins of equal priority.
//
//   - Executor: the rewrite interpreter. Resolves, validates, executes,
//     and expands RewriteResults depth-first into a tree of
//     CompoundResults, preserving replacement order exactly. A one-step
//     rewrite is transparent: callers cannot distinguish it from direct
//     terminal execution.
//
// Execution is purely synchronous, call-stack-based recursion. The
// Executor holds no mutable state and is safe for concurrent use; the
// Factory is shared mutable state protected by a read-write lock.
package engine
