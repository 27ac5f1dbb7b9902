// Package store persists the change history: which schema-change actions
// have already been applied to a target, keyed by their content-addressed
// identity. The history is what makes apply idempotent across runs and
// deployments.
//
// SQLite with WAL mode backs the history. The store is deliberately
// append-only: entries are never updated or deleted by the engine.
package store
