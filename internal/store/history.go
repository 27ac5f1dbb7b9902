package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Entry is one applied action in the change history.
type Entry struct {
	Seq          int64
	ActionKey    string
	ActionName   string
	Description  string
	DeploymentID string
	ExecutedAt   string
}

// WriteEntry records an applied action. The write is idempotent on
// ActionKey: recording an already-applied action is a no-op, and the
// returned bool reports whether a new row was inserted.
func (s *Store) WriteEntry(ctx context.Context, e Entry) (bool, error) {
	executedAt := e.ExecutedAt
	if executedAt == "" {
		executedAt = time.Now().UTC().Format(time.RFC3339)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO change_history (action_key, action_name, description, deployment_id, executed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(action_key) DO NOTHING
	`, e.ActionKey, e.ActionName, e.Description, e.DeploymentID, executedAt)
	if err != nil {
		return false, fmt.Errorf("write history entry: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check insert result: %w", err)
	}
	return n > 0, nil
}

// HasEntry reports whether an action with the given key has already
// been applied.
func (s *Store) HasEntry(ctx context.Context, actionKey string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM change_history WHERE action_key = ?`, actionKey).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check history entry: %w", err)
	}
	return true, nil
}

// ReadHistory returns all history entries in application order.
func (s *Store) ReadHistory(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, action_key, action_name, description, deployment_id, executed_at
		FROM change_history
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.ActionKey, &e.ActionName, &e.Description, &e.DeploymentID, &e.ExecutedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
