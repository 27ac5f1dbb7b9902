package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisel-db/chisel/internal/store"
)

// TestStatusCommand_Empty tests status on a fresh database.
func TestStatusCommand_Empty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	out, err := runCommand(t, "status", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No changes applied.")
}

// TestStatusCommand_ListsHistory tests that applied changes show in order.
func TestStatusCommand_ListsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = st.WriteEntry(ctx, store.Entry{
		ActionKey: "key-1", ActionName: "createTable",
		Description: "createTable(tableName=people)", DeploymentID: "deploy-1",
		ExecutedAt: "2026-08-29T12:00:00Z",
	})
	require.NoError(t, err)
	_, err = st.WriteEntry(ctx, store.Entry{
		ActionKey: "key-2", ActionName: "addColumns",
		Description: "addColumns(tableName=people)", DeploymentID: "deploy-1",
		ExecutedAt: "2026-08-29T12:00:01Z",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runCommand(t, "status", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "createTable(tableName=people)")
	assert.Contains(t, out, "addColumns(tableName=people)")
	assert.Less(t,
		strings.Index(out, "createTable(tableName=people)"),
		strings.Index(out, "addColumns(tableName=people)"))
}

// TestStatusCommand_JSONOutput tests the structured output format.
func TestStatusCommand_JSONOutput(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.WriteEntry(context.Background(), store.Entry{
		ActionKey: "key-1", ActionName: "createTable",
		Description: "createTable(tableName=people)", DeploymentID: "deploy-1",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runCommand(t, "status", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	entries := data["entries"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "createTable", entry["action"])
	assert.Equal(t, "deploy-1", entry["deployment_id"])
}
