package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chisel-db/chisel/internal/store"
)

// StatusResult holds the change history for output.
type StatusResult struct {
	Entries []StatusEntry `json:"entries"`
}

// StatusEntry is one applied change in the history.
type StatusEntry struct {
	Seq          int64  `json:"seq"`
	Action       string `json:"action"`
	Description  string `json:"description"`
	DeploymentID string `json:"deployment_id"`
	ExecutedAt   string `json:"executed_at"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the change history of a target database",
		Long: `Show which changes have been applied to a target database,
in application order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to target SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStatus(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := st.ReadHistory(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	result := StatusResult{Entries: make([]StatusEntry, len(entries))}
	for i, e := range entries {
		result.Entries[i] = StatusEntry{
			Seq:          e.Seq,
			Action:       e.ActionName,
			Description:  e.Description,
			DeploymentID: e.DeploymentID,
			ExecutedAt:   e.ExecutedAt,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No changes applied.")
		return nil
	}
	for _, e := range result.Entries {
		fmt.Fprintf(formatter.Writer, "%4d  %-24s  %s  (deployment %s)\n",
			e.Seq, e.ExecutedAt, e.Description, e.DeploymentID)
	}
	return nil
}
