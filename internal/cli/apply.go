package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chisel-db/chisel/internal/action"
	"github.com/chisel-db/chisel/internal/changelog"
	"github.com/chisel-db/chisel/internal/engine"
	"github.com/chisel-db/chisel/internal/scope"
	"github.com/chisel-db/chisel/internal/sqllogic"
	"github.com/chisel-db/chisel/internal/store"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Database string

	// IDSource allows overriding deployment ID generation (for testing).
	// If nil, defaults to store.UUIDSource.
	IDSource store.DeploymentIDSource
}

// ApplyResult holds the outcome of an apply run.
type ApplyResult struct {
	DeploymentID string          `json:"deployment_id"`
	Applied      []AppliedChange `json:"applied"`
	Skipped      int             `json:"skipped"`
}

// AppliedChange reports one executed change. Result holds the terminal
// action.Result; output formatting converts it for display.
type AppliedChange struct {
	ChangeSet string        `json:"changeset"`
	Action    string        `json:"action"`
	Result    action.Result `json:"-"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <changelog>",
		Short: "Apply a changelog to a target database",
		Long: `Apply a changelog to a target SQLite database.

Each change executes through the action engine; already-applied changes
are skipped using the change history stored in the target database.
A change is identified by the content of its action, so editing an
applied change produces a new identity and the change runs again.

Example:
  chisel apply --db ./app.db ./changelog.cue
  chisel apply --db ./app.db ./changelog.yaml --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to target SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runApply(opts *ApplyOptions, changelogPath string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cl, err := changelog.Load(changelogPath)
	if err != nil {
		_ = formatter.Error(ErrCodeChangelog, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load changelog", err)
	}
	slog.Info("changelog loaded", "path", changelogPath, "changesets", len(cl.ChangeSets))

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	idSource := opts.IDSource
	if idSource == nil {
		idSource = store.UUIDSource{}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := applyChangeLog(ctx, cl, st, idSource)
	if err != nil {
		_ = formatter.Error(ErrCodeExecution, err.Error(), nil)
		return WrapExitError(ExitFailure, "apply failed", err)
	}

	return outputApplyResult(formatter, result)
}

// applyChangeLog executes every not-yet-applied change in order and
// records it in the history. The first failure stops the run; changes
// applied before it stay recorded.
func applyChangeLog(ctx context.Context, cl *changelog.ChangeLog, st *store.Store, idSource store.DeploymentIDSource) (*ApplyResult, error) {
	sc := scope.New()
	sc.SetDatabase(st.DB())
	sqllogic.RegisterAll(sc.LogicFactory())

	ex := engine.NewExecutor()
	result := &ApplyResult{
		DeploymentID: idSource.NewDeploymentID(),
		Applied:      []AppliedChange{},
	}

	for _, cs := range cl.ChangeSets {
		for _, change := range cs.Changes {
			key := change.Key()

			applied, err := st.HasEntry(ctx, key)
			if err != nil {
				return nil, err
			}
			if applied {
				slog.Debug("change already applied, skipping",
					"changeset", cs.ID, "action", change.Describe())
				result.Skipped++
				continue
			}

			slog.Info("applying change", "changeset", cs.ID, "action", change.Describe())
			res, err := ex.Execute(ctx, change, sc)
			if err != nil {
				return nil, fmt.Errorf("changeset %s: %s: %w", cs.ID, change.Describe(), err)
			}

			if _, err := st.WriteEntry(ctx, store.Entry{
				ActionKey:    key,
				ActionName:   change.Name(),
				Description:  change.Describe(),
				DeploymentID: result.DeploymentID,
			}); err != nil {
				return nil, fmt.Errorf("changeset %s: record %s: %w", cs.ID, change.Describe(), err)
			}

			result.Applied = append(result.Applied, AppliedChange{
				ChangeSet: cs.ID,
				Action:    change.Describe(),
				Result:    res,
			})
		}
	}
	return result, nil
}

func outputApplyResult(formatter *OutputFormatter, result *ApplyResult) error {
	if formatter.Format == "json" {
		applied := make([]map[string]any, len(result.Applied))
		for i, ac := range result.Applied {
			applied[i] = map[string]any{
				"changeset": ac.ChangeSet,
				"action":    ac.Action,
				"result":    resultJSON(ac.Result),
			}
		}
		return formatter.Success(map[string]any{
			"deployment_id": result.DeploymentID,
			"applied":       applied,
			"skipped":       result.Skipped,
		})
	}

	for _, ac := range result.Applied {
		fmt.Fprintf(formatter.Writer, "applied [%s] %s\n", ac.ChangeSet, ac.Action)
		fmt.Fprint(formatter.Writer, indentLines(RenderResult(ac.Result), "  "))
	}
	fmt.Fprintf(formatter.Writer, "Applied %d change(s), skipped %d\n",
		len(result.Applied), result.Skipped)
	return nil
}

// indentLines prefixes every non-empty line of s.
func indentLines(s, prefix string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}
