package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chisel-db/chisel/internal/changelog"
	"github.com/chisel-db/chisel/internal/scope"
	"github.com/chisel-db/chisel/internal/sqllogic"
)

// ValidateResult holds validation results for a changelog.
type ValidateResult struct {
	Valid      bool          `json:"valid"`
	ChangeSets int           `json:"changesets"`
	Changes    int           `json:"changes"`
	Errors     []ChangeError `json:"errors,omitempty"`
}

// ChangeError reports validation messages for one change.
type ChangeError struct {
	ChangeSet string   `json:"changeset"`
	Action    string   `json:"action"`
	Messages  []string `json:"messages"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "validate <changelog>",
		Short: "Validate a changelog without applying it",
		Long: `Validate a changelog without touching the target database.

Compiles the changelog, resolves a handler for every change, and runs
handler validation. Without --db, validation runs against an in-memory
stand-in database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to target SQLite database (optional)")
	return cmd
}

func runValidate(opts *RootOptions, changelogPath, dbPath string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Loaded %d changeset(s) from %s", len(cl.ChangeSets), changelogPath)

	if dbPath == "" {
		dbPath = ":memory:"
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer db.Close()

	sc := scope.New()
	sc.SetDatabase(db)
	sqllogic.RegisterAll(sc.LogicFactory())

	result := ValidateResult{Valid: true, ChangeSets: len(cl.ChangeSets)}
	for _, cs := range cl.ChangeSets {
		for _, change := range cs.Changes {
			result.Changes++
			formatter.VerboseLog("Validating %s", change.Describe())

			logic := sc.LogicFactory().Resolve(change, sc)
			if logic == nil {
				result.Errors = append(result.Errors, ChangeError{
					ChangeSet: cs.ID,
					Action:    change.Describe(),
					Messages:  []string{fmt.Sprintf("no registered handler for action type %q", change.Name())},
				})
				continue
			}

			if errs := logic.Validate(cmd.Context(), change, sc); errs.HasErrors() {
				result.Errors = append(result.Errors, ChangeError{
					ChangeSet: cs.ID,
					Action:    change.Describe(),
					Messages:  errs.Messages(),
				})
			}
		}
	}

	if len(result.Errors) > 0 {
		result.Valid = false
		return outputValidateFailure(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

func outputValidateSuccess(formatter *OutputFormatter, result ValidateResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Changelog valid (%d changeset(s), %d change(s))\n",
		result.ChangeSets, result.Changes)
	return nil
}

func outputValidateFailure(formatter *OutputFormatter, result ValidateResult) error {
	if formatter.Format == "json" {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeValidation,
				Message: fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)),
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "changeset %s: %s\n", e.ChangeSet, e.Action)
		for _, msg := range e.Messages {
			fmt.Fprintf(formatter.Writer, "  - %s\n", msg)
		}
		fmt.Fprintln(formatter.Writer)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
