package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probe-ir/probe/internal/harness"
)

// ValidationResult holds validation results for one scenario file.
type ValidationResult struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Validate scenario files without running them",
		Long: `Validate conformance scenario files: YAML syntax, required fields,
version spelling, and step names. Faster than run for development feedback.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results := make([]ValidationResult, 0, len(paths))
	failures := 0
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		res := ValidationResult{Path: path, Valid: true}
		if _, err := harness.LoadScenario(path); err != nil {
			res.Valid = false
			res.Error = err.Error()
			failures++
		}
		results = append(results, res)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.Valid {
				fmt.Fprintf(formatter.Writer, "✓ %s\n", res.Path)
			} else {
				fmt.Fprintf(formatter.Writer, "✗ %s\n  %s\n", res.Path, res.Error)
			}
		}
	}

	if failures > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d of %d scenario(s)", failures, len(paths)))
	}
	return nil
}
