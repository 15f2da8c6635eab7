package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probe-ir/probe/internal/dialect"
	"github.com/probe-ir/probe/internal/harness"
	"github.com/probe-ir/probe/internal/store"
)

// RunResult reports one scenario run.
type RunResult struct {
	Scenario string     `json:"scenario"`
	RunToken string     `json:"run_token"`
	Version  string     `json:"version"`
	Status   string     `json:"status"`
	Events   []RunEvent `json:"events"`
	Archived bool       `json:"archived,omitempty"`
}

// RunEvent is one trace entry.
type RunEvent struct {
	Step   string `json:"step"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var opsDir string
	var archivePath string

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a conformance scenario",
		Long: `Runs a conformance scenario against the dialect: section loading with
the upgrade pass, verification, side-effect resolution, and range
inference, in the order the scenario's steps name. With --ops, dynamic
operation definitions are loaded from CUE files and registered before
the run. With --archive, the run and its trace are recorded in a SQLite
archive.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, args[0], opsDir, archivePath, cmd)
		},
	}

	cmd.Flags().StringVar(&opsDir, "ops", "", "directory of CUE dynamic op definitions")
	cmd.Flags().StringVar(&archivePath, "archive", "", "SQLite archive path for the run record")

	return cmd
}

func runRun(opts *RootOptions, path, opsDir, archivePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	d := dialect.New()
	if opsDir != "" {
		defs, err := LoadDynamicOps(opsDir)
		if err != nil {
			_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		for _, def := range defs {
			d.RegisterDynamicOp(def)
			formatter.VerboseLog("Registered dynamic op %s", def.Name)
		}
	}

	result, err := harness.RunWith(d, scenario)
	if err != nil {
		_ = formatter.Error(ErrCodeRunFailed, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	archived := false
	if archivePath != "" {
		st, err := store.Open(archivePath)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		defer st.Close()
		if err := st.WriteRun(context.Background(), result); err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		archived = true
		formatter.VerboseLog("Archived run %s to %s", result.RunToken, archivePath)
	}

	out := RunResult{
		Scenario: result.Scenario,
		RunToken: result.RunToken,
		Version:  result.Version,
		Status:   result.Status,
		Archived: archived,
		Events:   make([]RunEvent, len(result.Events)),
	}
	for i, ev := range result.Events {
		out.Events[i] = RunEvent{Step: ev.Step, Detail: ev.Detail, Error: ev.Error}
	}

	if formatter.Format == "json" {
		if err := formatter.Success(out); err != nil {
			return err
		}
	} else {
		mark := "✓"
		if result.Status != harness.StatusPass {
			mark = "✗"
		}
		fmt.Fprintf(formatter.Writer, "%s %s (%s) run %s\n", mark, out.Scenario, out.Status, out.RunToken)
		for _, ev := range out.Events {
			if ev.Error != "" {
				fmt.Fprintf(formatter.Writer, "  %s: error: %s\n", ev.Step, ev.Error)
			} else {
				fmt.Fprintf(formatter.Writer, "  %s: %s\n", ev.Step, ev.Detail)
			}
		}
	}

	if result.Status != harness.StatusPass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", out.Scenario))
	}
	return nil
}
