package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probe-ir/probe/internal/bytecode"
	"github.com/probe-ir/probe/internal/harness"
	"github.com/probe-ir/probe/internal/ir"
)

// UpgradeResult reports the module state after the upgrade pass.
type UpgradeResult struct {
	Scenario    string      `json:"scenario"`
	FromVersion string      `json:"from_version"`
	ToVersion   string      `json:"to_version"`
	Records     int         `json:"records"`
	Ops         []UpgradeOp `json:"ops"`
}

// UpgradeOp is one module operation after upgrading.
type UpgradeOp struct {
	Name  string `json:"name"`
	Attrs string `json:"attrs"`
}

// NewUpgradeCommand creates the upgrade command.
func NewUpgradeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade <scenario.yaml>",
		Short: "Run the upgrade rewrite over a scenario's module",
		Long: `Builds the scenario's module and its encoded section at the scenario's
producer version, then drives the deserializer entry point: the version
header is read and the upgrade pass rewrites legacy operations before
any record is decoded. Prints the upgraded module.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runUpgrade(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	version, err := bytecode.ParseVersion(scenario.Version)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	module, err := harness.BuildModule(scenario)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	section, err := harness.BuildSection(version, scenario.Records)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	_, attrs, err := bytecode.LoadSection(section, module)
	if err != nil {
		_ = formatter.Error(ErrCodeRunFailed, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}
	formatter.VerboseLog("Upgraded from %s to %s, decoded %d record(s)",
		version, bytecode.Current, len(attrs))

	result := UpgradeResult{
		Scenario:    scenario.Name,
		FromVersion: version.String(),
		ToVersion:   bytecode.Current.String(),
		Records:     len(attrs),
	}
	for _, op := range module.Body().Ops {
		result.Ops = append(result.Ops, UpgradeOp{
			Name:  op.Name,
			Attrs: ir.PrintAttrDict(op),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ upgraded %s from %s to %s (%d record(s))\n",
		scenario.Name, result.FromVersion, result.ToVersion, result.Records)
	for _, op := range result.Ops {
		fmt.Fprintf(formatter.Writer, "  %s %s\n", op.Name, op.Attrs)
	}
	return nil
}
