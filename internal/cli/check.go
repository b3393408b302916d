package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/choc/internal/check"
	"github.com/roach88/choc/internal/frontend"
)

// CheckSummary is the success payload of the check command.
type CheckSummary struct {
	Globals   int `json:"globals"`
	Functions int `json:"functions"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <source-file>",
		Short: "Type-check a program",
		Long: `Parse and type-check a source file without emitting anything.

Exit code 0 means the program is well-typed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	source, loadErr := LoadSource(path)
	if loadErr != nil {
		return failLoad(formatter, loadErr)
	}

	prog, errs := frontend.Parse(source)
	if len(errs) > 0 {
		return failDiagnostics(formatter, ErrCodeParse, "parse", errs)
	}
	if errs := check.Check(prog); len(errs) > 0 {
		return failDiagnostics(formatter, ErrCodeCheck, "check", errs)
	}

	summary := CheckSummary{Globals: len(prog.Globals), Functions: len(prog.Funcs)}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s: %d global(s), %d function(s)\n",
		path, summary.Globals, summary.Functions)
	return nil
}

func failDiagnostics(formatter *OutputFormatter, code, phase string, errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	msg := fmt.Sprintf("%s failed with %d error(s)", phase, len(errs))
	_ = formatter.Error(code, msg, msgs)
	return NewExitError(ExitFailure, msg)
}
