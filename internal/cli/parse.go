package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/frontend"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <source-file>",
		Short: "Parse a program and print its AST",
		Long: `Parse a source file and print the untyped AST as JSON.

The program is not type-checked; use "choc check" for that.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Parsed %d global(s), %d function(s), %d statement(s)",
		len(prog.Globals), len(prog.Funcs), len(prog.Body))

	dump := ast.Dump(prog, false)
	if formatter.Format == "json" {
		return formatter.Success(dump)
	}
	out, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("marshaling ast: %v", err))
	}
	fmt.Fprintln(formatter.Writer, string(out))
	return nil
}
