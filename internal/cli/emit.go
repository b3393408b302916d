package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/choc/internal/compiler"
)

// EmitOptions holds flags for the emit command.
type EmitOptions struct {
	*RootOptions
	Mode   string
	Output string
}

// NewEmitCommand creates the emit command.
func NewEmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "emit <source-file>",
		Short: "Compile a program and print the artifact",
		Long: `Compile a source file and print the requested artifact.

Modes:
  ir   LLVM IR module (default)
  ast  typed AST as JSON
  py   untyped Python source`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "ir", "emit mode (ir|ast|py)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runEmit(opts *EmitOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	mode, err := compiler.ParseMode(opts.Mode)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	source, loadErr := LoadSource(path)
	if loadErr != nil {
		return failLoad(formatter, loadErr)
	}

	res, err := compiler.New(nil, nil).Compile(cmd.Context(), source, mode)
	if err != nil {
		return failCompile(formatter, err)
	}

	return writeArtifact(formatter, res, opts.Output)
}

// EmitResult is the success payload of the emit and compile commands.
type EmitResult struct {
	Artifact    string `json:"artifact"`
	Fingerprint string `json:"fingerprint"`
	BuildID     string `json:"build_id"`
	Cached      bool   `json:"cached"`
}

func writeArtifact(formatter *OutputFormatter, res compiler.Result, outputFile string) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(res.Artifact), 0644); err != nil {
			msg := fmt.Sprintf("writing output file: %v", err)
			_ = formatter.Error(ErrCodeWriteFailed, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
		formatter.VerboseLog("Wrote artifact to %s", outputFile)
	}

	if formatter.Format == "json" {
		return formatter.Success(EmitResult{
			Artifact:    res.Artifact,
			Fingerprint: res.Fingerprint,
			BuildID:     res.BuildID,
			Cached:      res.Cached,
		})
	}

	if outputFile == "" {
		fmt.Fprint(formatter.Writer, res.Artifact)
		if len(res.Artifact) > 0 && res.Artifact[len(res.Artifact)-1] != '\n' {
			fmt.Fprintln(formatter.Writer)
		}
	} else {
		fmt.Fprintf(formatter.Writer, "✓ Wrote artifact to %s\n", outputFile)
	}
	return nil
}
