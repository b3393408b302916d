package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/choc/internal/compiler"
	"github.com/roach88/choc/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Mode   string
	Output string
	Cache  string
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <source-file>",
		Short: "Compile a program through the build cache",
		Long: `Compile a source file, memoizing the artifact in a SQLite build
cache. An unchanged source compiles to a cache hit and is served
without re-running the pipeline.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "ir", "emit mode (ir|ast|py)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Cache, "cache", "choc-cache.db", "build cache path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
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

	cache, err := store.Open(opts.Cache)
	if err != nil {
		msg := fmt.Sprintf("opening build cache: %v", err)
		_ = formatter.Error(ErrCodeCache, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	defer cache.Close()

	res, err := compiler.New(cache, nil).Compile(cmd.Context(), source, mode)
	if err != nil {
		return failCompile(formatter, err)
	}

	if res.Cached {
		formatter.VerboseLog("Cache hit: build %s", res.BuildID)
	} else {
		formatter.VerboseLog("Cache miss: stored build %s", res.BuildID)
	}

	return writeArtifact(formatter, res, opts.Output)
}
