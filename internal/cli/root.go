// Package cli implements the imgpipe command line driver: it loads the
// pipeline configuration, builds the engine and action registry, and runs
// the configured steps over a directory of images.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command for the imgpipe CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "imgpipe",
		Short:        "Parallel batch image pipeline",
		Long:         "imgpipe applies a configured pipeline of per-item transforms to a batch of images using a bounded worker pool.",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("log-level", "", "override the configured log level")
	cmd.AddCommand(newRunCmd())

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(ver string) int {
	if err := NewRootCmd(ver).Execute(); err != nil {
		return 1
	}
	return 0
}

const rootCmdExample = `  # Resize every PNG in ./in to 64x64 and write the results to ./out
  imgpipe run --config pipeline.yaml --input ./in --output ./out

  # Same pipeline with debug logging
  imgpipe run --config pipeline.yaml --input ./in --output ./out --log-level debug`
