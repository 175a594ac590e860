package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// options carries values shared by every subcommand.
type options struct {
	verbose    bool
	configPath string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// logger returns a logger honouring --verbose, falling back to fallback
// when --verbose is not set.
func (o *options) logger(fallback log.Level) *log.Logger {
	level := fallback
	if o.verbose {
		level = log.DebugLevel
	}
	return newLogger(o.stderr, level)
}

// Execute runs the dagcheck CLI with args and returns an error if the
// command fails.
func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "dagcheck",
		Short:         "dagcheck reports whether a pipeline graph is acyclic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newCheckCmd(opts))

	return root
}
