package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Strict bool
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <script>",
		Short: "Run a file of console commands",
		Long: `Run every line of a script file as a console command.

Blank lines and lines starting with # are skipped. Rejected commands are
reported and the script continues, unless --strict is set. A failed save
always stops the script. "bye" ends the script early.

Example:
  hotelite exec ./morning.txt
  hotelite exec --strict --format json ./setup.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "stop at the first rejected command")

	return cmd
}

func runExec(opts *ExecOptions, script string, cmd *cobra.Command) error {
	f, err := os.Open(script)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewExitError(ExitCommandError, fmt.Sprintf("script not found: %s", script))
		}
		return WrapExitError(ExitCommandError, "failed to open script", err)
	}
	defer f.Close()

	ctx, cancel := signalContext(cmd, newLogger(opts.RootOptions, cmd.ErrOrStderr()))
	defer cancel()

	sess, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	stats, err := sess.loop(ctx, f, loopOptions{strict: opts.Strict})
	sess.out.VerboseLog("executed %d, rejected %d", stats.Executed, stats.Rejected)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
