package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/dispatch"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <command>...",
		Short: "Run a single console command",
		Long: `Run one console command against the database and exit.

The arguments are joined with single spaces and handled exactly like a line
typed at the console. A rejected command exits with status 1.

Example:
  hotelite invoke add housekeeper Susan / 23
  hotelite invoke --format json check room 301`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoke(opts, strings.Join(args, " "), cmd)
		},
	}
	// Command words such as "-1" must not be read as flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runInvoke(opts *InvokeOptions, line string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := sess.dispatcher.Execute(ctx, line)
	if err != nil {
		if ferr := sess.out.Failure(err); ferr != nil {
			return ferr
		}
		if dispatch.IsPersistError(err) {
			return WrapExitError(ExitFailure, "failed to save hotel", err)
		}
		return WrapExitError(ExitFailure, "command rejected", err)
	}
	return sess.out.Result(res)
}
