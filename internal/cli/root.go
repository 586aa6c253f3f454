package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/config"
	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string
	ConfigPath string

	// Config is the merged configuration, set by the root pre-run.
	Config *config.Config

	// Clock and IDs override the wall clock and the journal id generator
	// (for testing). Nil means dispatch.SystemClock and UUIDv7 ids.
	Clock dispatch.Clock
	IDs   store.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hotelite CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so
// callers can preset the Clock and IDs overrides.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotelite",
		Short: "hotelite - hotel back-office console",
		Long: `A line-oriented console for running a small hotel: rooms and their
occupancy, housekeepers and their schedules, inventory items, customer
satisfaction and events.

Without a subcommand, hotelite reads commands from standard input, one per
line, until "bye" or end of input. Every change is saved to the SQLite
database before the next command is read.

Example:
  hotelite --db ./hotel.db
  echo "check all" | hotelite --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", config.DefaultDatabase, "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")

	// Add subcommands
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewInvokeCommand(opts))
	cmd.AddCommand(NewScenarioCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// load merges defaults, the config file and explicitly set flags, in that
// order, and stores the result in o.Config.
func (o *RootOptions) load(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = o.Database
	}
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid settings", err)
	}

	o.Database = cfg.Database
	o.Format = cfg.Format
	o.Config = &cfg
	return nil
}

// settings returns the merged configuration. Commands built without the
// root command get the defaults with the option fields applied.
func (o *RootOptions) settings() config.Config {
	if o.Config != nil {
		return *o.Config
	}
	cfg := config.Default()
	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	return cfg
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.settings().Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
