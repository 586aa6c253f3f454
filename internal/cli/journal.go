package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/store"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Command string // optional keyword filter, e.g. "check-in"
}

// JournalResult is the JSON payload of the journal command.
type JournalResult struct {
	Entries []store.JournalEntry `json:"entries"`
	Total   int                  `json:"total"`
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List the commands that changed the hotel",
		Long: `List every applied mutating command in the order it ran.

Only commands that changed a store are journaled; lookups and rejected
commands are not.

Examples:
  hotelite journal --db ./hotel.db
  hotelite journal --db ./hotel.db --command assign --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Command, "command", "", "show only this command (e.g. add-item)")

	return cmd
}

func runJournal(opts *JournalOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := opts.settings()

	if _, err := os.Stat(cfg.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var entries []store.JournalEntry
	if opts.Command != "" {
		entries, err = st.JournalFor(ctx, grammar.Command(opts.Command))
	} else {
		entries, err = st.Journal(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	if cfg.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{
			Status: "ok",
			Data:   JournalResult{Entries: entries, Total: len(entries)},
		})
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries found.")
		return nil
	}
	for _, e := range entries {
		at := "-"
		if !e.At.IsZero() {
			at = e.At.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%4d  %s  %-22s %s\n", e.Seq, at, e.Command, e.Input)
	}
	return nil
}
