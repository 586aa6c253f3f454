package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Into string // optional file for the rebuilt database
}

// ReplayResult holds the outcome of rebuilding the hotel from its journal.
type ReplayResult struct {
	Entries       int           `json:"entries"`
	Deterministic bool          `json:"deterministic"`
	Mismatched    []entity.Kind `json:"mismatched,omitempty"`
	Failed        string        `json:"failed,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the hotel from its journal and verify it matches",
		Long: `Re-run every journaled command, in order, against a freshly seeded hotel
and compare the result with the stored tables.

Each command runs with the clock reading recorded when it was first applied,
so assignments get the same weekday. The rebuilt database is kept in memory
unless --into names a new file.

Exit codes:
  0 - Replay reproduced every store
  1 - A command failed or a store differs
  2 - Command error (database not found, etc.)

Examples:
  hotelite replay --db ./hotel.db
  hotelite replay --db ./hotel.db --into ./rebuilt.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Into, "into", "", "write the rebuilt database to this new file")

	return cmd
}

// journalClock reports the time of the entry being replayed.
type journalClock struct {
	at time.Time
}

func (c *journalClock) Now() time.Time { return c.at }

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := opts.settings()

	if _, err := os.Stat(cfg.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}
	target := ":memory:"
	if opts.Into != "" {
		if _, err := os.Stat(opts.Into); err == nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("replay target already exists: %s", opts.Into))
		}
		target = opts.Into
	}

	src, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer src.Close()

	dst, err := store.Open(target)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open replay target", err)
	}
	defer dst.Close()

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	result, err := replayInto(ctx, cfg.Policy, logger, src, dst)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	if cfg.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result)
}

// replayInto re-runs src's journal against dst and compares the stores
// reloaded from both databases. Command failures are reported in the
// result; the error is for I/O problems.
func replayInto(ctx context.Context, policy grammar.Policy, logger *slog.Logger, src, dst *store.Store) (ReplayResult, error) {
	h, err := dst.Load(ctx)
	if err != nil {
		return ReplayResult{}, err
	}

	clock := &journalClock{}
	d := dispatch.New(h,
		dispatch.WithPolicy(policy),
		dispatch.WithPersister(dst),
		dispatch.WithClock(clock),
		dispatch.WithLogger(logger),
	)

	result := ReplayResult{Deterministic: true}
	n, err := src.Replay(ctx, func(ctx context.Context, e store.JournalEntry) error {
		clock.at = e.At
		_, err := d.Execute(ctx, e.Input)
		return err
	})
	result.Entries = n
	if err != nil {
		if errors.Is(err, context.Canceled) || !isCommandFailure(err) {
			return ReplayResult{}, err
		}
		result.Deterministic = false
		result.Failed = err.Error()
		return result, nil
	}

	want, err := src.Load(ctx)
	if err != nil {
		return ReplayResult{}, err
	}
	got, err := dst.Load(ctx)
	if err != nil {
		return ReplayResult{}, err
	}
	if diff := want.Snapshot().Diff(got.Snapshot()); len(diff) > 0 {
		result.Deterministic = false
		result.Mismatched = diff
	}
	return result, nil
}

// isCommandFailure reports whether err came from executing a command rather
// than from reading the journal.
func isCommandFailure(err error) bool {
	return dispatch.ErrorCode(err) != "Internal"
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.Deterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "ReplayMismatch",
			Message: "replay did not reproduce the stored hotel",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replayed %d journal entr%s\n", result.Entries, plural(result.Entries, "y", "ies"))

	if result.Failed != "" {
		fmt.Fprintf(w, "✗ %s\n", result.Failed)
	}
	for _, kind := range result.Mismatched {
		fmt.Fprintf(w, "✗ %s differ\n", kind)
	}

	if result.Deterministic {
		fmt.Fprintln(w, "✓ All stores match")
		return nil
	}

	fmt.Fprintln(w, "✗ Replay verification failed")
	return NewExitError(ExitFailure, "replay verification failed")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
