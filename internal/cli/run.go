package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/store"
)

// session is an open database with a dispatcher over its hotel.
type session struct {
	store      *store.Store
	dispatcher *dispatch.Dispatcher
	out        *OutputFormatter
	logger     *slog.Logger
}

// newLogger returns the stderr text logger. Without --verbose only errors
// are logged; rejected commands are already reported on the output stream.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelError
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// openSession opens the configured database, loads the hotel and builds a
// dispatcher that saves through the store.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg := opts.settings()
	logger := newLogger(opts, cmd.ErrOrStderr())

	var storeOpts []store.Option
	if opts.IDs != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDs))
	}

	logger.Debug("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database, storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	h, err := st.Load(ctx)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load hotel", err)
	}
	logger.Debug("hotel loaded",
		"rooms", h.Rooms.Len(),
		"housekeepers", h.Housekeepers.Len(),
		"items", h.Items.Len(),
		"events", h.Events.Len())

	clock := opts.Clock
	if clock == nil {
		clock = dispatch.SystemClock{}
	}
	d := dispatch.New(h,
		dispatch.WithPolicy(cfg.Policy),
		dispatch.WithPersister(st),
		dispatch.WithClock(clock),
		dispatch.WithLogger(logger),
	)

	return &session{
		store:      st,
		dispatcher: d,
		out:        opts.formatter(cmd),
		logger:     logger,
	}, nil
}

// Close closes the database, logging rather than returning the error.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

type loopOptions struct {
	// prompt receives "> " before each line is read; nil disables it.
	prompt io.Writer

	// strict stops at the first rejected command.
	strict bool
}

type loopStats struct {
	Executed int  `json:"executed"`
	Rejected int  `json:"rejected"`
	Exited   bool `json:"exited"`
}

// loop reads commands from r, one per line, and renders each outcome.
// Blank lines and lines starting with '#' are skipped. It returns at bye,
// end of input, a failed save or cancellation of ctx.
//
// Lines are read on a separate goroutine so cancellation is noticed while
// waiting for input; commands still run one at a time on the caller's.
func (s *session) loop(ctx context.Context, r io.Reader, lo loopOptions) (loopStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		err := eachLine(r, func(line string) bool {
			select {
			case lines <- line:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err == nil {
			err = ctx.Err()
		}
		readErr <- err
	}()

	var stats loopStats
	lineNo := 0
	for {
		if lo.prompt != nil {
			fmt.Fprint(lo.prompt, "> ")
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			break
		}
		lineNo++

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		res, err := s.dispatcher.Execute(ctx, line)
		if err != nil {
			if err := s.out.Failure(err); err != nil {
				return stats, err
			}
			if dispatch.IsPersistError(err) {
				return stats, WrapExitError(ExitFailure, "failed to save hotel", err)
			}
			stats.Rejected++
			if lo.strict {
				return stats, NewExitError(ExitFailure, fmt.Sprintf("line %d rejected: %s", lineNo, line))
			}
			continue
		}

		stats.Executed++
		if err := s.out.Result(res); err != nil {
			return stats, err
		}
		if res.Exit {
			stats.Exited = true
			return stats, nil
		}
	}

	err := <-readErr
	switch {
	case err == nil:
		return stats, nil
	case errors.Is(err, context.Canceled):
		return stats, err
	default:
		return stats, WrapExitError(ExitCommandError, "failed to read input", err)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command, logger *slog.Logger) (context.Context, context.CancelFunc) {
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// runREPL reads commands from standard input until bye or end of input.
func runREPL(opts *RootOptions, cmd *cobra.Command) error {
	ctx, cancel := signalContext(cmd, newLogger(opts, cmd.ErrOrStderr()))
	defer cancel()

	sess, err := openSession(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	var lo loopOptions
	if sess.out.Format == "text" {
		lo.prompt = cmd.ErrOrStderr()
	}

	stats, err := sess.loop(ctx, cmd.InOrStdin(), lo)
	if lo.prompt != nil && !stats.Exited {
		fmt.Fprintln(lo.prompt)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	sess.logger.Debug("session ended", "executed", stats.Executed, "rejected", stats.Rejected)
	return nil
}
