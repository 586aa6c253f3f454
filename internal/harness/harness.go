package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/store"
	"github.com/roach88/hotelite/internal/testutil"
)

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
	dbPath string
}

// WithLogger routes dispatcher logs to l. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// WithDatabase runs the scenario against the SQLite file at path instead of
// an in-memory database. The file should not exist yet.
func WithDatabase(path string) Option {
	return func(c *runConfig) { c.dbPath = path }
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh database for isolation. The clock and the
// journal ids are deterministic, so reruns produce identical transcripts.
//
// Execution flow:
// 1. Open a fresh database and load the seeded hotel
// 2. Execute setup lines, failing the run if any is rejected
// 3. Execute steps, checking each expect clause
// 4. Evaluate assertions against the transcript and the database
//
// A non-nil error means the scenario could not be executed at all. Failed
// expectations are reported in Result.Errors.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		dbPath: ":memory:",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	now, err := scenario.ClockTime()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.dbPath, store.WithIDGenerator(testutil.NewSequenceIDs("journal")))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	defer st.Close()

	hotel, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}

	d := dispatch.New(hotel,
		dispatch.WithPolicy(scenario.EffectivePolicy()),
		dispatch.WithPersister(st),
		dispatch.WithClock(testutil.NewFixedClock(now)),
		dispatch.WithLogger(cfg.logger),
	)

	for i, line := range scenario.Setup {
		if _, err := d.Execute(ctx, line); err != nil {
			return nil, fmt.Errorf("setup[%d] %q: %w", i, line, err)
		}
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		res, err := d.Execute(ctx, step.Input)
		entry := NewEntry(i+1, step.Input, res, err)
		result.AddEntry(entry)

		if step.Expect != nil {
			for _, msg := range checkExpect(entry, *step.Expect) {
				result.AddError(fmt.Sprintf("step %d %q: %s", entry.Step, step.Input, msg))
			}
		}

		if dispatch.IsPersistError(err) {
			return nil, fmt.Errorf("step %d %q: %w", entry.Step, step.Input, err)
		}
		if res.Exit {
			result.Exited = true
			break
		}
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}
