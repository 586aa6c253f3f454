package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/validate"
)

// Change describes one applied mutation for the persistence writer.
type Change struct {
	Command grammar.Command
	Input   string
	Kinds   []entity.Kind

	// At is the dispatcher clock reading when the command ran.
	At time.Time
}

// Persister stores the hotel after a mutating command succeeds.
// Save is called exactly once per applied mutation and never for failures
// or queries.
type Persister interface {
	Save(ctx context.Context, h *entity.Hotel, change Change) error
}

// Clock supplies the current time. Assign uses it to pick the weekday.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPolicy sets the numeric ranges used by the grammar and validator.
func WithPolicy(p grammar.Policy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

// WithPersister sets the persistence writer. Without one, mutations stay in memory.
func WithPersister(p Persister) Option {
	return func(d *Dispatcher) { d.persister = p }
}

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(d *Dispatcher) { d.clock = c }
}

// WithLogger sets the logger. Parsed commands log at Debug, rejections at Warn.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// Dispatcher executes command lines against one hotel.
// It is not safe for concurrent use; commands apply in call order.
type Dispatcher struct {
	hotel     *entity.Hotel
	policy    grammar.Policy
	grammar   *grammar.Grammar
	validator *validate.Validator
	keywords  *keywordTable
	handlers  map[grammar.Command]handler
	persister Persister
	clock     Clock
	logger    *slog.Logger
}

// New creates a dispatcher that owns no state besides h.
func New(h *entity.Hotel, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		hotel:    h,
		policy:   grammar.DefaultPolicy(),
		clock:    SystemClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		keywords: newKeywordTable(Keywords),
		handlers: handlers(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.grammar = grammar.New(d.policy)
	d.validator = validate.New(d.policy)
	return d
}

// Hotel returns the aggregate the dispatcher mutates.
func (d *Dispatcher) Hotel() *entity.Hotel { return d.hotel }

// Execute runs one command line.
//
// On failure nothing has changed unless the error is a *PersistError, in
// which case the mutation is applied in memory but not saved.
func (d *Dispatcher) Execute(ctx context.Context, line string) (Result, error) {
	line = strings.TrimSpace(line)

	cmd, rest, ok := d.keywords.lookup(line)
	if !ok {
		err := grammar.NewUnknownCommand(line, d.keywords.suggest(line))
		d.reject(line, err)
		return Result{}, err
	}

	req, err := d.grammar.Parse(cmd, rest)
	if err != nil {
		d.reject(line, err)
		return Result{}, err
	}
	d.logger.Debug("parsed command", "command", cmd, "request", fmt.Sprintf("%+v", req))

	if err := d.validator.Validate(d.hotel, req); err != nil {
		d.reject(line, err)
		return Result{}, err
	}

	h, ok := d.handlers[cmd]
	if !ok {
		return Result{}, fmt.Errorf("no handler for %s", cmd)
	}
	res, err := h.apply(d, req)
	if err != nil {
		return Result{}, fmt.Errorf("apply %s: %w", cmd, err)
	}
	res.Command = cmd
	res.Changed = h.mutates

	if len(h.mutates) > 0 && d.persister != nil {
		change := Change{Command: cmd, Input: line, Kinds: h.mutates, At: d.clock.Now()}
		if err := d.persister.Save(ctx, d.hotel, change); err != nil {
			d.logger.Error("persist failed", "command", cmd, "error", err)
			return res, &PersistError{Command: cmd, Err: err}
		}
	}
	return res, nil
}

// Check parses line without validating or applying it. It reports the
// same *grammar.ParseError Execute would, and never touches the hotel.
func (d *Dispatcher) Check(line string) (grammar.Command, error) {
	line = strings.TrimSpace(line)
	cmd, rest, ok := d.keywords.lookup(line)
	if !ok {
		return "", grammar.NewUnknownCommand(line, d.keywords.suggest(line))
	}
	if _, err := d.grammar.Parse(cmd, rest); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func (d *Dispatcher) reject(line string, err error) {
	d.logger.Warn("command rejected", "input", line, "code", ErrorCode(err), "error", err)
}

// Mutates reports which stores cmd changes when it succeeds.
func Mutates(cmd grammar.Command) []entity.Kind {
	return handlers()[cmd].mutates
}
