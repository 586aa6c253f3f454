package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
)

// JournalEntry is one applied mutating command.
type JournalEntry struct {
	ID      string          `json:"id"`
	Seq     int64           `json:"seq"`
	Command grammar.Command `json:"command"`
	Input   string          `json:"input"`
	Kinds   []entity.Kind   `json:"kinds"`

	// At is when the command ran; zero for bulk saves.
	At time.Time `json:"at,omitempty"`
}

const journalColumns = `id, seq, command, input, kinds, at`

// Journal returns every journal entry ordered by seq.
// Returns an empty slice (not nil) for a fresh database.
func (s *Store) Journal(ctx context.Context) ([]JournalEntry, error) {
	entries, err := s.readJournal(ctx, `
		SELECT `+journalColumns+` FROM journal ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return entries, nil
}

// JournalFor returns the entries of one command ordered by seq.
func (s *Store) JournalFor(ctx context.Context, cmd grammar.Command) ([]JournalEntry, error) {
	entries, err := s.readJournal(ctx, `
		SELECT `+journalColumns+` FROM journal WHERE command = ? ORDER BY seq ASC
	`, string(cmd))
	if err != nil {
		return nil, fmt.Errorf("read journal for %s: %w", cmd, err)
	}
	return entries, nil
}

func (s *Store) readJournal(ctx context.Context, query string, args ...any) ([]JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanJournalEntry(rows *sql.Rows) (JournalEntry, error) {
	var e JournalEntry
	var command, kinds, at string
	if err := rows.Scan(&e.ID, &e.Seq, &command, &e.Input, &kinds, &at); err != nil {
		return JournalEntry{}, err
	}
	e.Command = grammar.Command(command)

	k, err := unmarshalKinds(kinds)
	if err != nil {
		return JournalEntry{}, err
	}
	e.Kinds = k

	if e.At, err = parseTime(at); err != nil {
		return JournalEntry{}, err
	}
	return e, nil
}

// LastSeq returns the highest journal sequence number, or 0.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM journal`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

// Replay feeds every journal entry, in order, to exec. It returns how many
// entries were applied and stops at the first error, which names the
// failing entry's seq.
func (s *Store) Replay(ctx context.Context, exec func(ctx context.Context, e JournalEntry) error) (int, error) {
	entries, err := s.Journal(ctx)
	if err != nil {
		return 0, err
	}
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := exec(ctx, e); err != nil {
			return i, fmt.Errorf("replay seq %d %q: %w", e.Seq, e.Input, err)
		}
	}
	return len(entries), nil
}
