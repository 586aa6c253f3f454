package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
)

// Save rewrites the tables named by change.Kinds and appends a journal row,
// all in one transaction. It implements dispatch.Persister.
func (s *Store) Save(ctx context.Context, h *entity.Hotel, change dispatch.Change) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %s: begin: %w", change.Command, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, kind := range change.Kinds {
		if err = writeKind(ctx, tx, h, kind); err != nil {
			return fmt.Errorf("save %s: %w", change.Command, err)
		}
	}

	if err = s.appendJournal(ctx, tx, change); err != nil {
		return fmt.Errorf("save %s: %w", change.Command, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save %s: commit: %w", change.Command, err)
	}
	return nil
}

// SaveAll rewrites every table without a journal row. Used to persist the
// seeded room set of a fresh database.
func (s *Store) SaveAll(ctx context.Context, h *entity.Hotel) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save all: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, kind := range entity.Kinds {
		if err = writeKind(ctx, tx, h, kind); err != nil {
			return fmt.Errorf("save all: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save all: commit: %w", err)
	}
	return nil
}

func writeKind(ctx context.Context, tx *sql.Tx, h *entity.Hotel, kind entity.Kind) error {
	switch kind {
	case entity.KindRooms:
		return writeRooms(ctx, tx, h.Rooms.All())
	case entity.KindHousekeepers:
		return writeHousekeepers(ctx, tx, h.Housekeepers.All())
	case entity.KindAssignments:
		return writeAssignments(ctx, tx, h.Assignments.All())
	case entity.KindItems:
		return writeItems(ctx, tx, h.Items.All())
	case entity.KindPerformances:
		return writePerformances(ctx, tx, h.Performances.All())
	case entity.KindSatisfactions:
		return writeSatisfactions(ctx, tx, h.Satisfactions.All())
	case entity.KindEvents:
		return writeEvents(ctx, tx, h.Events.All())
	}
	return fmt.Errorf("unknown store kind %q", kind)
}

// clearTable empties a table before it is rewritten.
func clearTable(ctx context.Context, tx *sql.Tx, table string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

func writeRooms(ctx context.Context, tx *sql.Tx, rooms []domain.Room) error {
	if err := clearTable(ctx, tx, "rooms"); err != nil {
		return err
	}
	for _, r := range rooms {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rooms (id, category, level, occupancy)
			VALUES (?, ?, ?, ?)
		`, r.ID, string(r.Category), r.Level, string(r.Occupancy))
		if err != nil {
			return fmt.Errorf("write room %d: %w", r.ID, err)
		}
	}
	return nil
}

func writeHousekeepers(ctx context.Context, tx *sql.Tx, staff []domain.Housekeeper) error {
	if err := clearTable(ctx, tx, "housekeepers"); err != nil {
		return err
	}
	for i, hk := range staff {
		days, err := marshalDays(hk.Availability)
		if err != nil {
			return fmt.Errorf("write housekeeper %q: %w", hk.Name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO housekeepers (key, position, name, age, availability)
			VALUES (?, ?, ?, ?, ?)
		`, string(hk.Key()), i, hk.Name, hk.Age, days)
		if err != nil {
			return fmt.Errorf("write housekeeper %q: %w", hk.Name, err)
		}
	}
	return nil
}

func writeAssignments(ctx context.Context, tx *sql.Tx, assignments []domain.Assignment) error {
	if err := clearTable(ctx, tx, "assignments"); err != nil {
		return err
	}
	for _, a := range assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assignments (room_id, housekeeper_key, housekeeper)
			VALUES (?, ?, ?)
		`, a.RoomID, string(domain.KeyOf(a.Housekeeper)), a.Housekeeper)
		if err != nil {
			return fmt.Errorf("write assignment of room %d: %w", a.RoomID, err)
		}
	}
	return nil
}

func writeItems(ctx context.Context, tx *sql.Tx, items []domain.Item) error {
	if err := clearTable(ctx, tx, "items"); err != nil {
		return err
	}
	for i, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (key, position, name, pax)
			VALUES (?, ?, ?, ?)
		`, string(item.Key()), i, item.Name, item.Pax)
		if err != nil {
			return fmt.Errorf("write item %q: %w", item.Name, err)
		}
	}
	return nil
}

func writePerformances(ctx context.Context, tx *sql.Tx, ratings []domain.Performance) error {
	if err := clearTable(ctx, tx, "performances"); err != nil {
		return err
	}
	for i, p := range ratings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO performances (housekeeper_key, position, housekeeper, rating)
			VALUES (?, ?, ?, ?)
		`, string(domain.KeyOf(p.Housekeeper)), i, p.Housekeeper, p.Rating)
		if err != nil {
			return fmt.Errorf("write performance of %q: %w", p.Housekeeper, err)
		}
	}
	return nil
}

func writeSatisfactions(ctx context.Context, tx *sql.Tx, scores []domain.Satisfaction) error {
	if err := clearTable(ctx, tx, "satisfactions"); err != nil {
		return err
	}
	for i, sc := range scores {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO satisfactions (position, customer, value)
			VALUES (?, ?, ?)
		`, i, sc.Customer, sc.Value)
		if err != nil {
			return fmt.Errorf("write satisfaction %d: %w", i, err)
		}
	}
	return nil
}

func writeEvents(ctx context.Context, tx *sql.Tx, events []domain.Event) error {
	if err := clearTable(ctx, tx, "events"); err != nil {
		return err
	}
	for i, e := range events {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (position, description, date)
			VALUES (?, ?, ?)
		`, i, e.Description, formatDate(e.Date))
		if err != nil {
			return fmt.Errorf("write event %d: %w", i, err)
		}
	}
	return nil
}

func (s *Store) appendJournal(ctx context.Context, tx *sql.Tx, change dispatch.Change) error {
	kinds, err := marshalKinds(change.Kinds)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO journal (id, seq, command, input, kinds, at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM journal), ?, ?, ?, ?)
	`, s.ids.Generate(), string(change.Command), change.Input, kinds, formatTime(change.At))
	if err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}
