package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
)

// Load reads every table into a new hotel.
//
// A database without rooms gets the seed room set, which is written back so
// later assignments can reference it. Keyed stores come back in the order
// they were saved.
func (s *Store) Load(ctx context.Context) (*entity.Hotel, error) {
	h := entity.New()

	loaders := []func(context.Context, *entity.Hotel) error{
		s.loadRooms,
		s.loadHousekeepers,
		s.loadAssignments,
		s.loadItems,
		s.loadPerformances,
		s.loadSatisfactions,
		s.loadEvents,
	}
	for _, load := range loaders {
		if err := load(ctx, h); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
	}

	if h.Rooms.Len() == 0 {
		for _, r := range entity.SeedRooms() {
			if err := h.Rooms.Insert(r); err != nil {
				return nil, fmt.Errorf("load: seed room %d: %w", r.ID, err)
			}
		}
		if err := s.SaveAll(ctx, h); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
	}
	return h, nil
}

// each runs query and calls scan once per row.
func (s *Store) each(ctx context.Context, table, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}

func (s *Store) loadRooms(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "rooms", `
		SELECT id, category, level, occupancy FROM rooms ORDER BY id ASC
	`, func(rows *sql.Rows) error {
		var r domain.Room
		var category, occupancy string
		if err := rows.Scan(&r.ID, &category, &r.Level, &occupancy); err != nil {
			return err
		}
		c, ok := domain.ParseCategory(category)
		if !ok {
			return fmt.Errorf("room %d: unknown category %q", r.ID, category)
		}
		r.Category = c
		r.Occupancy = domain.Occupancy(occupancy)
		return h.Rooms.Insert(r)
	})
}

func (s *Store) loadHousekeepers(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "housekeepers", `
		SELECT name, age, availability FROM housekeepers ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var hk domain.Housekeeper
		var days string
		if err := rows.Scan(&hk.Name, &hk.Age, &days); err != nil {
			return err
		}
		availability, err := unmarshalDays(days)
		if err != nil {
			return err
		}
		hk.Availability = availability
		return h.Housekeepers.Insert(hk)
	})
}

func (s *Store) loadAssignments(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "assignments", `
		SELECT room_id, housekeeper FROM assignments ORDER BY room_id ASC
	`, func(rows *sql.Rows) error {
		var a domain.Assignment
		if err := rows.Scan(&a.RoomID, &a.Housekeeper); err != nil {
			return err
		}
		return h.Assignments.Insert(a)
	})
}

func (s *Store) loadItems(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "items", `
		SELECT name, pax FROM items ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var item domain.Item
		if err := rows.Scan(&item.Name, &item.Pax); err != nil {
			return err
		}
		return h.Items.Insert(item)
	})
}

func (s *Store) loadPerformances(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "performances", `
		SELECT housekeeper, rating FROM performances ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var p domain.Performance
		if err := rows.Scan(&p.Housekeeper, &p.Rating); err != nil {
			return err
		}
		return h.Performances.Insert(p)
	})
}

func (s *Store) loadSatisfactions(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "satisfactions", `
		SELECT customer, value FROM satisfactions ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var sc domain.Satisfaction
		if err := rows.Scan(&sc.Customer, &sc.Value); err != nil {
			return err
		}
		h.Satisfactions.Insert(sc)
		return nil
	})
}

func (s *Store) loadEvents(ctx context.Context, h *entity.Hotel) error {
	return s.each(ctx, "events", `
		SELECT description, date FROM events ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var e domain.Event
		var date string
		if err := rows.Scan(&e.Description, &date); err != nil {
			return err
		}
		t, err := parseDate(date)
		if err != nil {
			return err
		}
		e.Date = t
		h.Events.Insert(e)
		return nil
	})
}
