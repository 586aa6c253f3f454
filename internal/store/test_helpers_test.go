package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/testutil"
)

// createTestStore opens a fresh database in a temp dir with predictable journal ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceIDs("j")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestHotel builds a seeded hotel with one record in every store.
func createTestHotel(t *testing.T) *entity.Hotel {
	t.Helper()
	h := entity.NewSeeded()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("build hotel: %v", err)
		}
	}
	must(h.Housekeepers.Insert(domain.Housekeeper{Name: "Susan", Age: 23, Availability: []domain.Day{domain.Monday, domain.Wednesday}}))
	must(h.Housekeepers.Insert(domain.Housekeeper{Name: "Ann Lee", Age: 41}))
	must(h.Assignments.Insert(domain.Assignment{Housekeeper: "Susan", RoomID: 301}))
	must(h.Items.Insert(domain.Item{Name: "Towel", Pax: 12}))
	must(h.Items.Insert(domain.Item{Name: "Café crème", Pax: 0}))
	must(h.Performances.Insert(domain.Performance{Housekeeper: "Susan", Rating: 5}))
	h.Satisfactions.Insert(domain.Satisfaction{Customer: "Mr Tan", Value: 4})
	h.Events.Insert(domain.Event{Description: "Fire drill", Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)})

	room, _ := h.Rooms.Get(301)
	room.Occupancy = domain.Occupied
	must(h.Rooms.Update(room))
	return h
}

// saveAllKinds saves h as if one command had touched every store.
func saveAllKinds(t *testing.T, s *Store, h *entity.Hotel) {
	t.Helper()
	change := dispatch.Change{Command: grammar.CmdCheckAll, Input: "test", Kinds: entity.Kinds}
	if err := s.Save(context.Background(), h, change); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
}
