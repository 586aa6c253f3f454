package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hotelite/internal/domain"
)

func TestSeedRooms(t *testing.T) {
	rooms := SeedRooms()
	require.Len(t, rooms, 20)

	h := NewSeeded()
	r, ok := h.Rooms.Get(301)
	require.True(t, ok)
	assert.Equal(t, 3, r.Level)
	assert.Equal(t, domain.Vacant, r.Occupancy)

	for _, r := range rooms {
		assert.Equal(t, domain.Vacant, r.Occupancy)
		assert.Equal(t, r.ID/100, r.Level)
	}
	assert.Len(t, h.Rooms.OnLevel(5), 4)
	assert.Empty(t, h.Rooms.OnLevel(6))
	assert.Len(t, h.Rooms.InCategory(domain.CategoryKing), 3)
}

func TestRoomStore_AllOrderedByID(t *testing.T) {
	s := NewRoomStore()
	require.NoError(t, s.Insert(domain.Room{ID: 302}))
	require.NoError(t, s.Insert(domain.Room{ID: 101}))
	require.ErrorIs(t, s.Insert(domain.Room{ID: 101}), ErrExists)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, 101, all[0].ID)
	assert.Equal(t, 302, all[1].ID)
}

func TestHousekeeperStore_CaseInsensitiveKey(t *testing.T) {
	s := NewHousekeeperStore()
	require.NoError(t, s.Insert(domain.Housekeeper{Name: "Susan", Age: 23}))

	err := s.Insert(domain.Housekeeper{Name: "SUSAN", Age: 40})
	require.ErrorIs(t, err, ErrExists)
	assert.Equal(t, 1, s.Len())

	got, ok := s.Get("susan")
	require.True(t, ok)
	assert.Equal(t, "Susan", got.Name, "case is preserved")
	assert.Equal(t, 23, got.Age, "prior record untouched")

	require.NoError(t, s.Delete("sUsAn"))
	assert.False(t, s.Has("Susan"))
	assert.ErrorIs(t, s.Delete("Susan"), ErrMissing)
}

func TestHousekeeperStore_ResetAndAge(t *testing.T) {
	s := NewHousekeeperStore()
	require.NoError(t, s.Insert(domain.Housekeeper{Name: "Ann", Age: 30, Availability: []domain.Day{domain.Monday}}))
	require.NoError(t, s.Insert(domain.Housekeeper{Name: "Bo", Age: 41, Availability: []domain.Day{domain.Friday}}))

	assert.Len(t, s.AvailableOn(domain.Monday), 1)

	s.ResetAvailability()
	for _, h := range s.All() {
		assert.Empty(t, h.Availability)
	}
	assert.Empty(t, s.AvailableOn(domain.Monday))

	s.AgeAll(1)
	ann, _ := s.Get("ann")
	bo, _ := s.Get("bo")
	assert.Equal(t, 31, ann.Age)
	assert.Equal(t, 42, bo.Age)
}

func TestAssignmentStore(t *testing.T) {
	s := NewAssignmentStore()
	require.NoError(t, s.Insert(domain.Assignment{Housekeeper: "Susan", RoomID: 302}))
	require.NoError(t, s.Insert(domain.Assignment{Housekeeper: "susan", RoomID: 101}))
	require.NoError(t, s.Insert(domain.Assignment{Housekeeper: "Bo", RoomID: 201}))
	assert.ErrorIs(t, s.Insert(domain.Assignment{Housekeeper: "Bo", RoomID: 302}), ErrExists)

	mine := s.Of("SUSAN")
	require.Len(t, mine, 2)
	assert.Equal(t, 101, mine[0].RoomID)
	assert.Equal(t, 302, mine[1].RoomID)

	require.NoError(t, s.Delete(302))
	_, ok := s.Get(302)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Delete(302), ErrMissing)
}

func TestItemStore_RenameKeepsPosition(t *testing.T) {
	s := NewItemStore()
	require.NoError(t, s.Insert(domain.Item{Name: "Towel", Pax: 10}))
	require.NoError(t, s.Insert(domain.Item{Name: "Soap", Pax: 0}))
	require.NoError(t, s.Insert(domain.Item{Name: "Bath Towel", Pax: 4}))

	require.NoError(t, s.Rename("towel", "Hand Towel"))
	all := s.All()
	assert.Equal(t, "Hand Towel", all[0].Name)
	assert.Equal(t, 10, all[0].Pax)
	assert.False(t, s.Has("Towel"))

	assert.ErrorIs(t, s.Rename("soap", "bath towel"), ErrExists)
	assert.ErrorIs(t, s.Rename("shampoo", "x"), ErrMissing)

	assert.Len(t, s.Search("TOWEL"), 2)
	zero := s.ZeroPax()
	require.Len(t, zero, 1)
	assert.Equal(t, "Soap", zero[0].Name)
}

func TestPerformanceStore_OnePerHousekeeper(t *testing.T) {
	s := NewPerformanceStore()
	require.NoError(t, s.Insert(domain.Performance{Housekeeper: "Susan", Rating: 5}))
	assert.ErrorIs(t, s.Insert(domain.Performance{Housekeeper: "susan", Rating: 3}), ErrExists)
	assert.True(t, s.Has("SUSAN"))
}

func TestSatisfactionStore_Average(t *testing.T) {
	s := NewSatisfactionStore()
	_, ok := s.Average()
	assert.False(t, ok)

	s.Insert(domain.Satisfaction{Customer: "Lee", Value: 5})
	s.Insert(domain.Satisfaction{Customer: "Kim", Value: 2})
	avg, ok := s.Average()
	require.True(t, ok)
	assert.InDelta(t, 3.5, avg, 1e-9)

	require.NoError(t, s.Delete(0))
	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.Delete(5), ErrMissing)
}

func TestEventStore_InsertionOrder(t *testing.T) {
	s := NewEventStore()
	d1 := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Insert(domain.Event{Description: "gala", Date: d1})
	s.Insert(domain.Event{Description: "audit", Date: d2})

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "gala", all[0].Description)

	all[0].Description = "changed"
	first, _ := s.Get(0)
	assert.Equal(t, "gala", first.Description, "All returns a copy")
}

func TestSnapshot_Diff(t *testing.T) {
	a := NewSeeded()
	b := NewSeeded()
	assert.Empty(t, a.Snapshot().Diff(b.Snapshot()))

	require.NoError(t, b.Items.Insert(domain.Item{Name: "Towel", Pax: 3}))
	require.NoError(t, b.Housekeepers.Insert(domain.Housekeeper{Name: "Susan", Age: 23}))
	assert.Equal(t, []Kind{KindHousekeepers, KindItems}, a.Snapshot().Diff(b.Snapshot()))

	assert.Empty(t, Snapshot{}.Diff(New().Snapshot()), "nil and empty stores are equal")
}
