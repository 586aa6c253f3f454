package entity

import (
	"cmp"
	"slices"

	"github.com/roach88/hotelite/internal/domain"
)

// AssignmentStore maps each room to at most one housekeeper.
type AssignmentStore struct {
	byRoom map[int]domain.Assignment
}

// NewAssignmentStore creates an empty assignment store.
func NewAssignmentStore() *AssignmentStore {
	return &AssignmentStore{byRoom: make(map[int]domain.Assignment)}
}

// Get returns the assignment of a room.
func (s *AssignmentStore) Get(roomID int) (domain.Assignment, bool) {
	a, ok := s.byRoom[roomID]
	return a, ok
}

// Insert records an assignment. Returns ErrExists if the room is already assigned.
func (s *AssignmentStore) Insert(a domain.Assignment) error {
	if _, ok := s.byRoom[a.RoomID]; ok {
		return ErrExists
	}
	s.byRoom[a.RoomID] = a
	return nil
}

// Update replaces the housekeeper on an assigned room.
func (s *AssignmentStore) Update(a domain.Assignment) error {
	if _, ok := s.byRoom[a.RoomID]; !ok {
		return ErrMissing
	}
	s.byRoom[a.RoomID] = a
	return nil
}

// Delete clears the assignment of a room.
func (s *AssignmentStore) Delete(roomID int) error {
	if _, ok := s.byRoom[roomID]; !ok {
		return ErrMissing
	}
	delete(s.byRoom, roomID)
	return nil
}

// All returns every assignment ordered by room id.
func (s *AssignmentStore) All() []domain.Assignment {
	out := make([]domain.Assignment, 0, len(s.byRoom))
	for _, a := range s.byRoom {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b domain.Assignment) int { return cmp.Compare(a.RoomID, b.RoomID) })
	return out
}

// Len returns the number of assigned rooms.
func (s *AssignmentStore) Len() int { return len(s.byRoom) }

// Of returns the assignments held by a housekeeper, matched case-insensitively.
func (s *AssignmentStore) Of(name string) []domain.Assignment {
	key := domain.KeyOf(name)
	var out []domain.Assignment
	for _, a := range s.All() {
		if domain.KeyOf(a.Housekeeper) == key {
			out = append(out, a)
		}
	}
	return out
}
