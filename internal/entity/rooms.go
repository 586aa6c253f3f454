package entity

import (
	"cmp"
	"slices"

	"github.com/roach88/hotelite/internal/domain"
)

// RoomStore holds rooms keyed by id, iterated in ascending id order.
type RoomStore struct {
	rooms *ordered[int, domain.Room]
}

// NewRoomStore creates an empty room store.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: newOrdered[int, domain.Room]()}
}

// Get returns the room with the given id.
func (s *RoomStore) Get(id int) (domain.Room, bool) { return s.rooms.get(id) }

// Insert adds a room. Returns ErrExists if the id is taken.
func (s *RoomStore) Insert(r domain.Room) error { return s.rooms.insert(r.ID, r) }

// Update replaces the room with the same id.
func (s *RoomStore) Update(r domain.Room) error { return s.rooms.update(r.ID, r) }

// Delete removes a room. No command deletes rooms; used by loaders only.
func (s *RoomStore) Delete(id int) error { return s.rooms.delete(id) }

// All returns every room ordered by id.
func (s *RoomStore) All() []domain.Room {
	out := s.rooms.all()
	slices.SortFunc(out, func(a, b domain.Room) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Len returns the number of rooms.
func (s *RoomStore) Len() int { return s.rooms.len() }

// OnLevel returns the rooms on a level, ordered by id.
func (s *RoomStore) OnLevel(level int) []domain.Room {
	return s.filter(func(r domain.Room) bool { return r.Level == level })
}

// InCategory returns the rooms of a category, ordered by id.
func (s *RoomStore) InCategory(c domain.Category) []domain.Room {
	return s.filter(func(r domain.Room) bool { return r.Category == c })
}

func (s *RoomStore) filter(keep func(domain.Room) bool) []domain.Room {
	var out []domain.Room
	for _, r := range s.All() {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
