package entity

import (
	"reflect"

	"github.com/roach88/hotelite/internal/domain"
)

// Kind names one store of the aggregate. Persistence writes stores by kind.
type Kind string

const (
	KindRooms         Kind = "rooms"
	KindHousekeepers  Kind = "housekeepers"
	KindAssignments   Kind = "assignments"
	KindItems         Kind = "items"
	KindPerformances  Kind = "performances"
	KindSatisfactions Kind = "satisfactions"
	KindEvents        Kind = "events"
)

// Kinds lists every store kind in load order. Referenced stores come first.
var Kinds = []Kind{
	KindRooms,
	KindHousekeepers,
	KindAssignments,
	KindItems,
	KindPerformances,
	KindSatisfactions,
	KindEvents,
}

// Hotel is the aggregate that owns every entity store.
//
// A single Hotel is built at startup and passed to each command; there is no
// package-level state.
type Hotel struct {
	Rooms         *RoomStore
	Housekeepers  *HousekeeperStore
	Assignments   *AssignmentStore
	Items         *ItemStore
	Performances  *PerformanceStore
	Satisfactions *SatisfactionStore
	Events        *EventStore
}

// New creates a hotel with empty stores and no rooms.
func New() *Hotel {
	return &Hotel{
		Rooms:         NewRoomStore(),
		Housekeepers:  NewHousekeeperStore(),
		Assignments:   NewAssignmentStore(),
		Items:         NewItemStore(),
		Performances:  NewPerformanceStore(),
		Satisfactions: NewSatisfactionStore(),
		Events:        NewEventStore(),
	}
}

// NewSeeded creates a hotel whose room store holds SeedRooms.
func NewSeeded() *Hotel {
	h := New()
	for _, r := range SeedRooms() {
		_ = h.Rooms.Insert(r)
	}
	return h
}

// HousekeeperName returns the housekeeper assigned to a room, or "".
func (h *Hotel) HousekeeperName(roomID int) string {
	a, ok := h.Assignments.Get(roomID)
	if !ok {
		return ""
	}
	return a.Housekeeper
}

// Snapshot is a plain-value copy of every store, used for export and tests.
type Snapshot struct {
	Rooms         []domain.Room         `json:"rooms"`
	Housekeepers  []domain.Housekeeper  `json:"housekeepers"`
	Assignments   []domain.Assignment   `json:"assignments"`
	Items         []domain.Item         `json:"items"`
	Performances  []domain.Performance  `json:"performances"`
	Satisfactions []domain.Satisfaction `json:"satisfactions"`
	Events        []domain.Event        `json:"events"`
}

// Snapshot copies every store.
func (h *Hotel) Snapshot() Snapshot {
	return Snapshot{
		Rooms:         h.Rooms.All(),
		Housekeepers:  h.Housekeepers.All(),
		Assignments:   h.Assignments.All(),
		Items:         h.Items.All(),
		Performances:  h.Performances.All(),
		Satisfactions: h.Satisfactions.All(),
		Events:        h.Events.All(),
	}
}

// Diff returns the kinds whose contents differ between s and other, in
// Kinds order. Empty and nil stores compare equal.
func (s Snapshot) Diff(other Snapshot) []Kind {
	a, b := s.byKind(), other.byKind()
	var diff []Kind
	for _, k := range Kinds {
		if !reflect.DeepEqual(a[k], b[k]) {
			diff = append(diff, k)
		}
	}
	return diff
}

func (s Snapshot) byKind() map[Kind]any {
	return map[Kind]any{
		KindRooms:         orEmpty(s.Rooms),
		KindHousekeepers:  orEmpty(s.Housekeepers),
		KindAssignments:   orEmpty(s.Assignments),
		KindItems:         orEmpty(s.Items),
		KindPerformances:  orEmpty(s.Performances),
		KindSatisfactions: orEmpty(s.Satisfactions),
		KindEvents:        orEmpty(s.Events),
	}
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
