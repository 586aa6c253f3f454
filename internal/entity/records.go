package entity

import (
	"strings"

	"github.com/roach88/hotelite/internal/domain"
)

// ItemStore holds inventory items keyed by folded name.
type ItemStore struct {
	items *ordered[domain.Key, domain.Item]
}

// NewItemStore creates an empty item store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: newOrdered[domain.Key, domain.Item]()}
}

// Get looks an item up by name, case-insensitively.
func (s *ItemStore) Get(name string) (domain.Item, bool) { return s.items.get(domain.KeyOf(name)) }

// Has reports whether an item with this name exists.
func (s *ItemStore) Has(name string) bool { return s.items.has(domain.KeyOf(name)) }

// Insert adds an item. Returns ErrExists if the name is taken.
func (s *ItemStore) Insert(i domain.Item) error { return s.items.insert(i.Key(), i) }

// Update replaces the item with the same name.
func (s *ItemStore) Update(i domain.Item) error { return s.items.update(i.Key(), i) }

// Rename changes an item's name in place, keeping its position and pax.
func (s *ItemStore) Rename(oldName, newName string) error {
	item, ok := s.Get(oldName)
	if !ok {
		return ErrMissing
	}
	item.Name = newName
	return s.items.rekey(domain.KeyOf(oldName), item.Key(), item)
}

// Delete removes the item with this name.
func (s *ItemStore) Delete(name string) error { return s.items.delete(domain.KeyOf(name)) }

// All returns every item in insertion order.
func (s *ItemStore) All() []domain.Item { return s.items.all() }

// Len returns the number of items.
func (s *ItemStore) Len() int { return s.items.len() }

// Search returns the items whose name contains keyword, case-insensitively.
func (s *ItemStore) Search(keyword string) []domain.Item {
	needle := string(domain.KeyOf(keyword))
	var out []domain.Item
	for _, i := range s.All() {
		if strings.Contains(string(i.Key()), needle) {
			out = append(out, i)
		}
	}
	return out
}

// ZeroPax returns the items that have run out.
func (s *ItemStore) ZeroPax() []domain.Item {
	var out []domain.Item
	for _, i := range s.All() {
		if i.Pax == 0 {
			out = append(out, i)
		}
	}
	return out
}

// PerformanceStore holds at most one rating per housekeeper.
type PerformanceStore struct {
	ratings *ordered[domain.Key, domain.Performance]
}

// NewPerformanceStore creates an empty performance store.
func NewPerformanceStore() *PerformanceStore {
	return &PerformanceStore{ratings: newOrdered[domain.Key, domain.Performance]()}
}

// Get returns the rating of a housekeeper.
func (s *PerformanceStore) Get(name string) (domain.Performance, bool) {
	return s.ratings.get(domain.KeyOf(name))
}

// Has reports whether the housekeeper already has a rating.
func (s *PerformanceStore) Has(name string) bool { return s.ratings.has(domain.KeyOf(name)) }

// Insert records a rating. Returns ErrExists if one is already recorded.
func (s *PerformanceStore) Insert(p domain.Performance) error {
	return s.ratings.insert(domain.KeyOf(p.Housekeeper), p)
}

// Update replaces a housekeeper's rating.
func (s *PerformanceStore) Update(p domain.Performance) error {
	return s.ratings.update(domain.KeyOf(p.Housekeeper), p)
}

// Delete removes a housekeeper's rating.
func (s *PerformanceStore) Delete(name string) error { return s.ratings.delete(domain.KeyOf(name)) }

// All returns every rating in insertion order.
func (s *PerformanceStore) All() []domain.Performance { return s.ratings.all() }

// Len returns the number of ratings.
func (s *PerformanceStore) Len() int { return s.ratings.len() }

// SatisfactionStore is an append-ordered list of guest scores.
type SatisfactionStore struct {
	scores list[domain.Satisfaction]
}

// NewSatisfactionStore creates an empty satisfaction store.
func NewSatisfactionStore() *SatisfactionStore { return &SatisfactionStore{} }

// Get returns the score at a zero-based index.
func (s *SatisfactionStore) Get(i int) (domain.Satisfaction, bool) { return s.scores.get(i) }

// Insert appends a score and returns its index.
func (s *SatisfactionStore) Insert(v domain.Satisfaction) int { return s.scores.insert(v) }

// Update replaces the score at index i.
func (s *SatisfactionStore) Update(i int, v domain.Satisfaction) error { return s.scores.update(i, v) }

// Delete removes the score at index i.
func (s *SatisfactionStore) Delete(i int) error { return s.scores.delete(i) }

// All returns every score in insertion order.
func (s *SatisfactionStore) All() []domain.Satisfaction { return s.scores.all() }

// Len returns the number of scores.
func (s *SatisfactionStore) Len() int { return s.scores.len() }

// Average returns the mean score, and false when there are none.
func (s *SatisfactionStore) Average() (float64, bool) {
	if s.scores.len() == 0 {
		return 0, false
	}
	total := 0
	for _, v := range s.scores.vals {
		total += v.Value
	}
	return float64(total) / float64(s.scores.len()), true
}

// EventStore is an append-ordered calendar.
type EventStore struct {
	events list[domain.Event]
}

// NewEventStore creates an empty event store.
func NewEventStore() *EventStore { return &EventStore{} }

// Get returns the event at a zero-based index.
func (s *EventStore) Get(i int) (domain.Event, bool) { return s.events.get(i) }

// Insert appends an event and returns its index.
func (s *EventStore) Insert(e domain.Event) int { return s.events.insert(e) }

// Update replaces the event at index i.
func (s *EventStore) Update(i int, e domain.Event) error { return s.events.update(i, e) }

// Delete removes the event at index i.
func (s *EventStore) Delete(i int) error { return s.events.delete(i) }

// All returns every event in insertion order.
func (s *EventStore) All() []domain.Event { return s.events.all() }

// Len returns the number of events.
func (s *EventStore) Len() int { return s.events.len() }
