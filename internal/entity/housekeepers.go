package entity

import "github.com/roach88/hotelite/internal/domain"

// HousekeeperStore holds housekeeper profiles keyed by folded name.
type HousekeeperStore struct {
	staff *ordered[domain.Key, domain.Housekeeper]
}

// NewHousekeeperStore creates an empty housekeeper store.
func NewHousekeeperStore() *HousekeeperStore {
	return &HousekeeperStore{staff: newOrdered[domain.Key, domain.Housekeeper]()}
}

// Get looks a housekeeper up by name, case-insensitively.
func (s *HousekeeperStore) Get(name string) (domain.Housekeeper, bool) {
	return s.staff.get(domain.KeyOf(name))
}

// Has reports whether a housekeeper with this name exists.
func (s *HousekeeperStore) Has(name string) bool { return s.staff.has(domain.KeyOf(name)) }

// Insert adds a profile. Returns ErrExists if the name is taken.
func (s *HousekeeperStore) Insert(h domain.Housekeeper) error { return s.staff.insert(h.Key(), h) }

// Update replaces the profile with the same name.
func (s *HousekeeperStore) Update(h domain.Housekeeper) error { return s.staff.update(h.Key(), h) }

// Delete removes the profile with this name.
func (s *HousekeeperStore) Delete(name string) error { return s.staff.delete(domain.KeyOf(name)) }

// All returns every profile in insertion order.
func (s *HousekeeperStore) All() []domain.Housekeeper { return s.staff.all() }

// Len returns the number of profiles.
func (s *HousekeeperStore) Len() int { return s.staff.len() }

// AvailableOn returns the housekeepers whose availability contains d.
func (s *HousekeeperStore) AvailableOn(d domain.Day) []domain.Housekeeper {
	var out []domain.Housekeeper
	for _, h := range s.All() {
		if h.AvailableOn(d) {
			out = append(out, h)
		}
	}
	return out
}

// ResetAvailability empties every availability set.
func (s *HousekeeperStore) ResetAvailability() {
	for _, h := range s.All() {
		h.Availability = nil
		_ = s.Update(h)
	}
}

// AgeAll adds years to every age.
func (s *HousekeeperStore) AgeAll(years int) {
	for _, h := range s.All() {
		h.Age += years
		_ = s.Update(h)
	}
}
