package domain

import "time"

// Housekeeper is a housekeeping staff profile.
// Availability is kept in Week order without duplicates.
type Housekeeper struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Availability []Day  `json:"availability"`
}

// Key returns the natural key of the housekeeper.
func (h Housekeeper) Key() Key { return KeyOf(h.Name) }

// AvailableOn reports whether d is in the availability set.
func (h Housekeeper) AvailableOn(d Day) bool {
	for _, a := range h.Availability {
		if a == d {
			return true
		}
	}
	return false
}

// WithDays returns a copy of h whose availability also contains days.
func (h Housekeeper) WithDays(days ...Day) Housekeeper {
	set := make(map[Day]bool, len(h.Availability)+len(days))
	for _, d := range h.Availability {
		set[d] = true
	}
	for _, d := range days {
		set[d] = true
	}
	out := h
	out.Availability = make([]Day, 0, len(set))
	for _, d := range Week {
		if set[d] {
			out.Availability = append(out.Availability, d)
		}
	}
	return out
}

// Assignment links one housekeeper to one room.
type Assignment struct {
	Housekeeper string `json:"housekeeper"`
	RoomID      int    `json:"room_id"`
}

// Item is an inventory line.
type Item struct {
	Name string `json:"name"`
	Pax  int    `json:"pax"`
}

// Key returns the natural key of the item.
func (i Item) Key() Key { return KeyOf(i.Name) }

// Performance is a housekeeper rating, 1..5.
type Performance struct {
	Housekeeper string `json:"housekeeper"`
	Rating      int    `json:"rating"`
}

// Satisfaction is a guest satisfaction score.
type Satisfaction struct {
	Customer string `json:"customer"`
	Value    int    `json:"value"`
}

// DateLayout is the calendar date format for events.
const DateLayout = "2006-01-02"

// Event is a calendar entry.
type Event struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}
