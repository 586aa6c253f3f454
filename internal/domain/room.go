package domain

import (
	"fmt"
	"strings"
)

// Category is the fixed room category.
type Category string

const (
	CategorySingle Category = "Single"
	CategoryDouble Category = "Double"
	CategoryTriple Category = "Triple"
	CategoryQueen  Category = "Queen"
	CategoryTwin   Category = "Twin"
	CategoryKing   Category = "King"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySingle,
	CategoryDouble,
	CategoryTriple,
	CategoryQueen,
	CategoryTwin,
	CategoryKing,
}

// ParseCategory matches s against the category tokens case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Occupancy is the room occupancy state.
type Occupancy string

const (
	Vacant   Occupancy = "Vacant"
	Occupied Occupancy = "Occupied"
)

// Room is a bookable room. Rooms are seeded, never created or deleted by commands.
type Room struct {
	ID        int       `json:"id"`
	Category  Category  `json:"category"`
	Level     int       `json:"level"`
	Occupancy Occupancy `json:"occupancy"`
}

// String renders the room as a single line.
func (r Room) String() string {
	return fmt.Sprintf("%d (%s, level %d, %s)", r.ID, r.Category, r.Level, r.Occupancy)
}
