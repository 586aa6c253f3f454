package entity

import "github.com/roach88/hotelite/internal/domain"

// seedLayout gives the categories of rooms 1..4 on each level.
var seedLayout = map[int][4]domain.Category{
	1: {domain.CategorySingle, domain.CategorySingle, domain.CategoryDouble, domain.CategoryDouble},
	2: {domain.CategorySingle, domain.CategoryDouble, domain.CategoryTwin, domain.CategoryTwin},
	3: {domain.CategoryDouble, domain.CategoryTriple, domain.CategoryTwin, domain.CategoryQueen},
	4: {domain.CategoryTriple, domain.CategoryTriple, domain.CategoryQueen, domain.CategoryQueen},
	5: {domain.CategoryQueen, domain.CategoryKing, domain.CategoryKing, domain.CategoryKing},
}

// SeedLevels is the number of levels in the seeded hotel.
const SeedLevels = 5

// SeedRooms returns the fixed room set: levels 1..5, rooms level*100+1..4,
// all vacant.
func SeedRooms() []domain.Room {
	rooms := make([]domain.Room, 0, SeedLevels*4)
	for level := 1; level <= SeedLevels; level++ {
		for i, c := range seedLayout[level] {
			rooms = append(rooms, domain.Room{
				ID:        level*100 + i + 1,
				Category:  c,
				Level:     level,
				Occupancy: domain.Vacant,
			})
		}
	}
	return rooms
}
