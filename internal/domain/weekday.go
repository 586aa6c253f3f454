package domain

import (
	"strings"
	"time"
)

// Day is a weekly availability token.
type Day string

const (
	Monday    Day = "mon"
	Tuesday   Day = "tue"
	Wednesday Day = "wed"
	Thursday  Day = "thu"
	Friday    Day = "fri"
	Saturday  Day = "sat"
	Sunday    Day = "sun"
)

// Week lists the days in ISO order, Monday first.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayAliases = map[string]Day{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseDay accepts short names, full names and ISO numbers 1..7.
func ParseDay(s string) (Day, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '1' && s[0] <= '7' {
		return Week[s[0]-'1'], true
	}
	for _, d := range Week {
		if s == string(d) {
			return d, true
		}
	}
	d, ok := dayAliases[s]
	return d, ok
}

// DayOf maps a time.Weekday to its token.
func DayOf(w time.Weekday) Day {
	// time.Sunday is 0; Week starts on Monday.
	return Week[(int(w)+6)%7]
}

// Index returns the ISO position of d (Monday = 0), or -1 for an unknown token.
func (d Day) Index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}
