package grammar

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min" validate:"gte=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// RatingRange is the housekeeper performance scale. It is not configurable.
var RatingRange = Range{Min: 1, Max: 5}

// Policy holds the configurable numeric bounds the grammar enforces.
type Policy struct {
	Age          Range `yaml:"age"`
	Satisfaction Range `yaml:"satisfaction"`
}

// DefaultPolicy returns the current business bounds: age 21..60 and
// satisfaction 1..5.
func DefaultPolicy() Policy {
	return Policy{
		Age:          Range{Min: 21, Max: 60},
		Satisfaction: Range{Min: 1, Max: 5},
	}
}
