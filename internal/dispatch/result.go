package dispatch

import (
	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
)

// Kind classifies a successful result.
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
	KindListing Kind = "listing"
	KindInfo    Kind = "info"
	KindExit    Kind = "exit"
)

// Result is the outcome of one successful command.
type Result struct {
	Command grammar.Command `json:"command"`
	Kind    Kind            `json:"kind"`
	Message string          `json:"message"`

	// Lines is the text rendering of Payload, one entry per line.
	Lines []string `json:"-"`

	// Payload carries the structured data behind a listing or lookup.
	Payload any `json:"payload,omitempty"`

	// Changed lists the stores the command mutated.
	Changed []entity.Kind `json:"changed,omitempty"`

	// Exit is set by bye.
	Exit bool `json:"exit,omitempty"`
}

// RoomStatus is the payload of room lookups.
type RoomStatus struct {
	domain.Room
	Housekeeper string `json:"housekeeper,omitempty"`
}

// Average is the payload of average satisfaction.
type Average struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// NumberedEvent is an event with its 1-based position.
type NumberedEvent struct {
	Index int `json:"index"`
	domain.Event
}
