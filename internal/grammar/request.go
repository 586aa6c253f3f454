package grammar

import (
	"time"

	"github.com/roach88/hotelite/internal/domain"
)

// Command identifies a command kind independent of its keyword spelling.
type Command string

const (
	CmdBye                 Command = "bye"
	CmdAddHousekeeper      Command = "add-housekeeper"
	CmdDeleteHousekeeper   Command = "delete-housekeeper"
	CmdViewHousekeepers    Command = "view-housekeepers"
	CmdSetAvailability     Command = "set-availability"
	CmdAvailableOn         Command = "available-on"
	CmdResetAvailability   Command = "reset-availability"
	CmdNewYear             Command = "new-year"
	CmdAddPerformance      Command = "add-performance"
	CmdViewPerformances    Command = "view-performances"
	CmdAssign              Command = "assign"
	CmdUnassign            Command = "unassign"
	CmdCheckIn             Command = "check-in"
	CmdCheckOut            Command = "check-out"
	CmdCheckRoom           Command = "check-room"
	CmdCheckLevel          Command = "check-level"
	CmdCheckCategory       Command = "check-category"
	CmdCheckAll            Command = "check-all"
	CmdAddItem             Command = "add-item"
	CmdUpdateItemPax       Command = "update-item-pax"
	CmdUpdateItemName      Command = "update-item-name"
	CmdDeleteItem          Command = "delete-item"
	CmdSearchItem          Command = "search-item"
	CmdViewItems           Command = "view-items"
	CmdViewZeroPax         Command = "view-zero-pax"
	CmdAddSatisfaction     Command = "add-satisfaction"
	CmdViewSatisfactions   Command = "view-satisfactions"
	CmdAverageSatisfaction Command = "average-satisfaction"
	CmdAddEvent            Command = "add-event"
	CmdListEvents          Command = "list-events"
	CmdDeleteEvent         Command = "delete-event"
)

// Request is a parsed, field-validated command.
type Request interface {
	Command() Command
}

type (
	Bye struct{}

	AddHousekeeper struct {
		Name string
		Age  int
	}

	DeleteHousekeeper struct{ Name string }

	ViewHousekeepers struct{}

	SetAvailability struct {
		Name string
		Days []domain.Day
	}

	AvailableOn struct{ Day domain.Day }

	ResetAvailability struct{}

	NewYear struct{}

	AddPerformance struct {
		Name   string
		Rating int
	}

	ViewPerformances struct{}

	Assign struct {
		Name   string
		RoomID int
	}

	Unassign struct{ RoomID int }

	CheckIn struct{ RoomID int }

	CheckOut struct{ RoomID int }

	CheckRoom struct{ RoomID int }

	CheckLevel struct{ Level int }

	CheckCategory struct{ Category domain.Category }

	CheckAll struct{}

	AddItem struct {
		Name string
		Pax  int
	}

	UpdateItemPax struct {
		Name string
		Pax  int
	}

	UpdateItemName struct {
		OldName string
		NewName string
	}

	DeleteItem struct{ Name string }

	SearchItem struct{ Keyword string }

	ViewItems struct{}

	ViewZeroPax struct{}

	AddSatisfaction struct {
		Customer string
		Value    int
	}

	ViewSatisfactions struct{}

	AverageSatisfaction struct{}

	AddEvent struct {
		Description string
		Date        time.Time
	}

	ListEvents struct{}

	// DeleteEvent addresses an event by its 1-based position in the list.
	DeleteEvent struct{ Index int }
)

func (Bye) Command() Command                 { return CmdBye }
func (AddHousekeeper) Command() Command      { return CmdAddHousekeeper }
func (DeleteHousekeeper) Command() Command   { return CmdDeleteHousekeeper }
func (ViewHousekeepers) Command() Command    { return CmdViewHousekeepers }
func (SetAvailability) Command() Command     { return CmdSetAvailability }
func (AvailableOn) Command() Command         { return CmdAvailableOn }
func (ResetAvailability) Command() Command   { return CmdResetAvailability }
func (NewYear) Command() Command             { return CmdNewYear }
func (AddPerformance) Command() Command      { return CmdAddPerformance }
func (ViewPerformances) Command() Command    { return CmdViewPerformances }
func (Assign) Command() Command              { return CmdAssign }
func (Unassign) Command() Command            { return CmdUnassign }
func (CheckIn) Command() Command             { return CmdCheckIn }
func (CheckOut) Command() Command            { return CmdCheckOut }
func (CheckRoom) Command() Command           { return CmdCheckRoom }
func (CheckLevel) Command() Command          { return CmdCheckLevel }
func (CheckCategory) Command() Command       { return CmdCheckCategory }
func (CheckAll) Command() Command            { return CmdCheckAll }
func (AddItem) Command() Command             { return CmdAddItem }
func (UpdateItemPax) Command() Command       { return CmdUpdateItemPax }
func (UpdateItemName) Command() Command      { return CmdUpdateItemName }
func (DeleteItem) Command() Command          { return CmdDeleteItem }
func (SearchItem) Command() Command          { return CmdSearchItem }
func (ViewItems) Command() Command           { return CmdViewItems }
func (ViewZeroPax) Command() Command         { return CmdViewZeroPax }
func (AddSatisfaction) Command() Command     { return CmdAddSatisfaction }
func (ViewSatisfactions) Command() Command   { return CmdViewSatisfactions }
func (AverageSatisfaction) Command() Command { return CmdAverageSatisfaction }
func (AddEvent) Command() Command            { return CmdAddEvent }
func (ListEvents) Command() Command          { return CmdListEvents }
func (DeleteEvent) Command() Command         { return CmdDeleteEvent }
