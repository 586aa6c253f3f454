package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
)

// handler applies a validated request. Handlers only run after validation
// passed, so store errors here indicate a broken invariant.
type handler struct {
	mutates []entity.Kind
	apply   func(d *Dispatcher, req grammar.Request) (Result, error)
}

func handle[R grammar.Request](fn func(d *Dispatcher, r R) (Result, error), mutates ...entity.Kind) handler {
	return handler{
		mutates: mutates,
		apply: func(d *Dispatcher, req grammar.Request) (Result, error) {
			r, ok := req.(R)
			if !ok {
				return Result{}, fmt.Errorf("request %T does not match handler", req)
			}
			return fn(d, r)
		},
	}
}

func handlers() map[grammar.Command]handler {
	return map[grammar.Command]handler{
		grammar.CmdBye: handle(bye),

		grammar.CmdAddHousekeeper:    handle(addHousekeeper, entity.KindHousekeepers),
		grammar.CmdDeleteHousekeeper: handle(deleteHousekeeper, entity.KindHousekeepers),
		grammar.CmdViewHousekeepers:  handle(viewHousekeepers),
		grammar.CmdSetAvailability:   handle(setAvailability, entity.KindHousekeepers),
		grammar.CmdAvailableOn:       handle(availableOn),
		grammar.CmdResetAvailability: handle(resetAvailability, entity.KindHousekeepers),
		grammar.CmdNewYear:           handle(newYear, entity.KindHousekeepers),

		grammar.CmdAddPerformance:   handle(addPerformance, entity.KindPerformances),
		grammar.CmdViewPerformances: handle(viewPerformances),

		grammar.CmdAssign:   handle(assign, entity.KindAssignments, entity.KindHousekeepers),
		grammar.CmdUnassign: handle(unassign, entity.KindAssignments),

		grammar.CmdCheckIn:       handle(checkIn, entity.KindRooms),
		grammar.CmdCheckOut:      handle(checkOut, entity.KindRooms),
		grammar.CmdCheckRoom:     handle(checkRoom),
		grammar.CmdCheckLevel:    handle(checkLevel),
		grammar.CmdCheckCategory: handle(checkCategory),
		grammar.CmdCheckAll:      handle(checkAll),

		grammar.CmdAddItem:        handle(addItem, entity.KindItems),
		grammar.CmdUpdateItemPax:  handle(updateItemPax, entity.KindItems),
		grammar.CmdUpdateItemName: handle(updateItemName, entity.KindItems),
		grammar.CmdDeleteItem:     handle(deleteItem, entity.KindItems),
		grammar.CmdSearchItem:     handle(searchItem),
		grammar.CmdViewItems:      handle(viewItems),
		grammar.CmdViewZeroPax:    handle(viewZeroPax),

		grammar.CmdAddSatisfaction:     handle(addSatisfaction, entity.KindSatisfactions),
		grammar.CmdViewSatisfactions:   handle(viewSatisfactions),
		grammar.CmdAverageSatisfaction: handle(averageSatisfaction),

		grammar.CmdAddEvent:    handle(addEvent, entity.KindEvents),
		grammar.CmdListEvents:  handle(listEvents),
		grammar.CmdDeleteEvent: handle(deleteEvent, entity.KindEvents),
	}
}

func bye(_ *Dispatcher, _ grammar.Bye) (Result, error) {
	return Result{Kind: KindExit, Message: "Goodbye.", Exit: true}, nil
}

// Housekeepers.

func addHousekeeper(d *Dispatcher, r grammar.AddHousekeeper) (Result, error) {
	hk := domain.Housekeeper{Name: r.Name, Age: r.Age}
	if err := d.hotel.Housekeepers.Insert(hk); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    KindCreated,
		Message: fmt.Sprintf("Added housekeeper %s, age %d.", hk.Name, hk.Age),
		Payload: hk,
	}, nil
}

func deleteHousekeeper(d *Dispatcher, r grammar.DeleteHousekeeper) (Result, error) {
	hk, _ := d.hotel.Housekeepers.Get(r.Name)
	if err := d.hotel.Housekeepers.Delete(r.Name); err != nil {
		return Result{}, err
	}
	return Result{Kind: KindDeleted, Message: fmt.Sprintf("Removed housekeeper %s.", hk.Name), Payload: hk}, nil
}

func describeHousekeeper(hk domain.Housekeeper) string {
	days := "none"
	if len(hk.Availability) > 0 {
		parts := make([]string, len(hk.Availability))
		for i, day := range hk.Availability {
			parts[i] = string(day)
		}
		days = strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s, age %d, available: %s", hk.Name, hk.Age, days)
}

func viewHousekeepers(d *Dispatcher, _ grammar.ViewHousekeepers) (Result, error) {
	staff := d.hotel.Housekeepers.All()
	return listing("housekeeper", staff, describeHousekeeper), nil
}

func setAvailability(d *Dispatcher, r grammar.SetAvailability) (Result, error) {
	hk, _ := d.hotel.Housekeepers.Get(r.Name)
	hk = hk.WithDays(r.Days...)
	if err := d.hotel.Housekeepers.Update(hk); err != nil {
		return Result{}, err
	}
	return Result{Kind: KindUpdated, Message: "Updated " + describeHousekeeper(hk) + ".", Payload: hk}, nil
}

func availableOn(d *Dispatcher, r grammar.AvailableOn) (Result, error) {
	staff := d.hotel.Housekeepers.AvailableOn(r.Day)
	res := listing("housekeeper", staff, func(hk domain.Housekeeper) string { return hk.Name })
	if len(staff) > 0 {
		res.Message = fmt.Sprintf("%d housekeeper(s) available on %s.", len(staff), r.Day)
	} else {
		res.Message = fmt.Sprintf("No housekeepers available on %s.", r.Day)
	}
	return res, nil
}

func resetAvailability(d *Dispatcher, _ grammar.ResetAvailability) (Result, error) {
	d.hotel.Housekeepers.ResetAvailability()
	return Result{
		Kind:    KindUpdated,
		Message: fmt.Sprintf("New week: cleared availability for %d housekeeper(s).", d.hotel.Housekeepers.Len()),
	}, nil
}

func newYear(d *Dispatcher, _ grammar.NewYear) (Result, error) {
	d.hotel.Housekeepers.AgeAll(1)
	return Result{
		Kind:    KindUpdated,
		Message: fmt.Sprintf("New year: %d housekeeper(s) are a year older.", d.hotel.Housekeepers.Len()),
	}, nil
}

// Performances.

func addPerformance(d *Dispatcher, r grammar.AddPerformance) (Result, error) {
	hk, _ := d.hotel.Housekeepers.Get(r.Name)
	p := domain.Performance{Housekeeper: hk.Name, Rating: r.Rating}
	if err := d.hotel.Performances.Insert(p); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    KindCreated,
		Message: fmt.Sprintf("Recorded rating %d for %s.", p.Rating, p.Housekeeper),
		Payload: p,
	}, nil
}

func viewPerformances(d *Dispatcher, _ grammar.ViewPerformances) (Result, error) {
	return listing("performance", d.hotel.Performances.All(), func(p domain.Performance) string {
		return fmt.Sprintf("%s: %d", p.Housekeeper, p.Rating)
	}), nil
}

// Assignments.

func assign(d *Dispatcher, r grammar.Assign) (Result, error) {
	hk, _ := d.hotel.Housekeepers.Get(r.Name)
	a := domain.Assignment{Housekeeper: hk.Name, RoomID: r.RoomID}
	if err := d.hotel.Assignments.Insert(a); err != nil {
		return Result{}, err
	}
	today := domain.DayOf(d.clock.Now().Weekday())
	if err := d.hotel.Housekeepers.Update(hk.WithDays(today)); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    KindCreated,
		Message: fmt.Sprintf("Assigned %s to room %d.", a.Housekeeper, a.RoomID),
		Payload: a,
	}, nil
}

func unassign(d *Dispatcher, r grammar.Unassign) (Result, error) {
	a, _ := d.hotel.Assignments.Get(r.RoomID)
	if err := d.hotel.Assignments.Delete(r.RoomID); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    KindDeleted,
		Message: fmt.Sprintf("Room %d is no longer assigned to %s.", a.RoomID, a.Housekeeper),
		Payload: a,
	}, nil
}

// Rooms.

func setOccupancy(d *Dispatcher, id int, next domain.Occupancy, verb string) (Result, error) {
	room, _ := d.hotel.Rooms.Get(id)
	room.Occupancy = next
	if err := d.hotel.Rooms.Update(room); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    KindUpdated,
		Message: fmt.Sprintf("%s room %d; it is now %s.", verb, room.ID, room.Occupancy),
		Payload: d.status(room),
	}, nil
}

func checkIn(d *Dispatcher, r grammar.CheckIn) (Result, error) {
	return setOccupancy(d, r.RoomID, domain.Occupied, "Checked in to")
}

func checkOut(d *Dispatcher, r grammar.CheckOut) (Result, error) {
	return setOccupancy(d, r.RoomID, domain.Vacant, "Checked out of")
}

func (d *Dispatcher) status(room domain.Room) RoomStatus {
	return RoomStatus{Room: room, Housekeeper: d.hotel.HousekeeperName(room.ID)}
}

func describeRoom(s RoomStatus) string {
	hk := "unassigned"
	if s.Housekeeper != "" {
		hk = "housekeeper " + s.Housekeeper
	}
	return fmt.Sprintf("Room %s, %s", s.Room, hk)
}

func (d *Dispatcher) rooms(rooms []domain.Room) Result {
	statuses := make([]RoomStatus, len(rooms))
	for i, r := range rooms {
		statuses[i] = d.status(r)
	}
	return listing("room", statuses, describeRoom)
}

func checkRoom(d *Dispatcher, r grammar.CheckRoom) (Result, error) {
	room, _ := d.hotel.Rooms.Get(r.RoomID)
	s := d.status(room)
	return Result{Kind: KindInfo, Message: describeRoom(s) + ".", Payload: s}, nil
}

func checkLevel(d *Dispatcher, r grammar.CheckLevel) (Result, error) {
	return d.rooms(d.hotel.Rooms.OnLevel(r.Level)), nil
}

func checkCategory(d *Dispatcher, r grammar.CheckCategory) (Result, error) {
	return d.rooms(d.hotel.Rooms.InCategory(r.Category)), nil
}

func checkAll(d *Dispatcher, _ grammar.CheckAll) (Result, error) {
	return d.rooms(d.hotel.Rooms.All()), nil
}

// Items.

func describeItem(i domain.Item) string { return fmt.Sprintf("%s: %d", i.Name, i.Pax) }

func addItem(d *Dispatcher, r grammar.AddItem) (Result, error) {
	item := domain.Item{Name: r.Name, Pax: r.Pax}
	if err := d.hotel.Items.Insert(item); err != nil {
		return Result{}, err
	}
	return Result{Kind: KindCreated, Message: "Added item " + describeItem(item) + ".", Payload: item}, nil
}

func updateItemPax(d *Dispatcher, r grammar.UpdateItemPax) (Result, error) {
	item, _ := d.hotel.Items.Get(r.Name)
	item.Pax = r.Pax
	if err := d.hotel.Items.Update(item); err != nil {
		return Result{}, err
	}
	return Result{Kind: KindUpdated, Message: "Updated item " + describeItem(item) + ".", Payload: item}, nil
}

func updateItemName(d *Dispatcher, r grammar.UpdateItemName) (Result, error) {
	old, _ := d.hotel.Items.Get(r.OldName)
	if err := d.hotel.Items.Rename(r.OldName, r.NewName); err != nil {
		return Result{}, err
	}
	item, _ := d.hotel.Items.Get(r.NewName)
	return Result{
		Kind:    KindUpdated,
		Message: fmt.Sprintf("Renamed item %s to %s.", old.Name, item.Name),
		Payload: item,
	}, nil
}

func deleteItem(d *Dispatcher, r grammar.DeleteItem) (Result, error) {
	item, _ := d.hotel.Items.Get(r.Name)
	if err := d.hotel.Items.Delete(r.Name); err != nil {
		return Result{}, err
	}
	return Result{Kind: KindDeleted, Message: fmt.Sprintf("Deleted item %s.", item.Name), Payload: item}, nil
}

func searchItem(d *Dispatcher, r grammar.SearchItem) (Result, error) {
	return listing("item", d.hotel.Items.Search(r.Keyword), describeItem), nil
}

func viewItems(d *Dispatcher, _ grammar.ViewItems) (Result, error) {
	return listing("item", d.hotel.Items.All(), describeItem), nil
}

func viewZeroPax(d *Dispatcher, _ grammar.ViewZeroPax) (Result, error) {
	return listing("item", d.hotel.Items.ZeroPax(), func(i domain.Item) string { return i.Name }), nil
}

// Satisfaction.

func addSatisfaction(d *Dispatcher, r grammar.AddSatisfaction) (Result, error) {
	s := domain.Satisfaction{Customer: r.Customer, Value: r.Value}
	d.hotel.Satisfactions.Insert(s)
	return Result{
		Kind:    KindCreated,
		Message: fmt.Sprintf("Recorded satisfaction %d from %s.", s.Value, s.Customer),
		Payload: s,
	}, nil
}

func viewSatisfactions(d *Dispatcher, _ grammar.ViewSatisfactions) (Result, error) {
	return listing("satisfaction record", d.hotel.Satisfactions.All(), func(s domain.Satisfaction) string {
		return fmt.Sprintf("%s: %d", s.Customer, s.Value)
	}), nil
}

func averageSatisfaction(d *Dispatcher, _ grammar.AverageSatisfaction) (Result, error) {
	avg, ok := d.hotel.Satisfactions.Average()
	if !ok {
		return Result{Kind: KindInfo, Message: "No satisfaction records yet."}, nil
	}
	n := d.hotel.Satisfactions.Len()
	return Result{
		Kind:    KindInfo,
		Message: fmt.Sprintf("Average satisfaction is %s over %d record(s).", strconv.FormatFloat(avg, 'f', 2, 64), n),
		Payload: Average{Value: avg, Count: n},
	}, nil
}

// Events.

func addEvent(d *Dispatcher, r grammar.AddEvent) (Result, error) {
	e := domain.Event{Description: r.Description, Date: r.Date}
	i := d.hotel.Events.Insert(e)
	return Result{
		Kind:    KindCreated,
		Message: fmt.Sprintf("Added event %d: %s on %s.", i+1, e.Description, e.Date.Format(domain.DateLayout)),
		Payload: NumberedEvent{Index: i + 1, Event: e},
	}, nil
}

func describeEvent(e NumberedEvent) string {
	return fmt.Sprintf("%d. %s on %s", e.Index, e.Description, e.Date.Format(domain.DateLayout))
}

func listEvents(d *Dispatcher, _ grammar.ListEvents) (Result, error) {
	all := d.hotel.Events.All()
	numbered := make([]NumberedEvent, len(all))
	for i, e := range all {
		numbered[i] = NumberedEvent{Index: i + 1, Event: e}
	}
	return listing("event", numbered, describeEvent), nil
}

func deleteEvent(d *Dispatcher, r grammar.DeleteEvent) (Result, error) {
	e, _ := d.hotel.Events.Get(r.Index - 1)
	if err := d.hotel.Events.Delete(r.Index - 1); err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    KindDeleted,
		Message: fmt.Sprintf("Deleted event: %s on %s.", e.Description, e.Date.Format(domain.DateLayout)),
		Payload: e,
	}, nil
}

// listing renders rows as a listing result. noun is singular.
func listing[T any](noun string, rows []T, line func(T) string) Result {
	res := Result{Kind: KindListing, Payload: rows}
	if len(rows) == 0 {
		res.Payload = []T{}
		res.Message = fmt.Sprintf("No %ss found.", noun)
		return res
	}
	res.Lines = make([]string, len(rows))
	for i, r := range rows {
		res.Lines[i] = line(r)
	}
	res.Message = fmt.Sprintf("%d %s(s):", len(rows), noun)
	return res
}
