package grammar

import (
	"fmt"

	"github.com/roach88/hotelite/internal/domain"
)

// Delimiters used by the delimiter-split family.
const (
	FieldDelimiter = "/"
	EventDelimiter = "!!"
)

// Tags used by the tagged-field family.
var (
	tagName    = tag{label: "/Name:", field: "item name"}
	tagNewPax  = tag{label: "/New Pax:", field: "new pax"}
	tagOldName = tag{label: "/Old Item Name:", field: "old item name"}
	tagNewName = tag{label: "/New Item Name:", field: "new item name"}
)

type parseFunc func(rest string) (Request, error)

// Grammar parses the argument text of every command kind.
type Grammar struct {
	policy  Policy
	parsers map[Command]parseFunc
}

// New creates a grammar enforcing the given policy.
func New(policy Policy) *Grammar {
	g := &Grammar{policy: policy}
	g.parsers = map[Command]parseFunc{
		CmdBye:                 zeroArg(Bye{}),
		CmdAddHousekeeper:      g.addHousekeeper,
		CmdDeleteHousekeeper:   g.deleteHousekeeper,
		CmdViewHousekeepers:    zeroArg(ViewHousekeepers{}),
		CmdSetAvailability:     g.setAvailability,
		CmdAvailableOn:         g.availableOn,
		CmdResetAvailability:   zeroArg(ResetAvailability{}),
		CmdNewYear:             zeroArg(NewYear{}),
		CmdAddPerformance:      g.addPerformance,
		CmdViewPerformances:    zeroArg(ViewPerformances{}),
		CmdAssign:              g.assign,
		CmdUnassign:            roomCommand(func(id int) Request { return Unassign{RoomID: id} }),
		CmdCheckIn:             roomCommand(func(id int) Request { return CheckIn{RoomID: id} }),
		CmdCheckOut:            roomCommand(func(id int) Request { return CheckOut{RoomID: id} }),
		CmdCheckRoom:           roomCommand(func(id int) Request { return CheckRoom{RoomID: id} }),
		CmdCheckLevel:          g.checkLevel,
		CmdCheckCategory:       g.checkCategory,
		CmdCheckAll:            zeroArg(CheckAll{}),
		CmdAddItem:             g.addItem,
		CmdUpdateItemPax:       g.updateItemPax,
		CmdUpdateItemName:      g.updateItemName,
		CmdDeleteItem:          g.deleteItem,
		CmdSearchItem:          g.searchItem,
		CmdViewItems:           zeroArg(ViewItems{}),
		CmdViewZeroPax:         zeroArg(ViewZeroPax{}),
		CmdAddSatisfaction:     g.addSatisfaction,
		CmdViewSatisfactions:   zeroArg(ViewSatisfactions{}),
		CmdAverageSatisfaction: zeroArg(AverageSatisfaction{}),
		CmdAddEvent:            g.addEvent,
		CmdListEvents:          zeroArg(ListEvents{}),
		CmdDeleteEvent:         g.deleteEvent,
	}
	return g
}

// Policy returns the bounds this grammar enforces.
func (g *Grammar) Policy() Policy { return g.policy }

// Parse turns the text after a command's keyword into a request.
func (g *Grammar) Parse(cmd Command, rest string) (Request, error) {
	parse, ok := g.parsers[cmd]
	if !ok {
		return nil, fmt.Errorf("grammar: no parser for command %q", cmd)
	}
	return parse(rest)
}

// Commands lists every command kind the grammar can parse.
func (g *Grammar) Commands() []Command {
	out := make([]Command, 0, len(g.parsers))
	for c := range g.parsers {
		out = append(out, c)
	}
	return out
}

func zeroArg(req Request) parseFunc {
	return func(rest string) (Request, error) {
		if err := noArguments(rest); err != nil {
			return nil, err
		}
		return req, nil
	}
}

func roomCommand(build func(id int) Request) parseFunc {
	return func(rest string) (Request, error) {
		id, err := parseInt("room id", rest)
		if err != nil {
			return nil, err
		}
		return build(id), nil
	}
}

func (g *Grammar) addHousekeeper(rest string) (Request, error) {
	nameText, ageText, err := splitPair(rest, FieldDelimiter, "name", "age")
	if err != nil {
		return nil, err
	}
	name, err := housekeeperName(nameText)
	if err != nil {
		return nil, err
	}
	age, err := parseInRange("age", ageText, g.policy.Age)
	if err != nil {
		return nil, err
	}
	return AddHousekeeper{Name: name, Age: age}, nil
}

func (g *Grammar) deleteHousekeeper(rest string) (Request, error) {
	name, err := required("name", rest)
	if err != nil {
		return nil, err
	}
	return DeleteHousekeeper{Name: name}, nil
}

func (g *Grammar) setAvailability(rest string) (Request, error) {
	name, dayText, err := splitPair(rest, FieldDelimiter, "name", "days")
	if err != nil {
		return nil, err
	}
	days, err := parseDays(dayText)
	if err != nil {
		return nil, err
	}
	return SetAvailability{Name: name, Days: days}, nil
}

func (g *Grammar) availableOn(rest string) (Request, error) {
	text, err := required("day", rest)
	if err != nil {
		return nil, err
	}
	d, ok := domain.ParseDay(text)
	if !ok {
		return nil, unknownDay(text)
	}
	return AvailableOn{Day: d}, nil
}

func (g *Grammar) addPerformance(rest string) (Request, error) {
	name, ratingText, err := splitPair(rest, FieldDelimiter, "name", "rating")
	if err != nil {
		return nil, err
	}
	rating, err := parseInRange("rating", ratingText, RatingRange)
	if err != nil {
		return nil, err
	}
	return AddPerformance{Name: name, Rating: rating}, nil
}

func (g *Grammar) assign(rest string) (Request, error) {
	name, roomText, err := splitPair(rest, FieldDelimiter, "name", "room id")
	if err != nil {
		return nil, err
	}
	id, err := parseInt("room id", roomText)
	if err != nil {
		return nil, err
	}
	return Assign{Name: name, RoomID: id}, nil
}

func (g *Grammar) checkLevel(rest string) (Request, error) {
	level, err := parseInt("level", rest)
	if err != nil {
		return nil, err
	}
	return CheckLevel{Level: level}, nil
}

func (g *Grammar) checkCategory(rest string) (Request, error) {
	c, ok := domain.ParseCategory(rest)
	if !ok {
		return nil, unknownCategory(rest)
	}
	return CheckCategory{Category: c}, nil
}

func (g *Grammar) addItem(rest string) (Request, error) {
	name, paxText, err := splitPair(rest, FieldDelimiter, "item name", "pax")
	if err != nil {
		return nil, err
	}
	pax, err := parseAtLeast("pax", paxText, 0)
	if err != nil {
		return nil, err
	}
	return AddItem{Name: name, Pax: pax}, nil
}

func (g *Grammar) updateItemPax(rest string) (Request, error) {
	values, err := splitTagged(rest, tagName, tagNewPax)
	if err != nil {
		return nil, err
	}
	pax, err := parseAtLeast("pax", values[1], 0)
	if err != nil {
		return nil, err
	}
	return UpdateItemPax{Name: values[0], Pax: pax}, nil
}

func (g *Grammar) updateItemName(rest string) (Request, error) {
	values, err := splitTagged(rest, tagOldName, tagNewName)
	if err != nil {
		return nil, err
	}
	return UpdateItemName{OldName: values[0], NewName: values[1]}, nil
}

func (g *Grammar) deleteItem(rest string) (Request, error) {
	name, err := required("item name", rest)
	if err != nil {
		return nil, err
	}
	return DeleteItem{Name: name}, nil
}

func (g *Grammar) searchItem(rest string) (Request, error) {
	keyword, err := required("keyword", rest)
	if err != nil {
		return nil, err
	}
	return SearchItem{Keyword: keyword}, nil
}

func (g *Grammar) addSatisfaction(rest string) (Request, error) {
	customer, valueText, err := splitPair(rest, FieldDelimiter, "customer name", "satisfaction")
	if err != nil {
		return nil, err
	}
	value, err := parseInRange("satisfaction", valueText, g.policy.Satisfaction)
	if err != nil {
		return nil, err
	}
	return AddSatisfaction{Customer: customer, Value: value}, nil
}

func (g *Grammar) addEvent(rest string) (Request, error) {
	desc, dateText, err := splitPair(rest, EventDelimiter, "description", "date")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(dateText)
	if err != nil {
		return nil, err
	}
	return AddEvent{Description: desc, Date: date}, nil
}

func (g *Grammar) deleteEvent(rest string) (Request, error) {
	idx, err := parseAtLeast("event index", rest, 1)
	if err != nil {
		return nil, err
	}
	return DeleteEvent{Index: idx}, nil
}
