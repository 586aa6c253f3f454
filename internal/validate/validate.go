// Package validate decides whether a parsed request may be applied to the
// hotel's current contents.
//
// Checks run in stage order and the first failure wins:
//
//  1. existence:  referenced entities must exist (NotFound)
//  2. uniqueness: created entities must not exist yet (DuplicateKey)
//  3. state:      the entity must be in the required state
//     (InvalidStateTransition, StillReferenced, AgeLimitReached)
//
// Validation only reads the stores. The dispatcher applies a mutation only
// after Validate returns nil, so a rejected command never changes anything.
package validate

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/grammar"
)

// Stage orders checks. Lower stages run first.
type Stage int

const (
	StageExistence Stage = iota + 1
	StageUniqueness
	StageState
)

// Check is one rule bound to a request.
type Check struct {
	Stage Stage
	Name  string
	Run   func(h *entity.Hotel) error
}

// Validator evaluates the rules for each request kind.
type Validator struct {
	policy grammar.Policy
}

// New creates a validator. The policy supplies the age bound new-year checks against.
func New(policy grammar.Policy) *Validator {
	return &Validator{policy: policy}
}

// Validate runs every check for req in stage order and returns the first failure.
func (v *Validator) Validate(h *entity.Hotel, req grammar.Request) error {
	checks := v.Checks(req)
	slices.SortStableFunc(checks, func(a, b Check) int { return cmp.Compare(a.Stage, b.Stage) })
	for _, c := range checks {
		if err := c.Run(h); err != nil {
			return err
		}
	}
	return nil
}

// Checks returns the rules that apply to req, in declaration order.
// Requests with no cross-entity rules return nil.
func (v *Validator) Checks(req grammar.Request) []Check {
	switch r := req.(type) {
	case grammar.AddHousekeeper:
		return []Check{housekeeperIsNew(r.Name)}
	case grammar.DeleteHousekeeper:
		return []Check{housekeeperExists(r.Name), housekeeperUnreferenced(r.Name)}
	case grammar.SetAvailability:
		return []Check{housekeeperExists(r.Name)}
	case grammar.NewYear:
		return []Check{v.agesBelowLimit()}
	case grammar.AddPerformance:
		return []Check{housekeeperExists(r.Name), performanceIsNew(r.Name)}
	case grammar.Assign:
		return []Check{housekeeperExists(r.Name), roomExists(r.RoomID), roomUnassigned(r.RoomID)}
	case grammar.Unassign:
		return []Check{roomExists(r.RoomID), roomAssigned(r.RoomID)}
	case grammar.CheckIn:
		return []Check{roomExists(r.RoomID), roomIn(r.RoomID, domain.Vacant, domain.Occupied)}
	case grammar.CheckOut:
		return []Check{roomExists(r.RoomID), roomIn(r.RoomID, domain.Occupied, domain.Vacant)}
	case grammar.CheckRoom:
		return []Check{roomExists(r.RoomID)}
	case grammar.CheckLevel:
		return []Check{levelExists(r.Level)}
	case grammar.AddItem:
		return []Check{itemIsNew(r.Name)}
	case grammar.UpdateItemPax:
		return []Check{itemExists(r.Name)}
	case grammar.UpdateItemName:
		return []Check{itemExists(r.OldName), itemRenameFree(r.OldName, r.NewName)}
	case grammar.DeleteItem:
		return []Check{itemExists(r.Name)}
	case grammar.DeleteEvent:
		return []Check{eventExists(r.Index)}
	}
	return nil
}

func housekeeperExists(name string) Check {
	return Check{Stage: StageExistence, Name: "housekeeper-exists", Run: func(h *entity.Hotel) error {
		if !h.Housekeepers.Has(name) {
			return NotFound(EntityHousekeeper, name)
		}
		return nil
	}}
}

func housekeeperIsNew(name string) Check {
	return Check{Stage: StageUniqueness, Name: "housekeeper-unique", Run: func(h *entity.Hotel) error {
		if existing, ok := h.Housekeepers.Get(name); ok {
			return DuplicateKey(EntityHousekeeper, existing.Name)
		}
		return nil
	}}
}

func housekeeperUnreferenced(name string) Check {
	return Check{Stage: StageState, Name: "housekeeper-unreferenced", Run: func(h *entity.Hotel) error {
		if held := h.Assignments.Of(name); len(held) > 0 {
			return StillReferenced(EntityHousekeeper, name, EntityAssignment, len(held))
		}
		if h.Performances.Has(name) {
			return StillReferenced(EntityHousekeeper, name, EntityPerformance, 1)
		}
		return nil
	}}
}

func (v *Validator) agesBelowLimit() Check {
	max := v.policy.Age.Max
	return Check{Stage: StageState, Name: "ages-below-limit", Run: func(h *entity.Hotel) error {
		for _, hk := range h.Housekeepers.All() {
			if hk.Age+1 > max {
				return AgeLimitReached(hk.Name, hk.Age, max)
			}
		}
		return nil
	}}
}

func performanceIsNew(name string) Check {
	return Check{Stage: StageUniqueness, Name: "performance-unique", Run: func(h *entity.Hotel) error {
		if h.Performances.Has(name) {
			return DuplicateKey(EntityPerformance, name)
		}
		return nil
	}}
}

func roomExists(id int) Check {
	return Check{Stage: StageExistence, Name: "room-exists", Run: func(h *entity.Hotel) error {
		if _, ok := h.Rooms.Get(id); !ok {
			return NotFound(EntityRoom, strconv.Itoa(id))
		}
		return nil
	}}
}

func roomIn(id int, want, next domain.Occupancy) Check {
	return Check{Stage: StageState, Name: "room-occupancy", Run: func(h *entity.Hotel) error {
		room, _ := h.Rooms.Get(id)
		if room.Occupancy != want {
			return InvalidTransition(EntityRoom, strconv.Itoa(id), string(room.Occupancy), string(next),
				"room is already "+string(room.Occupancy))
		}
		return nil
	}}
}

func roomUnassigned(id int) Check {
	return Check{Stage: StageState, Name: "room-unassigned", Run: func(h *entity.Hotel) error {
		if a, ok := h.Assignments.Get(id); ok {
			return InvalidTransition(EntityAssignment, strconv.Itoa(id), "assigned", "assigned",
				"room is held by "+a.Housekeeper+"; unassign it first")
		}
		return nil
	}}
}

func roomAssigned(id int) Check {
	return Check{Stage: StageState, Name: "room-assigned", Run: func(h *entity.Hotel) error {
		if _, ok := h.Assignments.Get(id); !ok {
			return InvalidTransition(EntityAssignment, strconv.Itoa(id), "unassigned", "unassigned",
				"room has no housekeeper")
		}
		return nil
	}}
}

func levelExists(level int) Check {
	return Check{Stage: StageExistence, Name: "level-exists", Run: func(h *entity.Hotel) error {
		if len(h.Rooms.OnLevel(level)) == 0 {
			return NotFound(EntityLevel, strconv.Itoa(level))
		}
		return nil
	}}
}

func itemExists(name string) Check {
	return Check{Stage: StageExistence, Name: "item-exists", Run: func(h *entity.Hotel) error {
		if !h.Items.Has(name) {
			return NotFound(EntityItem, name)
		}
		return nil
	}}
}

func itemIsNew(name string) Check {
	return Check{Stage: StageUniqueness, Name: "item-unique", Run: func(h *entity.Hotel) error {
		if existing, ok := h.Items.Get(name); ok {
			return DuplicateKey(EntityItem, existing.Name)
		}
		return nil
	}}
}

// itemRenameFree allows a rename that only changes case.
func itemRenameFree(oldName, newName string) Check {
	return Check{Stage: StageUniqueness, Name: "item-rename-unique", Run: func(h *entity.Hotel) error {
		if domain.KeyOf(oldName) == domain.KeyOf(newName) {
			return nil
		}
		if existing, ok := h.Items.Get(newName); ok {
			return DuplicateKey(EntityItem, existing.Name)
		}
		return nil
	}}
}

func eventExists(index int) Check {
	return Check{Stage: StageExistence, Name: "event-exists", Run: func(h *entity.Hotel) error {
		if index < 1 || index > h.Events.Len() {
			return NotFound(EntityEvent, strconv.Itoa(index))
		}
		return nil
	}}
}
