package validate

import (
	"errors"
	"fmt"
)

// Code categorizes validation errors.
type Code string

const (
	// CodeNotFound indicates a referenced entity does not exist.
	CodeNotFound Code = "NotFound"

	// CodeDuplicateKey indicates a created entity already exists under its natural key.
	CodeDuplicateKey Code = "DuplicateKey"

	// CodeInvalidStateTransition indicates the entity is not in the state the operation requires.
	CodeInvalidStateTransition Code = "InvalidStateTransition"

	// CodeStillReferenced indicates a deletion blocked by records that point at the entity.
	CodeStillReferenced Code = "StillReferenced"

	// CodeAgeLimitReached indicates a new year would push an age past the accepted maximum.
	CodeAgeLimitReached Code = "AgeLimitReached"
)

// EntityType names the kind of entity an error is about.
type EntityType string

const (
	EntityRoom        EntityType = "room"
	EntityLevel       EntityType = "level"
	EntityHousekeeper EntityType = "housekeeper"
	EntityAssignment  EntityType = "assignment"
	EntityItem        EntityType = "item"
	EntityPerformance EntityType = "performance"
	EntityEvent       EntityType = "event"
)

// Error is a rejected request. The request parsed, but the hotel's current
// contents do not allow it.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Entity and Key identify the entity the rule tripped on.
	Entity EntityType
	Key    string

	// From and To are set for CodeInvalidStateTransition.
	From string
	To   string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError unwraps err to a *Error.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HasCode reports whether err is a validation Error with the given code.
func HasCode(err error, code Code) bool {
	ve, ok := AsError(err)
	return ok && ve.Code == code
}

// NotFound creates the error for a missing referenced entity.
func NotFound(entity EntityType, key string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Entity:  entity,
		Key:     key,
		Message: fmt.Sprintf("%s %q does not exist", entity, key),
	}
}

// DuplicateKey creates the error for an entity that already exists.
func DuplicateKey(entity EntityType, key string) *Error {
	return &Error{
		Code:    CodeDuplicateKey,
		Entity:  entity,
		Key:     key,
		Message: fmt.Sprintf("%s %q already exists", entity, key),
	}
}

// InvalidTransition creates the error for a disallowed state change.
func InvalidTransition(entity EntityType, key, from, to, reason string) *Error {
	return &Error{
		Code:    CodeInvalidStateTransition,
		Entity:  entity,
		Key:     key,
		From:    from,
		To:      to,
		Message: fmt.Sprintf("%s %s cannot go from %s to %s: %s", entity, key, from, to, reason),
	}
}

// StillReferenced creates the error for a deletion blocked by references.
func StillReferenced(entity EntityType, key string, by EntityType, count int) *Error {
	return &Error{
		Code:    CodeStillReferenced,
		Entity:  entity,
		Key:     key,
		Message: fmt.Sprintf("%s %q is still referenced by %d %s record(s)", entity, key, count, by),
	}
}

// AgeLimitReached creates the error for a new year that would exceed max.
func AgeLimitReached(name string, age, max int) *Error {
	return &Error{
		Code:    CodeAgeLimitReached,
		Entity:  EntityHousekeeper,
		Key:     name,
		Message: fmt.Sprintf("housekeeper %q is %d; a new year would exceed the maximum age %d", name, age, max),
	}
}
