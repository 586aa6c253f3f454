package dispatch

import (
	"errors"
	"fmt"

	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/validate"
)

// PersistError reports a failed Save after a command was applied in memory.
// The mutation is not rolled back.
type PersistError struct {
	Command grammar.Command
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Command, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// IsPersistError reports whether err is, or wraps, a *PersistError.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}

// CodePersistFailed is the code reported for a *PersistError.
const CodePersistFailed = "PersistFailed"

// ErrorCode returns the category code of a failure from Execute, or
// "Internal" when err carries none.
func ErrorCode(err error) string {
	if pe, ok := grammar.AsParseError(err); ok {
		return string(pe.Code)
	}
	if ve, ok := validate.AsError(err); ok {
		return string(ve.Code)
	}
	if IsPersistError(err) {
		return CodePersistFailed
	}
	return "Internal"
}
