package grammar

import (
	"errors"
	"fmt"
)

// Code categorizes parse errors.
type Code string

const (
	// CodeUnknownCommand indicates no keyword matched the input.
	CodeUnknownCommand Code = "UnknownCommand"

	// CodeMissingDelimiter indicates a required delimiter or tag is absent.
	CodeMissingDelimiter Code = "MissingDelimiter"

	// CodeAmbiguousDelimiter indicates a delimiter or tag occurs more than once.
	CodeAmbiguousDelimiter Code = "AmbiguousDelimiter"

	// CodeEmptyField indicates a field is blank after trimming.
	CodeEmptyField Code = "EmptyField"

	// CodeInvalidNumber indicates a field is not an integer.
	CodeInvalidNumber Code = "InvalidNumber"

	// CodeOutOfRange indicates a number outside its accepted bounds.
	CodeOutOfRange Code = "OutOfRange"

	// CodeUnknownCategory indicates an unrecognized room category.
	CodeUnknownCategory Code = "UnknownCategory"

	// CodeUnexpectedArgument indicates trailing text after a zero-argument keyword.
	CodeUnexpectedArgument Code = "UnexpectedArgument"

	// CodeInvalidName indicates a housekeeper name with characters other than letters and spaces.
	CodeInvalidName Code = "InvalidName"

	// CodeInvalidDate indicates a date not in YYYY-MM-DD form.
	CodeInvalidDate Code = "InvalidDate"

	// CodeUnknownDay indicates an unrecognized weekday token.
	CodeUnknownDay Code = "UnknownDay"
)

// Direction tells which bound an OutOfRange value crossed.
type Direction string

const (
	TooLow  Direction = "too low"
	TooHigh Direction = "too high"
)

// ParseError is a failure to turn input text into a request.
type ParseError struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Field names the offending field, when there is one.
	Field string

	// Bound and Direction are set for CodeOutOfRange.
	Bound     int
	Direction Direction

	// Suggestion is a close keyword for CodeUnknownCommand, or "".
	Suggestion string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsParseError unwraps err to a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// HasCode reports whether err is a ParseError with the given code.
func HasCode(err error, code Code) bool {
	pe, ok := AsParseError(err)
	return ok && pe.Code == code
}

// NewUnknownCommand creates the error for input no keyword matches.
func NewUnknownCommand(input, suggestion string) *ParseError {
	msg := fmt.Sprintf("unknown command %q", input)
	if suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", suggestion)
	}
	return &ParseError{Code: CodeUnknownCommand, Message: msg, Suggestion: suggestion}
}

func missingDelimiter(delim, left, right string) *ParseError {
	return &ParseError{
		Code:    CodeMissingDelimiter,
		Message: fmt.Sprintf("expected %q between %s and %s", delim, left, right),
	}
}

func ambiguousDelimiter(delim string) *ParseError {
	return &ParseError{
		Code:    CodeAmbiguousDelimiter,
		Message: fmt.Sprintf("%q must appear exactly once", delim),
	}
}

func emptyField(field string) *ParseError {
	return &ParseError{
		Code:    CodeEmptyField,
		Message: fmt.Sprintf("%s must not be empty", field),
		Field:   field,
	}
}

func invalidNumber(field, text string) *ParseError {
	return &ParseError{
		Code:    CodeInvalidNumber,
		Message: fmt.Sprintf("%s must be a whole number, got %q", field, text),
		Field:   field,
	}
}

func outOfRange(field string, value, bound int, dir Direction) *ParseError {
	rel := "at least"
	if dir == TooHigh {
		rel = "at most"
	}
	return &ParseError{
		Code:      CodeOutOfRange,
		Message:   fmt.Sprintf("%s %d is %s: must be %s %d", field, value, dir, rel, bound),
		Field:     field,
		Bound:     bound,
		Direction: dir,
	}
}

func unknownCategory(text string) *ParseError {
	return &ParseError{
		Code:    CodeUnknownCategory,
		Message: fmt.Sprintf("unknown room category %q", text),
		Field:   "category",
	}
}

func unexpectedArgument(text string) *ParseError {
	return &ParseError{
		Code:    CodeUnexpectedArgument,
		Message: fmt.Sprintf("this command takes no arguments, got %q", truncate(text, 40)),
	}
}

func invalidName(name string) *ParseError {
	return &ParseError{
		Code:    CodeInvalidName,
		Message: fmt.Sprintf("name %q may contain only letters and spaces", name),
		Field:   "name",
	}
}

func invalidDate(text string) *ParseError {
	return &ParseError{
		Code:    CodeInvalidDate,
		Message: fmt.Sprintf("date %q must be in YYYY-MM-DD form", text),
		Field:   "date",
	}
}

func unknownDay(text string) *ParseError {
	return &ParseError{
		Code:    CodeUnknownDay,
		Message: fmt.Sprintf("unknown day %q", text),
		Field:   "day",
	}
}
