package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/validate"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected command, failed scenario, replay mismatch, failed save
	ExitCommandError = 2 // Command error (bad flags, unreadable files, database not found)
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostic output; falls back to Writer
	Verbose   bool
}

// CLIResponse is one JSON document on the output stream.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // failure details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // error category, e.g. "NotFound"
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // field, bound or entity context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Result renders one successful command. Text mode prints the message and
// then each listing line indented by two spaces.
func (f *OutputFormatter) Result(res dispatch.Result) error {
	if f.Format == "json" {
		return f.Success(res)
	}

	fmt.Fprintln(f.Writer, res.Message)
	for _, line := range res.Lines {
		fmt.Fprintf(f.Writer, "  %s\n", line)
	}
	return nil
}

// Failure renders an error returned by the dispatcher.
func (f *OutputFormatter) Failure(err error) error {
	message, details := describeFailure(err)
	return f.Error(dispatch.ErrorCode(err), message, details)
}

// describeFailure splits err into a message and the structured fields that
// JSON clients can act on.
func describeFailure(err error) (string, map[string]interface{}) {
	if pe, ok := grammar.AsParseError(err); ok {
		details := map[string]interface{}{}
		if pe.Field != "" {
			details["field"] = pe.Field
		}
		if pe.Direction != "" {
			details["bound"] = pe.Bound
			details["direction"] = string(pe.Direction)
		}
		if pe.Suggestion != "" {
			details["suggestion"] = pe.Suggestion
		}
		return pe.Message, nilIfEmpty(details)
	}

	if ve, ok := validate.AsError(err); ok {
		details := map[string]interface{}{}
		if ve.Entity != "" {
			details["entity"] = string(ve.Entity)
		}
		if ve.Key != "" {
			details["key"] = ve.Key
		}
		if ve.From != "" || ve.To != "" {
			details["from"] = ve.From
			details["to"] = ve.To
		}
		return ve.Message, nilIfEmpty(details)
	}

	return err.Error(), nil
}

func nilIfEmpty(m map[string]interface{}) map[string]interface{} {
	if len(m) == 0 {
		return nil
	}
	return m
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
