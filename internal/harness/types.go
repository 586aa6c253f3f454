package harness

import (
	"github.com/roach88/hotelite/internal/dispatch"
)

// Step outcome statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Entry is one executed command line in a transcript.
type Entry struct {
	Step    int      `json:"step"`
	Input   string   `json:"input"`
	Status  string   `json:"status"`
	Command string   `json:"command,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Lines   []string `json:"lines,omitempty"`
}

// NewEntry records the outcome of executing input.
func NewEntry(step int, input string, res dispatch.Result, err error) Entry {
	e := Entry{Step: step, Input: input}
	if err != nil {
		e.Status = StatusError
		e.Code = dispatch.ErrorCode(err)
		e.Message = err.Error()
		// A persist failure still applied the command.
		if dispatch.IsPersistError(err) {
			e.Command = string(res.Command)
		}
		return e
	}
	e.Status = StatusOK
	e.Command = string(res.Command)
	e.Kind = string(res.Kind)
	e.Message = res.Message
	e.Lines = res.Lines
	return e
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Transcript lists every executed step in order.
	Transcript []Entry `json:"transcript"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Exited is set when a bye step ended the scenario early.
	Exited bool `json:"exited,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []Entry{},
		Errors:     []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddEntry appends a step outcome to the transcript.
func (r *Result) AddEntry(e Entry) {
	r.Transcript = append(r.Transcript, e)
}
