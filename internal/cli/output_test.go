package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/validate"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error("NotFound", `room "999" does not exist`, map[string]string{"entity": "room"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NotFound", resp.Error.Code)
	assert.Equal(t, `room "999" does not exist`, resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("DuplicateKey", "item \"Towel\" already exists", map[string]string{"key": "Towel"}))
	assert.Equal(t, "Error [DuplicateKey]: item \"Towel\" already exists\n", buf.String())

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Error("DuplicateKey", "dup", map[string]string{"key": "Towel"}))
	assert.Contains(t, buf.String(), "Details: map[key:Towel]")
}

func TestOutputFormatter_TextResult(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Result(dispatch.Result{
		Kind:    dispatch.KindListing,
		Message: "2 item(s):",
		Lines:   []string{"Towel: 3", "Soap: 0"},
	}))
	assert.Equal(t, "2 item(s):\n  Towel: 3\n  Soap: 0\n", buf.String())
}

func TestOutputFormatter_JSONResult(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Result(dispatch.Result{
		Command: grammar.CmdAverageSatisfaction,
		Kind:    dispatch.KindInfo,
		Message: "Average satisfaction 4.50 over 2 record(s).",
		Lines:   []string{"not serialized"},
		Payload: dispatch.Average{Value: 4.5, Count: 2},
	}))

	assert.NotContains(t, buf.String(), "not serialized")
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Command string           `json:"command"`
			Payload dispatch.Average `json:"payload"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "average-satisfaction", resp.Data.Command)
	assert.Equal(t, 2, resp.Data.Payload.Count)
}

func TestDescribeFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
		details map[string]interface{}
	}{
		{
			name:    "unknown command with suggestion",
			err:     grammar.NewUnknownCommand("chek all", "check all"),
			code:    "UnknownCommand",
			message: `unknown command "chek all"; did you mean "check all"?`,
			details: map[string]interface{}{"suggestion": "check all"},
		},
		{
			name:    "not found",
			err:     fmt.Errorf("wrapped: %w", validate.NotFound(validate.EntityRoom, "999")),
			code:    "NotFound",
			message: `room "999" does not exist`,
			details: map[string]interface{}{"entity": "room", "key": "999"},
		},
		{
			name:    "transition",
			err:     validate.InvalidTransition(validate.EntityRoom, "301", "Occupied", "Occupied", "already occupied"),
			code:    "InvalidStateTransition",
			message: "room 301 cannot go from Occupied to Occupied: already occupied",
			details: map[string]interface{}{"entity": "room", "key": "301", "from": "Occupied", "to": "Occupied"},
		},
		{
			name:    "persist",
			err:     &dispatch.PersistError{Command: grammar.CmdAddItem, Err: errors.New("disk full")},
			code:    "PersistFailed",
			message: "persist add-item: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, details := describeFailure(tt.err)
			assert.Equal(t, tt.message, message)
			if tt.details == nil {
				assert.Nil(t, details)
			} else {
				assert.Equal(t, tt.details, details)
			}

			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf}
			require.NoError(t, formatter.Failure(tt.err))
			assert.Equal(t, fmt.Sprintf("Error [%s]: %s\n", tt.code, tt.message), buf.String())
		})
	}
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitSuccess, 0)
	assert.Equal(t, ExitFailure, 1)
	assert.Equal(t, ExitCommandError, 2)

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "database not found", errors.New("stat")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, "database not found: stat", WrapExitError(ExitCommandError, "database not found", errors.New("stat")).Error())
}

func TestVerboseLog(t *testing.T) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag}

	formatter.VerboseLog("hidden %d", 1)
	assert.Empty(t, diag.String())

	formatter.Verbose = true
	formatter.VerboseLog("checking %s", "a.txt")
	assert.Equal(t, "checking a.txt\n", diag.String())
	assert.Empty(t, out.String(), "diagnostics never reach the JSON stream")

	assert.Same(t, out, (&OutputFormatter{Writer: out}).GetErrWriter())
}
