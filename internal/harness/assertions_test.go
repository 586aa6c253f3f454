package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/store"
)

func sampleTranscript() []Entry {
	return []Entry{
		{Step: 1, Input: "add housekeeper Susan / 23", Status: StatusOK, Command: "add-housekeeper"},
		{Step: 2, Input: "assign Tom / 301", Status: StatusError, Code: "NotFound"},
		{Step: 3, Input: "assign Susan / 301", Status: StatusOK, Command: "assign"},
		{Step: 4, Input: "check in 301", Status: StatusOK, Command: "check-in"},
		{Step: 5, Input: "check out 301", Status: StatusOK, Command: "check-out"},
		{Step: 6, Input: "check in 301", Status: StatusOK, Command: "check-in"},
	}
}

// seededStore returns a store holding the seed rooms, one housekeeper and
// one assignment.
func seededStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	h, err := st.Load(ctx)
	require.NoError(t, err)
	d := dispatch.New(h, dispatch.WithPersister(st))
	for _, line := range []string{"add housekeeper Susan / 23", "assign Susan / 301"} {
		_, err := d.Execute(ctx, line)
		require.NoError(t, err)
	}
	return st
}

func TestCheckExpect(t *testing.T) {
	ok := Entry{Status: StatusOK, Kind: "listing", Message: "2 item(s):", Lines: []string{"Towel: 3", "Soap: 0"}}
	failed := Entry{Status: StatusError, Code: "NotFound", Message: `NotFound: room "999" does not exist`}

	assert.Empty(t, checkExpect(ok, Expect{Status: StatusOK}))
	assert.Empty(t, checkExpect(ok, Expect{Status: StatusOK, Kind: "listing", Message: "item(s)", Lines: []string{"Towel: 3", "Soap: 0"}}))
	assert.Empty(t, checkExpect(failed, Expect{Status: StatusError, Code: "NotFound", Message: "999"}))

	problems := checkExpect(ok, Expect{Status: StatusError})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "expected status error, got ok")

	problems = checkExpect(ok, Expect{Status: StatusOK, Kind: "info", Message: "room", Lines: []string{"Towel: 3"}})
	assert.Len(t, problems, 3)

	problems = checkExpect(failed, Expect{Status: StatusError, Code: "DuplicateKey"})
	assert.Equal(t, []string{"expected code DuplicateKey, got NotFound"}, problems)
}

func TestCheckExpect_EmptyLines(t *testing.T) {
	empty := Entry{Status: StatusOK, Kind: "listing", Message: "No items found."}
	assert.Empty(t, checkExpect(empty, Expect{Status: StatusOK, Lines: []string{}}))
}

func TestAssertCommandCount(t *testing.T) {
	transcript := sampleTranscript()

	assert.NoError(t, assertCommandCount(transcript, Assertion{Command: "check-in", Count: 2}))
	// The rejected assign does not count.
	assert.NoError(t, assertCommandCount(transcript, Assertion{Command: "assign", Count: 1}))
	assert.NoError(t, assertCommandCount(transcript, Assertion{Command: "bye", Count: 0}))

	err := assertCommandCount(transcript, Assertion{Command: "check-out", Count: 2})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertCommandCount, ae.Type)
	assert.Equal(t, "1 successful", ae.Actual)
	assert.Contains(t, err.Error(), "[2] assign Tom / 301 -> error")
}

func TestAssertCommandOrder(t *testing.T) {
	transcript := sampleTranscript()

	assert.NoError(t, assertCommandOrder(transcript, Assertion{Commands: []string{"add-housekeeper", "assign", "check-out"}}))
	assert.NoError(t, assertCommandOrder(transcript, Assertion{Commands: []string{"check-in", "check-out"}}))

	err := assertCommandOrder(transcript, Assertion{Commands: []string{"check-out", "assign"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check-out (pos 4) should be before assign (pos 2)")

	err = assertCommandOrder(transcript, Assertion{Commands: []string{"assign", "unassign"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing command: unassign")
}

func TestAssertFinalState(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	assert.NoError(t, assertFinalState(ctx, st, Assertion{
		Table:  "assignments",
		Where:  map[string]interface{}{"room_id": 301},
		Expect: map[string]interface{}{"housekeeper": "Susan"},
	}))
	assert.NoError(t, assertFinalState(ctx, st, Assertion{
		Table:  "rooms",
		Where:  map[string]interface{}{"id": 301},
		Expect: map[string]interface{}{"occupancy": "Vacant", "level": 3},
	}))

	t.Run("value mismatch", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "housekeepers",
			Where:  map[string]interface{}{"name": "Susan"},
			Expect: map[string]interface{}{"age": 24},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `column "age" = 24`)
	})

	t.Run("row not found", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "assignments",
			Where:  map[string]interface{}{"room_id": 302},
			Expect: map[string]interface{}{"housekeeper": "Susan"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row not found")
	})

	t.Run("ambiguous", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "rooms",
			Where:  map[string]interface{}{"level": 1},
			Expect: map[string]interface{}{"occupancy": "Vacant"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple rows matched")
	})

	t.Run("missing column", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "rooms",
			Where:  map[string]interface{}{"id": 101},
			Expect: map[string]interface{}{"floor": 1},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `column "floor" not present`)
	})

	t.Run("rejects unsafe identifiers", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "rooms; DROP TABLE rooms",
			Expect: map[string]interface{}{"id": 1},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid table name")

		err = assertFinalState(ctx, st, Assertion{
			Table:  "rooms",
			Where:  map[string]interface{}{"id = 1 OR 1": 1},
			Expect: map[string]interface{}{"id": 1},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid column name")
	})
}

func TestAssertRowCount(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	assert.NoError(t, assertRowCount(ctx, st, Assertion{Table: "rooms", Count: 20}))
	assert.NoError(t, assertRowCount(ctx, st, Assertion{Table: "journal", Count: 2}))

	err := assertRowCount(ctx, st, Assertion{Table: "items", Count: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 rows")

	err = assertRowCount(ctx, st, Assertion{Table: "no_such_table", Count: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query error")
}

func TestStateValuesEqual(t *testing.T) {
	assert.True(t, stateValuesEqual("Susan", "Susan"))
	assert.True(t, stateValuesEqual("Susan", []byte("Susan")))
	assert.True(t, stateValuesEqual(3, int64(3)))
	assert.True(t, stateValuesEqual(int64(3), int64(3)))
	assert.True(t, stateValuesEqual(true, int64(1)))
	assert.True(t, stateValuesEqual(nil, nil))

	assert.False(t, stateValuesEqual("3", int64(3)))
	assert.False(t, stateValuesEqual(3, "3"))
	assert.False(t, stateValuesEqual(false, int64(1)))
	assert.False(t, stateValuesEqual(nil, "x"))
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	for _, e := range sampleTranscript() {
		result.AddEntry(e)
	}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertCommandCount, Command: "assign", Count: 1},
		{Type: AssertFinalState, Table: "rooms", Expect: map[string]interface{}{"id": 1}},
		{Type: "trace_contains"},
	}, nil)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "final_state requires database context")
	assert.Contains(t, errs[1], `unknown assertion type "trace_contains"`)
}
