package harness

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/hotelite/internal/store"
)

// validIdentifier matches valid SQL identifiers (table/column names).
// This prevents SQL injection via identifier interpolation.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type       string  // Assertion type for categorization
	Expected   string  // Human-readable expected outcome
	Actual     string  // Human-readable actual outcome
	Transcript []Entry // Transcript for context, may be nil
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Transcript) > 0 {
		fmt.Fprintf(&buf, "\nTranscript:\n")
		for _, entry := range e.Transcript {
			fmt.Fprintf(&buf, "  [%d] %s -> %s\n", entry.Step, entry.Input, entry.Status)
		}
	}

	return buf.String()
}

// checkExpect compares one transcript entry with its expect clause and
// returns a message per mismatch.
func checkExpect(e Entry, want Expect) []string {
	var problems []string

	if e.Status != want.Status {
		detail := e.Message
		if e.Code != "" {
			detail = e.Code + ": " + detail
		}
		return []string{fmt.Sprintf("expected status %s, got %s (%s)", want.Status, e.Status, detail)}
	}
	if want.Code != "" && e.Code != want.Code {
		problems = append(problems, fmt.Sprintf("expected code %s, got %s", want.Code, e.Code))
	}
	if want.Kind != "" && e.Kind != want.Kind {
		problems = append(problems, fmt.Sprintf("expected kind %s, got %s", want.Kind, e.Kind))
	}
	if want.Message != "" && !strings.Contains(e.Message, want.Message) {
		problems = append(problems, fmt.Sprintf("expected message containing %q, got %q", want.Message, e.Message))
	}
	if want.Lines != nil && !reflect.DeepEqual(normalizeLines(e.Lines), normalizeLines(want.Lines)) {
		problems = append(problems, fmt.Sprintf("expected lines %q, got %q", want.Lines, e.Lines))
	}
	return problems
}

func normalizeLines(lines []string) []string {
	if len(lines) == 0 {
		return []string{}
	}
	return lines
}

// succeeded returns the commands of successful entries in order.
func succeeded(transcript []Entry) []string {
	var out []string
	for _, e := range transcript {
		if e.Status == StatusOK {
			out = append(out, e.Command)
		}
	}
	return out
}

// assertCommandCount checks that a command succeeded exactly Count times.
func assertCommandCount(transcript []Entry, assertion Assertion) error {
	count := 0
	for _, cmd := range succeeded(transcript) {
		if cmd == assertion.Command {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:       AssertCommandCount,
			Expected:   fmt.Sprintf("%d successful %s", assertion.Count, assertion.Command),
			Actual:     fmt.Sprintf("%d successful", count),
			Transcript: transcript,
		}
	}
	return nil
}

// assertCommandOrder checks that commands first succeeded in the given order.
// Commands don't need to be consecutive.
func assertCommandOrder(transcript []Entry, assertion Assertion) error {
	// First position of each command, 1-indexed for readability
	positions := make(map[string]int)
	for i, cmd := range succeeded(transcript) {
		if positions[cmd] == 0 {
			positions[cmd] = i + 1
		}
	}

	for _, cmd := range assertion.Commands {
		if positions[cmd] == 0 {
			return &AssertionError{
				Type:       AssertCommandOrder,
				Expected:   fmt.Sprintf("all commands succeeded: %v", assertion.Commands),
				Actual:     fmt.Sprintf("missing command: %s", cmd),
				Transcript: transcript,
			}
		}
	}

	for i := 1; i < len(assertion.Commands); i++ {
		prev := assertion.Commands[i-1]
		curr := assertion.Commands[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertCommandOrder,
				Expected: fmt.Sprintf("commands in order: %v", assertion.Commands),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Transcript: transcript,
			}
		}
	}
	return nil
}

// assertRowCount checks the number of rows in a store table.
func assertRowCount(ctx context.Context, st *store.Store, assertion Assertion) error {
	if !validIdentifier.MatchString(assertion.Table) {
		return fmt.Errorf("invalid table name %q: must match pattern %s", assertion.Table, validIdentifier.String())
	}

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", assertion.Table)
	if err := st.DB().QueryRowContext(ctx, query).Scan(&count); err != nil {
		return &AssertionError{
			Type:     AssertRowCount,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertRowCount,
			Expected: fmt.Sprintf("%d rows in %s", assertion.Count, assertion.Table),
			Actual:   fmt.Sprintf("%d rows", count),
		}
	}
	return nil
}

// assertFinalState checks that exactly one row of a store table matches
// Where and that it holds the Expect values (subset semantics).
//
// Table and column names are validated against a whitelist pattern since
// identifiers cannot be parameterized.
func assertFinalState(ctx context.Context, st *store.Store, assertion Assertion) error {
	if !validIdentifier.MatchString(assertion.Table) {
		return fmt.Errorf("invalid table name %q: must match pattern %s", assertion.Table, validIdentifier.String())
	}

	whereSQL, whereArgs, err := buildWhereClause(assertion.Where)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT * FROM %s", assertion.Table)
	if whereSQL != "" {
		query += " WHERE " + whereSQL
	}

	rows, err := st.DB().QueryContext(ctx, query, whereArgs...)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("get columns: %w", err)
	}

	if !rows.Next() {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", assertion.Table, formatWhereClause(assertion.Where)),
			Actual:   "row not found",
		}
	}

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}

	if rows.Next() {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", assertion.Table, formatWhereClause(assertion.Where)),
			Actual:   "multiple rows matched (assertion is ambiguous)",
		}
	}

	actualRow := make(map[string]interface{}, len(columns))
	for i, col := range columns {
		actualRow[col] = values[i]
	}

	// Sorted for a deterministic first failure
	keys := make([]string, 0, len(assertion.Expect))
	for k := range assertion.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expectedValue := assertion.Expect[key]
		actualValue, exists := actualRow[key]
		if !exists {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("column %q to exist", key),
				Actual:   fmt.Sprintf("column %q not present in result columns: %v", key, columns),
			}
		}
		if !stateValuesEqual(expectedValue, actualValue) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("column %q = %v (type %T)", key, expectedValue, expectedValue),
				Actual:   fmt.Sprintf("column %q = %v (type %T)", key, actualValue, actualValue),
			}
		}
	}

	return nil
}

// buildWhereClause constructs a parameterized WHERE clause.
// Keys are sorted for determinism.
func buildWhereClause(where map[string]interface{}) (string, []interface{}, error) {
	if len(where) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		if !validIdentifier.MatchString(key) {
			return "", nil, fmt.Errorf("invalid column name %q in where clause: must match pattern %s", key, validIdentifier.String())
		}
		clauses = append(clauses, fmt.Sprintf("%s = ?", key))
		args = append(args, toSQLValue(where[key]))
	}

	return strings.Join(clauses, " AND "), args, nil
}

// toSQLValue converts a decoded YAML value to a SQL argument.
func toSQLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string, int, int64, bool:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatWhereClause creates a human-readable description of WHERE conditions.
func formatWhereClause(where map[string]interface{}) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// stateValuesEqual compares a YAML value with a column value.
// SQLite returns int64 for integers and may return TEXT as string or []byte.
func stateValuesEqual(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	if b, ok := actual.([]byte); ok {
		actual = string(b)
	}

	switch exp := expected.(type) {
	case string:
		s, ok := actual.(string)
		return ok && exp == s
	case int:
		n, ok := actual.(int64)
		return ok && int64(exp) == n
	case int64:
		n, ok := actual.(int64)
		return ok && exp == n
	case bool:
		if b, ok := actual.(bool); ok {
			return exp == b
		}
		// SQLite stores booleans as integers
		if n, ok := actual.(int64); ok {
			return exp == (n != 0)
		}
		return false
	}

	return reflect.DeepEqual(expected, actual)
}

// AssertionContext provides database access for state assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertCommandCount:
			err = assertCommandCount(result.Transcript, assertion)
		case AssertCommandOrder:
			err = assertCommandOrder(result.Transcript, assertion)
		case AssertFinalState, AssertRowCount:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: %s requires database context", i, assertion.Type)
			} else if assertion.Type == AssertFinalState {
				err = assertFinalState(actx.Ctx, actx.Store, assertion)
			} else {
				err = assertRowCount(actx.Ctx, actx.Store, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
