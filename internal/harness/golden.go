package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as the text stored in golden files:
//
//	# scenario: name
//	> input
//	ok (kind) message
//	  listing line
//	> input
//	error Code: message
func Transcript(name string, r *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# scenario: %s\n", name)
	for _, e := range r.Transcript {
		fmt.Fprintf(&buf, "> %s\n", e.Input)
		if e.Status == StatusError {
			fmt.Fprintf(&buf, "error %s\n", e.Message)
			continue
		}
		fmt.Fprintf(&buf, "ok (%s) %s\n", e.Kind, e.Message)
		for _, line := range e.Lines {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}
	if r.Exited {
		buf.WriteString("# exited\n")
	}
	return buf.Bytes()
}

// GoldenPath returns the golden file for a scenario file:
// <dir>/golden/<base name>.golden.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// WriteGolden stores the transcript of r at path, creating the directory.
func WriteGolden(path, name string, r *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, Transcript(name, r), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the transcript of r equals the file at path.
func CompareGolden(path, name string, r *Result) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	return bytes.Equal(want, Transcript(name, r)), nil
}

// RunWithGolden executes a scenario and compares its transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can check expectations too. A mismatch
// fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's transcript against its golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Transcript(scenarioName, result))
}
