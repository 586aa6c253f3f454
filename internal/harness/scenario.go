package harness

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/testutil"
)

// Scenario defines a scripted session against a fresh hotel.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Clock is the date the session runs on, as YYYY-MM-DD.
	// Empty means testutil.Epoch.
	Clock string `yaml:"clock,omitempty"`

	// Policy overrides the numeric bounds. Nil means grammar.DefaultPolicy.
	Policy *grammar.Policy `yaml:"policy,omitempty"`

	// Setup lines run before the steps and must all succeed.
	// They are not part of the transcript.
	Setup []string `yaml:"setup,omitempty"`

	// Steps are the command lines under test.
	Steps []Step `yaml:"steps"`

	// Assertions validate the transcript and final database state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one command line with an optional expectation.
type Step struct {
	Input  string  `yaml:"input"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Status is "ok" or "error".
	Status string `yaml:"status"`

	// Code is the expected error code. Only valid with status error.
	Code string `yaml:"code,omitempty"`

	// Kind is the expected result kind. Only valid with status ok.
	Kind string `yaml:"kind,omitempty"`

	// Message must be a substring of the reported message.
	Message string `yaml:"message,omitempty"`

	// Lines must equal the rendered listing when non-nil.
	Lines []string `yaml:"lines,omitempty"`
}

// Assertion validates the transcript or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "command_count": Command succeeded exactly Count times
	// - "command_order": Commands first succeeded in this order
	// - "final_state": one row of Table matching Where has the Expect columns
	// - "row_count": Table holds exactly Count rows
	Type string `yaml:"type"`

	// Command is a command name such as "assign" (command_count).
	Command string `yaml:"command,omitempty"`

	// Commands is the expected order (command_order).
	Commands []string `yaml:"commands,omitempty"`

	// Table is a store table name (final_state, row_count).
	Table string `yaml:"table,omitempty"`

	// Where filters rows by exact column values (final_state).
	Where map[string]interface{} `yaml:"where,omitempty"`

	// Expect contains expected column values (final_state).
	// Subset match - only specified columns are validated.
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// Count is the expected number of occurrences or rows.
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertCommandCount = "command_count"
	AssertCommandOrder = "command_order"
	AssertFinalState   = "final_state"
	AssertRowCount     = "row_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(bytes.NewReader(data))
}

// ParseScenario decodes and validates one scenario document.
func ParseScenario(r io.Reader) (*Scenario, error) {
	// Reject unknown fields (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarioFiles lists the .yaml and .yml files under dir, in lexical
// order. A non-empty filter is a glob matched against the file name without
// its extension.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Golden transcripts live beside the scenarios.
			if path != dir && info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// ClockTime returns the instant the scenario runs at: 09:00 UTC on Clock,
// or testutil.Epoch.
func (s *Scenario) ClockTime() (time.Time, error) {
	if s.Clock == "" {
		return testutil.Epoch, nil
	}
	d, err := time.Parse(domain.DateLayout, s.Clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("clock %q must be YYYY-MM-DD", s.Clock)
	}
	return d.Add(9 * time.Hour), nil
}

// EffectivePolicy returns the scenario's policy or the default one.
func (s *Scenario) EffectivePolicy() grammar.Policy {
	if s.Policy != nil {
		return *s.Policy
	}
	return grammar.DefaultPolicy()
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if _, err := s.ClockTime(); err != nil {
		return err
	}

	if s.Policy != nil {
		for name, r := range map[string]grammar.Range{
			"age":          s.Policy.Age,
			"satisfaction": s.Policy.Satisfaction,
		} {
			if r.Min > r.Max {
				return fmt.Errorf("policy %s: min %d exceeds max %d", name, r.Min, r.Max)
			}
		}
	}

	for i, line := range s.Setup {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("setup[%d]: line is empty", i)
		}
	}

	for i, step := range s.Steps {
		if strings.TrimSpace(step.Input) == "" {
			return fmt.Errorf("steps[%d]: input is required", i)
		}
		if step.Expect != nil {
			if err := validateExpect(step.Expect); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateExpect(e *Expect) error {
	switch e.Status {
	case StatusOK:
		if e.Code != "" {
			return fmt.Errorf("expect.code is only valid with status %q", StatusError)
		}
	case StatusError:
		if e.Kind != "" {
			return fmt.Errorf("expect.kind is only valid with status %q", StatusOK)
		}
		if e.Lines != nil {
			return fmt.Errorf("expect.lines is only valid with status %q", StatusOK)
		}
	default:
		return fmt.Errorf("expect.status must be %q or %q, got %q", StatusOK, StatusError, e.Status)
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertCommandCount:
		if a.Command == "" {
			return fmt.Errorf("command_count requires command")
		}
	case AssertCommandOrder:
		if len(a.Commands) < 2 {
			return fmt.Errorf("command_order requires at least two commands")
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("final_state requires table")
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("final_state requires expect")
		}
	case AssertRowCount:
		if a.Table == "" {
			return fmt.Errorf("row_count requires table")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
