package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/harness"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// SuiteResult holds the overall scenario run result.
type SuiteResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenario <scenarios-dir>",
		Short: "Run scripted scenarios against a fresh hotel",
		Long: `Run every YAML scenario in a directory.

Each scenario runs against its own in-memory database with a fixed clock.
Step expectations and assertions are checked, and when a golden transcript
exists under <scenarios-dir>/golden it must match exactly.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  hotelite scenario ./scenarios
  hotelite scenario ./scenarios --filter "room*"
  hotelite scenario ./scenarios --update
  hotelite scenario ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runScenarios(opts *ScenarioOptions, dir string, cmd *cobra.Command) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	files, err := harness.FindScenarioFiles(dir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	jsonOut := opts.settings().Format == "json"
	if len(files) == 0 {
		if jsonOut {
			return outputScenarioJSON(cmd, SuiteResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	suite := SuiteResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, file := range files {
		res := runScenarioFile(opts, file, cmd)
		if !jsonOut {
			printScenario(cmd, res)
		}
		suite.Scenarios = append(suite.Scenarios, res)
		if res.Pass {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}

	if jsonOut {
		return outputScenarioJSON(cmd, suite)
	}
	return outputScenarioText(cmd, suite)
}

// runScenarioFile loads, runs and checks one scenario file.
func runScenarioFile(opts *ScenarioOptions, file string, cmd *cobra.Command) ScenarioResult {
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return failed(filepath.Base(file), "failed to load scenario: %v", err)
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	result, err := harness.Run(cmd.Context(), scenario, harness.WithLogger(logger))
	if err != nil {
		return failed(scenario.Name, "execution failed: %v", err)
	}

	goldenPath := harness.GoldenPath(file)
	if opts.Update {
		if err := harness.WriteGolden(goldenPath, scenario.Name, result); err != nil {
			return failed(scenario.Name, "failed to update golden file: %v", err)
		}
		return ScenarioResult{Name: scenario.Name + " (golden updated)", Pass: result.Pass, Errors: result.Errors}
	}

	errs := result.Errors
	if _, err := os.Stat(goldenPath); err == nil {
		match, err := harness.CompareGolden(goldenPath, scenario.Name, result)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("golden comparison failed: %v", err))
		case !match:
			errs = append(errs, "transcript does not match golden file (run with --update to regenerate)")
		}
	}

	return ScenarioResult{Name: scenario.Name, Pass: len(errs) == 0, Errors: errs}
}

func failed(name, format string, args ...any) ScenarioResult {
	return ScenarioResult{Name: name, Errors: []string{fmt.Sprintf(format, args...)}}
}

func printScenario(cmd *cobra.Command, res ScenarioResult) {
	w := cmd.OutOrStdout()
	if res.Pass {
		fmt.Fprintf(w, "✓ %s\n", res.Name)
		return
	}
	fmt.Fprintf(w, "✗ %s\n", res.Name)
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// outputScenarioJSON outputs the suite result as JSON.
func outputScenarioJSON(cmd *cobra.Command, suite SuiteResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   suite,
	}
	if suite.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "ScenarioFailed",
			Message: fmt.Sprintf("%d scenario(s) failed", suite.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if suite.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", suite.Failed))
	}
	return nil
}

// outputScenarioText outputs the suite summary as text.
func outputScenarioText(cmd *cobra.Command, suite SuiteResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scenario Summary: %d passed, %d failed, %d total\n", suite.Passed, suite.Failed, suite.Total)

	if suite.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", suite.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
