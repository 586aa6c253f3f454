package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/dispatch"
	"github.com/roach88/hotelite/internal/entity"
	"github.com/roach88/hotelite/internal/harness"
)

// ValidationIssue is one problem found in a checked file.
type ValidationIssue struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check settings, scripts and scenarios without running them",
		Long: `Check the merged settings and, optionally, script and scenario files.

Files ending in .yaml or .yml are loaded as scenarios. Any other file is
read as a script: every line that is not blank or a # comment must parse as
a console command. Nothing is applied and the database is not opened.

Example:
  hotelite validate --config ./hotelite.yaml
  hotelite validate ./morning.txt ./scenarios/*.yaml`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	if err := cfg.Validate(); err != nil {
		return outputValidateError(formatter, "InvalidConfig", err.Error())
	}
	formatter.VerboseLog("settings valid: database %s, format %s", cfg.Database, cfg.Format)

	// Parsing needs only the policy; an empty hotel keeps the database closed.
	checker := dispatch.New(entity.New(), dispatch.WithPolicy(cfg.Policy))

	var issues []ValidationIssue
	for _, file := range files {
		formatter.VerboseLog("checking %s", file)
		issues = append(issues, validateFile(checker, file)...)
	}

	if len(issues) > 0 {
		return outputValidationErrors(formatter, len(files), issues)
	}
	return outputValidateSuccess(formatter, len(files))
}

// validateFile checks one scenario or script file.
func validateFile(checker *dispatch.Dispatcher, path string) []ValidationIssue {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if _, err := harness.LoadScenario(path); err != nil {
			return []ValidationIssue{{File: path, Code: "InvalidScenario", Message: err.Error()}}
		}
		return nil
	default:
		return validateScript(checker, path)
	}
}

// validateScript parses every command line of a script.
func validateScript(checker *dispatch.Dispatcher, path string) []ValidationIssue {
	f, err := os.Open(path)
	if err != nil {
		return []ValidationIssue{{File: path, Code: "Unreadable", Message: err.Error()}}
	}
	defer f.Close()

	var issues []ValidationIssue
	lineNo := 0
	err = eachLine(f, func(line string) bool {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return true
		}
		if _, err := checker.Check(line); err != nil {
			message, _ := describeFailure(err)
			issues = append(issues, ValidationIssue{
				File:    path,
				Line:    lineNo,
				Code:    dispatch.ErrorCode(err),
				Message: message,
			})
		}
		return true
	})
	if err != nil {
		issues = append(issues, ValidationIssue{File: path, Code: "Unreadable", Message: err.Error()})
	}
	return issues
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, files int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Files: files})
	}

	if files == 0 {
		fmt.Fprintln(formatter.Writer, "✓ Settings valid")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ Settings and %d file(s) valid\n", files)
	return nil
}

// outputValidateError outputs a settings error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs every file issue.
func outputValidationErrors(formatter *OutputFormatter, files int, issues []ValidationIssue) error {
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Files: files, Errors: issues},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", issue.File, issue.Line)
		} else {
			fmt.Fprintln(formatter.Writer, issue.File)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}
	return failed
}
