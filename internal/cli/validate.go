package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/machine"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Machines []MachineSummary  `json:"machines,omitempty"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
}

// MachineSummary describes a valid machine.
type MachineSummary struct {
	Name        string `json:"name"`
	Hash        string `json:"hash"`
	States      int    `json:"states"`
	Symbols     int    `json:"symbols"`
	Transitions int    `json:"transitions"`
}

// ValidationIssue is one problem found in a machine file.
type ValidationIssue struct {
	Code    string `json:"code"`
	Machine string `json:"machine,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <machine-file>",
		Short: "Check machine definitions",
		Long: `Load and check every machine defined in a YAML file, a CUE file or a
directory holding one CUE package.

All problems are reported with an error code and, for CUE sources, the line
they occur on.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	descs, loadErrs := loadMachines(path)
	if len(loadErrs) > 0 {
		// Path problems are command errors, definition problems are
		// validation failures.
		if loadErrs[0].commandLevel() || loadErrs[0].Code == ErrCodeNoMachines {
			return outputValidateError(formatter, loadErrs[0].Code, loadErrs[0].Message)
		}
		return outputValidationErrors(formatter, loadErrs)
	}

	result := ValidationResult{Valid: true}
	for _, d := range descs {
		formatter.VerboseLog("Validated machine: %s", d.Name)
		result.Machines = append(result.Machines, summarize(d))
	}
	return outputValidateSuccess(formatter, result)
}

func summarize(d *machine.Description) MachineSummary {
	return MachineSummary{
		Name:        d.Name,
		Hash:        d.Hash(),
		States:      len(d.States),
		Symbols:     len(d.Alphabet),
		Transitions: len(d.Rules()),
	}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s %d machine(s) valid\n", passMark(), len(result.Machines))
	for _, m := range result.Machines {
		fmt.Fprintf(formatter.Writer, "  %s: %d states, %d symbols, %d transitions\n",
			m.Name, m.States, m.Symbols, m.Transitions)
	}
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Path errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []*LoadError) error {
	issues := make([]ValidationIssue, len(errs))
	for i, e := range errs {
		issues[i] = ValidationIssue{
			Code:    e.Code,
			Machine: e.Machine,
			Field:   e.Field,
			Message: e.Message,
			Line:    e.Line(),
		}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: issues},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}
		if err := formatter.JSON(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintf(formatter.Writer, "%s Validation failed\n\n", failMark())
	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", issue.Line)
		}
		where := issue.Field
		if issue.Machine != "" {
			where = issue.Machine + "." + where
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", issue.Code, where, issue.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
