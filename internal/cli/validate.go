package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/autoopti/internal/mtconfig"
	"github.com/roach88/autoopti/internal/sweepdef"
)

// ValidationIssue is one problem found by validate.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Source string            `json:"source,omitempty"`
	Sets   int               `json:"sets"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Check a sweep definition and its base configuration",
		Long: `Check a sweep definition without running the terminal.

Loads the definition and its base configuration, checks that the base
configuration has [Tester] and [TesterInputs] sections, and that every
parameter set's inputs can be rendered as ranges.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, defPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	def, err := loadDefinition(defPath)
	if err != nil {
		return commandError(formatter, "failed to load definition", err)
	}
	formatter.VerboseLog("Loaded %s: %d parameter set(s)", def.Name(), def.Count())

	base, err := mtconfig.ReadFile(def.BaseConfigPath())
	if err != nil {
		return commandError(formatter, "failed to load base config", err)
	}

	issues := validateDefinition(def, base)
	result := ValidationResult{
		Valid:  len(issues) == 0,
		Source: def.Name(),
		Sets:   def.Count(),
		Issues: issues,
	}

	if formatter.IsJSON() {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ %s valid (%d parameter set(s))\n", def.Name(), def.Count())
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		for _, issue := range issues {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", issue.Code, issue.Message)
		}
	}

	if !result.Valid {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("validation failed with %d issue(s)", len(issues)),
			Reported: true,
		}
	}
	return nil
}

// validateDefinition checks the definition against its base configuration
// the same way a sweep would, without writing anything.
func validateDefinition(def *sweepdef.Definition, base *mtconfig.Config) []ValidationIssue {
	var issues []ValidationIssue

	for _, name := range []string{mtconfig.SectionTester, mtconfig.SectionTesterInputs} {
		if !base.HasSection(name) {
			issues = append(issues, ValidationIssue{
				Code:    ErrCodeMissingSection,
				Message: fmt.Sprintf("base config %s has no [%s] section", def.BaseConfigPath(), name),
			})
		}
	}

	for set := range def.Sets() {
		if _, err := set.Normalize(); err != nil {
			issues = append(issues, ValidationIssue{Code: ErrCodeInvalidInput, Message: err.Error()})
		}
	}
	return issues
}
