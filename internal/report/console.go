package report

import (
	"fmt"
	"io"

	"ghaudit/internal/engine"
	"ghaudit/internal/rules"

	"github.com/fatih/color"
)

// Format selects which projection drives the console output.
type Format string

const (
	FormatRepo Format = "repo"
	FormatRule Format = "rule"
)

var (
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
)

type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Print renders the result in the requested grouping, then the error section.
// A clean run and an incomplete run are never conflated: "no violations" is
// only printed when there were neither findings nor errors.
func (c *Console) Print(result *engine.RunResult, format Format) {
	switch format {
	case FormatRule:
		for _, group := range GroupByRule(result) {
			for _, f := range group.Findings {
				fmt.Fprintf(c.w, "%s: %s %s [%s]\n", f.RuleID, severityLabel(f.Severity), f.Message, f.Repo)
			}
		}
	default:
		for _, group := range GroupByRepository(result) {
			for _, f := range group.Findings {
				fmt.Fprintf(c.w, "%s: %s %s [%s]\n", f.Repo, severityLabel(f.Severity), f.Message, f.RuleID)
			}
		}
	}

	c.printErrors(result)

	if result.Clean() {
		fmt.Fprintln(c.w, "No violations found.")
	}
}

func (c *Console) printErrors(result *engine.RunResult) {
	if len(result.RepoErrors) > 0 {
		fmt.Fprintf(c.w, "audit could not complete for %d repositories:\n", len(result.RepoErrors))
		for _, re := range result.RepoErrors {
			fmt.Fprintf(c.w, "  %s: %v\n", re.Repo, re.Err)
		}
	}
	if len(result.RuleErrors) > 0 {
		fmt.Fprintf(c.w, "audit could not complete for %d rules:\n", len(result.RuleErrors))
		for _, re := range result.RuleErrors {
			fmt.Fprintf(c.w, "  %s on %s: %v\n", re.RuleID, re.Repo, re.Err)
		}
	}
}

func severityLabel(s rules.Severity) string {
	if s == rules.SeverityWarning {
		return warnColor.Sprint("warn:")
	}
	return errorColor.Sprint("error:")
}
