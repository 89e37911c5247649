package rules

import "ghaudit/internal/snapshot"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule is a single named check over one repository snapshot.
//
// Rules are pure: they read only the snapshot, keep no state between
// repositories, and never call the GitHub API. A rule returns zero findings
// when the repository is compliant.
type Rule interface {
	ID() string
	Severity() Severity
	Description() string

	Evaluate(snap *snapshot.Snapshot) []Finding
}

// Finding is one reported rule violation tied to a repository and a rule.
// Immutable once created.
type Finding struct {
	RuleID   string
	Repo     snapshot.Ref
	Severity Severity
	Message  string
	// Fixable marks findings a wrapping command could remediate by toggling a
	// repository setting. The audit path itself never writes.
	Fixable bool
}

// Violation builds a finding for r against the given repository.
func Violation(r Rule, repo snapshot.Ref, message string) Finding {
	return Finding{
		RuleID:   r.ID(),
		Repo:     repo,
		Severity: r.Severity(),
		Message:  message,
	}
}

// FixableViolation is Violation with the remediation marker set.
func FixableViolation(r Rule, repo snapshot.Ref, message string) Finding {
	f := Violation(r, repo, message)
	f.Fixable = true
	return f
}
