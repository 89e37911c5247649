package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type LabelsDefined struct{}

func (LabelsDefined) ID() string {
	return "labels-defined"
}

func (LabelsDefined) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (LabelsDefined) Description() string {
	return "Verifies that a repository with Issues enabled defines at least one issue label."
}

func (r LabelsDefined) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.HasIssues {
		return nil
	}
	if len(snap.Labels) == 0 {
		return []rules.Finding{rules.Violation(r, snap.Ref, "No issue labels defined")}
	}
	return nil
}
