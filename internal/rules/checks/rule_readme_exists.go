package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type ReadmeExists struct{}

func (ReadmeExists) ID() string {
	return "readme-exists"
}

func (ReadmeExists) Severity() rules.Severity {
	return rules.SeverityError
}

func (ReadmeExists) Description() string {
	return "Verifies that the repository has a README file."
}

func (r ReadmeExists) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.HasReadme {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Missing README file")}
	}
	return nil
}
