package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type DescriptionExists struct{}

func (DescriptionExists) ID() string {
	return "description-exists"
}

func (DescriptionExists) Severity() rules.Severity {
	return rules.SeverityError
}

func (DescriptionExists) Description() string {
	return "Verifies that the repository has a description."
}

func (r DescriptionExists) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Description == "" {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Missing repository description")}
	}
	return nil
}
