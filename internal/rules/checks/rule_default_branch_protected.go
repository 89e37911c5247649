package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type DefaultBranchProtected struct{}

func (DefaultBranchProtected) ID() string {
	return "default-branch-protected"
}

func (DefaultBranchProtected) Severity() rules.Severity {
	return rules.SeverityError
}

func (DefaultBranchProtected) Description() string {
	return "Verifies that the repository's default branch has branch protection configured."
}

func (r DefaultBranchProtected) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Protection == nil {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Default branch is not protected")}
	}
	return nil
}
