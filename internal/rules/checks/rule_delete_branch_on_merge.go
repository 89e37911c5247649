package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type DeleteBranchOnMerge struct{}

func (DeleteBranchOnMerge) ID() string {
	return "delete-branch-on-merge"
}

func (DeleteBranchOnMerge) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (DeleteBranchOnMerge) Description() string {
	return "Verifies that merged head branches are deleted automatically."
}

func (r DeleteBranchOnMerge) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.DeleteBranchOnMerge {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Merged branches are not deleted automatically")}
	}
	return nil
}
