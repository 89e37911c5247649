package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type MergeCommitEnabled struct{}

func (MergeCommitEnabled) ID() string {
	return "merge-commit-enabled"
}

func (MergeCommitEnabled) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (MergeCommitEnabled) Description() string {
	return "Verifies that the repository allows merge commits."
}

func (r MergeCommitEnabled) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.AllowMergeCommit {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Repository should allow merge commits")}
	}
	return nil
}
