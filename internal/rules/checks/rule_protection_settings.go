package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

// Protection-detail rules inspect the settings of an existing default-branch
// protection. An unprotected branch is default-branch-protected's concern, so
// each rule here skips when Protection is nil.

type PRRequired struct{}

func (PRRequired) ID() string {
	return "pr-required"
}

func (PRRequired) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (PRRequired) Description() string {
	return "Verifies that default branch protection, when present, requires changes to arrive via pull request."
}

func (r PRRequired) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Protection == nil {
		return nil
	}
	if !snap.Protection.RequirePullRequest {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Default branch does not require pull requests to merge")}
	}
	return nil
}

type PRReviewsRequired struct{}

func (PRReviewsRequired) ID() string {
	return "pr-reviews-required"
}

func (PRReviewsRequired) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (PRReviewsRequired) Description() string {
	return "Verifies that required pull requests demand at least one approving review."
}

func (r PRReviewsRequired) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Protection == nil || !snap.Protection.RequirePullRequest {
		return nil
	}
	if snap.Protection.RequiredReviews < 1 {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Pull requests merge without any approving review")}
	}
	return nil
}

type EnforceAdmins struct{}

func (EnforceAdmins) ID() string {
	return "enforce-admins"
}

func (EnforceAdmins) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (EnforceAdmins) Description() string {
	return "Verifies that default branch protection, when present, also applies to repository administrators."
}

func (r EnforceAdmins) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Protection == nil {
		return nil
	}
	if !snap.Protection.EnforceAdmins {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Branch protection does not apply to administrators")}
	}
	return nil
}

type NoBranchDeletion struct{}

func (NoBranchDeletion) ID() string {
	return "no-branch-deletion"
}

func (NoBranchDeletion) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (NoBranchDeletion) Description() string {
	return "Verifies that default branch protection, when present, blocks branch deletion."
}

func (r NoBranchDeletion) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Protection == nil {
		return nil
	}
	if snap.Protection.AllowDeletions {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Default branch protection allows branch deletion")}
	}
	return nil
}

type StatusChecksDefined struct{}

func (StatusChecksDefined) ID() string {
	return "status-checks-defined"
}

func (StatusChecksDefined) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (StatusChecksDefined) Description() string {
	return "Verifies that default branch protection, when present, requires at least one passing status check."
}

func (r StatusChecksDefined) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Protection == nil {
		return nil
	}
	if len(snap.Protection.RequiredStatusChecks) == 0 {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Merges to the default branch require no status checks")}
	}
	return nil
}
