package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

// Feature-toggle rules encode one workflow convention: issues on; projects,
// wiki and discussions off. All are remediable by flipping a repository
// setting.

type IssuesEnabled struct{}

func (IssuesEnabled) ID() string {
	return "issues-enabled"
}

func (IssuesEnabled) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (IssuesEnabled) Description() string {
	return "Verifies that GitHub Issues are enabled."
}

func (r IssuesEnabled) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.HasIssues {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Repository doesn't have Issues enabled")}
	}
	return nil
}

type ProjectsDisabled struct{}

func (ProjectsDisabled) ID() string {
	return "projects-disabled"
}

func (ProjectsDisabled) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (ProjectsDisabled) Description() string {
	return "Verifies that GitHub Projects are disabled."
}

func (r ProjectsDisabled) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.HasProjects {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Repository has Projects enabled")}
	}
	return nil
}

type WikiDisabled struct{}

func (WikiDisabled) ID() string {
	return "wiki-disabled"
}

func (WikiDisabled) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (WikiDisabled) Description() string {
	return "Verifies that the GitHub Wiki is disabled."
}

func (r WikiDisabled) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.HasWiki {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Repository has Wiki enabled")}
	}
	return nil
}

type DiscussionsDisabled struct{}

func (DiscussionsDisabled) ID() string {
	return "discussions-disabled"
}

func (DiscussionsDisabled) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (DiscussionsDisabled) Description() string {
	return "Verifies that GitHub Discussions are disabled."
}

func (r DiscussionsDisabled) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.HasDiscussions {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Repository has Discussions enabled")}
	}
	return nil
}
