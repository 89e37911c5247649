package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type TopicsExist struct{}

func (TopicsExist) ID() string {
	return "topics-exist"
}

func (TopicsExist) Severity() rules.Severity {
	return rules.SeverityError
}

func (TopicsExist) Description() string {
	return "Verifies that the repository has at least one topic."
}

func (r TopicsExist) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if len(snap.Topics) == 0 {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Missing topics")}
	}
	return nil
}

type TopicsEnough struct{}

func (TopicsEnough) ID() string {
	return "topics-enough"
}

func (TopicsEnough) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (TopicsEnough) Description() string {
	return "Flags repositories with a single topic; one topic rarely describes a project."
}

func (r TopicsEnough) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if len(snap.Topics) == 1 {
		return []rules.Finding{rules.FixableViolation(r, snap.Ref, "Only one topic")}
	}
	return nil
}
