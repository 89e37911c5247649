package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

type NoForcePush struct{}

func (NoForcePush) ID() string {
	return "no-force-push"
}

func (NoForcePush) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (NoForcePush) Description() string {
	return "Verifies that default branch protection, when present, does not allow force pushes."
}

func (r NoForcePush) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	// Unprotected branches are default-branch-protected's concern.
	if snap.Protection == nil {
		return nil
	}
	if snap.Protection.AllowForcePush {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Default branch protection allows force pushes")}
	}
	return nil
}
