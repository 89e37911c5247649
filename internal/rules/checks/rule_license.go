package checks

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

// License rules apply only to public repositories; private code has no
// distribution surface to license.

type LicenseExists struct{}

func (LicenseExists) ID() string {
	return "license-exists"
}

func (LicenseExists) Severity() rules.Severity {
	return rules.SeverityError
}

func (LicenseExists) Description() string {
	return "Verifies that a public repository carries a license file."
}

func (r LicenseExists) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.Public() {
		return nil
	}
	if snap.License == nil {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Missing license file")}
	}
	return nil
}

type LicenseIsMIT struct{}

func (LicenseIsMIT) ID() string {
	return "license-is-mit"
}

func (LicenseIsMIT) Severity() rules.Severity {
	return rules.SeverityWarning
}

func (LicenseIsMIT) Description() string {
	return "Prefers the MIT License for public repositories."
}

func (r LicenseIsMIT) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if !snap.Public() || snap.License == nil {
		return nil
	}
	if snap.License.SPDXID != "MIT" {
		return []rules.Finding{rules.Violation(r, snap.Ref, "Using non-MIT license")}
	}
	return nil
}
