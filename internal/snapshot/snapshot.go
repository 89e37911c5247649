// Package snapshot defines the immutable repository view that rules evaluate.
//
// A Snapshot is built once per repository per run by the metadata client and
// carries only the fields rules are allowed to depend on. Rules never see
// GitHub API response types.
package snapshot

import "fmt"

// Ref identifies one repository. It is comparable and used as a grouping key.
type Ref struct {
	Owner string
	Name  string
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// License describes a repository license as reported by the hosting API.
type License struct {
	SPDXID string
	Name   string
}

// BranchProtection describes the protection configured on the default branch.
// A nil *BranchProtection on Snapshot means the default branch is unprotected.
type BranchProtection struct {
	RequirePullRequest   bool
	RequiredReviews      int
	EnforceAdmins        bool
	AllowForcePush       bool
	AllowDeletions       bool
	RequiredStatusChecks []string
}

// Snapshot is a point-in-time view of one repository's configuration.
// It is never mutated after construction; the engine hands each rule the same
// value and discards it when the repository has been evaluated.
type Snapshot struct {
	Ref         Ref
	Description string
	Visibility  string
	Private     bool
	Archived    bool

	DefaultBranch string
	Protection    *BranchProtection

	Topics  []string
	License *License
	Labels  []string

	HasIssues      bool
	HasProjects    bool
	HasWiki        bool
	HasDiscussions bool
	HasReadme      bool

	DeleteBranchOnMerge bool
	AllowMergeCommit    bool
}

// Public reports whether the repository is publicly visible.
func (s *Snapshot) Public() bool {
	return !s.Private && s.Visibility != "private" && s.Visibility != "internal"
}
