package engine

import (
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

// RepoError records a repository whose snapshot could not be fetched. The
// repository produced no findings and is accounted for by this record alone.
type RepoError struct {
	Repo snapshot.Ref
	Err  error
}

// RuleError records a rule that failed on one repository. Other rules on the
// same repository are unaffected.
type RuleError struct {
	Repo   snapshot.Ref
	RuleID string
	Err    error
}

// RunResult is the complete outcome of one audit pass.
//
// Invariant: every selected repository appears exactly once, either as fully
// evaluated (zero or more findings, possibly some RuleErrors) or as one
// RepoError. Findings are ordered by input repository order, then rule
// registration order.
type RunResult struct {
	Findings   []rules.Finding
	RepoErrors []RepoError
	RuleErrors []RuleError
}

func (r *RunResult) HasFindings() bool {
	return len(r.Findings) > 0
}

func (r *RunResult) HasErrors() bool {
	return len(r.RepoErrors) > 0 || len(r.RuleErrors) > 0
}

// Clean reports a run with nothing to complain about: no findings, no errors.
func (r *RunResult) Clean() bool {
	return !r.HasFindings() && !r.HasErrors()
}
