// Package report turns a flat RunResult into its two presentation
// projections. Grouping is presentation-only: both projections carry exactly
// the findings of the underlying result, unaltered.
package report

import (
	"ghaudit/internal/engine"
	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"
)

// RepoFindings is one repository's findings, in rule order.
type RepoFindings struct {
	Repo     snapshot.Ref
	Findings []rules.Finding
}

// RuleFindings is one rule's findings across repositories, in repository
// order.
type RuleFindings struct {
	RuleID   string
	Findings []rules.Finding
}

// GroupByRepository projects the result's findings keyed by repository.
// Groups appear in the order repositories first appear in the result, which
// is the engine's input order; findings within a group keep their relative
// order. Pure and lossless: no finding is altered, dropped, or added.
func GroupByRepository(result *engine.RunResult) []RepoFindings {
	index := make(map[snapshot.Ref]int)
	var groups []RepoFindings
	for _, f := range result.Findings {
		i, ok := index[f.Repo]
		if !ok {
			i = len(groups)
			index[f.Repo] = i
			groups = append(groups, RepoFindings{Repo: f.Repo})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}

// GroupByRule projects the result's findings keyed by rule ID, with the same
// order-preservation and losslessness guarantees as GroupByRepository.
func GroupByRule(result *engine.RunResult) []RuleFindings {
	index := make(map[string]int)
	var groups []RuleFindings
	for _, f := range result.Findings {
		i, ok := index[f.RuleID]
		if !ok {
			i = len(groups)
			index[f.RuleID] = i
			groups = append(groups, RuleFindings{RuleID: f.RuleID})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}
