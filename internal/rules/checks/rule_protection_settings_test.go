package checks

import (
	"testing"

	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedSnap(prot *snapshot.BranchProtection) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Ref:           snapshot.Ref{Owner: "acme", Name: "widgets"},
		DefaultBranch: "main",
		Protection:    prot,
	}
}

func TestProtectionDetailRulesSkipUnprotectedBranches(t *testing.T) {
	snap := protectedSnap(nil)
	for _, rule := range []rules.Rule{PRRequired{}, PRReviewsRequired{}, EnforceAdmins{}, NoBranchDeletion{}, StatusChecksDefined{}} {
		assert.Empty(t, rule.Evaluate(snap), "rule %s must skip unprotected branches", rule.ID())
	}
}

func TestPRRequired(t *testing.T) {
	rule := PRRequired{}

	t.Run("no pull request requirement", func(t *testing.T) {
		findings := rule.Evaluate(protectedSnap(&snapshot.BranchProtection{}))
		require.Len(t, findings, 1)
		assert.Equal(t, "pr-required", findings[0].RuleID)
		assert.Equal(t, rules.SeverityWarning, findings[0].Severity)
	})

	t.Run("pull requests required", func(t *testing.T) {
		snap := protectedSnap(&snapshot.BranchProtection{RequirePullRequest: true})
		assert.Empty(t, rule.Evaluate(snap))
	})
}

func TestPRReviewsRequired(t *testing.T) {
	rule := PRReviewsRequired{}

	t.Run("defers to pr-required when pull requests are optional", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(protectedSnap(&snapshot.BranchProtection{})))
	})

	t.Run("zero approving reviews", func(t *testing.T) {
		snap := protectedSnap(&snapshot.BranchProtection{RequirePullRequest: true})
		findings := rule.Evaluate(snap)
		require.Len(t, findings, 1)
		assert.Equal(t, "pr-reviews-required", findings[0].RuleID)
	})

	t.Run("one approving review suffices", func(t *testing.T) {
		snap := protectedSnap(&snapshot.BranchProtection{RequirePullRequest: true, RequiredReviews: 1})
		assert.Empty(t, rule.Evaluate(snap))
	})
}

func TestEnforceAdmins(t *testing.T) {
	rule := EnforceAdmins{}

	t.Run("administrators exempt", func(t *testing.T) {
		findings := rule.Evaluate(protectedSnap(&snapshot.BranchProtection{}))
		require.Len(t, findings, 1)
		assert.Equal(t, "enforce-admins", findings[0].RuleID)
	})

	t.Run("administrators covered", func(t *testing.T) {
		snap := protectedSnap(&snapshot.BranchProtection{EnforceAdmins: true})
		assert.Empty(t, rule.Evaluate(snap))
	})
}

func TestNoBranchDeletion(t *testing.T) {
	rule := NoBranchDeletion{}

	t.Run("deletion allowed", func(t *testing.T) {
		findings := rule.Evaluate(protectedSnap(&snapshot.BranchProtection{AllowDeletions: true}))
		require.Len(t, findings, 1)
		assert.Equal(t, "no-branch-deletion", findings[0].RuleID)
	})

	t.Run("deletion blocked", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(protectedSnap(&snapshot.BranchProtection{})))
	})
}

func TestStatusChecksDefined(t *testing.T) {
	rule := StatusChecksDefined{}

	t.Run("no required checks", func(t *testing.T) {
		findings := rule.Evaluate(protectedSnap(&snapshot.BranchProtection{}))
		require.Len(t, findings, 1)
		assert.Equal(t, "status-checks-defined", findings[0].RuleID)
	})

	t.Run("at least one required check", func(t *testing.T) {
		snap := protectedSnap(&snapshot.BranchProtection{RequiredStatusChecks: []string{"ci/test"}})
		assert.Empty(t, rule.Evaluate(snap))
	})
}
