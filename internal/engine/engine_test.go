package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned snapshots and counts fetch attempts.
type fakeSource struct {
	snaps   map[snapshot.Ref]*snapshot.Snapshot
	errs    map[snapshot.Ref]error
	fetches atomic.Int32
	delay   time.Duration
}

func (f *fakeSource) Snapshot(ctx context.Context, ref snapshot.Ref) (*snapshot.Snapshot, error) {
	f.fetches.Add(1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if err, ok := f.errs[ref]; ok {
		return nil, err
	}
	if snap, ok := f.snaps[ref]; ok {
		return snap, nil
	}
	return &snapshot.Snapshot{Ref: ref}, nil
}

// alwaysFail flags every repository it sees.
type alwaysFail struct {
	id string
}

func (r alwaysFail) ID() string               { return r.id }
func (r alwaysFail) Severity() rules.Severity { return rules.SeverityError }
func (r alwaysFail) Description() string      { return "always fails" }

func (r alwaysFail) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	return []rules.Finding{rules.Violation(r, snap.Ref, "violation")}
}

// panicky panics on one specific repository and passes everywhere else.
type panicky struct {
	id     string
	target snapshot.Ref
}

func (r panicky) ID() string               { return r.id }
func (r panicky) Severity() rules.Severity { return rules.SeverityError }
func (r panicky) Description() string      { return "panics on its target" }

func (r panicky) Evaluate(snap *snapshot.Snapshot) []rules.Finding {
	if snap.Ref == r.target {
		panic("boom")
	}
	return nil
}

func refNames(n int) []snapshot.Ref {
	refs := make([]snapshot.Ref, n)
	for i := range refs {
		refs[i] = snapshot.Ref{Owner: "acme", Name: fmt.Sprintf("repo-%02d", i)}
	}
	return refs
}

func TestRunDeterministicOrdering(t *testing.T) {
	refs := refNames(8)
	source := &fakeSource{}
	ruleSet := []rules.Rule{alwaysFail{id: "rule-a"}, alwaysFail{id: "rule-b"}}

	eng := New(source, WithConcurrency(4))
	result := eng.Run(context.Background(), refs, ruleSet)

	require.Len(t, result.Findings, 16)
	for i, f := range result.Findings {
		assert.Equal(t, refs[i/2], f.Repo, "findings must follow input repo order")
		if i%2 == 0 {
			assert.Equal(t, "rule-a", f.RuleID, "rule order within a repo must follow registration order")
		} else {
			assert.Equal(t, "rule-b", f.RuleID)
		}
	}
}

func TestRunIsolatesFetchFailures(t *testing.T) {
	refs := []snapshot.Ref{
		{Owner: "acme", Name: "good-one"},
		{Owner: "acme", Name: "private-repo"},
		{Owner: "acme", Name: "good-two"},
	}
	forbidden := errors.New("forbidden: insufficient scope")
	source := &fakeSource{errs: map[snapshot.Ref]error{refs[1]: forbidden}}

	eng := New(source)
	result := eng.Run(context.Background(), refs, []rules.Rule{alwaysFail{id: "rule-a"}})

	require.Len(t, result.RepoErrors, 1)
	assert.Equal(t, refs[1], result.RepoErrors[0].Repo)
	assert.ErrorIs(t, result.RepoErrors[0].Err, forbidden)

	// The failed repo contributes no findings; the other two still do.
	require.Len(t, result.Findings, 2)
	assert.Equal(t, refs[0], result.Findings[0].Repo)
	assert.Equal(t, refs[2], result.Findings[1].Repo)
}

func TestRunIsolatesPanickingRule(t *testing.T) {
	refs := refNames(3)
	source := &fakeSource{}
	ruleSet := []rules.Rule{
		alwaysFail{id: "before"},
		panicky{id: "defective", target: refs[1]},
		alwaysFail{id: "after"},
	}

	eng := New(source)
	result := eng.Run(context.Background(), refs, ruleSet)

	require.Len(t, result.RuleErrors, 1)
	assert.Equal(t, refs[1], result.RuleErrors[0].Repo)
	assert.Equal(t, "defective", result.RuleErrors[0].RuleID)
	assert.Contains(t, result.RuleErrors[0].Err.Error(), "panicked")

	// The panic must not suppress the other rules on the same repo, nor any
	// rule on other repos: 3 repos x 2 passing rules.
	assert.Len(t, result.Findings, 6)
}

func TestRunAccountsForEveryRepoExactlyOnce(t *testing.T) {
	refs := refNames(10)
	source := &fakeSource{errs: map[snapshot.Ref]error{
		refs[2]: errors.New("not found"),
		refs[7]: errors.New("forbidden"),
	}}

	eng := New(source, WithConcurrency(3))
	result := eng.Run(context.Background(), refs, []rules.Rule{alwaysFail{id: "rule-a"}})

	failed := make(map[snapshot.Ref]int)
	for _, re := range result.RepoErrors {
		failed[re.Repo]++
	}
	evaluated := make(map[snapshot.Ref]int)
	for _, f := range result.Findings {
		evaluated[f.Repo]++
	}

	for _, ref := range refs {
		_, isFailed := failed[ref]
		_, isEvaluated := evaluated[ref]
		assert.True(t, isFailed != isEvaluated, "repo %s must be exactly one of failed/evaluated", ref)
		assert.LessOrEqual(t, failed[ref], 1, "repo %s must fail at most once", ref)
	}
	assert.Len(t, result.RepoErrors, 2)
	assert.Len(t, result.Findings, 8)
}

func TestRunCancelledBeforeStart(t *testing.T) {
	refs := refNames(5)
	source := &fakeSource{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(source)
	result := eng.Run(ctx, refs, []rules.Rule{alwaysFail{id: "rule-a"}})

	// Nothing fetched, but every repo is still accounted for.
	assert.Equal(t, int32(0), source.fetches.Load())
	assert.Empty(t, result.Findings)
	require.Len(t, result.RepoErrors, 5)
	for _, re := range result.RepoErrors {
		assert.ErrorIs(t, re.Err, context.Canceled)
	}
}

func TestRunStopsIssuingFetchesOnCancel(t *testing.T) {
	refs := refNames(20)
	source := &fakeSource{delay: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	eng := New(source, WithConcurrency(2))
	result := eng.Run(ctx, refs, []rules.Rule{alwaysFail{id: "rule-a"}})

	assert.Less(t, source.fetches.Load(), int32(len(refs)), "cancellation must stop new fetches")

	accounted := len(result.RepoErrors)
	seen := make(map[snapshot.Ref]struct{})
	for _, f := range result.Findings {
		seen[f.Repo] = struct{}{}
	}
	accounted += len(seen)
	assert.Equal(t, len(refs), accounted, "every repo accounted for even on cancellation")
}

func TestUnknownRuleFailsBeforeAnyFetch(t *testing.T) {
	source := &fakeSource{}

	_, err := rules.Filter([]string{"does-not-exist"})
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrUnknownRule)
	assert.Equal(t, int32(0), source.fetches.Load(), "filter failure must precede all fetches")
}
