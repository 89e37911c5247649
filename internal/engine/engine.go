// Package engine orchestrates an audit pass: fetch each repository's
// snapshot, evaluate every selected rule against it, and collect findings
// with per-repository and per-rule fault isolation.
package engine

import (
	"context"
	"fmt"

	"ghaudit/internal/rules"
	"ghaudit/internal/snapshot"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// SnapshotSource fetches one repository's snapshot. Implemented by the GitHub
// metadata client; faked in tests.
type SnapshotSource interface {
	Snapshot(ctx context.Context, ref snapshot.Ref) (*snapshot.Snapshot, error)
}

type Engine struct {
	source      SnapshotSource
	log         *zap.Logger
	concurrency int
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func New(source SnapshotSource, opts ...Option) *Engine {
	e := &Engine{
		source:      source,
		log:         zap.NewNop(),
		concurrency: DefaultConcurrency,
	}
	for _, apply := range opts {
		if apply != nil {
			apply(e)
		}
	}
	return e
}

// repoOutcome is the complete result for one repository, filled by exactly
// one worker and read only after the pool drains.
type repoOutcome struct {
	findings []rules.Finding
	ruleErrs []RuleError
	repoErr  *RepoError
}

// Run audits every repository in refs with the given rules.
//
// One bad repository never aborts the batch: fetch failures become RepoErrors
// and the run continues. A rule that panics is recorded as a RuleError scoped
// to that (repository, rule) pair without suppressing other rules. On
// cancellation no new fetches start; repositories never attempted are
// recorded as RepoErrors so the accounting invariant holds, and whatever was
// accumulated is returned.
func (e *Engine) Run(ctx context.Context, refs []snapshot.Ref, ruleSet []rules.Rule) *RunResult {
	outcomes := make([]repoOutcome, len(refs))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	next := 0
	for ; next < len(refs); next++ {
		if ctx.Err() != nil {
			break
		}
		i := next
		ref := refs[next]
		g.Go(func() error {
			outcomes[i] = e.processRepo(ctx, ref, ruleSet)
			return nil
		})
	}
	_ = g.Wait()

	// Refs never scheduled because of cancellation.
	for i := next; i < len(refs); i++ {
		outcomes[i] = repoOutcome{repoErr: &RepoError{Repo: refs[i], Err: ctx.Err()}}
	}

	// Assemble in input order regardless of completion order.
	result := &RunResult{}
	for _, out := range outcomes {
		if out.repoErr != nil {
			result.RepoErrors = append(result.RepoErrors, *out.repoErr)
			continue
		}
		result.Findings = append(result.Findings, out.findings...)
		result.RuleErrors = append(result.RuleErrors, out.ruleErrs...)
	}
	return result
}

func (e *Engine) processRepo(ctx context.Context, ref snapshot.Ref, ruleSet []rules.Rule) repoOutcome {
	if err := ctx.Err(); err != nil {
		return repoOutcome{repoErr: &RepoError{Repo: ref, Err: err}}
	}

	snap, err := e.source.Snapshot(ctx, ref)
	if err != nil {
		e.log.Warn("snapshot fetch failed", zap.String("repo", ref.String()), zap.Error(err))
		return repoOutcome{repoErr: &RepoError{Repo: ref, Err: err}}
	}

	var out repoOutcome
	for _, rule := range ruleSet {
		findings, err := evaluate(rule, snap)
		if err != nil {
			e.log.Warn("rule evaluation failed",
				zap.String("repo", ref.String()),
				zap.String("rule", rule.ID()),
				zap.Error(err))
			out.ruleErrs = append(out.ruleErrs, RuleError{Repo: ref, RuleID: rule.ID(), Err: err})
			continue
		}
		out.findings = append(out.findings, findings...)
	}
	return out
}

// evaluate shields the run from defective rules: a panic inside Evaluate
// becomes an error scoped to this (repository, rule) pair.
func evaluate(rule rules.Rule, snap *snapshot.Snapshot) (findings []rules.Finding, err error) {
	defer func() {
		if p := recover(); p != nil {
			findings = nil
			err = fmt.Errorf("rule %s panicked: %v", rule.ID(), p)
		}
	}()
	return rule.Evaluate(snap), nil
}
