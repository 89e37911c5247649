package github

import (
	"context"
	"errors"
	"iter"

	"ghaudit/internal/snapshot"

	"github.com/google/go-github/v81/github"
	"golang.org/x/sync/errgroup"
)

const listPageSize = 100

// Snapshot fully hydrates one repository: core metadata plus the sub-resources
// rules depend on (default-branch protection, readme presence, issue labels).
// Sub-resources are fetched concurrently; each writes a distinct snapshot
// field, so no further synchronization is needed.
func (c *Client) Snapshot(ctx context.Context, ref snapshot.Ref) (*snapshot.Snapshot, error) {
	var repo *github.Repository
	err := c.do(ctx, "get repository "+ref.String(), func() (*github.Response, error) {
		r, resp, err := c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
		repo = r
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	snap := baseSnapshot(ref, repo)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		has, err := c.hasReadme(gctx, ref)
		if err != nil {
			return err
		}
		snap.HasReadme = has
		return nil
	})
	g.Go(func() error {
		prot, err := c.branchProtection(gctx, ref, snap.DefaultBranch)
		if err != nil {
			return err
		}
		snap.Protection = prot
		return nil
	})
	g.Go(func() error {
		labels, err := c.issueLabels(gctx, ref)
		if err != nil {
			return err
		}
		snap.Labels = labels
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

// ListOwned lazily walks every page of the authenticated user's repositories.
// The sequence is finite and non-restartable; activeOnly skips archived repos
// and forks. Errors terminate the sequence after being yielded once.
func (c *Client) ListOwned(ctx context.Context, activeOnly bool) iter.Seq2[snapshot.Ref, error] {
	return func(yield func(snapshot.Ref, error) bool) {
		opts := &github.RepositoryListByAuthenticatedUserOptions{
			ListOptions: github.ListOptions{PerPage: listPageSize},
			Visibility:  "all",
			Affiliation: "owner",
		}
		for {
			var (
				repos []*github.Repository
				page  *github.Response
			)
			err := c.do(ctx, "list repositories", func() (*github.Response, error) {
				r, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
				repos, page = r, resp
				return resp, err
			})
			if err != nil {
				yield(snapshot.Ref{}, err)
				return
			}
			for _, repo := range repos {
				if activeOnly && (repo.GetArchived() || repo.GetFork()) {
					continue
				}
				ref := snapshot.Ref{Owner: repo.GetOwner().GetLogin(), Name: repo.GetName()}
				if !yield(ref, nil) {
					return
				}
			}
			if page == nil || page.NextPage == 0 {
				return
			}
			opts.Page = page.NextPage
		}
	}
}

func baseSnapshot(ref snapshot.Ref, repo *github.Repository) *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		Ref:            ref,
		Description:    repo.GetDescription(),
		Visibility:     repo.GetVisibility(),
		Private:        repo.GetPrivate(),
		Archived:       repo.GetArchived(),
		DefaultBranch:  repo.GetDefaultBranch(),
		Topics:         repo.Topics,
		HasIssues:      repo.GetHasIssues(),
		HasProjects:    repo.GetHasProjects(),
		HasWiki:        repo.GetHasWiki(),
		HasDiscussions: repo.GetHasDiscussions(),

		DeleteBranchOnMerge: repo.GetDeleteBranchOnMerge(),
		AllowMergeCommit:    repo.GetAllowMergeCommit(),
	}
	if lic := repo.GetLicense(); lic != nil {
		snap.License = &snapshot.License{SPDXID: lic.GetSPDXID(), Name: lic.GetName()}
	}
	return snap
}

func (c *Client) hasReadme(ctx context.Context, ref snapshot.Ref) (bool, error) {
	err := c.do(ctx, "get readme "+ref.String(), func() (*github.Response, error) {
		_, resp, err := c.gh.Repositories.GetReadme(ctx, ref.Owner, ref.Name, nil)
		return resp, err
	})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) branchProtection(ctx context.Context, ref snapshot.Ref, branch string) (*snapshot.BranchProtection, error) {
	if branch == "" {
		// Empty repository; nothing to protect.
		return nil, nil
	}

	var prot *github.Protection
	err := c.do(ctx, "get branch protection "+ref.String(), func() (*github.Response, error) {
		p, resp, err := c.gh.Repositories.GetBranchProtection(ctx, ref.Owner, ref.Name, branch)
		prot = p
		return resp, err
	})
	if errors.Is(err, github.ErrBranchNotProtected) || errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if prot == nil {
		return nil, nil
	}

	out := &snapshot.BranchProtection{}
	if reviews := prot.GetRequiredPullRequestReviews(); reviews != nil {
		out.RequirePullRequest = true
		out.RequiredReviews = reviews.RequiredApprovingReviewCount
	}
	if admins := prot.GetEnforceAdmins(); admins != nil {
		out.EnforceAdmins = admins.Enabled
	}
	if force := prot.GetAllowForcePushes(); force != nil {
		out.AllowForcePush = force.Enabled
	}
	if del := prot.GetAllowDeletions(); del != nil {
		out.AllowDeletions = del.Enabled
	}
	if checks := prot.GetRequiredStatusChecks(); checks != nil && checks.Contexts != nil {
		out.RequiredStatusChecks = append(out.RequiredStatusChecks, *checks.Contexts...)
	}
	return out, nil
}

func (c *Client) issueLabels(ctx context.Context, ref snapshot.Ref) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: listPageSize}
	for {
		var (
			labels []*github.Label
			page   *github.Response
		)
		err := c.do(ctx, "list labels "+ref.String(), func() (*github.Response, error) {
			l, resp, err := c.gh.Issues.ListLabels(ctx, ref.Owner, ref.Name, opts)
			labels, page = l, resp
			return resp, err
		})
		if errors.Is(err, ErrNotFound) {
			// Issues disabled.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		for _, l := range labels {
			names = append(names, l.GetName())
		}
		if page == nil || page.NextPage == 0 {
			return names, nil
		}
		opts.Page = page.NextPage
	}
}
