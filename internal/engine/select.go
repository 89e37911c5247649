package engine

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"ghaudit/internal/snapshot"
)

// RepoLister enumerates the authenticated user's repositories. Implemented by
// the GitHub metadata client.
type RepoLister interface {
	ListOwned(ctx context.Context, activeOnly bool) iter.Seq2[snapshot.Ref, error]
}

// ResolveRefs builds the target set: explicit owner/name identifiers first,
// then (when active is set) every non-archived, non-fork repository owned by
// the authenticated user. Duplicates collapse to the first occurrence so the
// accounting invariant can treat refs as unique.
func ResolveRefs(ctx context.Context, lister RepoLister, repoArgs []string, active bool) ([]snapshot.Ref, error) {
	var refs []snapshot.Ref

	for _, arg := range repoArgs {
		ref, err := ParseRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if active {
		for ref, err := range lister.ListOwned(ctx, true) {
			if err != nil {
				return nil, fmt.Errorf("listing repositories: %w", err)
			}
			refs = append(refs, ref)
		}
	}

	return dedupeRefs(refs), nil
}

// ParseRef accepts owner/name plus the common URL spellings:
//
//	https://github.com/owner/repo[.git]
//	github.com/owner/repo
//	git@github.com:owner/repo.git
func ParseRef(sel string) (snapshot.Ref, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return snapshot.Ref{}, fmt.Errorf("empty repository identifier")
	}

	if strings.HasPrefix(sel, "github.com/") || strings.HasPrefix(sel, "www.github.com/") {
		sel = "https://" + sel
	}

	if rest, ok := strings.CutPrefix(sel, "git@github.com:"); ok {
		return refFromPath(sel, rest)
	}

	if strings.HasPrefix(sel, "http://") || strings.HasPrefix(sel, "https://") {
		u, err := url.Parse(sel)
		if err != nil {
			return snapshot.Ref{}, fmt.Errorf("invalid repository identifier %q: expected owner/name", sel)
		}
		host := strings.ToLower(u.Hostname())
		if host != "github.com" && host != "www.github.com" {
			return snapshot.Ref{}, fmt.Errorf("invalid repository identifier %q: only github.com URLs are supported", sel)
		}
		return refFromPath(sel, u.Path)
	}

	return refFromPath(sel, sel)
}

func refFromPath(original, path string) (snapshot.Ref, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return snapshot.Ref{}, fmt.Errorf("invalid repository identifier %q: expected owner/name", original)
	}
	return snapshot.Ref{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}

func dedupeRefs(refs []snapshot.Ref) []snapshot.Ref {
	if len(refs) <= 1 {
		return refs
	}
	seen := make(map[snapshot.Ref]struct{}, len(refs))
	out := refs[:0]
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
