package github

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ResolveToken resolves a GitHub access token without ever printing it.
//
// Precedence:
//  1. provided (the --github-token flag)
//  2. GITHUB_TOKEN environment variable
//  3. GitHub CLI: `gh auth token`
//
// An empty result with a nil error means no token could be found.
func ResolveToken(ctx context.Context, provided string) (string, error) {
	if tok := strings.TrimSpace(provided); tok != "" {
		return tok, nil
	}
	if tok := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); tok != "" {
		return tok, nil
	}
	return tokenFromGitHubCLI(ctx)
}

func tokenFromGitHubCLI(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", nil
	}

	// Bounded so a broken gh config or credential helper can't hang the run.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, "gh", "auth", "token", "-h", "github.com").Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// gh installed but not logged in, or otherwise failing: treat as no
		// token rather than surfacing its output.
		return "", nil
	}

	tok := strings.TrimSpace(string(out))
	if strings.ContainsAny(tok, " \t\n\r") {
		return "", nil
	}
	return tok, nil
}
