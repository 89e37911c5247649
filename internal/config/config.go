package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// Repos is an explicit list of repositories to audit, as OWNER/REPO or a
	// GitHub URL (positional arguments). Values may also be provided as
	// comma-separated lists.
	Repos []string

	// Active audits all non-archived, non-fork repositories owned by the
	// authenticated user, in addition to any explicit Repos (see --active).
	Active bool

	// Token is the GitHub access token (see --github-token). If empty, the
	// token is resolved from GITHUB_TOKEN and then from GitHub CLI
	// authentication.
	Token string

	// Rules restricts the audit to the named rule IDs (see --rule).
	// Empty means all registered rules. Values may be provided as repeated
	// flags and/or comma-separated lists.
	Rules []string

	// Format selects the console grouping (see --format).
	// Required. Allowed values: repo, rule.
	Format string

	// Verbose enables debug logging of every GitHub API call (see --verbose).
	Verbose bool

	// Concurrency controls how many repositories are audited in parallel
	// (see --concurrency). Must be >= 1.
	Concurrency int

	// Timeout is the global deadline for the whole run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// MaxRateLimitWait bounds how long a single request may sleep waiting for
	// the API rate limit to reset (see --max-rate-limit-wait). Waits beyond
	// this bound abort the run.
	MaxRateLimitWait time.Duration
}

func New() *Config {
	return &Config{
		Concurrency:      4,
		Timeout:          30 * time.Minute,
		MaxRateLimitWait: 5 * time.Minute,
	}
}

func (c *Config) Validate() error {
	c.Repos = splitCommaList(c.Repos)
	c.Rules = splitCommaList(c.Rules)

	if len(c.Repos) == 0 && !c.Active {
		return errors.New("provide at least one REPOSITORY argument or use --active")
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		return errors.New("--format is required (repo or rule)")
	}
	if c.Format != "repo" && c.Format != "rule" {
		return fmt.Errorf("unsupported --format: %s (must be one of: repo, rule)", c.Format)
	}

	if c.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.MaxRateLimitWait <= 0 {
		return errors.New("--max-rate-limit-wait must be > 0")
	}

	return nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
