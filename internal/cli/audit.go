package cli

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"ghaudit/internal/engine"
	gh "ghaudit/internal/github"
	"ghaudit/internal/logging"
	"ghaudit/internal/report"
	"ghaudit/internal/rules"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exitCode carries the audit outcome out of cobra's Execute. Errors returned
// from runAudit are fatal (exit 3); everything else lands here.
var exitCode int

func runAudit(cmd *cobra.Command, args []string) error {
	cfg.Repos = append(cfg.Repos, args...)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Rule selection fails before any network call.
	selected, err := rules.Filter(cfg.Rules)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	token, err := gh.ResolveToken(ctx, cfg.Token)
	if err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("a GitHub token is required (use --github-token, set GITHUB_TOKEN, or run 'gh auth login')")
	}

	client, err := gh.NewClient(ctx, token,
		gh.WithLogger(log),
		gh.WithQuotaGate(gh.NewQuotaGate(cfg.MaxRateLimitWait)),
	)
	if err != nil {
		return err
	}
	if err := client.Verify(ctx); err != nil {
		return err
	}

	refs, err := engine.ResolveRefs(ctx, client, cfg.Repos, cfg.Active)
	if err != nil {
		return err
	}
	log.Debug("resolved audit targets",
		zap.Int("repositories", len(refs)),
		zap.Int("rules", len(selected)))

	eng := engine.New(client,
		engine.WithLogger(log),
		engine.WithConcurrency(cfg.Concurrency),
	)
	result := eng.Run(ctx, refs, selected)

	report.NewConsole(cmd.OutOrStdout()).Print(result, report.Format(cfg.Format))

	switch {
	case result.HasErrors():
		exitCode = 2
	case result.HasFindings():
		exitCode = 1
	default:
		exitCode = 0
	}
	return nil
}
