package cli

import (
	"fmt"
	"os"

	"ghaudit/internal/config"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "ghaudit [REPOSITORY]...",
	Short: "Audit GitHub repositories against a fixed set of hygiene rules",
	Long: `ghaudit audits GitHub repositories via API and reports rule violations.

ghaudit is read-only: it inspects repository metadata and settings and never
mutates state. Repositories may be given as OWNER/REPO or as GitHub URLs.

Authentication:
  ghaudit uses a GitHub access token. Sources, in order:
  1) --github-token flag
  2) GITHUB_TOKEN environment variable
  3) GitHub CLI (gh) authentication via gh auth token (if gh is logged in)

Exit codes:
  0 = clean run, no violations
  1 = violations found
  2 = partial failure (some repositories or rules errored)
  3 = fatal error (audit did not run)

Examples:
  # Audit two repositories, grouped by repository
  ghaudit --format repo acme/widgets acme/gadgets

  # Audit everything you own that is not archived or a fork
  ghaudit --format rule --active

  # Run a single rule
  ghaudit --format repo --rule license-exists acme/widgets

  # List rules
  ghaudit rules

  # Print build info
  ghaudit version`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			return cmd.Help()
		}
		return runAudit(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging (prints every GitHub API call)")

	rootCmd.Flags().BoolVar(&cfg.Active, "active", false, "Also audit all non-archived, non-fork repositories you own")
	rootCmd.Flags().StringVar(&cfg.Token, "github-token", "", "GitHub access token (default: GITHUB_TOKEN, then gh auth token)")
	rootCmd.Flags().StringSliceVar(&cfg.Rules, "rule", nil, "Run only the named rule(s) (repeatable; comma-separated accepted)")
	rootCmd.Flags().StringVar(&cfg.Format, "format", "", "Output grouping: repo|rule (required)")
	rootCmd.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrent repository workers")
	rootCmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Global timeout for the run")
	rootCmd.Flags().DurationVar(&cfg.MaxRateLimitWait, "max-rate-limit-wait", cfg.MaxRateLimitWait, "Longest a request may wait for the API rate limit to reset before aborting")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	return exitCode
}
