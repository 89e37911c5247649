package cli

import (
	"fmt"
	"io"

	"ghaudit/internal/rules"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rulesQuiet bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available rules",
	Long: `List all rules currently registered in this build.

Rules are listed in evaluation order.

Examples:
  # Full listing
  ghaudit rules

  # Only rule IDs, one per line
  ghaudit rules -q
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, r := range rules.All() {
			if rulesQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), r.ID())
			} else {
				printRule(cmd.OutOrStdout(), r)
			}
		}
		return nil
	},
}

func printRule(w io.Writer, r rules.Rule) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s", r.ID())
	fmt.Fprintf(w, " (%s)\n", r.Severity())
	fmt.Fprintf(w, "  %s\n", r.Description())
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().BoolVarP(&rulesQuiet, "quiet", "q", false, "Only print rule IDs")
}
