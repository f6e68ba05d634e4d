package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightdeck-dev/flightdeck/pkg/cli/format"
	"github.com/flightdeck-dev/flightdeck/pkg/render"
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint <workflow.yml>",
	Short: "Check a workflow definition",
	Long: `Check a rendered workflow file: trigger gates, concurrency settings,
deploy secret references, and the cron expression if a schedule is set.

For example:
  flightdeck lint .github/workflows/release.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	findings, err := render.LintWorkflow(data)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		format.Success("%s: no problems found", args[0])
		return nil
	}

	for _, f := range findings {
		format.Warning("%s", f)
	}
	return fmt.Errorf("%d problem(s) in %s", len(findings), args[0])
}
