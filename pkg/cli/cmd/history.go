package cmd

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/flightdeck-dev/flightdeck/pkg/cli/format"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

var (
	historyBundle string
	historyLimit  int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past pipeline runs",
	Long: `List persisted run records, newest first.

For example:
  flightdeck history
  flightdeck history --bundle com.acme.app --limit 10`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyBundle, "bundle", "", "Only show runs for this bundle identifier")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runStore, closeStore, err := openRunStore(cfg.DataDir, false)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := runStore.ListRuns(cmd.Context(), historyBundle)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		format.Dim("no runs recorded yet")
		return nil
	}
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}

	rows := pterm.TableData{
		{"ID", "BUNDLE", "TRIGGER", "STAGE", "BUILD", "OUTCOME", "FINISHED"},
	}
	for _, r := range records {
		rows = append(rows, []string{
			shortID(r.ID),
			r.BundleID,
			string(r.Trigger),
			stageList(r.Stages),
			buildColumn(r.BuildNumber),
			string(r.Outcome),
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func stageList(stages []types.StageName) string {
	if len(stages) == 0 {
		return "-"
	}
	out := ""
	for i, s := range stages {
		if i > 0 {
			out += ","
		}
		out += string(s)
	}
	return out
}

func buildColumn(n int64) string {
	if n == 0 {
		return "-"
	}
	return strconv.FormatInt(n, 10)
}
