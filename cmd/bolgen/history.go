package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jblick1327/shipping/internal/application"
)

var historyFlags struct {
	limit  int
	asJSON bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generation runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "number of runs to show")
	historyCmd.Flags().BoolVar(&historyFlags.asJSON, "json", false, "print the runs as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.config.History.Path == "" {
		return fmt.Errorf("run history is disabled: set history.path in the config")
	}

	summaries, err := rt.service.RecentRuns(cmd.Context(), application.RecentRunsQuery{Limit: historyFlags.limit})
	if err != nil {
		return err
	}

	if historyFlags.asJSON {
		return printJSON(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range summaries {
		line := fmt.Sprintf("%s  %-6s  %-12s  %s",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Status,
			run.CarrierName,
			strings.Join(run.OrderNumbers, ", "))
		if run.Status == "failed" {
			line += fmt.Sprintf("  [%s: %s]", run.FailureStage, run.FailureReason)
		} else if len(run.FailedOrders) > 0 {
			line += fmt.Sprintf("  [updates failed: %s]", strings.Join(run.FailedOrders, ", "))
		}
		fmt.Println(line)
	}
	return nil
}
