package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/backlog/internal/wire"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the backlog dashboard",
	Long:  "Counts by status and type, plus in-progress and blocked tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")

		summary, err := wire.SummaryService().GetBacklogSummary(context.Background(), project)
		if err != nil {
			return fmt.Errorf("failed to get backlog summary: %w", err)
		}

		scope := "all projects"
		if project != "" {
			scope = project
		}
		fmt.Printf("Backlog summary (%s): %d task(s)\n\n", scope, summary.Total)

		fmt.Println("By status:")
		for _, status := range []string{"backlog", "ready", "in_progress", "blocked", "done"} {
			if count := summary.ByStatus[status]; count > 0 {
				fmt.Printf("  %s %d\n", statusColor(status).Sprintf("%-11s", status), count)
			}
		}

		if len(summary.ByType) > 0 {
			fmt.Println("\nBy type:")
			for _, taskType := range []string{"task", "bug", "spike", "epic"} {
				if count := summary.ByType[taskType]; count > 0 {
					fmt.Printf("  %-11s %d\n", taskType, count)
				}
			}
		}

		if len(summary.InProgress) > 0 {
			fmt.Printf("\n%s\n", color.New(color.FgCyan).Sprint("In progress:"))
			for _, t := range summary.InProgress {
				fmt.Printf("  %s  P%d  %s\n", t.TaskID, t.Priority, t.Name)
			}
		}

		if len(summary.Blocked) > 0 {
			fmt.Printf("\n%s\n", color.New(color.FgRed).Sprint("Blocked:"))
			for _, t := range summary.Blocked {
				fmt.Printf("  %s  P%d  %s\n", t.TaskID, t.Priority, t.Name)
			}
		}

		return nil
	},
}

func init() {
	summaryCmd.Flags().StringP("project", "P", "", "Filter by project prefix")
}

// SummaryCmd returns the summary command
func SummaryCmd() *cobra.Command {
	return summaryCmd
}
