package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/backlog/internal/cli"
	"github.com/example/backlog/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "backlog",
		Short:   "Backlog - single-task work queue manager",
		Version: version.String(),
		Long: `Backlog manages projects and tasks with dependency-aware scheduling.
List operations return summaries only; full context is loaded one task at a
time to keep agents focused on a single unit of work.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.SummaryCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
