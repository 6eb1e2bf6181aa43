package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects (task namespaces)",
	Long:  "Create and list projects. Each project owns a prefix used in task IDs.",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]
		prefix, _ := cmd.Flags().GetString("prefix")
		description, _ := cmd.Flags().GetString("description")

		resp, err := wire.ProjectService().CreateProject(ctx, primary.CreateProjectRequest{
			Name:        name,
			Prefix:      prefix,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("✓ Created project %s (%s): %s\n", resp.ID, resp.Prefix, name)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := wire.ProjectService().ListProjects(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		fmt.Printf("Found %d project(s):\n\n", len(projects))
		for _, p := range projects {
			fmt.Printf("  %s  [%s]  %s\n", p.ID, p.Prefix, p.Name)
			if p.Description != "" {
				fmt.Printf("        %s\n", p.Description)
			}
		}
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringP("prefix", "p", "", "Short ID prefix, e.g. JC (required)")
	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")
	projectCreateCmd.MarkFlagRequired("prefix")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
}

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	return projectCmd
}
