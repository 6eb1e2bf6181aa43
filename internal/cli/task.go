package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/wire"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks (atomic units of work)",
	Long:  "Create, list, inspect, complete, and manage tasks in the backlog",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]
		project, _ := cmd.Flags().GetString("project")
		taskType, _ := cmd.Flags().GetString("type")
		action, _ := cmd.Flags().GetString("action")
		priority, _ := cmd.Flags().GetInt("priority")
		description, _ := cmd.Flags().GetString("description")
		dependsOn, _ := cmd.Flags().GetStringSlice("depends-on")
		parentID, _ := cmd.Flags().GetString("parent")
		model, _ := cmd.Flags().GetString("model")
		verify, _ := cmd.Flags().GetStringSlice("verify")
		doneCriteria, _ := cmd.Flags().GetStringSlice("done-criteria")
		filesExclusive, _ := cmd.Flags().GetStringSlice("files-exclusive")
		filesReadonly, _ := cmd.Flags().GetStringSlice("files-readonly")
		filesForbidden, _ := cmd.Flags().GetStringSlice("files-forbidden")

		resp, err := wire.TaskService().CreateTask(ctx, primary.CreateTaskRequest{
			Project:        project,
			Type:           taskType,
			Name:           name,
			Action:         action,
			Priority:       priority,
			Description:    description,
			FilesExclusive: filesExclusive,
			FilesReadonly:  filesReadonly,
			FilesForbidden: filesForbidden,
			Verify:         verify,
			DoneCriteria:   doneCriteria,
			DependsOn:      dependsOn,
			ParentID:       parentID,
			SuggestedModel: model,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("✓ Created task %s: %s\n", resp.TaskID, name)
		fmt.Printf("  Status: %s\n", resp.Status)
		if len(dependsOn) > 0 {
			fmt.Printf("  Depends on: %s\n", strings.Join(dependsOn, ", "))
		}
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List task summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetString("status")
		taskType, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")

		tasks, err := wire.TaskService().ListTasks(ctx, primary.ListTasksRequest{
			Project: project,
			Status:  status,
			Type:    taskType,
			Limit:   limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("Found %d task(s):\n\n", len(tasks))
		for _, task := range tasks {
			fmt.Printf("  %s %s  P%d  %s\n",
				statusColor(task.Status).Sprintf("%-11s", task.Status),
				task.TaskID, task.Priority, task.Name)
		}
		fmt.Println("\nSummaries only. Use 'backlog task show <id>' for full context.")
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show the full context of one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := wire.TaskService().GetTask(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		printTask(task)
		return nil
	},
}

var taskNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the highest-priority ready task",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		taskType, _ := cmd.Flags().GetString("type")

		task, err := wire.TaskService().GetNextTask(context.Background(), primary.NextTaskRequest{
			Project: project,
			Type:    taskType,
		})
		if err != nil {
			return fmt.Errorf("failed to get next task: %w", err)
		}
		if task == nil {
			fmt.Println("No ready tasks found.")
			return nil
		}

		printTask(task)
		return nil
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Update task status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		needs, _ := cmd.Flags().GetString("needs")

		err := wire.TaskService().UpdateTaskStatus(context.Background(), primary.UpdateStatusRequest{
			TaskID:        args[0],
			Status:        args[1],
			BlockerReason: reason,
			BlockerNeeds:  needs,
		})
		if err != nil {
			return fmt.Errorf("failed to update task status: %w", err)
		}

		fmt.Printf("✓ Task %s → %s\n", args[0], strings.ToLower(args[1]))
		return nil
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task done and unblock dependents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, _ := cmd.Flags().GetString("summary")
		commits, _ := cmd.Flags().GetStringSlice("commit")

		unblocked, err := wire.TaskService().CompleteTask(context.Background(), primary.CompleteTaskRequest{
			TaskID:  args[0],
			Summary: summary,
			Commits: commits,
		})
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("✓ Completed task %s\n", args[0])
		for _, id := range unblocked {
			fmt.Printf("  Unblocked: %s\n", id)
		}
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.TaskService().DeleteTask(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Printf("✓ Deleted task %s\n", args[0])
		return nil
	},
}

// printTask renders the full-detail view of one task to stdout.
func printTask(task *primary.Task) {
	renderTask(os.Stdout, task)
}

// renderTask writes the full-detail view of one task. Every persisted
// field is shown; optional fields are skipped only when empty.
func renderTask(w io.Writer, task *primary.Task) {
	fmt.Fprintf(w, "%s  %s\n", task.TaskID, task.Name)
	fmt.Fprintf(w, "  Status:   %s\n", statusColor(task.Status).Sprint(task.Status))
	fmt.Fprintf(w, "  Type:     %s    Priority: P%d    Project: %s\n", task.Type, task.Priority, task.ProjectPrefix)
	if task.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", task.Description)
	}
	fmt.Fprintf(w, "  Action:   %s\n", task.Action)
	printList(w, "Files (exclusive)", task.FilesExclusive)
	printList(w, "Files (readonly)", task.FilesReadonly)
	printList(w, "Files (forbidden)", task.FilesForbidden)
	printList(w, "Verify", task.Verify)
	printList(w, "Done criteria", task.DoneCriteria)
	printList(w, "Depends on", task.DependsOn)
	if task.ParentID != "" {
		fmt.Fprintf(w, "  Parent:   %s\n", task.ParentID)
	}
	if task.ExecutionStrategy != "" {
		fmt.Fprintf(w, "  Strategy: %s\n", task.ExecutionStrategy)
	}
	if task.CheckpointType != "" {
		fmt.Fprintf(w, "  Checkpoint: %s\n", task.CheckpointType)
	}
	if task.SuggestedModel != "" {
		fmt.Fprintf(w, "  Model:    %s\n", task.SuggestedModel)
	}
	if task.BlockerReason != "" {
		fmt.Fprintf(w, "  Blocked:  %s (needs: %s)\n", task.BlockerReason, task.BlockerNeeds)
	}
	if task.Summary != "" {
		fmt.Fprintf(w, "  Summary:  %s\n", task.Summary)
	}
	printList(w, "Commits", task.Commits)
	if task.ResolvedByEpisode != "" {
		fmt.Fprintf(w, "  Resolved by: %s\n", task.ResolvedByEpisode)
	}
}

func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}

// statusColor returns the display color for a task status.
func statusColor(status string) *color.Color {
	switch status {
	case "ready":
		return color.New(color.FgGreen)
	case "in_progress":
		return color.New(color.FgCyan)
	case "blocked":
		return color.New(color.FgRed)
	case "done":
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgYellow)
	}
}

func init() {
	// task create flags
	taskCreateCmd.Flags().StringP("project", "P", "", "Project prefix (required)")
	taskCreateCmd.Flags().StringP("type", "t", "task", "Task type (task, bug, spike, epic)")
	taskCreateCmd.Flags().StringP("action", "a", "", "Implementation instructions (required)")
	taskCreateCmd.Flags().IntP("priority", "p", 0, "Priority 1=critical .. 4=low (default 3)")
	taskCreateCmd.Flags().StringP("description", "d", "", "Longer description")
	taskCreateCmd.Flags().StringSlice("depends-on", nil, "Task IDs that must complete first")
	taskCreateCmd.Flags().String("parent", "", "Parent epic ID")
	taskCreateCmd.Flags().String("model", "", "Suggested model (haiku, sonnet, opus)")
	taskCreateCmd.Flags().StringSlice("verify", nil, "Verification commands/checks")
	taskCreateCmd.Flags().StringSlice("done-criteria", nil, "Completion checklist items")
	taskCreateCmd.Flags().StringSlice("files-exclusive", nil, "Files only this task modifies")
	taskCreateCmd.Flags().StringSlice("files-readonly", nil, "Files this task can only read")
	taskCreateCmd.Flags().StringSlice("files-forbidden", nil, "Files this task must not touch")
	taskCreateCmd.MarkFlagRequired("project")
	taskCreateCmd.MarkFlagRequired("action")

	// task list flags
	taskListCmd.Flags().StringP("project", "P", "", "Filter by project prefix")
	taskListCmd.Flags().StringP("status", "s", "", "Filter by status")
	taskListCmd.Flags().StringP("type", "t", "", "Filter by type")
	taskListCmd.Flags().IntP("limit", "l", 0, "Maximum results (default 20)")

	// task next flags
	taskNextCmd.Flags().StringP("project", "P", "", "Filter by project prefix")
	taskNextCmd.Flags().StringP("type", "t", "", "Filter by type")

	// task status flags
	taskStatusCmd.Flags().String("reason", "", "Blocker reason (when setting blocked)")
	taskStatusCmd.Flags().String("needs", "", "What's needed to unblock")

	// task complete flags
	taskCompleteCmd.Flags().StringP("summary", "s", "", "Brief summary of what was done")
	taskCompleteCmd.Flags().StringSlice("commit", nil, "Commit hashes/messages")

	// Register subcommands
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskNextCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	return taskCmd
}
