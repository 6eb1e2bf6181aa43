package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

func TestCreateTask_ReadyWithoutDependencies(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)

	resp := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "First"})
	if resp.TaskID != "DM-TASK-001" {
		t.Errorf("expected DM-TASK-001, got %s", resp.TaskID)
	}
	if resp.Status != "ready" {
		t.Errorf("expected ready, got %s", resp.Status)
	}
}

func TestCreateTask_BacklogWithPendingDependency(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)

	first := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "First"})
	second := mustCreateTask(t, svc, primary.CreateTaskRequest{
		Name:      "Second",
		DependsOn: []string{first.TaskID},
	})
	if second.Status != "backlog" {
		t.Errorf("expected backlog while dependency pending, got %s", second.Status)
	}
}

func TestCreateTask_ReadyWhenDependenciesDone(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	first := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "First"})
	if _, err := svc.tasks.CompleteTask(ctx, primary.CompleteTaskRequest{TaskID: first.TaskID}); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	second := mustCreateTask(t, svc, primary.CreateTaskRequest{
		Name:      "Second",
		DependsOn: []string{first.TaskID},
	})
	if second.Status != "ready" {
		t.Errorf("expected ready when all dependencies done, got %s", second.Status)
	}
}

func TestCreateTask_UnknownDependency(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)

	_, err := svc.tasks.CreateTask(context.Background(), primary.CreateTaskRequest{
		Project:   "DM",
		Type:      "task",
		Name:      "Orphan",
		Action:    "do the thing",
		DependsOn: []string{"DM-TASK-999"},
	})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown dependency, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "DM-TASK-999") {
		t.Errorf("expected error to name the dependency, got %v", err)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	tests := []struct {
		name string
		req  primary.CreateTaskRequest
	}{
		{"invalid type", primary.CreateTaskRequest{Project: "DM", Type: "chore", Name: "X", Action: "a"}},
		{"invalid model", primary.CreateTaskRequest{Project: "DM", Type: "task", Name: "X", Action: "a", SuggestedModel: "gpt"}},
		{"invalid priority", primary.CreateTaskRequest{Project: "DM", Type: "task", Name: "X", Action: "a", Priority: 5}},
		{"missing name", primary.CreateTaskRequest{Project: "DM", Type: "task", Action: "a"}},
		{"missing action", primary.CreateTaskRequest{Project: "DM", Type: "task", Name: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.tasks.CreateTask(ctx, tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateTask_UnknownProject(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.tasks.CreateTask(context.Background(), primary.CreateTaskRequest{
		Project: "NOPE",
		Type:    "task",
		Name:    "X",
		Action:  "a",
	})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTask_NormalizesTypeAndPrefix(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)

	resp := mustCreateTask(t, svc, primary.CreateTaskRequest{
		Project: "dm",
		Type:    "Bug",
		Name:    "Crash on start",
	})
	if resp.TaskID != "DM-BUG-001" {
		t.Errorf("expected DM-BUG-001, got %s", resp.TaskID)
	}
}

func TestGetTask_FullDetail(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	created := mustCreateTask(t, svc, primary.CreateTaskRequest{
		Name:           "Detailed",
		Action:         "follow the steps",
		Verify:         []string{"run checks"},
		FilesExclusive: []string{"main.go"},
		SuggestedModel: "opus",
	})

	task, err := svc.tasks.GetTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task.Action != "follow the steps" {
		t.Errorf("expected action in full detail, got %q", task.Action)
	}
	if len(task.Verify) != 1 || len(task.FilesExclusive) != 1 {
		t.Errorf("expected list fields in full detail, got verify=%v files=%v", task.Verify, task.FilesExclusive)
	}
	if task.ProjectPrefix != "DM" {
		t.Errorf("expected project prefix DM, got %s", task.ProjectPrefix)
	}
}

func TestGetNextTask(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	next, err := svc.tasks.GetNextTask(ctx, primary.NextTaskRequest{})
	if err != nil {
		t.Fatalf("GetNextTask failed: %v", err)
	}
	if next != nil {
		t.Errorf("expected nil with no ready tasks, got %v", next)
	}

	mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "Low", Priority: 4})
	mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "Urgent", Priority: 1})

	next, err = svc.tasks.GetNextTask(ctx, primary.NextTaskRequest{Project: "DM"})
	if err != nil {
		t.Fatalf("GetNextTask failed: %v", err)
	}
	if next == nil || next.Name != "Urgent" {
		t.Errorf("expected Urgent, got %v", next)
	}
	if next.Action == "" {
		t.Error("expected full detail including action")
	}
}

func TestListTasks_SummariesOnly(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	mustCreateTask(t, svc, primary.CreateTaskRequest{
		Name:   "With context",
		Action: "detailed steps",
		Verify: []string{"run checks"},
	})

	summaries, err := svc.tasks.ListTasks(ctx, primary.ListTasksRequest{Project: "DM"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.TaskID == "" || s.Name == "" || s.Status == "" || s.Type == "" {
		t.Errorf("expected summary identity fields populated, got %+v", s)
	}
}

func TestListTasks_FilterValidation(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	if _, err := svc.tasks.ListTasks(ctx, primary.ListTasksRequest{Status: "unknown"}); err == nil {
		t.Error("expected error for invalid status filter")
	}
	if _, err := svc.tasks.ListTasks(ctx, primary.ListTasksRequest{Type: "chore"}); err == nil {
		t.Error("expected error for invalid type filter")
	}
	if _, err := svc.tasks.ListTasks(ctx, primary.ListTasksRequest{Project: "NOPE"}); !errors.Is(err, secondary.ErrNotFound) {
		t.Error("expected ErrNotFound for unknown project filter")
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	created := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "Mutable"})

	err := svc.tasks.UpdateTaskStatus(ctx, primary.UpdateStatusRequest{
		TaskID:        created.TaskID,
		Status:        "BLOCKED",
		BlockerReason: "missing credentials",
		BlockerNeeds:  "access grant",
	})
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	task, _ := svc.tasks.GetTask(ctx, created.TaskID)
	if task.Status != "blocked" || task.BlockerReason != "missing credentials" {
		t.Errorf("expected blocked with reason, got %s / %q", task.Status, task.BlockerReason)
	}

	if err := svc.tasks.UpdateTaskStatus(ctx, primary.UpdateStatusRequest{TaskID: created.TaskID, Status: "ready"}); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	task, _ = svc.tasks.GetTask(ctx, created.TaskID)
	if task.BlockerReason != "" || task.BlockerNeeds != "" {
		t.Errorf("expected blocker fields cleared, got %q / %q", task.BlockerReason, task.BlockerNeeds)
	}
}

func TestUpdateTaskStatus_InvalidStatus(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)

	created := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "Mutable"})
	err := svc.tasks.UpdateTaskStatus(context.Background(), primary.UpdateStatusRequest{
		TaskID: created.TaskID,
		Status: "paused",
	})
	if err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestCompleteTask_Cascade(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	first := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "First"})
	second := mustCreateTask(t, svc, primary.CreateTaskRequest{
		Name:      "Second",
		DependsOn: []string{first.TaskID},
	})

	unblocked, err := svc.tasks.CompleteTask(ctx, primary.CompleteTaskRequest{
		TaskID:  first.TaskID,
		Summary: "done and dusted",
	})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if len(unblocked) != 1 || unblocked[0] != second.TaskID {
		t.Errorf("expected [%s], got %v", second.TaskID, unblocked)
	}

	promoted, _ := svc.tasks.GetTask(ctx, second.TaskID)
	if promoted.Status != "ready" {
		t.Errorf("expected ready, got %s", promoted.Status)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := setupServices(t)
	seedDemoProject(t, svc)
	ctx := context.Background()

	created := mustCreateTask(t, svc, primary.CreateTaskRequest{Name: "Doomed"})
	if err := svc.tasks.DeleteTask(ctx, created.TaskID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	_, err := svc.tasks.GetTask(ctx, created.TaskID)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := svc.tasks.DeleteTask(ctx, created.TaskID); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeat delete, got %v", err)
	}
}
