// Package wire provides dependency injection for the backlog application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/backlog/internal/adapters/sqlite"
	"github.com/example/backlog/internal/app"
	"github.com/example/backlog/internal/config"
	"github.com/example/backlog/internal/db"
	"github.com/example/backlog/internal/ports/primary"
)

var (
	projectService primary.ProjectService
	taskService    primary.TaskService
	summaryService primary.SummaryService
	once           sync.Once
)

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// SummaryService returns the singleton SummaryService instance.
func SummaryService() primary.SummaryService {
	once.Do(initServices)
	return summaryService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	projectRepo := sqlite.NewProjectRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)

	projectService = app.NewProjectService(projectRepo)
	taskService = app.NewTaskService(taskRepo, projectRepo, cfg.DefaultLimit())
	summaryService = app.NewSummaryService(taskRepo, projectRepo)
}
