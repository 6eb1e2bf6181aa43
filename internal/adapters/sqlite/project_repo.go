// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/example/backlog/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelectCols = "id, name, prefix, description, created_at"

// scanProject scans a project row into a ProjectRecord.
func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ProjectRecord, error) {
	var desc sql.NullString
	var createdAt sql.NullString

	record := &secondary.ProjectRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &record.Prefix, &desc, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.CreatedAt = createdAt.String
	return record, nil
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	var desc sql.NullString
	if project.Description != "" {
		desc = sql.NullString{String: project.Description, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, prefix, description) VALUES (?, ?, ?, ?)",
		project.ID, project.Name, project.Prefix, desc,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("project with prefix %s %w", project.Prefix, secondary.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByPrefix retrieves a project by its uppercase prefix.
func (r *ProjectRepository) GetByPrefix(ctx context.Context, prefix string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects WHERE prefix = ?",
		prefix,
	)

	record, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s %w", prefix, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return record, nil
}

// List retrieves all projects ordered by creation time.
func (r *ProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects ORDER BY created_at ASC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, record)
	}

	return projects, rows.Err()
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM projects",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next project ID: %w", err)
	}

	return fmt.Sprintf("PROJ-%03d", maxID+1), nil
}

// isUniqueViolation reports whether err is a SQLite uniqueness constraint failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
