package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/corplex213/CEO-management-Web/internal/util"
)

const projectColumns = `project_id, project_name, project_location, project_description, project_completion, project_group, created_at`

func (s *SQLStore) CreateProject(ctx context.Context, project Project) (Project, error) {
	if project.ID == "" {
		project.ID = util.NewID("")
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO projects (project_id, project_name, project_location, project_description, project_completion, project_group)
		VALUES (?, ?, ?, ?, ?, ?)
	`), project.ID, project.Name, project.Location, project.Description, project.Completion, project.Group)
	if err != nil {
		return Project{}, fmt.Errorf("create project: %w", err)
	}
	return s.GetProject(ctx, project.ID)
}

func (s *SQLStore) GetProject(ctx context.Context, projectID string) (Project, error) {
	project, err := scanProject(s.db.QueryRowContext(ctx, s.q(`SELECT `+projectColumns+` FROM projects WHERE project_id = ?`), projectID))
	if err != nil {
		return Project{}, notFoundOr("get project", err)
	}
	return project, nil
}

func (s *SQLStore) ListProjects(ctx context.Context) ([]Project, error) {
	return s.queryProjects(ctx, "list projects", `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, project_id DESC`)
}

// SearchProjects matches the query against name, location and description,
// case-insensitively.
func (s *SQLStore) SearchProjects(ctx context.Context, query string, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	return s.queryProjects(ctx, "search projects", `
		SELECT `+projectColumns+`
		FROM projects
		WHERE LOWER(project_name) LIKE ? ESCAPE '\'
		   OR LOWER(project_location) LIKE ? ESCAPE '\'
		   OR LOWER(project_description) LIKE ? ESCAPE '\'
		ORDER BY project_name, project_id
		LIMIT ?
	`, pattern, pattern, pattern, limit)
}

func (s *SQLStore) UpdateProject(ctx context.Context, project Project) error {
	result, err := s.db.ExecContext(ctx, s.q(`
		UPDATE projects
		SET project_name = ?, project_location = ?, project_description = ?
		WHERE project_id = ?
	`), project.Name, project.Location, project.Description, project.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireAffected(result, "update project", project.ID)
}

func (s *SQLStore) ArchiveProject(ctx context.Context, projectID, group string) error {
	result, err := s.db.ExecContext(ctx, s.q(`UPDATE projects SET project_group = ? WHERE project_id = ?`), group, projectID)
	if err != nil {
		return fmt.Errorf("archive project: %w", err)
	}
	return requireAffected(result, "archive project", projectID)
}

// DeleteProject removes the project together with every group it owns, in one
// transaction.
func (s *SQLStore) DeleteProject(ctx context.Context, projectID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := s.runCascade(ctx, tx, "delete project", projectCascade, projectID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("delete project %s: %w", projectID, ErrNotFound)
		}
		return nil
	})
}

func (s *SQLStore) queryProjects(ctx context.Context, op, query string, args ...any) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var project Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Location,
		&project.Description,
		&project.Completion,
		&project.Group,
		&project.CreatedAt,
	)
	return project, err
}

func requireAffected(result sql.Result, op, id string) error {
	n, err := affected(result, op)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
