package app

import (
	"context"
	"strings"

	"github.com/corplex213/CEO-management-Web/internal/search"
	"github.com/corplex213/CEO-management-Web/internal/store"
	"go.uber.org/zap"
)

type ProjectInput struct {
	Name        string
	Location    string
	Description string
}

func (s *Service) CreateProject(ctx context.Context, input ProjectInput) (store.Project, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Location) == "" {
		return store.Project{}, validationError("Project name and location are required")
	}
	project, err := s.store.CreateProject(ctx, store.Project{
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Description: input.Description,
	})
	if err != nil {
		return store.Project{}, s.fail("create project", storageError("Server error during project creation", err))
	}
	s.indexProject(project)
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]store.Project, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, s.fail("list projects", storageError("Server error during project fetch", err))
	}
	return projects, nil
}

func (s *Service) GetProject(ctx context.Context, projectID string) (store.Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return store.Project{}, s.fail("get project", fromStore(err, "Project not found", "Server error during project fetch"))
	}
	return project, nil
}

func (s *Service) UpdateProject(ctx context.Context, projectID string, input ProjectInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Location) == "" {
		return validationError("Project name and location are required")
	}
	err := s.store.UpdateProject(ctx, store.Project{
		ID:          projectID,
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Description: input.Description,
	})
	if err != nil {
		return s.fail("update project", fromStore(err, "Project not found", "Internal server error"))
	}
	s.reindexProject(ctx, projectID)
	return nil
}

func (s *Service) ArchiveProject(ctx context.Context, projectID, group string) error {
	if err := s.store.ArchiveProject(ctx, projectID, group); err != nil {
		return s.fail("archive project", fromStore(err, "Project not found", "Internal server error"))
	}
	s.reindexProject(ctx, projectID)
	return nil
}

// DeleteProject removes the project and every group it owns in one transaction.
func (s *Service) DeleteProject(ctx context.Context, projectID string) error {
	err := s.store.DeleteProject(ctx, projectID)
	s.metrics.CascadeDelete("project", err)
	if err != nil {
		return s.fail("delete project", fromStore(err, "Project not found", "Internal server error"))
	}
	if s.search != nil {
		s.search.DeleteProject(projectID)
	}
	s.logger.Info("project deleted", zap.String("project_id", projectID))
	return nil
}

func (s *Service) SearchProjects(query string, limit int) search.Response {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: query}
	}
	return s.search.Search(search.Query{Text: query, Limit: limit})
}

func (s *Service) indexProject(project store.Project) {
	if s.search != nil {
		s.search.IndexProject(search.RecordFromProject(project))
	}
}

func (s *Service) reindexProject(ctx context.Context, projectID string) {
	if s.search == nil {
		return
	}
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		s.logger.Warn("reload project for index", zap.String("project_id", projectID), zap.Error(err))
		return
	}
	s.indexProject(project)
}
