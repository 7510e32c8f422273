package search

import (
	"context"

	"go.uber.org/zap"
)

// Service tries Meilisearch first and falls back to SQL.
type Service struct {
	meili    *Meili
	fallback *SQLSearch
	logger   *zap.Logger
}

// NewService creates a search service. meili may be nil when Meilisearch is
// not configured.
func NewService(meili *Meili, fallback *SQLSearch, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{meili: meili, fallback: fallback, logger: logger.Named("search")}
}

func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text, Engine: EngineMeili}
		}
		s.logger.Warn("meilisearch error, falling back to sql", zap.Error(err))
	}

	results, total, err := s.fallback.Search(q)
	if err != nil {
		s.logger.Error("sql search failed", zap.Error(err))
		return Response{Results: []Result{}, Total: 0, Query: q.Text, Engine: EngineSQL}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text, Engine: EngineSQL}
}

// IndexProject pushes a project to Meilisearch without blocking the caller.
func (s *Service) IndexProject(p ProjectRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexProject(p); err != nil {
			s.logger.Warn("index project", zap.String("project_id", p.ID), zap.Error(err))
		}
	}()
}

// DeleteProject removes a project from Meilisearch without blocking the caller.
func (s *Service) DeleteProject(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteProject(id); err != nil {
			s.logger.Warn("delete project from index", zap.String("project_id", id), zap.Error(err))
		}
	}()
}

// ReindexAll loads every project from the store and pushes it to Meilisearch.
func (s *Service) ReindexAll(ctx context.Context) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	records, err := s.fallback.LoadAllRecords(ctx)
	if err != nil {
		s.logger.Warn("reindex load failed", zap.Error(err))
		return
	}
	if err := s.meili.IndexProjects(records); err != nil {
		s.logger.Warn("reindex projects", zap.Error(err))
	}
}

func (s *Service) Close() {
	if s.meili != nil {
		s.meili.Close()
	}
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
