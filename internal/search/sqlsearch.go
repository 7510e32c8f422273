package search

import (
	"context"
	"strings"
	"time"

	"github.com/corplex213/CEO-management-Web/internal/store"
)

// ProjectStore is the slice of the store the fallback searcher needs.
type ProjectStore interface {
	SearchProjects(ctx context.Context, query string, limit int) ([]store.Project, error)
	ListProjects(ctx context.Context) ([]store.Project, error)
}

// SQLSearch implements Searcher with a LIKE query against the projects table.
type SQLSearch struct {
	store   ProjectStore
	timeout time.Duration
}

func NewSQLSearch(projects ProjectStore) *SQLSearch {
	return &SQLSearch{store: projects, timeout: 5 * time.Second}
}

// Healthy is always true; the store being down fails the request anyway.
func (s *SQLSearch) Healthy() bool {
	return true
}

func (s *SQLSearch) Search(q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	projects, err := s.store.SearchProjects(ctx, q.Text, defaultLimit(q.Limit))
	if err != nil {
		return nil, 0, err
	}
	results := make([]Result, 0, len(projects))
	for _, p := range projects {
		results = append(results, Result{
			ID:       p.ID,
			Name:     p.Name,
			Location: p.Location,
			Snippet:  snippet(p.Description),
			Group:    p.Group,
		})
	}
	return results, len(results), nil
}

// LoadAllRecords returns every project as an index record.
func (s *SQLSearch) LoadAllRecords(ctx context.Context) ([]ProjectRecord, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]ProjectRecord, 0, len(projects))
	for _, p := range projects {
		records = append(records, RecordFromProject(p))
	}
	return records, nil
}

func snippet(value string) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= 120 {
		return value
	}
	return string(runes[:120]) + "..."
}
