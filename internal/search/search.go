package search

import "github.com/corplex213/CEO-management-Web/internal/store"

// Engine names which backend answered a query.
type Engine string

const (
	EngineMeili Engine = "meilisearch"
	EngineSQL   Engine = "sql"
)

// Result is a single project hit.
type Result struct {
	ID       string `json:"project_id"`
	Name     string `json:"project_name"`
	Location string `json:"project_location"`
	Snippet  string `json:"snippet"`
	Group    string `json:"project_group"`
}

// Query describes a search request.
type Query struct {
	Text  string
	Limit int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
	Engine  Engine   `json:"engine"`
}

// Searcher can execute a project search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// ProjectRecord is the data indexed for a project.
type ProjectRecord struct {
	ID          string `json:"id"`
	Name        string `json:"project_name"`
	Location    string `json:"project_location"`
	Description string `json:"project_description"`
	Group       string `json:"project_group"`
}

func RecordFromProject(p store.Project) ProjectRecord {
	return ProjectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location,
		Description: p.Description,
		Group:       p.Group,
	}
}

func defaultLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
