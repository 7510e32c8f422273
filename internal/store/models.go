package store

import "encoding/json"

type User struct {
	ID           string          `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Position     string          `json:"position"`
	Privileges   json.RawMessage `json:"privileges"`
	CreatedAt    string          `json:"created_at"`
}

type Project struct {
	ID          string `json:"project_id"`
	Name        string `json:"project_name"`
	Location    string `json:"project_location"`
	Description string `json:"project_description"`
	Completion  int    `json:"project_completion"`
	Group       string `json:"project_group"`
	CreatedAt   string `json:"created_at"`
}

// Group is a caller-defined table scoped to one project.
type Group struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// GroupSummary is the listing shape of a group.
type GroupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Column is a named field definition of a group. Type is a free-form label.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Row anchors cells; it carries no data.
type Row struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
}

// Cell is keyed by (RowID, ColumnID).
type Cell struct {
	RowID    string `json:"row_id"`
	ColumnID string `json:"column_id"`
	Field    string `json:"field"`
	Value    string `json:"value"`
}

// CellValue is the read shape returned when reconstructing a group's table.
type CellValue struct {
	RowID    string `json:"row_id"`
	ColumnID string `json:"column_id"`
	Value    string `json:"value"`
}
