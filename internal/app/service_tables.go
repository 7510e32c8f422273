package app

import (
	"context"
	"strings"

	"github.com/corplex213/CEO-management-Web/internal/store"
	"go.uber.org/zap"
)

// CellInput is an upsert request. A nil Value means the value was missing;
// an empty string is a legal value.
type CellInput struct {
	RowID    string
	ColumnID string
	Field    string
	Value    *string
}

func (s *Service) CreateGroup(ctx context.Context, projectID, name string) (store.Group, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" || strings.TrimSpace(name) == "" {
		return store.Group{}, validationError("Project ID and group name are required")
	}
	group, err := s.store.CreateGroup(ctx, projectID, name)
	if err != nil {
		return store.Group{}, s.fail("create group", fromStore(err, "Project not found", "Server error during group creation"))
	}
	return group, nil
}

func (s *Service) ListGroups(ctx context.Context, projectID string) ([]store.GroupSummary, error) {
	groups, err := s.store.ListGroups(ctx, projectID)
	if err != nil {
		return nil, s.fail("list groups", storageError("Server error during groups fetch", err))
	}
	return groups, nil
}

// DeleteGroup removes the group with its rows, columns and cells atomically.
func (s *Service) DeleteGroup(ctx context.Context, groupID string) error {
	err := s.store.DeleteGroup(ctx, groupID)
	s.metrics.CascadeDelete("group", err)
	if err != nil {
		return s.fail("delete group", fromStore(err, "Group not found", "Server error during group deletion"))
	}
	s.logger.Info("group deleted", zap.String("group_id", groupID))
	return nil
}

func (s *Service) AddColumn(ctx context.Context, groupID, name, columnType string) (store.Column, error) {
	if strings.TrimSpace(groupID) == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(columnType) == "" {
		return store.Column{}, validationError("Group ID, column name, and type are required")
	}
	column, err := s.store.AddColumn(ctx, strings.TrimSpace(groupID), name, columnType)
	if err != nil {
		return store.Column{}, s.fail("add column", fromStore(err, "Group not found", "Server error during column creation"))
	}
	return column, nil
}

func (s *Service) RenameColumn(ctx context.Context, columnID, name string) error {
	if strings.TrimSpace(name) == "" {
		return validationError("Column name is required")
	}
	if err := s.store.RenameColumn(ctx, columnID, name); err != nil {
		return s.fail("rename column", fromStore(err, "Column not found", "Server error during column name update"))
	}
	return nil
}

func (s *Service) ListColumns(ctx context.Context, groupID string) ([]store.Column, error) {
	columns, err := s.store.ListColumns(ctx, groupID)
	if err != nil {
		return nil, s.fail("list columns", storageError("Server error during columns fetch", err))
	}
	return columns, nil
}

func (s *Service) AddRow(ctx context.Context, groupID string) (store.Row, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return store.Row{}, validationError("Group ID is required")
	}
	row, err := s.store.AddRow(ctx, groupID)
	if err != nil {
		return store.Row{}, s.fail("add row", fromStore(err, "Group not found", "Server error during row creation"))
	}
	return row, nil
}

func (s *Service) ListRows(ctx context.Context, groupID string) ([]store.Row, error) {
	rows, err := s.store.ListRows(ctx, groupID)
	if err != nil {
		return nil, s.fail("list rows", storageError("Server error during rows fetch", err))
	}
	return rows, nil
}

// DeleteRow removes the row and its cells. Unknown rows are acknowledged.
func (s *Service) DeleteRow(ctx context.Context, rowID string) error {
	deleted, err := s.store.DeleteRow(ctx, rowID)
	s.metrics.CascadeDelete("row", err)
	if err != nil {
		return s.fail("delete row", storageError("Server error during row deletion", err))
	}
	if !deleted {
		s.logger.Debug("delete of unknown row acknowledged", zap.String("row_id", rowID))
	}
	return nil
}

func (s *Service) UpsertCell(ctx context.Context, input CellInput) error {
	if strings.TrimSpace(input.RowID) == "" || strings.TrimSpace(input.ColumnID) == "" || strings.TrimSpace(input.Field) == "" || input.Value == nil {
		return validationError("Row ID, column ID, field, and value are required")
	}
	err := s.store.UpsertCell(ctx, store.Cell{
		RowID:    strings.TrimSpace(input.RowID),
		ColumnID: strings.TrimSpace(input.ColumnID),
		Field:    input.Field,
		Value:    *input.Value,
	})
	s.metrics.CellUpsert(err)
	if err != nil {
		return s.fail("upsert cell", fromStore(err, "Row or column not found", "Server error during cell data save"))
	}
	return nil
}

func (s *Service) CellsForGroup(ctx context.Context, groupID string) ([]store.CellValue, error) {
	cells, err := s.store.CellsForGroup(ctx, groupID)
	if err != nil {
		return nil, s.fail("cells for group", storageError("Server error during cell data fetch", err))
	}
	return cells, nil
}
