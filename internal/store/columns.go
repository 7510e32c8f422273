package store

import (
	"context"
	"fmt"

	"github.com/corplex213/CEO-management-Web/internal/util"
)

// AddColumn inserts a column. Names are not unique within a group.
func (s *SQLStore) AddColumn(ctx context.Context, groupID, name, columnType string) (Column, error) {
	column := Column{ID: util.NewID(""), Name: name, Type: columnType}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO group_columns (id, group_id, name, type)
		VALUES (?, ?, ?, ?)
	`), column.ID, groupID, column.Name, column.Type)
	if err != nil {
		return Column{}, insertError("add column", err)
	}
	return column, nil
}

func (s *SQLStore) RenameColumn(ctx context.Context, columnID, name string) error {
	result, err := s.db.ExecContext(ctx, s.q(`UPDATE group_columns SET name = ? WHERE id = ?`), name, columnID)
	if err != nil {
		return fmt.Errorf("rename column: %w", err)
	}
	n, err := affected(result, "rename column")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rename column %s: %w", columnID, ErrNotFound)
	}
	return nil
}

func (s *SQLStore) ListColumns(ctx context.Context, groupID string) ([]Column, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, name, type
		FROM group_columns
		WHERE group_id = ?
		ORDER BY id
	`), groupID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	items := make([]Column, 0)
	for rows.Next() {
		var item Column
		if err := rows.Scan(&item.ID, &item.Name, &item.Type); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return items, nil
}
