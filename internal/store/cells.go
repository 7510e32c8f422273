package store

import (
	"context"
	"fmt"
)

// UpsertCell writes the cell for (RowID, ColumnID), replacing field and value
// when one exists. A missing row or column yields ErrNotFound.
func (s *SQLStore) UpsertCell(ctx context.Context, cell Cell) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO cell_data (row_id, column_id, field, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (row_id, column_id) DO UPDATE
		SET field = excluded.field, value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`), cell.RowID, cell.ColumnID, cell.Field, cell.Value)
	if err != nil {
		return insertError("upsert cell", err)
	}
	return nil
}

// CellsForGroup joins cells to the group's rows.
func (s *SQLStore) CellsForGroup(ctx context.Context, groupID string) ([]CellValue, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT cd.row_id, cd.column_id, cd.value
		FROM cell_data cd
		JOIN group_rows gr ON cd.row_id = gr.id
		WHERE gr.group_id = ?
		ORDER BY cd.row_id, cd.column_id
	`), groupID)
	if err != nil {
		return nil, fmt.Errorf("list cell data: %w", err)
	}
	defer rows.Close()

	items := make([]CellValue, 0)
	for rows.Next() {
		var item CellValue
		if err := rows.Scan(&item.RowID, &item.ColumnID, &item.Value); err != nil {
			return nil, fmt.Errorf("scan cell data: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cell data: %w", err)
	}
	return items, nil
}
