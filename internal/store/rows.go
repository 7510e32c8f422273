package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/corplex213/CEO-management-Web/internal/util"
)

func (s *SQLStore) AddRow(ctx context.Context, groupID string) (Row, error) {
	row := Row{ID: util.NewID(""), GroupID: groupID}
	_, err := s.db.ExecContext(ctx, s.q(`INSERT INTO group_rows (id, group_id) VALUES (?, ?)`), row.ID, row.GroupID)
	if err != nil {
		return Row{}, insertError("add row", err)
	}
	return row, nil
}

func (s *SQLStore) ListRows(ctx context.Context, groupID string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, group_id
		FROM group_rows
		WHERE group_id = ?
		ORDER BY id
	`), groupID)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer rows.Close()

	items := make([]Row, 0)
	for rows.Next() {
		var item Row
		if err := rows.Scan(&item.ID, &item.GroupID); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return items, nil
}

// DeleteRow removes the row's cells and then the row, in one transaction.
// It reports whether a row was removed; deleting an unknown row is not an error.
func (s *SQLStore) DeleteRow(ctx context.Context, rowID string) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := s.runCascade(ctx, tx, "delete row", rowCascade, rowID)
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
