package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/corplex213/CEO-management-Web/internal/util"
)

func (s *SQLStore) CreateGroup(ctx context.Context, projectID, name string) (Group, error) {
	group := Group{ID: util.NewID(""), ProjectID: projectID, Name: name}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO proj_groups (id, project_id, name)
		VALUES (?, ?, ?)
	`), group.ID, group.ProjectID, group.Name)
	if err != nil {
		return Group{}, insertError("create group", err)
	}
	return group, nil
}

func (s *SQLStore) ListGroups(ctx context.Context, projectID string) ([]GroupSummary, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, name
		FROM proj_groups
		WHERE project_id = ?
		ORDER BY id
	`), projectID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	items := make([]GroupSummary, 0)
	for rows.Next() {
		var item GroupSummary
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return items, nil
}

// DeleteGroup removes the group's cells, rows, columns and the group itself in
// one transaction. Returns ErrNotFound (and rolls back) when the group does not exist.
func (s *SQLStore) DeleteGroup(ctx context.Context, groupID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := s.runCascade(ctx, tx, "delete group", groupCascade, groupID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("delete group %s: %w", groupID, ErrNotFound)
		}
		return nil
	})
}
