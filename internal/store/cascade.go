package store

import (
	"context"
	"database/sql"
	"fmt"
)

// cascadeStep is one DELETE of an ordered cascade. Each query takes the id of
// the cascade root as its single argument.
type cascadeStep struct {
	name  string
	query string
	// lock steps take row locks up front and only run on Postgres, where
	// concurrent writers are not serialized by the connection.
	lock bool
}

// Children are removed before parents. Cells referencing the group's columns
// are removed even when their row lives in another group, so the column delete
// never trips the cell_data foreign key.
var groupCascade = []cascadeStep{
	{name: "lock group", query: `SELECT id FROM proj_groups WHERE id = ? FOR UPDATE`, lock: true},
	{name: "lock rows", query: `SELECT id FROM group_rows WHERE group_id = ? FOR UPDATE`, lock: true},
	{name: "lock columns", query: `SELECT id FROM group_columns WHERE group_id = ? FOR UPDATE`, lock: true},
	{name: "cells", query: `DELETE FROM cell_data WHERE row_id IN (SELECT id FROM group_rows WHERE group_id = ?)`},
	{name: "rows", query: `DELETE FROM group_rows WHERE group_id = ?`},
	{name: "column cells", query: `DELETE FROM cell_data WHERE column_id IN (SELECT id FROM group_columns WHERE group_id = ?)`},
	{name: "columns", query: `DELETE FROM group_columns WHERE group_id = ?`},
	{name: "group", query: `DELETE FROM proj_groups WHERE id = ?`},
}

var rowCascade = []cascadeStep{
	{name: "lock row", query: `SELECT id FROM group_rows WHERE id = ? FOR UPDATE`, lock: true},
	{name: "cells", query: `DELETE FROM cell_data WHERE row_id = ?`},
	{name: "row", query: `DELETE FROM group_rows WHERE id = ?`},
}

// projectCascade applies groupCascade to every group of a project at once.
var projectCascade = []cascadeStep{
	{name: "lock project", query: `SELECT project_id FROM projects WHERE project_id = ? FOR UPDATE`, lock: true},
	{name: "lock groups", query: `SELECT id FROM proj_groups WHERE project_id = ? FOR UPDATE`, lock: true},
	{name: "lock rows", query: `SELECT r.id FROM group_rows r JOIN proj_groups g ON g.id = r.group_id
		WHERE g.project_id = ? FOR UPDATE OF r`, lock: true},
	{name: "lock columns", query: `SELECT c.id FROM group_columns c JOIN proj_groups g ON g.id = c.group_id
		WHERE g.project_id = ? FOR UPDATE OF c`, lock: true},
	{name: "cells", query: `DELETE FROM cell_data WHERE row_id IN (
		SELECT r.id FROM group_rows r JOIN proj_groups g ON g.id = r.group_id WHERE g.project_id = ?)`},
	{name: "rows", query: `DELETE FROM group_rows WHERE group_id IN (SELECT id FROM proj_groups WHERE project_id = ?)`},
	{name: "column cells", query: `DELETE FROM cell_data WHERE column_id IN (
		SELECT c.id FROM group_columns c JOIN proj_groups g ON g.id = c.group_id WHERE g.project_id = ?)`},
	{name: "columns", query: `DELETE FROM group_columns WHERE group_id IN (SELECT id FROM proj_groups WHERE project_id = ?)`},
	{name: "groups", query: `DELETE FROM proj_groups WHERE project_id = ?`},
	{name: "project", query: `DELETE FROM projects WHERE project_id = ?`},
}

// runCascade executes steps in order inside tx and stops at the first failure.
// It returns the rows affected by the final step. While the locks are held, a
// concurrent insert referencing a locked parent waits for the commit and then
// fails its foreign key check.
func (s *SQLStore) runCascade(ctx context.Context, tx *sql.Tx, op string, steps []cascadeStep, id string) (int64, error) {
	var last sql.Result
	for _, step := range steps {
		if step.lock && s.driver != DriverPostgres {
			continue
		}
		result, err := tx.ExecContext(ctx, s.q(step.query), id)
		if err != nil {
			return 0, fmt.Errorf("%s: %s: %w", op, step.name, err)
		}
		last = result
	}
	if last == nil {
		return 0, nil
	}
	return affected(last, op)
}
