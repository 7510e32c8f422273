package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/corplex213/CEO-management-Web/internal/util"
)

const PositionAdmin = "admin"

const userColumns = `id, first_name, last_name, email, user_password, position, privileges, created_at`

// CreateUser inserts a user. A duplicate email yields ErrDuplicateEmail and a
// second admin yields ErrAdminExists; both wrap ErrConflict.
func (s *SQLStore) CreateUser(ctx context.Context, user User) (User, error) {
	if user.ID == "" {
		user.ID = util.NewID("")
	}
	privileges := string(user.Privileges)
	if strings.TrimSpace(privileges) == "" {
		privileges = "{}"
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (id, first_name, last_name, email, user_password, position, privileges)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Position, privileges)
	if err != nil {
		return User{}, userWriteError("create user", err)
	}
	return s.GetUserByID(ctx, user.ID)
}

func (s *SQLStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, s.q(`SELECT `+userColumns+` FROM users WHERE id = ?`), userID))
	if err != nil {
		return User{}, notFoundOr("get user", err)
	}
	return user, nil
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, s.q(`SELECT `+userColumns+` FROM users WHERE email = ?`), email))
	if err != nil {
		return User{}, notFoundOr("get user by email", err)
	}
	return user, nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return items, nil
}

// UpdateUser rewrites profile fields. The stored hash is kept when
// user.PasswordHash is empty.
func (s *SQLStore) UpdateUser(ctx context.Context, user User) error {
	result, err := s.db.ExecContext(ctx, s.q(`
		UPDATE users
		SET first_name = ?, last_name = ?, email = ?, position = ?,
		    user_password = COALESCE(NULLIF(?, ''), user_password)
		WHERE id = ?
	`), user.FirstName, user.LastName, user.Email, user.Position, user.PasswordHash, user.ID)
	if err != nil {
		return userWriteError("update user", err)
	}
	return requireAffected(result, "update user", user.ID)
}

func (s *SQLStore) UpdatePrivileges(ctx context.Context, userID string, privileges json.RawMessage) error {
	result, err := s.db.ExecContext(ctx, s.q(`UPDATE users SET privileges = ? WHERE id = ?`), string(privileges), userID)
	if err != nil {
		return fmt.Errorf("update privileges: %w", err)
	}
	return requireAffected(result, "update privileges", userID)
}

func (s *SQLStore) DeleteUser(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, s.q(`DELETE FROM users WHERE id = ?`), userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(result, "delete user", userID)
}

func scanUser(row rowScanner) (User, error) {
	var (
		user       User
		privileges string
	)
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Position,
		&privileges,
		&user.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.Privileges = json.RawMessage(privileges)
	return user, nil
}
