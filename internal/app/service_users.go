package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/corplex213/CEO-management-Web/internal/auth"
	"github.com/corplex213/CEO-management-Web/internal/authpw"
	"github.com/corplex213/CEO-management-Web/internal/rbac"
	"github.com/corplex213/CEO-management-Web/internal/session"
	"github.com/corplex213/CEO-management-Web/internal/store"
	"go.uber.org/zap"
)

var errUnauthorized = domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid session", nil)

type LoginUser struct {
	Email    string `json:"email"`
	Position string `json:"position"`
}

type LoginResult struct {
	User  LoginUser `json:"user"`
	Token string    `json:"token"`
}

// SessionInfo is what a bearer token resolves to.
type SessionInfo struct {
	UserID      string        `json:"user_id"`
	Email       string        `json:"email"`
	Position    string        `json:"position"`
	Permissions []rbac.Action `json:"permissions"`
}

type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Position  string
	// Password is rehashed only when non-empty.
	Password string
}

func (s *Service) Register(ctx context.Context, req authpw.RegisterRequest) (store.User, error) {
	user, err := s.passwords.Register(ctx, req)
	if errors.Is(err, authpw.ErrMissingFields) {
		return store.User{}, validationError("First name, last name, email, and password are required")
	}
	if errors.Is(err, authpw.ErrPasswordTooLong) {
		return store.User{}, validationError("Password must be at most 72 bytes")
	}
	if err != nil {
		return store.User{}, s.fail("register", fromStore(err, "User not found", "Server error during registration"))
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("position", user.Position))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.passwords.SignIn(ctx, email, password)
	if errors.Is(err, authpw.ErrInvalidCredentials) {
		return LoginResult{}, domainError(http.StatusBadRequest, "INVALID_CREDENTIALS", "Incorrect email or password", nil)
	}
	if err != nil {
		return LoginResult{}, s.fail("login", storageError("Server error during login", err))
	}

	token, err := auth.NewToken()
	if err != nil {
		return LoginResult{}, s.fail("login", storageError("Server error during login", err))
	}
	data := session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		Position:  user.Position,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, auth.HashToken(token), data, s.sessionTTL); err != nil {
		return LoginResult{}, s.fail("save session", storageError("Server error during login", err))
	}
	return LoginResult{
		User:  LoginUser{Email: user.Email, Position: user.Position},
		Token: token,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (SessionInfo, error) {
	if auth.ValidateToken(token) != nil {
		return SessionInfo{}, errUnauthorized
	}
	data, err := s.sessions.Lookup(ctx, auth.HashToken(token))
	if errors.Is(err, session.ErrNotFound) {
		return SessionInfo{}, errUnauthorized
	}
	if err != nil {
		return SessionInfo{}, s.fail("lookup session", storageError("Server error during session lookup", err))
	}
	return SessionInfo{
		UserID:      data.UserID,
		Email:       data.Email,
		Position:    data.Position,
		Permissions: rbac.Permissions(rbac.Normalize(data.Position)),
	}, nil
}

// Logout revokes the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if auth.ValidateToken(token) != nil {
		return errUnauthorized
	}
	if err := s.sessions.Revoke(ctx, auth.HashToken(token)); err != nil {
		return s.fail("revoke session", storageError("Server error during logout", err))
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]store.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, s.fail("list users", storageError("Server error while fetching users", err))
	}
	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, id string, input UserInput) error {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" || strings.TrimSpace(input.Email) == "" {
		return validationError("First name, last name, and email are required")
	}
	user := store.User{
		ID:        id,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Position:  strings.TrimSpace(input.Position),
	}
	if input.Password != "" {
		hash, err := s.passwords.HashPassword(input.Password)
		if errors.Is(err, authpw.ErrPasswordTooLong) {
			return validationError("Password must be at most 72 bytes")
		}
		if err != nil {
			return s.fail("update user", storageError("Server error while updating user", err))
		}
		user.PasswordHash = hash
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return s.fail("update user", fromStore(err, "User not found", "Server error while updating user"))
	}
	return nil
}

func (s *Service) UpdatePrivileges(ctx context.Context, id string, privileges json.RawMessage) error {
	if len(privileges) == 0 || !json.Valid(privileges) {
		return validationError("Privileges must be valid JSON")
	}
	if err := s.store.UpdatePrivileges(ctx, id, privileges); err != nil {
		return s.fail("update privileges", fromStore(err, "User not found", "Server error while updating privileges"))
	}
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return s.fail("delete user", fromStore(err, "User not found", "Server error while deleting user"))
	}
	return nil
}
