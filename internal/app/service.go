package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corplex213/CEO-management-Web/internal/authpw"
	"github.com/corplex213/CEO-management-Web/internal/metrics"
	"github.com/corplex213/CEO-management-Web/internal/search"
	"github.com/corplex213/CEO-management-Web/internal/session"
	"github.com/corplex213/CEO-management-Web/internal/store"
	"go.uber.org/zap"
)

type dataStore interface {
	CreateGroup(context.Context, string, string) (store.Group, error)
	ListGroups(context.Context, string) ([]store.GroupSummary, error)
	DeleteGroup(context.Context, string) error
	AddColumn(context.Context, string, string, string) (store.Column, error)
	RenameColumn(context.Context, string, string) error
	ListColumns(context.Context, string) ([]store.Column, error)
	AddRow(context.Context, string) (store.Row, error)
	ListRows(context.Context, string) ([]store.Row, error)
	DeleteRow(context.Context, string) (bool, error)
	UpsertCell(context.Context, store.Cell) error
	CellsForGroup(context.Context, string) ([]store.CellValue, error)

	CreateProject(context.Context, store.Project) (store.Project, error)
	GetProject(context.Context, string) (store.Project, error)
	ListProjects(context.Context) ([]store.Project, error)
	UpdateProject(context.Context, store.Project) error
	ArchiveProject(context.Context, string, string) error
	DeleteProject(context.Context, string) error

	CreateUser(context.Context, store.User) (store.User, error)
	GetUserByEmail(context.Context, string) (store.User, error)
	ListUsers(context.Context) ([]store.User, error)
	UpdateUser(context.Context, store.User) error
	UpdatePrivileges(context.Context, string, json.RawMessage) error
	DeleteUser(context.Context, string) error

	Ping(ctx context.Context) error
}

type sessionStore interface {
	Save(context.Context, string, session.Data, time.Duration) error
	Lookup(context.Context, string) (session.Data, error)
	Revoke(context.Context, string) error
	Ping(context.Context) error
}

// projectSearch is satisfied by *search.Service.
type projectSearch interface {
	Search(search.Query) search.Response
	IndexProject(search.ProjectRecord)
	DeleteProject(string)
}

type Service struct {
	store      dataStore
	sessions   sessionStore
	passwords  *authpw.Service
	search     projectSearch
	metrics    *metrics.Metrics
	logger     *zap.Logger
	sessionTTL time.Duration
}

// Options carries the optional collaborators of a Service.
type Options struct {
	Sessions   sessionStore
	Search     projectSearch
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	SessionTTL time.Duration
	// BcryptCost overrides the password hashing cost; zero keeps the default.
	BcryptCost int
}

// New wires a Service. Missing options fall back to an in-memory session
// store, no search index and a no-op logger.
func New(dataStore dataStore, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	passwords := authpw.NewService(dataStore)
	if opts.BcryptCost > 0 {
		passwords.WithCost(opts.BcryptCost)
	}
	return &Service{
		store:      dataStore,
		sessions:   sessions,
		passwords:  passwords,
		search:     opts.Search,
		metrics:    opts.Metrics,
		logger:     logger,
		sessionTTL: opts.SessionTTL,
	}
}

// Ping checks the health of the store and the session backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) PingSessions(ctx context.Context) error {
	return s.sessions.Ping(ctx)
}

// fail logs storage failures and returns err unchanged.
func (s *Service) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok && domainErr.cause != nil {
		s.logger.Error(op+" failed", zap.Error(domainErr.cause))
	}
	return err
}
