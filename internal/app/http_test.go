package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corplex213/CEO-management-Web/internal/ratelimit"
	"github.com/corplex213/CEO-management-Web/internal/search"
	"github.com/corplex213/CEO-management-Web/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	store   *store.SQLStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	db, err := store.Open(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.ApplyMigrations(ctx, db, store.DriverSQLite))

	sqlStore := store.NewSQLStore(db, store.DriverSQLite)
	searchService := search.NewService(nil, search.NewSQLSearch(sqlStore), nil)
	svc := New(sqlStore, Options{Search: searchService, BcryptCost: bcrypt.MinCost})
	return &testAPI{t: t, handler: NewHTTPServer(svc, HTTPOptions{}).Handler(), store: sqlStore}
}

func (a *testAPI) do(method, path string, body any, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "{") {
		require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}

func (a *testAPI) list(path string) []map[string]any {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())
	var out []map[string]any
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func (a *testAPI) created(method, path string, body any) string {
	a.t.Helper()
	rr, payload := a.do(method, path, body)
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	for _, key := range []string{"id", "projectId"} {
		if id, ok := payload[key].(string); ok && id != "" {
			return id
		}
	}
	a.t.Fatalf("no id in %s", rr.Body.String())
	return ""
}

func TestTableLifecycle(t *testing.T) {
	api := newTestAPI(t)

	projectID := api.created(http.MethodPost, "/api/create_project", map[string]any{
		"project_name":     "Tower",
		"project_location": "Makati",
	})
	groupID := api.created(http.MethodPost, "/api/proj_groups", map[string]any{"project_id": projectID, "name": "Phase 1"})

	groups := api.list("/api/project/" + projectID + "/groups")
	require.Len(t, groups, 1)
	assert.Equal(t, map[string]any{"id": groupID, "name": "Phase 1"}, groups[0])

	statusID := api.created(http.MethodPost, "/api/group_columns", map[string]any{"group_id": groupID, "name": "Status", "type": "text"})
	api.created(http.MethodPost, "/api/group_columns", map[string]any{"group_id": groupID, "name": "Status", "type": "text"})
	rowID := api.created(http.MethodPost, "/api/group_rows", map[string]any{"group_id": groupID})

	columns := api.list("/api/group/" + groupID + "/columns")
	require.Len(t, columns, 2, "duplicate column names are allowed")

	rr, _ := api.do(http.MethodPut, "/api/group_column/"+statusID, map[string]any{"name": "State"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "State", api.list("/api/group/"+groupID+"/columns")[0]["name"])

	rr, payload := api.do(http.MethodPost, "/api/cell_data", map[string]any{
		"row_id": rowID, "column_id": statusID, "field": "status", "value": "Open",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Cell data saved successfully", payload["message"])

	rr, _ = api.do(http.MethodPost, "/api/cell_data", map[string]any{
		"row_id": rowID, "column_id": statusID, "field": "status", "value": "Closed",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	cells := api.list("/api/group/" + groupID + "/cell_data")
	require.Len(t, cells, 1, "upsert must not duplicate a (row, column) cell")
	assert.Equal(t, map[string]any{"row_id": rowID, "column_id": statusID, "value": "Closed"}, cells[0])

	rr, _ = api.do(http.MethodDelete, "/api/group/"+groupID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, api.list("/api/group/"+groupID+"/rows"))
	assert.Empty(t, api.list("/api/group/"+groupID+"/columns"))
	assert.Empty(t, api.list("/api/group/"+groupID+"/cell_data"))

	rr, payload = api.do(http.MethodDelete, "/api/group/"+groupID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", payload["code"])
}

func TestCellValueDecoding(t *testing.T) {
	api := newTestAPI(t)
	projectID := api.created(http.MethodPost, "/api/create_project", map[string]any{"project_name": "P", "project_location": "L"})
	groupID := api.created(http.MethodPost, "/api/proj_groups", map[string]any{"project_id": projectID, "name": "G"})
	columnID := api.created(http.MethodPost, "/api/group_columns", map[string]any{"group_id": groupID, "name": "Qty", "type": "number"})
	rowID := api.created(http.MethodPost, "/api/group_rows", map[string]any{"group_id": groupID})

	body := func(value string) string {
		return `{"row_id":"` + rowID + `","column_id":"` + columnID + `","field":"qty"` + value + `}`
	}

	rr, _ := api.do(http.MethodPost, "/api/cell_data", body(`,"value":""`))
	assert.Equal(t, http.StatusOK, rr.Code, "empty string is a legal value")

	rr, payload := api.do(http.MethodPost, "/api/cell_data", body(`,"value":null`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])

	rr, _ = api.do(http.MethodPost, "/api/cell_data", body(""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = api.do(http.MethodPost, "/api/cell_data", body(`,"value":{"a":1}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = api.do(http.MethodPost, "/api/cell_data", body(`,"value":12.5`))
	require.Equal(t, http.StatusOK, rr.Code)
	cells := api.list("/api/group/" + groupID + "/cell_data")
	require.Len(t, cells, 1)
	assert.Equal(t, "12.5", cells[0]["value"])

	rr, payload = api.do(http.MethodPost, "/api/cell_data", map[string]any{
		"row_id": "missing", "column_id": columnID, "field": "qty", "value": "1",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", payload["code"])
}

func TestDeleteRowIsIdempotent(t *testing.T) {
	api := newTestAPI(t)
	projectID := api.created(http.MethodPost, "/api/create_project", map[string]any{"project_name": "P", "project_location": "L"})
	groupID := api.created(http.MethodPost, "/api/proj_groups", map[string]any{"project_id": projectID, "name": "G"})
	rowID := api.created(http.MethodPost, "/api/group_rows", map[string]any{"group_id": groupID})

	for i := 0; i < 2; i++ {
		rr, payload := api.do(http.MethodDelete, "/api/group_row/"+rowID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Row deleted successfully", payload["message"])
	}
	assert.Empty(t, api.list("/api/group/"+groupID+"/rows"))
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	rr, payload := api.do(http.MethodPost, "/api/proj_groups", map[string]any{"name": "G"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Project ID and group name are required", payload["error"])

	rr, payload = api.do(http.MethodPost, "/api/group_rows", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_BODY", payload["code"])

	rr, _ = api.do(http.MethodPost, "/api/group_columns", map[string]any{"group_id": "missing", "name": "A", "type": "text"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = api.do(http.MethodGet, "/api/nothing/here", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProjectRoutes(t *testing.T) {
	api := newTestAPI(t)
	projectID := api.created(http.MethodPost, "/api/create_project", map[string]any{
		"project_name": "North Tower", "project_location": "Makati", "project_description": "Steel frame",
	})
	groupID := api.created(http.MethodPost, "/api/proj_groups", map[string]any{"project_id": projectID, "name": "G"})
	api.created(http.MethodPost, "/api/group_rows", map[string]any{"group_id": groupID})

	rr, payload := api.do(http.MethodGet, "/api/project/"+projectID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "North Tower", payload["project_name"])
	assert.Equal(t, "Steel frame", payload["project_description"])

	rr, _ = api.do(http.MethodPut, "/api/update_project/"+projectID, map[string]any{
		"project_name": "South Tower", "project_location": "Taguig",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr, _ = api.do(http.MethodPut, "/api/archive_project/"+projectID, map[string]any{"group": "archived"})
	require.Equal(t, http.StatusOK, rr.Code)

	projects := api.list("/api/projects")
	require.Len(t, projects, 1)
	assert.Equal(t, "South Tower", projects[0]["project_name"])
	assert.Equal(t, "archived", projects[0]["project_group"])

	rr, payload = api.do(http.MethodGet, "/api/projects/search?q=south", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "sql", payload["engine"])
	results, _ := payload["results"].([]any)
	assert.Len(t, results, 1)

	rr, _ = api.do(http.MethodDelete, "/api/delete_project/"+projectID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, api.list("/api/project/"+projectID+"/groups"))
	assert.Empty(t, api.list("/api/group/"+groupID+"/rows"))

	rr, _ = api.do(http.MethodDelete, "/api/delete_project/"+projectID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr, _ = api.do(http.MethodPut, "/api/archive_project/"+projectID, map[string]any{"group": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRejectedAddColumnWritesNothing(t *testing.T) {
	api := newTestAPI(t)
	projectID := api.created(http.MethodPost, "/api/create_project", map[string]any{"project_name": "P", "project_location": "L"})
	groupID := api.created(http.MethodPost, "/api/proj_groups", map[string]any{"project_id": projectID, "name": "G"})
	api.created(http.MethodPost, "/api/group_columns", map[string]any{"group_id": groupID, "name": "Owner", "type": "text"})
	before := api.list("/api/group/" + groupID + "/columns")

	rr, payload := api.do(http.MethodPost, "/api/group_columns", map[string]any{"group_id": groupID, "name": "Status"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])

	assert.Equal(t, before, api.list("/api/group/"+groupID+"/columns"))
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	api := newTestAPI(t)

	rr, payload := api.do(http.MethodPost, "/api/register", map[string]any{
		"firstName": "Ana", "lastName": "Cruz", "email": "ana@example.com", "password": strings.Repeat("p", 80),
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])
	assert.Empty(t, api.list("/api/users"))
}

func TestUserAndSessionRoutes(t *testing.T) {
	api := newTestAPI(t)

	register := func(email, position string) (int, any) {
		rr, payload := api.do(http.MethodPost, "/api/register", map[string]any{
			"firstName": "Ana", "lastName": "Cruz", "email": email, "password": "secret", "position": position,
		})
		return rr.Code, payload["code"]
	}
	status, _ := register("ana@example.com", "admin")
	require.Equal(t, http.StatusCreated, status)
	status, code := register("ana@example.com", "staff")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", code)
	status, code = register("ben@example.com", "admin")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", code)
	status, _ = register("ben@example.com", "engineer")
	require.Equal(t, http.StatusCreated, status)

	rr, payload := api.do(http.MethodPost, "/api/login", map[string]any{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", payload["code"])

	rr, payload = api.do(http.MethodPost, "/api/login", map[string]any{"email": "ana@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"email": "ana@example.com", "position": "admin"}, payload["user"])
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)

	rr, payload = api.do(http.MethodGet, "/api/session", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "admin", payload["position"])

	users := api.list("/api/users")
	require.Len(t, users, 2)
	for _, user := range users {
		assert.NotContains(t, user, "PasswordHash")
	}
	var benID string
	for _, user := range users {
		if user["email"] == "ben@example.com" {
			benID, _ = user["id"].(string)
		}
	}
	require.NotEmpty(t, benID)

	rr, _ = api.do(http.MethodPut, "/api/users/"+benID, map[string]any{
		"first_name": "Ben", "last_name": "Reyes", "email": "ben@example.com", "position": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "a second admin is rejected on update")

	rr, _ = api.do(http.MethodPut, "/api/users/"+benID+"/privileges", map[string]any{"privileges": map[string]any{"projects": true}})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = api.do(http.MethodDelete, "/api/users/"+benID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, _ = api.do(http.MethodDelete, "/api/users/"+benID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = api.do(http.MethodPost, "/api/logout", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)
	rr, _ = api.do(http.MethodGet, "/api/session", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRateLimitedRequestsGet429(t *testing.T) {
	limiter := ratelimit.NewLimiter(0.001, 1)
	t.Cleanup(limiter.Close)
	server := NewHTTPServer(newTestService(&fakeStore{}), HTTPOptions{Limiter: limiter})

	call := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, call("/api/projects").Code)
	limited := call("/api/projects")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, call("/api/health").Code, "health checks are exempt")
}
