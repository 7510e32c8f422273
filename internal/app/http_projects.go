package app

import (
	"net/http"
	"strconv"
)

func (s *HTTPServer) handleProjects(w http.ResponseWriter, r *http.Request, parts []string) bool {
	switch {
	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "create_project":
		var body struct {
			Name        string `json:"project_name"`
			Location    string `json:"project_location"`
			Description string `json:"project_description"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		project, err := s.service.CreateProject(r.Context(), ProjectInput{
			Name:        body.Name,
			Location:    body.Location,
			Description: body.Description,
		})
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusCreated, map[string]any{"message": "Project created successfully", "projectId": project.ID})
		return true

	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "projects":
		projects, err := s.service.ListProjects(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, projects)
		return true

	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "projects" && parts[1] == "search":
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, s.service.SearchProjects(r.URL.Query().Get("q"), limit))
		return true

	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "project":
		project, err := s.service.GetProject(r.Context(), parts[1])
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, project)
		return true

	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] == "update_project":
		var body struct {
			Name        string `json:"project_name"`
			Location    string `json:"project_location"`
			Description string `json:"project_description"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		err := s.service.UpdateProject(r.Context(), parts[1], ProjectInput{
			Name:        body.Name,
			Location:    body.Location,
			Description: body.Description,
		})
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Project updated successfully")
		return true

	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] == "archive_project":
		var body struct {
			Group string `json:"group"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		if err := s.service.ArchiveProject(r.Context(), parts[1], body.Group); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Project archived successfully")
		return true

	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "delete_project":
		if err := s.service.DeleteProject(r.Context(), parts[1]); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Project deleted successfully")
		return true
	}
	return false
}
