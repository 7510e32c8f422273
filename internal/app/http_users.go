package app

import (
	"encoding/json"
	"net/http"

	"github.com/corplex213/CEO-management-Web/internal/authpw"
)

func (s *HTTPServer) handleUsers(w http.ResponseWriter, r *http.Request, parts []string) bool {
	switch {
	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "register":
		var body struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Email     string `json:"email"`
			Password  string `json:"password"`
			Position  string `json:"position"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		_, err := s.service.Register(r.Context(), authpw.RegisterRequest{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			Password:  body.Password,
			Position:  body.Position,
		})
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusCreated, "User registered successfully")
		return true

	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "login":
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		result, err := s.service.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, result)
		return true

	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "session":
		info, err := s.service.SessionFromToken(r.Context(), bearerToken(r))
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, info)
		return true

	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "logout":
		if err := s.service.Logout(r.Context(), bearerToken(r)); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Logged out successfully")
		return true

	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "users":
		users, err := s.service.ListUsers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, users)
		return true

	case r.Method == http.MethodPut && len(parts) == 3 && parts[0] == "users" && parts[2] == "privileges":
		var body struct {
			Privileges json.RawMessage `json:"privileges"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		if err := s.service.UpdatePrivileges(r.Context(), parts[1], body.Privileges); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Privileges updated successfully")
		return true

	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] == "users":
		var body struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Position  string `json:"position"`
			Password  string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		err := s.service.UpdateUser(r.Context(), parts[1], UserInput{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Email:     body.Email,
			Position:  body.Position,
			Password:  body.Password,
		})
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "User updated successfully")
		return true

	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "users":
		if err := s.service.DeleteUser(r.Context(), parts[1]); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "User deleted successfully")
		return true
	}
	return false
}
