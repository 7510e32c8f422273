package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

var errCellValueType = errors.New("value must be a string, number or boolean")

// handleTables serves the dynamic table routes. parts excludes the leading "api".
func (s *HTTPServer) handleTables(w http.ResponseWriter, r *http.Request, parts []string) bool {
	switch {
	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "proj_groups":
		var body struct {
			ProjectID string `json:"project_id"`
			Name      string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		group, err := s.service.CreateGroup(r.Context(), body.ProjectID, body.Name)
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": group.ID, "message": "Group created successfully"})
		return true

	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "project" && parts[2] == "groups":
		groups, err := s.service.ListGroups(r.Context(), parts[1])
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, groups)
		return true

	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "group":
		if err := s.service.DeleteGroup(r.Context(), parts[1]); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Group deleted successfully")
		return true

	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "group_columns":
		var body struct {
			GroupID string `json:"group_id"`
			Name    string `json:"name"`
			Type    string `json:"type"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		column, err := s.service.AddColumn(r.Context(), body.GroupID, body.Name, body.Type)
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": column.ID, "message": "Column added successfully"})
		return true

	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] == "group_column":
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		if err := s.service.RenameColumn(r.Context(), parts[1], body.Name); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Column name updated successfully")
		return true

	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "group" && parts[2] == "columns":
		columns, err := s.service.ListColumns(r.Context(), parts[1])
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, columns)
		return true

	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "group_rows":
		var body struct {
			GroupID string `json:"group_id"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		row, err := s.service.AddRow(r.Context(), body.GroupID)
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": row.ID, "message": "Row added successfully"})
		return true

	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "group" && parts[2] == "rows":
		rows, err := s.service.ListRows(r.Context(), parts[1])
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, rows)
		return true

	case r.Method == http.MethodDelete && len(parts) == 2 && parts[0] == "group_row":
		if err := s.service.DeleteRow(r.Context(), parts[1]); err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Row deleted successfully")
		return true

	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "cell_data":
		var body struct {
			RowID    string          `json:"row_id"`
			ColumnID string          `json:"column_id"`
			Field    string          `json:"field"`
			Value    json.RawMessage `json:"value"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return true
		}
		value, err := decodeCellValue(body.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return true
		}
		err = s.service.UpsertCell(r.Context(), CellInput{
			RowID:    body.RowID,
			ColumnID: body.ColumnID,
			Field:    body.Field,
			Value:    value,
		})
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeMessage(w, http.StatusOK, "Cell data saved successfully")
		return true

	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "group" && parts[2] == "cell_data":
		cells, err := s.service.CellsForGroup(r.Context(), parts[1])
		if err != nil {
			writeServiceError(w, err)
			return true
		}
		writeJSON(w, http.StatusOK, cells)
		return true
	}
	return false
}

// decodeCellValue returns nil for an absent or null value. Strings are stored
// as-is; numbers and booleans keep their JSON text.
func decodeCellValue(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return nil, err
		}
		return &value, nil
	case '{', '[':
		return nil, errCellValueType
	default:
		value := string(trimmed)
		return &value, nil
	}
}
