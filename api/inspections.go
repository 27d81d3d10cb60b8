package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/models"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
)

type InspectionsHandler struct {
	inspections repository.InspectionRepo
}

func NewInspectionsHandler(ir repository.InspectionRepo) *InspectionsHandler {
	return &InspectionsHandler{inspections: ir}
}

// inspectionSummary is the wire form of one record: the raw type for
// filtering plus the upper-cased reportType the frontend displays.
type inspectionSummary struct {
	ID         int64           `json:"id"`
	Type       string          `json:"type"`
	ReportType string          `json:"reportType"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

func summarize(ins models.Inspection) inspectionSummary {
	return inspectionSummary{
		ID:         ins.ID,
		Type:       ins.Type,
		ReportType: strings.ToUpper(ins.Type),
		Status:     ins.Status,
		Data:       ins.Data,
		CreatedAt:  formatMillis(ins.Created),
		UpdatedAt:  formatMillis(ins.Updated),
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func (h *InspectionsHandler) CreateLidar(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.TypeLidar)
}

func (h *InspectionsHandler) CreateSAR(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.TypeSAR)
}

func (h *InspectionsHandler) create(w http.ResponseWriter, r *http.Request, typ string) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payload, status, err := extractPayload(body)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ins := models.Inspection{UserID: userID, Type: typ, Data: payload, Status: status}
	if _, err := h.inspections.CreateInspection(r.Context(), &ins); err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"success":   true,
		"id":        ins.ID,
		"status":    ins.Status,
		"createdAt": formatMillis(ins.Created),
		"updatedAt": formatMillis(ins.Updated),
		"message":   "Inspection data saved successfully",
	}, http.StatusCreated)
}

// extractPayload accepts either `{data: {...}, status?}` or the legacy flat
// form where the whole body is the document and `status` rides alongside it.
func extractPayload(body map[string]json.RawMessage) (json.RawMessage, string, error) {
	var status string
	if raw, ok := body["status"]; ok {
		if err := json.Unmarshal(raw, &status); err != nil {
			return nil, "", errors.New("status must be a string")
		}
	}

	if raw, ok := body["data"]; ok && len(raw) > 0 && string(raw) != "null" {
		return raw, status, nil
	}

	delete(body, "data")
	delete(body, "status")
	if len(body) == 0 {
		return nil, "", errors.New("Inspection data is required")
	}
	flat, err := json.Marshal(body)
	if err != nil {
		return nil, "", errors.New("Invalid inspection data")
	}
	return flat, status, nil
}

func (h *InspectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	typeFilter := r.URL.Query().Get("type")
	if typeFilter != "" && !models.ValidType(typeFilter) {
		writeError(w, "Unknown inspection type", http.StatusBadRequest)
		return
	}

	items, err := h.inspections.ListInspectionsByOwner(r.Context(), userID, typeFilter)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	data := make([]inspectionSummary, 0, len(items))
	for _, ins := range items {
		data = append(data, summarize(ins))
	}

	writeJSON(w, map[string]any{"success": true, "data": data}, http.StatusOK)
}

type updateRequest struct {
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
}

func (h *InspectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Invalid inspection id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !models.ValidType(req.Type) {
		writeError(w, "Unknown inspection type", http.StatusBadRequest)
		return
	}
	if len(req.Data) == 0 || string(req.Data) == "null" {
		writeError(w, "Inspection data is required", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = models.StatusCompleted
	}

	ins := models.Inspection{ID: id, UserID: userID, Type: req.Type, Data: req.Data, Status: req.Status}
	if err := h.inspections.UpdateInspection(r.Context(), &ins); err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"success":    true,
		"id":         ins.ID,
		"type":       ins.Type,
		"reportType": strings.ToUpper(ins.Type),
		"status":     ins.Status,
		"updatedAt":  formatMillis(ins.Updated),
		"message":    "Inspection updated successfully",
	}, http.StatusOK)
}

func (h *InspectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Invalid inspection id", http.StatusBadRequest)
		return
	}

	if err := h.inspections.DeleteInspection(r.Context(), id, userID); err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"message": "Inspection deleted successfully",
	}, http.StatusOK)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
