package api

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
)

type SystemHandler struct {
	users       repository.UserRepo
	environment string
}

func NewSystemHandler(ur repository.UserRepo, environment string) *SystemHandler {
	return &SystemHandler{users: ur, environment: environment}
}

// HealthHandler reports datastore reachability by counting users. The schema
// bootstrap is lenient, so this is the endpoint that actually reveals a
// missing or unreachable database.
func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.users.CountUsers(r.Context())
	if err != nil {
		logger.Error("database health check failed", slog.Any("err", err))
		writeJSON(w, map[string]any{
			"status": "ERROR",
			"error":  "Database connection failed",
		}, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"database":    "Connected",
		"users":       count,
		"environment": h.environment,
	}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"version":   version,
			"buildTime": buildTime,
		}, http.StatusOK)
	}
}
