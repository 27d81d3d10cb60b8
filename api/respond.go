package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/db"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
)

// verboseErrors controls whether unexpected errors carry diagnostic detail in
// the response body. Enabled outside production via SetVerboseErrors.
var verboseErrors = false

// SetVerboseErrors toggles diagnostic detail on internal error responses.
func SetVerboseErrors(v bool) {
	verboseErrors = v
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]any{"success": false, "error": msg}, status)
}

// writeStorageError translates a repository failure into the uniform error
// envelope. Unreachable-datastore errors become a retryable 503; everything
// unexpected is a 500.
func writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, "Inspection not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, "Email already exists", http.StatusBadRequest)
	case db.IsUnavailable(err):
		logger.Error("datastore unavailable", slog.Any("err", err))
		writeError(w, "Database connection failed. Please try again later.", http.StatusServiceUnavailable)
	default:
		logger.Error("storage error", slog.Any("err", err))
		msg := "Something went wrong!"
		if verboseErrors {
			msg = msg + " " + err.Error()
		}
		writeError(w, msg, http.StatusInternalServerError)
	}
}
