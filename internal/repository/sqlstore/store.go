package sqlstore

import (
	"errors"
	"io"
	"strings"
	"time"

	"log/slog"

	"github.com/lib/pq"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/db"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
)

// Store implements the repository interfaces over the shared database handle.
// The same SQL runs on postgres and sqlite: $n placeholders, RETURNING on
// inserts, epoch-millisecond timestamps supplied by the application.
type Store struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure Store implements the public interfaces.
var _ repository.UserRepo = (*Store)(nil)
var _ repository.InspectionRepo = (*Store)(nil)

func New(conn *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Store{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
