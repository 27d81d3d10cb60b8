package repository

import (
	"context"
	"errors"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrDuplicateEmail is returned when an insert would violate the unique email
// constraint on users.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrNotFound is returned when an update or delete matched no row. A row owned
// by another user and a row that does not exist are indistinguishable.
var ErrNotFound = errors.New("record not found")

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type InspectionRepo interface {
	CreateInspection(ctx context.Context, ins *models.Inspection) (int64, error)
	ListInspectionsByOwner(ctx context.Context, ownerID int64, typeFilter string) ([]models.Inspection, error)
	UpdateInspection(ctx context.Context, ins *models.Inspection) error
	DeleteInspection(ctx context.Context, id, ownerID int64) error
}
