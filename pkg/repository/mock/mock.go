package mock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/models"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Users       *UserRepoMock
	Inspections *InspectionRepoMock
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:       &UserRepoMock{},
		Inspections: &InspectionRepoMock{},
	}
}

func stamp() int64 {
	return time.Now().UTC().UnixMilli()
}

type UserRepoMock struct {
	Stored    []*models.User
	CreateErr error
	GetErr    error
	CountErr  error
}

func (m *UserRepoMock) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.Stored {
		if existing.Email == u.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	u.ID = int64(len(m.Stored) + 1)
	u.Created = stamp()
	cp := *u
	m.Stored = append(m.Stored, &cp)
	return u.ID, nil
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, u := range m.Stored {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UserRepoMock) CountUsers(ctx context.Context) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return int64(len(m.Stored)), nil
}

type InspectionRepoMock struct {
	Stored    []*models.Inspection
	CreateErr error
	ListErr   error
	UpdateErr error
	DeleteErr error

	// Calls counts every storage operation, so tests can assert that
	// unauthorized requests never touch the store.
	Calls int
}

func (m *InspectionRepoMock) CreateInspection(ctx context.Context, ins *models.Inspection) (int64, error) {
	m.Calls++
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if ins.Status == "" {
		ins.Status = models.StatusCompleted
	}
	ins.ID = int64(len(m.Stored) + 1)
	ins.Created = stamp()
	ins.Updated = ins.Created
	cp := *ins
	cp.Data = append(json.RawMessage(nil), ins.Data...)
	m.Stored = append(m.Stored, &cp)
	return ins.ID, nil
}

func (m *InspectionRepoMock) ListInspectionsByOwner(ctx context.Context, ownerID int64, typeFilter string) ([]models.Inspection, error) {
	m.Calls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := []models.Inspection{}
	for i := len(m.Stored) - 1; i >= 0; i-- {
		ins := m.Stored[i]
		if ins.UserID != ownerID {
			continue
		}
		if typeFilter != "" && ins.Type != typeFilter {
			continue
		}
		out = append(out, *ins)
	}
	return out, nil
}

func (m *InspectionRepoMock) UpdateInspection(ctx context.Context, ins *models.Inspection) error {
	m.Calls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for _, existing := range m.Stored {
		if existing.ID == ins.ID && existing.UserID == ins.UserID {
			existing.Type = ins.Type
			existing.Data = append(json.RawMessage(nil), ins.Data...)
			existing.Status = ins.Status
			existing.Updated = stamp()
			ins.Updated = existing.Updated
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *InspectionRepoMock) DeleteInspection(ctx context.Context, id, ownerID int64) error {
	m.Calls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, existing := range m.Stored {
		if existing.ID == id && existing.UserID == ownerID {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
