package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/models"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
)

func (s *Store) CreateInspection(ctx context.Context, ins *models.Inspection) (int64, error) {
	if ins == nil {
		return 0, fmt.Errorf("inspection is nil")
	}
	if ins.Status == "" {
		ins.Status = models.StatusCompleted
	}

	ts := now()
	row := s.conn.QueryRow(ctx,
		`INSERT INTO inspections (user_id, type, data, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		ins.UserID, ins.Type, string(ins.Data), ins.Status, ts, ts)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}

	ins.ID = id
	ins.Created = ts
	ins.Updated = ts
	return id, nil
}

func (s *Store) ListInspectionsByOwner(ctx context.Context, ownerID int64, typeFilter string) ([]models.Inspection, error) {
	query := `SELECT id, user_id, type, data, status, created_at, updated_at
		FROM inspections WHERE user_id = $1`
	args := []any{ownerID}
	if typeFilter != "" {
		query += ` AND type = $2`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Inspection{}
	for rows.Next() {
		var ins models.Inspection
		var data []byte
		if err := rows.Scan(&ins.ID, &ins.UserID, &ins.Type, &data, &ins.Status, &ins.Created, &ins.Updated); err != nil {
			return nil, err
		}
		ins.Data = json.RawMessage(data)
		out = append(out, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateInspection replaces type, data and status of the row matching both id
// and owner in one statement. The dual predicate is the ownership check; a row
// owned by someone else and a missing row both come back as ErrNotFound.
func (s *Store) UpdateInspection(ctx context.Context, ins *models.Inspection) error {
	if ins == nil {
		return fmt.Errorf("inspection is nil")
	}
	if ins.Status == "" {
		ins.Status = models.StatusCompleted
	}

	ts := now()
	res, err := s.conn.Exec(ctx,
		`UPDATE inspections SET type = $1, data = $2, status = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6`,
		ins.Type, string(ins.Data), ins.Status, ts, ins.ID, ins.UserID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}

	ins.Updated = ts
	return nil
}

func (s *Store) DeleteInspection(ctx context.Context, id, ownerID int64) error {
	res, err := s.conn.Exec(ctx,
		`DELETE FROM inspections WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}

	return nil
}
