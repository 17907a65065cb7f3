package repositories

import (
	"context"
	"encoding/json"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type MaterialOutRepository interface {
	Create(ctx context.Context, out *models.MaterialOut) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaterialOut, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.MaterialOut, error)
	ListAll(ctx context.Context) ([]*models.MaterialOut, error)
}

type materialOutRepo struct {
	db DB
}

func NewMaterialOutRepository(db DB) MaterialOutRepository {
	return &materialOutRepo{db: db}
}

const outColumns = `id, branch, destination, movement_kind, status, notes, reason, items, dispatched_at, created_at`

func scanOut(row interface{ Scan(...any) error }) (*models.MaterialOut, error) {
	m := &models.MaterialOut{}
	var items []byte
	err := row.Scan(&m.ID, &m.Branch, &m.Destination, &m.MovementKind, &m.Status, &m.Notes, &m.Reason, &items, &m.DispatchedAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &m.Items); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *materialOutRepo) Create(ctx context.Context, out *models.MaterialOut) error {
	items, err := json.Marshal(out.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO materials_out (id, branch, destination, movement_kind, status, notes, reason, items, dispatched_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err = r.db.Exec(ctx, query, out.ID, out.Branch, out.Destination, out.MovementKind,
		out.Status, out.Notes, out.Reason, items, out.DispatchedAt)
	return err
}

func (r *materialOutRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaterialOut, error) {
	query := `SELECT ` + outColumns + ` FROM materials_out WHERE id = $1`
	return scanOut(r.db.QueryRow(ctx, query, id))
}

func (r *materialOutRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE materials_out SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *materialOutRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM materials_out WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *materialOutRepo) List(ctx context.Context, limit, offset int) ([]*models.MaterialOut, error) {
	query := `SELECT ` + outColumns + ` FROM materials_out ORDER BY dispatched_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outs []*models.MaterialOut
	for rows.Next() {
		m, err := scanOut(rows)
		if err != nil {
			return nil, err
		}
		outs = append(outs, m)
	}
	return outs, rows.Err()
}

// ListAll returns every materials-out record for the reconciliation pass.
func (r *materialOutRepo) ListAll(ctx context.Context) ([]*models.MaterialOut, error) {
	query := `SELECT ` + outColumns + ` FROM materials_out`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outs []*models.MaterialOut
	for rows.Next() {
		m, err := scanOut(rows)
		if err != nil {
			return nil, err
		}
		outs = append(outs, m)
	}
	return outs, rows.Err()
}
