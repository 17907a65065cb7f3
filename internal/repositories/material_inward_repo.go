package repositories

import (
	"context"
	"encoding/json"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type MaterialInwardRepository interface {
	Create(ctx context.Context, inward *models.MaterialInward) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaterialInward, error)
	Update(ctx context.Context, inward *models.MaterialInward) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.MaterialInward, error)
	ListAll(ctx context.Context) ([]*models.MaterialInward, error)
}

type materialInwardRepo struct {
	db DB
}

func NewMaterialInwardRepository(db DB) MaterialInwardRepository {
	return &materialInwardRepo{db: db}
}

const inwardColumns = `id, challan_number, supplier_name, movement_kind, branch, company, items, received_at, created_at`

func scanInward(row interface{ Scan(...any) error }) (*models.MaterialInward, error) {
	m := &models.MaterialInward{}
	var items []byte
	err := row.Scan(&m.ID, &m.ChallanNumber, &m.SupplierName, &m.MovementKind, &m.Branch, &m.Company, &items, &m.ReceivedAt, &m.CreatedAt)
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

func (r *materialInwardRepo) Create(ctx context.Context, inward *models.MaterialInward) error {
	items, err := json.Marshal(inward.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO material_inward (id, challan_number, supplier_name, movement_kind, branch, company, items, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err = r.db.Exec(ctx, query, inward.ID, inward.ChallanNumber, inward.SupplierName,
		inward.MovementKind, inward.Branch, inward.Company, items, inward.ReceivedAt)
	return err
}

func (r *materialInwardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaterialInward, error) {
	query := `SELECT ` + inwardColumns + ` FROM material_inward WHERE id = $1`
	return scanInward(r.db.QueryRow(ctx, query, id))
}

func (r *materialInwardRepo) Update(ctx context.Context, inward *models.MaterialInward) error {
	items, err := json.Marshal(inward.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE material_inward
		SET challan_number = $1, supplier_name = $2, movement_kind = $3, branch = $4, company = $5, items = $6, received_at = $7
		WHERE id = $8
	`
	_, err = r.db.Exec(ctx, query, inward.ChallanNumber, inward.SupplierName, inward.MovementKind,
		inward.Branch, inward.Company, items, inward.ReceivedAt, inward.ID)
	return err
}

func (r *materialInwardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM material_inward WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *materialInwardRepo) List(ctx context.Context, limit, offset int) ([]*models.MaterialInward, error) {
	query := `SELECT ` + inwardColumns + ` FROM material_inward ORDER BY received_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inwards []*models.MaterialInward
	for rows.Next() {
		m, err := scanInward(rows)
		if err != nil {
			return nil, err
		}
		inwards = append(inwards, m)
	}
	return inwards, rows.Err()
}

// ListAll returns every inward record for the reconciliation pass.
func (r *materialInwardRepo) ListAll(ctx context.Context) ([]*models.MaterialInward, error) {
	query := `SELECT ` + inwardColumns + ` FROM material_inward`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inwards []*models.MaterialInward
	for rows.Next() {
		m, err := scanInward(rows)
		if err != nil {
			return nil, err
		}
		inwards = append(inwards, m)
	}
	return inwards, rows.Err()
}
