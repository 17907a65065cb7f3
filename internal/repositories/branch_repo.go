package repositories

import (
	"context"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	GetByName(ctx context.Context, name string) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Branch, error)
}

type branchRepo struct {
	db DB
}

func NewBranchRepository(db DB) BranchRepository {
	return &branchRepo{db: db}
}

const branchColumns = `id, name, city, state, gstin, status, created_at, updated_at`

func scanBranch(row interface{ Scan(...any) error }) (*models.Branch, error) {
	b := &models.Branch{}
	err := row.Scan(&b.ID, &b.Name, &b.City, &b.State, &b.GSTIN, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *branchRepo) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (id, name, city, state, gstin, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, branch.ID, branch.Name, branch.City, branch.State, branch.GSTIN, branch.Status)
	return err
}

func (r *branchRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	return scanBranch(r.db.QueryRow(ctx, query, id))
}

func (r *branchRepo) GetByName(ctx context.Context, name string) (*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE name = $1`
	return scanBranch(r.db.QueryRow(ctx, query, name))
}

func (r *branchRepo) Update(ctx context.Context, branch *models.Branch) error {
	query := `
		UPDATE branches
		SET name = $1, city = $2, state = $3, gstin = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, branch.Name, branch.City, branch.State, branch.GSTIN, branch.Status, branch.ID)
	return err
}

func (r *branchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM branches WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *branchRepo) List(ctx context.Context, limit, offset int) ([]*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*models.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
