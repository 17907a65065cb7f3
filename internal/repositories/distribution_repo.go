package repositories

import (
	"context"
	"encoding/json"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type DistributionRepository interface {
	Create(ctx context.Context, distribution *models.Distribution) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Distribution, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Distribution, error)
	ListAll(ctx context.Context) ([]*models.Distribution, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Distribution, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Distribution, error)
}

type distributionRepo struct {
	db DB
}

func NewDistributionRepository(db DB) DistributionRepository {
	return &distributionRepo{db: db}
}

const distributionColumns = `id, dealer_id, branch, items, total_amount, status, distributed_at, created_at`

func scanDistribution(row interface{ Scan(...any) error }) (*models.Distribution, error) {
	d := &models.Distribution{}
	var items []byte
	err := row.Scan(&d.ID, &d.DealerID, &d.Branch, &items, &d.TotalAmount, &d.Status, &d.DistributedAt, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &d.Items); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (r *distributionRepo) Create(ctx context.Context, distribution *models.Distribution) error {
	items, err := json.Marshal(distribution.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO distributions (id, dealer_id, branch, items, total_amount, status, distributed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err = r.db.Exec(ctx, query, distribution.ID, distribution.DealerID, distribution.Branch,
		items, distribution.TotalAmount, distribution.Status, distribution.DistributedAt)
	return err
}

func (r *distributionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE id = $1`
	return scanDistribution(r.db.QueryRow(ctx, query, id))
}

func (r *distributionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE distributions SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *distributionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM distributions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *distributionRepo) List(ctx context.Context, limit, offset int) ([]*models.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions ORDER BY distributed_at DESC LIMIT $1 OFFSET $2`
	return r.queryDistributions(ctx, query, limit, offset)
}

// ListAll returns every committed distribution for the reconciliation pass.
func (r *distributionRepo) ListAll(ctx context.Context) ([]*models.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions`
	return r.queryDistributions(ctx, query)
}

func (r *distributionRepo) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE dealer_id = $1 ORDER BY distributed_at DESC LIMIT $2 OFFSET $3`
	return r.queryDistributions(ctx, query, dealerID, limit, offset)
}

func (r *distributionRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM distributions WHERE distributed_at >= $1 AND distributed_at <= $2 ORDER BY distributed_at`
	return r.queryDistributions(ctx, query, from, to)
}

func (r *distributionRepo) queryDistributions(ctx context.Context, query string, args ...any) ([]*models.Distribution, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var distributions []*models.Distribution
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, err
		}
		distributions = append(distributions, d)
	}
	return distributions, rows.Err()
}
