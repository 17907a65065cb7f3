package repositories

import (
	"context"
	"encoding/json"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)
	ListAll(ctx context.Context) ([]*models.Sale, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error)
}

type saleRepo struct {
	db DB
}

func NewSaleRepository(db DB) SaleRepository {
	return &saleRepo{db: db}
}

const saleColumns = `id, patient_name, branch, items, total_amount, sold_at, created_at`

func scanSale(row interface{ Scan(...any) error }) (*models.Sale, error) {
	s := &models.Sale{}
	var items []byte
	err := row.Scan(&s.ID, &s.PatientName, &s.Branch, &items, &s.TotalAmount, &s.SoldAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *saleRepo) Create(ctx context.Context, sale *models.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO sales (id, patient_name, branch, items, total_amount, sold_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = r.db.Exec(ctx, query, sale.ID, sale.PatientName, sale.Branch, items, sale.TotalAmount, sale.SoldAt)
	return err
}

func (r *saleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return scanSale(r.db.QueryRow(ctx, query, id))
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sales WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *saleRepo) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sold_at DESC LIMIT $1 OFFSET $2`
	return r.querySales(ctx, query, limit, offset)
}

// ListAll returns every sale for the reconciliation pass.
func (r *saleRepo) ListAll(ctx context.Context) ([]*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	return r.querySales(ctx, query)
}

func (r *saleRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sold_at >= $1 AND sold_at <= $2 ORDER BY sold_at`
	return r.querySales(ctx, query, from, to)
}

func (r *saleRepo) querySales(ctx context.Context, query string, args ...any) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
