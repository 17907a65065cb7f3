package repositories

import (
	"context"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type DealerRepository interface {
	Create(ctx context.Context, dealer *models.Dealer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dealer, error)
	Update(ctx context.Context, dealer *models.Dealer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Dealer, error)
}

type dealerRepo struct {
	db DB
}

func NewDealerRepository(db DB) DealerRepository {
	return &dealerRepo{db: db}
}

const dealerColumns = `id, name, gstin, phone, address, state, status, created_at, updated_at`

func scanDealer(row interface{ Scan(...any) error }) (*models.Dealer, error) {
	d := &models.Dealer{}
	err := row.Scan(&d.ID, &d.Name, &d.GSTIN, &d.Phone, &d.Address, &d.State, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *dealerRepo) Create(ctx context.Context, dealer *models.Dealer) error {
	query := `
		INSERT INTO dealers (id, name, gstin, phone, address, state, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, dealer.ID, dealer.Name, dealer.GSTIN, dealer.Phone, dealer.Address, dealer.State, dealer.Status)
	return err
}

func (r *dealerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers WHERE id = $1`
	return scanDealer(r.db.QueryRow(ctx, query, id))
}

func (r *dealerRepo) Update(ctx context.Context, dealer *models.Dealer) error {
	query := `
		UPDATE dealers
		SET name = $1, gstin = $2, phone = $3, address = $4, state = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, dealer.Name, dealer.GSTIN, dealer.Phone, dealer.Address, dealer.State, dealer.Status, dealer.ID)
	return err
}

func (r *dealerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM dealers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *dealerRepo) List(ctx context.Context, limit, offset int) ([]*models.Dealer, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dealers []*models.Dealer
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, d)
	}
	return dealers, rows.Err()
}
