package repositories

import (
	"context"
	"encoding/json"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Purchase, error)
	ListAll(ctx context.Context) ([]*models.Purchase, error)
}

type purchaseRepo struct {
	db DB
}

func NewPurchaseRepository(db DB) PurchaseRepository {
	return &purchaseRepo{db: db}
}

const purchaseColumns = `id, invoice_number, supplier_name, movement_kind, branch, company, items, purchased_at, created_at`

func scanPurchase(row interface{ Scan(...any) error }) (*models.Purchase, error) {
	p := &models.Purchase{}
	var items []byte
	err := row.Scan(&p.ID, &p.InvoiceNumber, &p.SupplierName, &p.MovementKind, &p.Branch, &p.Company, &items, &p.PurchasedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *purchaseRepo) Create(ctx context.Context, purchase *models.Purchase) error {
	items, err := json.Marshal(purchase.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO purchases (id, invoice_number, supplier_name, movement_kind, branch, company, items, purchased_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err = r.db.Exec(ctx, query, purchase.ID, purchase.InvoiceNumber, purchase.SupplierName,
		purchase.MovementKind, purchase.Branch, purchase.Company, items, purchase.PurchasedAt)
	return err
}

func (r *purchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return scanPurchase(r.db.QueryRow(ctx, query, id))
}

func (r *purchaseRepo) Update(ctx context.Context, purchase *models.Purchase) error {
	items, err := json.Marshal(purchase.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE purchases
		SET invoice_number = $1, supplier_name = $2, movement_kind = $3, branch = $4, company = $5, items = $6, purchased_at = $7
		WHERE id = $8
	`
	_, err = r.db.Exec(ctx, query, purchase.InvoiceNumber, purchase.SupplierName, purchase.MovementKind,
		purchase.Branch, purchase.Company, items, purchase.PurchasedAt, purchase.ID)
	return err
}

func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM purchases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *purchaseRepo) List(ctx context.Context, limit, offset int) ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY purchased_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ListAll returns every purchase record for the reconciliation pass.
func (r *purchaseRepo) ListAll(ctx context.Context) ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
