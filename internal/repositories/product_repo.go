package repositories

import (
	"context"
	"fmt"
	"strings"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
	AdvancedSearch(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
}

type productRepo struct {
	db DB
}

func NewProductRepository(db DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, type, company, mrp, dealer_price, has_gst, gst_percent, hsn_code, serial_tracked, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Company, &p.MRP, &p.DealerPrice, &p.HasGST, &p.GSTPercent, &p.HSNCode, &p.SerialTracked, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, type, company, mrp, dealer_price, has_gst, gst_percent, hsn_code, serial_tracked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Type, product.Company,
		product.MRP, product.DealerPrice, product.HasGST, product.GSTPercent, product.HSNCode, product.SerialTracked)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, type = $2, company = $3, mrp = $4, dealer_price = $5,
		    has_gst = $6, gst_percent = $7, hsn_code = $8, serial_tracked = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Type, product.Company, product.MRP,
		product.DealerPrice, product.HasGST, product.GSTPercent, product.HSNCode, product.SerialTracked, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListAll returns the full catalog. The reconciliation pass needs every
// product to classify line items, so there is no pagination here.
func (r *productRepo) ListAll(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// AdvancedSearch performs catalog search with multiple filters
func (r *productRepo) AdvancedSearch(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}

	queryBase := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND (name ILIKE $%d OR company ILIKE $%d OR type ILIKE $%d)`, conditionCount, conditionCount, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.Type != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND type = $%d`, conditionCount)
		args = append(args, *filter.Type)
	}
	if filter.Company != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND company = $%d`, conditionCount)
		args = append(args, *filter.Company)
	}
	if filter.SerialTracked != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND serial_tracked = $%d`, conditionCount)
		args = append(args, *filter.SerialTracked)
	}
	if filter.MinMRP != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND mrp >= $%d`, conditionCount)
		args = append(args, *filter.MinMRP)
	}
	if filter.MaxMRP != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND mrp <= $%d`, conditionCount)
		args = append(args, *filter.MaxMRP)
	}

	sortField := "name"
	switch filter.SortBy {
	case "company":
		sortField = "company"
	case "mrp":
		sortField = "mrp"
	case "created_at":
		sortField = "created_at"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortField, sortOrder)

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
