package repositories

import (
	"context"
	"fmt"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	GetByDistributionID(ctx context.Context, distributionID uuid.UUID) ([]*models.Invoice, error)
	GetUnpaid(ctx context.Context, limit, offset int) ([]*models.Invoice, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Invoice, error)
	GenerateInvoiceNumber(ctx context.Context, prefix string, issued time.Time) (string, error)
}

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepository(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, distribution_id, sale_id, invoice_number, buyer_name, gstin, hsn_sac, taxable_amount, gst_rate, cgst, sgst, igst, total_amount, status, issued_date, paid_date, due_date, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.DistributionID, &inv.SaleID, &inv.InvoiceNumber, &inv.BuyerName,
		&inv.GSTIN, &inv.HSNSAC, &inv.TaxableAmount, &inv.GSTRate, &inv.CGST, &inv.SGST, &inv.IGST,
		&inv.TotalAmount, &inv.Status, &inv.IssuedDate, &inv.PaidDate, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, distribution_id, sale_id, invoice_number, buyer_name, gstin, hsn_sac,
			taxable_amount, gst_rate, cgst, sgst, igst, total_amount, status, issued_date, paid_date, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, invoice.ID, invoice.DistributionID, invoice.SaleID, invoice.InvoiceNumber,
		invoice.BuyerName, invoice.GSTIN, invoice.HSNSAC, invoice.TaxableAmount, invoice.GSTRate,
		invoice.CGST, invoice.SGST, invoice.IGST, invoice.TotalAmount, invoice.Status,
		invoice.IssuedDate, invoice.PaidDate, invoice.DueDate)
	return err
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(r.db.QueryRow(ctx, query, id))
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET buyer_name = $1, gstin = $2, hsn_sac = $3, taxable_amount = $4, gst_rate = $5,
		    cgst = $6, sgst = $7, igst = $8, total_amount = $9, status = $10, paid_date = $11, due_date = $12, updated_at = NOW()
		WHERE id = $13
	`
	_, err := r.db.Exec(ctx, query, invoice.BuyerName, invoice.GSTIN, invoice.HSNSAC, invoice.TaxableAmount,
		invoice.GSTRate, invoice.CGST, invoice.SGST, invoice.IGST, invoice.TotalAmount, invoice.Status,
		invoice.PaidDate, invoice.DueDate, invoice.ID)
	return err
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *invoiceRepo) List(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issued_date DESC LIMIT $1 OFFSET $2`
	return r.queryInvoices(ctx, query, limit, offset)
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *invoiceRepo) GetByDistributionID(ctx context.Context, distributionID uuid.UUID) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE distribution_id = $1`
	return r.queryInvoices(ctx, query, distributionID)
}

func (r *invoiceRepo) GetUnpaid(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE status = 'unpaid' ORDER BY due_date LIMIT $1 OFFSET $2`
	return r.queryInvoices(ctx, query, limit, offset)
}

func (r *invoiceRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE issued_date >= $1 AND issued_date <= $2 ORDER BY issued_date`
	return r.queryInvoices(ctx, query, from, to)
}

// GenerateInvoiceNumber produces sequential numbers like INV-2026-08-00042,
// resetting per month.
func (r *invoiceRepo) GenerateInvoiceNumber(ctx context.Context, prefix string, issued time.Time) (string, error) {
	monthStart := time.Date(issued.Year(), issued.Month(), 1, 0, 0, 0, 0, issued.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var count int
	query := `SELECT COUNT(*) FROM invoices WHERE issued_date >= $1 AND issued_date < $2`
	if err := r.db.QueryRow(ctx, query, monthStart, monthEnd).Scan(&count); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%02d-%05d", prefix, issued.Year(), int(issued.Month()), count+1), nil
}

func (r *invoiceRepo) queryInvoices(ctx context.Context, query string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
