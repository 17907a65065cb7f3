package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"audimart/internal/config"
	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

type InvoiceService interface {
	CreateForDistribution(ctx context.Context, distributionID uuid.UUID) (*models.Invoice, error)
	CreateForSale(ctx context.Context, saleID uuid.UUID, buyerName string) (*models.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*models.Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID) error
	MarkOverdueInvoices(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GSTComponents is the tax split of one invoice: intra-state supplies carry
// CGST+SGST at half the rate each, inter-state supplies carry IGST at the
// full rate.
type GSTComponents struct {
	Taxable decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
	IGST    decimal.Decimal
	Total   decimal.Decimal
}

type invoiceService struct {
	invoiceRepo      repositories.InvoiceRepository
	distributionRepo repositories.DistributionRepository
	dealerRepo       repositories.DealerRepository
	saleRepo         repositories.SaleRepository
	productRepo      repositories.ProductRepository
	cfg              config.InvoiceConfig
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	distributionRepo repositories.DistributionRepository,
	dealerRepo repositories.DealerRepository,
	saleRepo repositories.SaleRepository,
	productRepo repositories.ProductRepository,
	cfg config.InvoiceConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:      invoiceRepo,
		distributionRepo: distributionRepo,
		dealerRepo:       dealerRepo,
		saleRepo:         saleRepo,
		productRepo:      productRepo,
		cfg:              cfg,
	}
}

// CalculateGSTComponents splits a taxable amount into CGST/SGST or IGST
// depending on whether the buyer's state matches the seller's.
func CalculateGSTComponents(taxable float64, gstRate float64, interState bool) GSTComponents {
	base := decimal.NewFromFloat(taxable)
	rate := decimal.NewFromFloat(gstRate).Div(decimal.NewFromInt(100))
	tax := base.Mul(rate)

	c := GSTComponents{Taxable: base.Round(2)}
	if interState {
		c.IGST = tax.Round(2)
	} else {
		half := tax.Div(decimal.NewFromInt(2))
		c.CGST = half.Round(2)
		c.SGST = half.Round(2)
	}
	c.Total = base.Add(c.CGST).Add(c.SGST).Add(c.IGST).Round(2)
	return c
}

func (s *invoiceService) CreateForDistribution(ctx context.Context, distributionID uuid.UUID) (*models.Invoice, error) {
	distribution, err := s.distributionRepo.GetByID(ctx, distributionID)
	if err != nil {
		return nil, fmt.Errorf("distribution not found")
	}

	existing, err := s.invoiceRepo.GetByDistributionID(ctx, distributionID)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("invoice %s already exists for this distribution", existing[0].InvoiceNumber)
	}

	dealer, err := s.dealerRepo.GetByID(ctx, distribution.DealerID)
	if err != nil {
		return nil, fmt.Errorf("dealer not found")
	}

	taxable := decimal.Zero
	gstRate := s.cfg.DefaultGST
	var hsn *string
	for _, item := range distribution.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.UnitCount())))
		taxable = taxable.Add(line)
		if item.GSTPercent > 0 {
			gstRate = item.GSTPercent
		}
		if hsn == nil {
			if product, perr := s.productRepo.GetByID(ctx, item.ProductID); perr == nil && product.HSNCode != nil {
				hsn = product.HSNCode
			}
		}
	}

	interState := dealer.State != "" && !strings.EqualFold(dealer.State, s.cfg.SellerState)
	components := CalculateGSTComponents(taxable.Round(2).InexactFloat64(), gstRate, interState)

	issued := time.Now()
	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, s.cfg.Prefix, issued)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:             uuid.New(),
		DistributionID: &distributionID,
		InvoiceNumber:  number,
		BuyerName:      dealer.Name,
		GSTIN:          dealer.GSTIN,
		HSNSAC:         hsn,
		Status:         InvoiceStatusUnpaid,
		IssuedDate:     issued,
		DueDate:        issued.AddDate(0, 0, s.cfg.DueDays),
	}
	applyComponents(invoice, components, gstRate)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) CreateForSale(ctx context.Context, saleID uuid.UUID, buyerName string) (*models.Invoice, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale not found")
	}

	taxable := decimal.Zero
	gstRate := s.cfg.DefaultGST
	for _, item := range sale.Items {
		qty := decimal.NewFromInt(int64(item.EffectiveQuantity()))
		taxable = taxable.Add(decimal.NewFromFloat(item.UnitPrice).Mul(qty)).
			Sub(decimal.NewFromFloat(item.Discount))
	}
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	if buyerName == "" {
		buyerName = sale.PatientName
	}

	// Retail sales are to unregistered buyers in the seller's own state.
	components := CalculateGSTComponents(taxable.Round(2).InexactFloat64(), gstRate, false)

	issued := time.Now()
	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, s.cfg.Prefix, issued)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		SaleID:        &saleID,
		InvoiceNumber: number,
		BuyerName:     buyerName,
		Status:        InvoiceStatusUnpaid,
		IssuedDate:    issued,
		DueDate:       issued.AddDate(0, 0, s.cfg.DueDays),
	}
	applyComponents(invoice, components, gstRate)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func applyComponents(invoice *models.Invoice, c GSTComponents, gstRate float64) {
	taxable := c.Taxable.InexactFloat64()
	invoice.TaxableAmount = &taxable
	invoice.GSTRate = &gstRate
	if c.IGST.IsPositive() {
		igst := c.IGST.InexactFloat64()
		invoice.IGST = &igst
	} else {
		cgst := c.CGST.InexactFloat64()
		sgst := c.SGST.InexactFloat64()
		invoice.CGST = &cgst
		invoice.SGST = &sgst
	}
	invoice.TotalAmount = c.Total.InexactFloat64()
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	return s.invoiceRepo.List(ctx, limit, offset)
}

func (s *invoiceService) MarkPaid(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status == InvoiceStatusPaid {
		return fmt.Errorf("invoice %s is already paid", invoice.InvoiceNumber)
	}
	now := time.Now()
	invoice.Status = InvoiceStatusPaid
	invoice.PaidDate = &now
	return s.invoiceRepo.Update(ctx, invoice)
}

// MarkOverdueInvoices moves unpaid invoices past their due date to overdue.
// Runs from the scheduler; returns the number of invoices flipped.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context) (int, error) {
	unpaid, err := s.invoiceRepo.GetUnpaid(ctx, 1000, 0)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	marked := 0
	for _, invoice := range unpaid {
		if invoice.DueDate.Before(now) {
			if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, InvoiceStatusOverdue); err != nil {
				log.Errorf("failed to mark invoice %s overdue: %v", invoice.InvoiceNumber, err)
				continue
			}
			marked++
		}
	}
	return marked, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
