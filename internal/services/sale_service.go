package services

import (
	"context"
	"fmt"
	"time"

	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleService interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type saleService struct {
	saleRepo        repositories.SaleRepository
	productRepo     repositories.ProductRepository
	availabilitySvc AvailabilityService
}

func NewSaleService(
	saleRepo repositories.SaleRepository,
	productRepo repositories.ProductRepository,
	availabilitySvc AvailabilityService,
) SaleService {
	return &saleService{
		saleRepo:        saleRepo,
		productRepo:     productRepo,
		availabilitySvc: availabilitySvc,
	}
}

func (s *saleService) Create(ctx context.Context, sale *models.Sale) error {
	if sale.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if len(sale.Items) == 0 {
		return fmt.Errorf("sale must have at least one item")
	}

	total := decimal.Zero
	for i := range sale.Items {
		item := &sale.Items[i]
		if item.ProductID == uuid.Nil {
			return fmt.Errorf("line %d: product is required", i+1)
		}
		if _, err := s.productRepo.GetByID(ctx, item.ProductID); err != nil {
			return fmt.Errorf("line %d: product not found", i+1)
		}

		qty := decimal.NewFromInt(int64(item.EffectiveQuantity()))
		line := decimal.NewFromFloat(item.UnitPrice).Mul(qty).
			Sub(decimal.NewFromFloat(item.Discount)).
			Add(decimal.NewFromFloat(item.GSTAmount))
		if line.IsNegative() {
			line = decimal.Zero
		}
		item.LineTotal = line.Round(2).InexactFloat64()
		total = total.Add(line)
	}
	sale.TotalAmount = total.Round(2).InexactFloat64()

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = time.Now()
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

func (s *saleService) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	return s.saleRepo.List(ctx, limit, offset)
}

func (s *saleService) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	return s.saleRepo.ListByDateRange(ctx, from, to)
}

func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}
