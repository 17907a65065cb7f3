package services

import (
	"context"
	"fmt"
	"time"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DistributionService commits reconciled stock to dealers. Selection is
// validated against a fresh availability pass so a serial can never be
// committed twice, and pricing is computed server-side.
type DistributionService interface {
	Create(ctx context.Context, req *CreateDistributionRequest) (*models.Distribution, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Distribution, error)
	List(ctx context.Context, limit, offset int) ([]*models.Distribution, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Distribution, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PriceLine(product *models.Product, price float64, units int) models.DistributionLineItem
}

// CreateDistributionRequest is the committed selection from the dialog:
// per product either explicit serial numbers or a bulk quantity, plus the
// operator's distribution price for the group.
type CreateDistributionRequest struct {
	DealerID uuid.UUID                 `json:"dealer_id"`
	Branch   string                    `json:"branch"`
	Items    []DistributionRequestItem `json:"items"`
}

type DistributionRequestItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	SerialNumbers []string  `json:"serial_numbers,omitempty"`
	Quantity      int       `json:"quantity,omitempty"`
	Price         float64   `json:"price"`
}

type distributionService struct {
	distributionRepo repositories.DistributionRepository
	dealerRepo       repositories.DealerRepository
	productRepo      repositories.ProductRepository
	availabilitySvc  AvailabilityService
}

func NewDistributionService(
	distributionRepo repositories.DistributionRepository,
	dealerRepo repositories.DealerRepository,
	productRepo repositories.ProductRepository,
	availabilitySvc AvailabilityService,
) DistributionService {
	return &distributionService{
		distributionRepo: distributionRepo,
		dealerRepo:       dealerRepo,
		productRepo:      productRepo,
		availabilitySvc:  availabilitySvc,
	}
}

func (s *distributionService) Create(ctx context.Context, req *CreateDistributionRequest) (*models.Distribution, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("distribution must have at least one item")
	}
	if _, err := s.dealerRepo.GetByID(ctx, req.DealerID); err != nil {
		return nil, fmt.Errorf("dealer not found")
	}

	// Availability is recomputed, not served from cache: committing against
	// a stale snapshot is how serials get double-booked.
	current, err := s.availabilitySvc.Recompute(ctx)
	if err != nil {
		return nil, common.SecureErrorMessage("compute availability", err)
	}

	availableSerials := make(map[string]bool)
	availableBulk := make(map[uuid.UUID]int)
	for _, item := range current.Items {
		if item.SerialNumber != "" {
			availableSerials[serialKey(item.ProductID, item.SerialNumber)] = true
		} else {
			availableBulk[item.ProductID] += item.Quantity
		}
	}

	distribution := &models.Distribution{
		ID:            uuid.New(),
		DealerID:      req.DealerID,
		Branch:        req.Branch,
		Status:        "committed",
		DistributedAt: time.Now(),
	}

	total := decimal.Zero
	for _, reqItem := range req.Items {
		product, err := s.productRepo.GetByID(ctx, reqItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", reqItem.ProductID)
		}

		units := len(reqItem.SerialNumbers)
		if units == 0 {
			units = reqItem.Quantity
		}
		if units <= 0 {
			return nil, fmt.Errorf("item for product %s has no serials and no quantity", product.Name)
		}

		for _, sn := range reqItem.SerialNumbers {
			if !availableSerials[serialKey(reqItem.ProductID, sn)] {
				return nil, fmt.Errorf("serial %s of %s is not available", sn, product.Name)
			}
		}
		if len(reqItem.SerialNumbers) == 0 && availableBulk[reqItem.ProductID] < units {
			return nil, fmt.Errorf("only %d units of %s available, %d requested",
				availableBulk[reqItem.ProductID], product.Name, units)
		}

		line := s.PriceLine(product, reqItem.Price, units)
		line.SerialNumbers = reqItem.SerialNumbers
		if len(reqItem.SerialNumbers) == 0 {
			line.Quantity = units
		}
		distribution.Items = append(distribution.Items, line)
		total = total.Add(decimal.NewFromFloat(line.LineTotal))
	}
	distribution.TotalAmount = total.Round(2).InexactFloat64()

	if err := s.distributionRepo.Create(ctx, distribution); err != nil {
		return nil, common.SecureErrorMessage("create distribution", err)
	}

	s.availabilitySvc.InvalidateSnapshot(ctx)
	return distribution, nil
}

// PriceLine computes the discount percentage and GST amounts for one
// distribution group: discount = (mrp - price)/mrp, GST = price * rate/100,
// line total = (price + per-unit GST) * units.
func (s *distributionService) PriceLine(product *models.Product, price float64, units int) models.DistributionLineItem {
	mrp := decimal.NewFromFloat(product.MRP)
	unitPrice := decimal.NewFromFloat(price)
	if price <= 0 {
		unitPrice = decimal.NewFromFloat(product.DealerPrice)
	}

	discount := decimal.Zero
	if mrp.IsPositive() {
		discount = mrp.Sub(unitPrice).Div(mrp).Mul(decimal.NewFromInt(100))
		if discount.IsNegative() {
			discount = decimal.Zero
		}
	}

	gstAmount := decimal.Zero
	if product.HasGST && product.GSTPercent > 0 {
		gstAmount = unitPrice.Mul(decimal.NewFromFloat(product.GSTPercent)).Div(decimal.NewFromInt(100))
	}

	lineTotal := unitPrice.Add(gstAmount).Mul(decimal.NewFromInt(int64(units)))

	return models.DistributionLineItem{
		ProductID:       product.ID,
		MRP:             product.MRP,
		Price:           unitPrice.Round(2).InexactFloat64(),
		DiscountPercent: discount.Round(2).InexactFloat64(),
		GSTPercent:      product.GSTPercent,
		GSTAmount:       gstAmount.Round(2).InexactFloat64(),
		LineTotal:       lineTotal.Round(2).InexactFloat64(),
	}
}

func (s *distributionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Distribution, error) {
	return s.distributionRepo.GetByID(ctx, id)
}

func (s *distributionService) List(ctx context.Context, limit, offset int) ([]*models.Distribution, error) {
	return s.distributionRepo.List(ctx, limit, offset)
}

func (s *distributionService) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Distribution, error) {
	return s.distributionRepo.ListByDealer(ctx, dealerID, limit, offset)
}

func (s *distributionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.distributionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}
