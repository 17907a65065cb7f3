package services

import (
	"context"
	"fmt"
	"time"

	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
)

// MaterialService records stock movements: supplier receipts and purchases
// on the inbound side, dispatches, returns and inter-branch transfers on the
// outbound side. Every write invalidates the availability snapshot so the
// next read reflects the movement.
type MaterialService interface {
	CreateInward(ctx context.Context, inward *models.MaterialInward) error
	GetInward(ctx context.Context, id uuid.UUID) (*models.MaterialInward, error)
	ListInward(ctx context.Context, limit, offset int) ([]*models.MaterialInward, error)
	DeleteInward(ctx context.Context, id uuid.UUID) error

	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	GetPurchase(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	ListPurchases(ctx context.Context, limit, offset int) ([]*models.Purchase, error)
	DeletePurchase(ctx context.Context, id uuid.UUID) error

	CreateOut(ctx context.Context, out *models.MaterialOut) error
	GetOut(ctx context.Context, id uuid.UUID) (*models.MaterialOut, error)
	UpdateOutStatus(ctx context.Context, id uuid.UUID, status string) error
	ListOut(ctx context.Context, limit, offset int) ([]*models.MaterialOut, error)
	DeleteOut(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	inwardRepo      repositories.MaterialInwardRepository
	purchaseRepo    repositories.PurchaseRepository
	outRepo         repositories.MaterialOutRepository
	availabilitySvc AvailabilityService
}

func NewMaterialService(
	inwardRepo repositories.MaterialInwardRepository,
	purchaseRepo repositories.PurchaseRepository,
	outRepo repositories.MaterialOutRepository,
	availabilitySvc AvailabilityService,
) MaterialService {
	return &materialService{
		inwardRepo:      inwardRepo,
		purchaseRepo:    purchaseRepo,
		outRepo:         outRepo,
		availabilitySvc: availabilitySvc,
	}
}

func validateLineItems(items []models.StockLineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("movement must have at least one line item")
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			return fmt.Errorf("line %d: product is required", i+1)
		}
		if len(item.Serials()) == 0 && item.Quantity <= 0 {
			return fmt.Errorf("line %d: either serial numbers or a positive quantity is required", i+1)
		}
	}
	return nil
}

func (s *materialService) CreateInward(ctx context.Context, inward *models.MaterialInward) error {
	if err := validateLineItems(inward.Items); err != nil {
		return err
	}
	if inward.MovementKind != "" && !inward.MovementKind.IsValid() {
		return fmt.Errorf("unknown movement kind %q", inward.MovementKind)
	}
	if inward.ID == uuid.Nil {
		inward.ID = uuid.New()
	}
	if inward.ReceivedAt.IsZero() {
		inward.ReceivedAt = time.Now()
	}
	if err := s.inwardRepo.Create(ctx, inward); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *materialService) GetInward(ctx context.Context, id uuid.UUID) (*models.MaterialInward, error) {
	return s.inwardRepo.GetByID(ctx, id)
}

func (s *materialService) ListInward(ctx context.Context, limit, offset int) ([]*models.MaterialInward, error) {
	return s.inwardRepo.List(ctx, limit, offset)
}

func (s *materialService) DeleteInward(ctx context.Context, id uuid.UUID) error {
	if err := s.inwardRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *materialService) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if err := validateLineItems(purchase.Items); err != nil {
		return err
	}
	if purchase.MovementKind != "" && !purchase.MovementKind.IsValid() {
		return fmt.Errorf("unknown movement kind %q", purchase.MovementKind)
	}
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = time.Now()
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *materialService) GetPurchase(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	return s.purchaseRepo.GetByID(ctx, id)
}

func (s *materialService) ListPurchases(ctx context.Context, limit, offset int) ([]*models.Purchase, error) {
	return s.purchaseRepo.List(ctx, limit, offset)
}

func (s *materialService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *materialService) CreateOut(ctx context.Context, out *models.MaterialOut) error {
	if err := validateLineItems(out.Items); err != nil {
		return err
	}
	if out.MovementKind != "" && !out.MovementKind.IsValid() {
		return fmt.Errorf("unknown movement kind %q", out.MovementKind)
	}
	switch out.Status {
	case "", models.MaterialOutPending, models.MaterialOutDispatched, models.MaterialOutReturned:
	default:
		return fmt.Errorf("unknown status %q", out.Status)
	}
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.DispatchedAt.IsZero() {
		out.DispatchedAt = time.Now()
	}
	if err := s.outRepo.Create(ctx, out); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *materialService) GetOut(ctx context.Context, id uuid.UUID) (*models.MaterialOut, error) {
	return s.outRepo.GetByID(ctx, id)
}

func (s *materialService) UpdateOutStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case models.MaterialOutPending, models.MaterialOutDispatched, models.MaterialOutReturned:
	default:
		return fmt.Errorf("unknown status %q", status)
	}
	if err := s.outRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *materialService) ListOut(ctx context.Context, limit, offset int) ([]*models.MaterialOut, error) {
	return s.outRepo.List(ctx, limit, offset)
}

func (s *materialService) DeleteOut(ctx context.Context, id uuid.UUID) error {
	if err := s.outRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}
