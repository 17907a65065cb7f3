package services

import (
	"context"
	"fmt"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
)

type DealerService interface {
	Create(ctx context.Context, dealer *models.Dealer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dealer, error)
	Update(ctx context.Context, dealer *models.Dealer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Dealer, error)
}

type dealerService struct {
	dealerRepo repositories.DealerRepository
}

func NewDealerService(dealerRepo repositories.DealerRepository) DealerService {
	return &dealerService{dealerRepo: dealerRepo}
}

func (s *dealerService) Create(ctx context.Context, dealer *models.Dealer) error {
	if dealer.Name == "" {
		return fmt.Errorf("dealer name is required")
	}
	if dealer.GSTIN != nil && *dealer.GSTIN != "" {
		if err := common.ValidateGSTIN(*dealer.GSTIN, "gstin"); err != nil {
			return err
		}
	}
	if dealer.ID == uuid.Nil {
		dealer.ID = uuid.New()
	}
	if dealer.Status == "" {
		dealer.Status = "active"
	}
	return s.dealerRepo.Create(ctx, dealer)
}

func (s *dealerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Dealer, error) {
	return s.dealerRepo.GetByID(ctx, id)
}

func (s *dealerService) Update(ctx context.Context, dealer *models.Dealer) error {
	if dealer.GSTIN != nil && *dealer.GSTIN != "" {
		if err := common.ValidateGSTIN(*dealer.GSTIN, "gstin"); err != nil {
			return err
		}
	}
	return s.dealerRepo.Update(ctx, dealer)
}

func (s *dealerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.dealerRepo.Delete(ctx, id)
}

func (s *dealerService) List(ctx context.Context, limit, offset int) ([]*models.Dealer, error) {
	return s.dealerRepo.List(ctx, limit, offset)
}
