package services

import (
	"context"
	"fmt"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
)

type BranchService interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Branch, error)
}

type branchService struct {
	branchRepo repositories.BranchRepository
}

func NewBranchService(branchRepo repositories.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

func (s *branchService) Create(ctx context.Context, branch *models.Branch) error {
	if branch.Name == "" {
		return fmt.Errorf("branch name is required")
	}
	if existing, err := s.branchRepo.GetByName(ctx, branch.Name); err == nil && existing != nil {
		return fmt.Errorf("branch %q already exists", branch.Name)
	}
	if branch.GSTIN != nil && *branch.GSTIN != "" {
		if err := common.ValidateGSTIN(*branch.GSTIN, "gstin"); err != nil {
			return err
		}
	}
	if branch.ID == uuid.Nil {
		branch.ID = uuid.New()
	}
	if branch.Status == "" {
		branch.Status = "active"
	}
	return s.branchRepo.Create(ctx, branch)
}

func (s *branchService) GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	return s.branchRepo.GetByID(ctx, id)
}

func (s *branchService) Update(ctx context.Context, branch *models.Branch) error {
	if branch.GSTIN != nil && *branch.GSTIN != "" {
		if err := common.ValidateGSTIN(*branch.GSTIN, "gstin"); err != nil {
			return err
		}
	}
	return s.branchRepo.Update(ctx, branch)
}

func (s *branchService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.branchRepo.Delete(ctx, id)
}

func (s *branchService) List(ctx context.Context, limit, offset int) ([]*models.Branch, error) {
	return s.branchRepo.List(ctx, limit, offset)
}
