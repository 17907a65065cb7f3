package services

import (
	"context"
	"fmt"
	"time"

	"audimart/internal/caching"
	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const productCacheTTL = 10 * time.Minute

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	cache       caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cache caching.CacheService) ProductService {
	return &productService{productRepo: productRepo, cache: cache}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.MRP < 0 || product.DealerPrice < 0 {
		return fmt.Errorf("prices cannot be negative")
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetProduct(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
			log.Warnf("failed to cache product %s: %v", id, err)
		}
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteProduct(ctx, product.ID); err != nil {
			log.Warnf("failed to invalidate product cache %s: %v", product.ID, err)
		}
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteProduct(ctx, id); err != nil {
			log.Warnf("failed to invalidate product cache %s: %v", id, err)
		}
	}
	return nil
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return s.productRepo.List(ctx, limit, offset)
}

func (s *productService) Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	return s.productRepo.AdvancedSearch(ctx, filter)
}
