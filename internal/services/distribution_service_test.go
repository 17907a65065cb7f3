package services

import (
	"testing"

	"audimart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pricingService() DistributionService {
	return NewDistributionService(nil, nil, nil, nil)
}

func TestPriceLine(t *testing.T) {
	product := &models.Product{
		ID:          uuid.New(),
		Name:        "Aria X2",
		MRP:         45000,
		DealerPrice: 32000,
		HasGST:      true,
		GSTPercent:  18,
	}

	t.Run("computes discount and GST from operator price", func(t *testing.T) {
		line := pricingService().PriceLine(product, 36000, 2)

		assert.Equal(t, 36000.0, line.Price)
		assert.Equal(t, 20.0, line.DiscountPercent) // (45000-36000)/45000
		assert.Equal(t, 6480.0, line.GSTAmount)     // 36000 * 18%
		assert.Equal(t, 84960.0, line.LineTotal)    // (36000+6480) * 2
	})

	t.Run("falls back to dealer price when no price given", func(t *testing.T) {
		line := pricingService().PriceLine(product, 0, 1)

		assert.Equal(t, 32000.0, line.Price)
		assert.Equal(t, 5760.0, line.GSTAmount)
	})

	t.Run("price above MRP clamps discount at zero", func(t *testing.T) {
		line := pricingService().PriceLine(product, 50000, 1)
		assert.Equal(t, 0.0, line.DiscountPercent)
	})

	t.Run("no GST on exempt products", func(t *testing.T) {
		exempt := &models.Product{ID: uuid.New(), MRP: 250, DealerPrice: 180}
		line := pricingService().PriceLine(exempt, 200, 10)

		assert.Equal(t, 0.0, line.GSTAmount)
		assert.Equal(t, 2000.0, line.LineTotal)
	})

	t.Run("zero MRP yields no discount", func(t *testing.T) {
		free := &models.Product{ID: uuid.New(), DealerPrice: 100}
		line := pricingService().PriceLine(free, 100, 1)
		assert.Equal(t, 0.0, line.DiscountPercent)
	})
}
