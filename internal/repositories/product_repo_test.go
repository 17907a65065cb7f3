package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRepoWithMock(t *testing.T) (ProductRepository, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewProductRepository(mockPool), mockPool
}

func TestProductRepoCreate(t *testing.T) {
	repo, mockPool := newProductRepoWithMock(t)

	product := &models.Product{
		ID:            uuid.New(),
		Name:          "Aria X2",
		Type:          "hearing_aid",
		Company:       "Signia",
		MRP:           45000,
		DealerPrice:   32000,
		HasGST:        true,
		GSTPercent:    18,
		SerialTracked: true,
	}

	mockPool.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(product.ID, product.Name, product.Type, product.Company, product.MRP,
			product.DealerPrice, product.HasGST, product.GSTPercent, product.HSNCode, product.SerialTracked).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), product)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestProductRepoGetByID(t *testing.T) {
	repo, mockPool := newProductRepoWithMock(t)

	id := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "type", "company", "mrp", "dealer_price",
		"has_gst", "gst_percent", "hsn_code", "serial_tracked", "created_at", "updated_at"}).
		AddRow(id, "Aria X2", "hearing_aid", "Signia", 45000.0, 32000.0, true, 18.0, (*string)(nil), true, now, now)

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(id).
		WillReturnRows(rows)

	product, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Aria X2", product.Name)
	assert.True(t, product.SerialTracked)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestProductRepoList(t *testing.T) {
	repo, mockPool := newProductRepoWithMock(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "type", "company", "mrp", "dealer_price",
		"has_gst", "gst_percent", "hsn_code", "serial_tracked", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Aria X2", "hearing_aid", "Signia", 45000.0, 32000.0, true, 18.0, (*string)(nil), true, now, now).
		AddRow(uuid.New(), "Battery 312", "battery", "Rayovac", 250.0, 180.0, false, 0.0, (*string)(nil), false, now, now)

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(20, 0).
		WillReturnRows(rows)

	products, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
