package services

import (
	"context"
	"testing"
	"time"

	"audimart/internal/config"
	"audimart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) List(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByDistributionID(ctx context.Context, distributionID uuid.UUID) ([]*models.Invoice, error) {
	args := m.Called(ctx, distributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetUnpaid(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Invoice, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, prefix string, issued time.Time) (string, error) {
	args := m.Called(ctx, prefix, issued)
	return args.String(0), args.Error(1)
}

func TestCalculateGSTComponents(t *testing.T) {
	t.Run("intra-state splits into CGST and SGST", func(t *testing.T) {
		c := CalculateGSTComponents(10000, 18, false)
		assert.Equal(t, "900", c.CGST.String())
		assert.Equal(t, "900", c.SGST.String())
		assert.True(t, c.IGST.IsZero())
		assert.Equal(t, "11800", c.Total.String())
	})

	t.Run("inter-state carries IGST at full rate", func(t *testing.T) {
		c := CalculateGSTComponents(10000, 18, true)
		assert.True(t, c.CGST.IsZero())
		assert.True(t, c.SGST.IsZero())
		assert.Equal(t, "1800", c.IGST.String())
		assert.Equal(t, "11800", c.Total.String())
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		c := CalculateGSTComponents(999.99, 18, false)
		assert.Equal(t, "90", c.CGST.String())
		assert.Equal(t, "90", c.SGST.String())
		assert.Equal(t, "1179.99", c.Total.String())
	})

	t.Run("zero rate yields no tax", func(t *testing.T) {
		c := CalculateGSTComponents(500, 0, false)
		assert.True(t, c.CGST.IsZero())
		assert.Equal(t, "500", c.Total.String())
	})
}

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	service         InvoiceService
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = &MockInvoiceRepository{}
	suite.service = NewInvoiceService(suite.mockInvoiceRepo, nil, nil, nil, nil, config.InvoiceConfig{
		Prefix:      "INV",
		DueDays:     30,
		SellerState: "Maharashtra",
		DefaultGST:  18,
	})
}

func (suite *InvoiceServiceTestSuite) TearDownTest() {
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (suite *InvoiceServiceTestSuite) TestMarkPaid() {
	id := uuid.New()
	invoice := &models.Invoice{ID: id, InvoiceNumber: "INV-2026-08-00001", Status: InvoiceStatusUnpaid}

	suite.mockInvoiceRepo.On("GetByID", mock.Anything, id).Return(invoice, nil)
	suite.mockInvoiceRepo.On("Update", mock.Anything, mock.MatchedBy(func(inv *models.Invoice) bool {
		return inv.Status == InvoiceStatusPaid && inv.PaidDate != nil
	})).Return(nil)

	err := suite.service.MarkPaid(context.Background(), id)
	suite.NoError(err)
}

func (suite *InvoiceServiceTestSuite) TestMarkPaidTwiceFails() {
	id := uuid.New()
	invoice := &models.Invoice{ID: id, InvoiceNumber: "INV-2026-08-00002", Status: InvoiceStatusPaid}

	suite.mockInvoiceRepo.On("GetByID", mock.Anything, id).Return(invoice, nil)

	err := suite.service.MarkPaid(context.Background(), id)
	suite.Error(err)
	suite.Contains(err.Error(), "already paid")
}

func (suite *InvoiceServiceTestSuite) TestMarkOverdueInvoices() {
	pastDue := &models.Invoice{ID: uuid.New(), InvoiceNumber: "INV-A", Status: InvoiceStatusUnpaid, DueDate: time.Now().AddDate(0, 0, -5)}
	notDue := &models.Invoice{ID: uuid.New(), InvoiceNumber: "INV-B", Status: InvoiceStatusUnpaid, DueDate: time.Now().AddDate(0, 0, 10)}

	suite.mockInvoiceRepo.On("GetUnpaid", mock.Anything, 1000, 0).Return([]*models.Invoice{pastDue, notDue}, nil)
	suite.mockInvoiceRepo.On("UpdateStatus", mock.Anything, pastDue.ID, InvoiceStatusOverdue).Return(nil)

	marked, err := suite.service.MarkOverdueInvoices(context.Background())
	suite.NoError(err)
	suite.Equal(1, marked)
}
