package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptrF(v float64) *float64 { return &v }

func periodInvoices() []*models.Invoice {
	return []*models.Invoice{
		{
			ID: uuid.New(), InvoiceNumber: "INV-2026-08-00001", BuyerName: "Sound Hub",
			TaxableAmount: ptrF(10000), GSTRate: ptrF(18), CGST: ptrF(900), SGST: ptrF(900),
			TotalAmount: 11800, Status: InvoiceStatusUnpaid, IssuedDate: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), InvoiceNumber: "INV-2026-08-00002", BuyerName: "Hear Well Traders",
			TaxableAmount: ptrF(5000), GSTRate: ptrF(18), IGST: ptrF(900),
			TotalAmount: 5900, Status: InvoiceStatusPaid, IssuedDate: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestGSTSummary(t *testing.T) {
	mockRepo := &MockInvoiceRepository{}
	svc := NewGSTReportService(mockRepo)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mockRepo.On("GetByDateRange", mock.Anything, from, to).Return(periodInvoices(), nil)

	summary, err := svc.Summary(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.InvoiceCount)
	assert.Equal(t, 15000.0, summary.Taxable)
	assert.Equal(t, 900.0, summary.CGST)
	assert.Equal(t, 900.0, summary.SGST)
	assert.Equal(t, 900.0, summary.IGST)
	assert.Equal(t, 17700.0, summary.GrandTotal)
	mockRepo.AssertExpectations(t)
}

func TestGSTExportXLSX(t *testing.T) {
	mockRepo := &MockInvoiceRepository{}
	svc := NewGSTReportService(mockRepo)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mockRepo.On("GetByDateRange", mock.Anything, from, to).Return(periodInvoices(), nil)

	data, err := svc.ExportXLSX(context.Background(), from, to)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("GST Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice No", header)

	buyer, err := f.GetCellValue("GST Report", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Sound Hub", buyer)

	totalLabel, err := f.GetCellValue("GST Report", "A5")
	require.NoError(t, err)
	assert.Equal(t, "TOTALS", totalLabel)
}
