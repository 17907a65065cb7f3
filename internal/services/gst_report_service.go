package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// GSTReportService aggregates issued invoices over a filing period and
// exports the summary as an xlsx workbook for the accountant.
type GSTReportService interface {
	Summary(ctx context.Context, from, to time.Time) (*GSTSummary, error)
	ExportXLSX(ctx context.Context, from, to time.Time) ([]byte, error)
}

type GSTSummary struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	InvoiceCount int               `json:"invoice_count"`
	Taxable      float64           `json:"taxable"`
	CGST         float64           `json:"cgst"`
	SGST         float64           `json:"sgst"`
	IGST         float64           `json:"igst"`
	GrandTotal   float64           `json:"grand_total"`
	Invoices     []*models.Invoice `json:"invoices"`
}

type gstReportService struct {
	invoiceRepo repositories.InvoiceRepository
}

func NewGSTReportService(invoiceRepo repositories.InvoiceRepository) GSTReportService {
	return &gstReportService{invoiceRepo: invoiceRepo}
}

func (s *gstReportService) Summary(ctx context.Context, from, to time.Time) (*GSTSummary, error) {
	invoices, err := s.invoiceRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	taxable, cgst, sgst, igst, total := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		taxable = taxable.Add(decFromPtr(inv.TaxableAmount))
		cgst = cgst.Add(decFromPtr(inv.CGST))
		sgst = sgst.Add(decFromPtr(inv.SGST))
		igst = igst.Add(decFromPtr(inv.IGST))
		total = total.Add(decimal.NewFromFloat(inv.TotalAmount))
	}

	return &GSTSummary{
		From:         from,
		To:           to,
		InvoiceCount: len(invoices),
		Taxable:      taxable.Round(2).InexactFloat64(),
		CGST:         cgst.Round(2).InexactFloat64(),
		SGST:         sgst.Round(2).InexactFloat64(),
		IGST:         igst.Round(2).InexactFloat64(),
		GrandTotal:   total.Round(2).InexactFloat64(),
		Invoices:     invoices,
	}, nil
}

func (s *gstReportService) ExportXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	summary, err := s.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "GST Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice No", "Date", "Buyer", "GSTIN", "HSN/SAC", "Taxable", "Rate %", "CGST", "SGST", "IGST", "Total", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, inv := range summary.Invoices {
		row := rowIdx + 2
		values := []interface{}{
			inv.InvoiceNumber,
			inv.IssuedDate.Format("02-01-2006"),
			inv.BuyerName,
			strFromPtr(inv.GSTIN),
			strFromPtr(inv.HSNSAC),
			f64FromPtr(inv.TaxableAmount),
			f64FromPtr(inv.GSTRate),
			f64FromPtr(inv.CGST),
			f64FromPtr(inv.SGST),
			f64FromPtr(inv.IGST),
			inv.TotalAmount,
			inv.Status,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	totalsRow := len(summary.Invoices) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow), "TOTALS")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalsRow), summary.Taxable)
	f.SetCellValue(sheet, fmt.Sprintf("H%d", totalsRow), summary.CGST)
	f.SetCellValue(sheet, fmt.Sprintf("I%d", totalsRow), summary.SGST)
	f.SetCellValue(sheet, fmt.Sprintf("J%d", totalsRow), summary.IGST)
	f.SetCellValue(sheet, fmt.Sprintf("K%d", totalsRow), summary.GrandTotal)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decFromPtr(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func f64FromPtr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func strFromPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
