package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// InvoiceHandlers handles GST invoices and their PDF rendering
type InvoiceHandlers struct {
	invoiceService services.InvoiceService
	storageService services.StorageService
	bucket         string
}

func NewInvoiceHandlers(invoiceService services.InvoiceService, storageService services.StorageService, bucket string) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService: invoiceService,
		storageService: storageService,
		bucket:         bucket,
	}
}

// CreateInvoice handles POST /invoices. The invoice is raised against
// either a distribution or a direct sale.
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	var req struct {
		DistributionID *string `json:"distribution_id"`
		SaleID         *string `json:"sale_id"`
		BuyerName      string  `json:"buyer_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx := c.Request().Context()
	switch {
	case req.DistributionID != nil && *req.DistributionID != "":
		distributionID, err := common.ValidateUUID(*req.DistributionID, "distribution_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid distribution ID")
		}
		invoice, err := h.invoiceService.CreateForDistribution(ctx, distributionID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusCreated, invoice)

	case req.SaleID != nil && *req.SaleID != "":
		saleID, err := common.ValidateUUID(*req.SaleID, "sale_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid sale ID")
		}
		invoice, err := h.invoiceService.CreateForSale(ctx, saleID, req.BuyerName)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusCreated, invoice)

	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Either distribution_id or sale_id is required")
	}
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invoice ID")
	}
	invoice, err := h.invoiceService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Invoice not found")
	}
	return c.JSON(http.StatusOK, invoice)
}

// ListInvoices handles GET /invoices
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	limit, offset := parsePagination(c)
	invoices, err := h.invoiceService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list invoices")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"invoices": invoices})
}

// MarkPaid handles POST /invoices/:id/pay
func (h *InvoiceHandlers) MarkPaid(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invoice ID")
	}
	if err := h.invoiceService.MarkPaid(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Invoice marked paid"})
}

// DownloadPDF handles GET /invoices/:id/pdf
func (h *InvoiceHandlers) DownloadPDF(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invoice ID")
	}

	invoice, err := h.invoiceService.GetByID(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Invoice not found")
	}

	pdfBytes, err := generateInvoicePDF(invoice)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	// Best-effort archive copy; the download succeeds either way.
	if h.storageService != nil {
		objectName := fmt.Sprintf("invoices/%s.pdf", invoice.InvoiceNumber)
		if err := h.storageService.UploadDocument(ctx, h.bucket, objectName, "application/pdf",
			bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
			log.Warnf("failed to archive invoice PDF %s: %v", invoice.InvoiceNumber, err)
		}
	}

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.pdf"`, invoice.InvoiceNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invoice ID")
	}
	if err := h.invoiceService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Invoice deleted"})
}

func generateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "TAX INVOICE")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Number: %s", invoice.InvoiceNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Date: %s", invoice.IssuedDate.Format("02-Jan-2006")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("02-Jan-2006")))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "BILL TO:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, invoice.BuyerName)
	pdf.Ln(6)
	if invoice.GSTIN != nil && *invoice.GSTIN != "" {
		pdf.Cell(0, 6, fmt.Sprintf("GSTIN: %s", *invoice.GSTIN))
		pdf.Ln(6)
	}
	if invoice.HSNSAC != nil && *invoice.HSNSAC != "" {
		pdf.Cell(0, 6, fmt.Sprintf("HSN/SAC: %s", *invoice.HSNSAC))
		pdf.Ln(6)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	headers := []string{"Description", "Amount"}
	colWidths := []float64{120, 50}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)

	row := func(label string, amount float64) {
		pdf.CellFormat(colWidths[0], 8, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%.2f", amount), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	row("Taxable Value", common.SafeFloat64(invoice.TaxableAmount))
	if invoice.IGST != nil {
		row(fmt.Sprintf("IGST @ %.1f%%", common.SafeFloat64(invoice.GSTRate)), *invoice.IGST)
	} else {
		halfRate := common.SafeFloat64(invoice.GSTRate) / 2
		row(fmt.Sprintf("CGST @ %.1f%%", halfRate), common.SafeFloat64(invoice.CGST))
		row(fmt.Sprintf("SGST @ %.1f%%", halfRate), common.SafeFloat64(invoice.SGST))
	}

	pdf.SetFont("Arial", "B", 10)
	row("TOTAL", invoice.TotalAmount)

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on %s", time.Now().Format("02-Jan-2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
