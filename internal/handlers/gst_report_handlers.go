package handlers

import (
	"fmt"
	"net/http"
	"time"

	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// GSTReportHandlers exposes filing-period GST summaries
type GSTReportHandlers struct {
	gstReportService services.GSTReportService
}

func NewGSTReportHandlers(gstReportService services.GSTReportService) *GSTReportHandlers {
	return &GSTReportHandlers{gstReportService: gstReportService}
}

func reportPeriod(c echo.Context) (time.Time, time.Time, error) {
	fromStr := c.QueryParam("from")
	toStr := c.QueryParam("to")

	// Default to the current calendar month.
	if fromStr == "" && toStr == "" {
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 1, 0), nil
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date")
	}
	return from, to.AddDate(0, 0, 1), nil
}

// GetSummary handles GET /reports/gst
func (h *GSTReportHandlers) GetSummary(c echo.Context) error {
	from, to, err := reportPeriod(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.gstReportService.Summary(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build GST summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// DownloadXLSX handles GET /reports/gst/export
func (h *GSTReportHandlers) DownloadXLSX(c echo.Context) error {
	from, to, err := reportPeriod(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, err := h.gstReportService.ExportXLSX(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export GST report")
	}

	filename := fmt.Sprintf("gst-report-%s.xlsx", from.Format("2006-01"))
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
