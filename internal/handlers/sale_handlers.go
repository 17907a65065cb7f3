package handlers

import (
	"net/http"
	"time"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// SaleHandlers handles direct retail sales to patients
type SaleHandlers struct {
	saleService services.SaleService
}

func NewSaleHandlers(saleService services.SaleService) *SaleHandlers {
	return &SaleHandlers{saleService: saleService}
}

// CreateSale handles POST /sales
func (h *SaleHandlers) CreateSale(c echo.Context) error {
	var sale models.Sale
	if err := c.Bind(&sale); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.saleService.Create(c.Request().Context(), &sale); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Sale recorded",
		"sale":    sale,
	})
}

// GetSale handles GET /sales/:id
func (h *SaleHandlers) GetSale(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sale ID")
	}
	sale, err := h.saleService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sale not found")
	}
	return c.JSON(http.StatusOK, sale)
}

// ListSales handles GET /sales, optionally filtered by ?from=&to= dates
func (h *SaleHandlers) ListSales(c echo.Context) error {
	if fromStr, toStr := c.QueryParam("from"), c.QueryParam("to"); fromStr != "" && toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from date")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to date")
		}
		sales, err := h.saleService.ListByDateRange(c.Request().Context(), from, to.AddDate(0, 0, 1))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list sales")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"sales": sales})
	}

	limit, offset := parsePagination(c)
	sales, err := h.saleService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list sales")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sales": sales})
}

// DeleteSale handles DELETE /sales/:id
func (h *SaleHandlers) DeleteSale(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sale ID")
	}
	if err := h.saleService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Sale deleted"})
}
