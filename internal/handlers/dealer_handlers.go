package handlers

import (
	"net/http"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// DealerHandlers handles the dealer directory
type DealerHandlers struct {
	dealerService services.DealerService
}

func NewDealerHandlers(dealerService services.DealerService) *DealerHandlers {
	return &DealerHandlers{dealerService: dealerService}
}

// CreateDealer handles POST /dealers
func (h *DealerHandlers) CreateDealer(c echo.Context) error {
	var dealer models.Dealer
	if err := c.Bind(&dealer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.dealerService.Create(c.Request().Context(), &dealer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Dealer created",
		"dealer":  dealer,
	})
}

// GetDealer handles GET /dealers/:id
func (h *DealerHandlers) GetDealer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dealer ID")
	}
	dealer, err := h.dealerService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Dealer not found")
	}
	return c.JSON(http.StatusOK, dealer)
}

// UpdateDealer handles PUT /dealers/:id
func (h *DealerHandlers) UpdateDealer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dealer ID")
	}

	var dealer models.Dealer
	if err := c.Bind(&dealer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	dealer.ID = id

	if err := h.dealerService.Update(c.Request().Context(), &dealer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, dealer)
}

// DeleteDealer handles DELETE /dealers/:id
func (h *DealerHandlers) DeleteDealer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dealer ID")
	}
	if err := h.dealerService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Dealer deleted"})
}

// ListDealers handles GET /dealers
func (h *DealerHandlers) ListDealers(c echo.Context) error {
	limit, offset := parsePagination(c)
	dealers, err := h.dealerService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list dealers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"dealers": dealers})
}
