package handlers

import (
	"net/http"

	"audimart/internal/common"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// DistributionHandlers handles dealer distributions and the available-stock
// view they draw from.
type DistributionHandlers struct {
	distributionService services.DistributionService
	availabilityService services.AvailabilityService
}

func NewDistributionHandlers(distributionService services.DistributionService, availabilityService services.AvailabilityService) *DistributionHandlers {
	return &DistributionHandlers{
		distributionService: distributionService,
		availabilityService: availabilityService,
	}
}

// GetAvailableStock handles GET /stock/available. Pass ?refresh=true to
// bypass the cached snapshot.
func (h *DistributionHandlers) GetAvailableStock(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		result *services.ReconciliationResult
		err    error
	)
	if c.QueryParam("refresh") == "true" {
		result, err = h.availabilityService.Recompute(ctx)
	} else {
		result, err = h.availabilityService.Available(ctx)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute availability")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":    result.Items,
		"warnings": result.Warnings,
		"count":    len(result.Items),
	})
}

// CreateDistribution handles POST /distributions
func (h *DistributionHandlers) CreateDistribution(c echo.Context) error {
	var req services.CreateDistributionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	distribution, err := h.distributionService.Create(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Distribution committed",
		"distribution": distribution,
	})
}

// GetDistribution handles GET /distributions/:id
func (h *DistributionHandlers) GetDistribution(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid distribution ID")
	}
	distribution, err := h.distributionService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Distribution not found")
	}
	return c.JSON(http.StatusOK, distribution)
}

// ListDistributions handles GET /distributions, optionally by ?dealer_id=
func (h *DistributionHandlers) ListDistributions(c echo.Context) error {
	limit, offset := parsePagination(c)

	if dealerParam := c.QueryParam("dealer_id"); dealerParam != "" {
		dealerID, err := common.ValidateUUID(dealerParam, "dealer_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid dealer ID")
		}
		distributions, err := h.distributionService.ListByDealer(c.Request().Context(), dealerID, limit, offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list distributions")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"distributions": distributions})
	}

	distributions, err := h.distributionService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list distributions")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"distributions": distributions})
}

// DeleteDistribution handles DELETE /distributions/:id
func (h *DistributionHandlers) DeleteDistribution(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid distribution ID")
	}
	if err := h.distributionService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Distribution deleted"})
}
