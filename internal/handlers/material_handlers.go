package handlers

import (
	"net/http"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// MaterialHandlers handles stock movement documents: inward challans,
// purchases and outward dispatches.
type MaterialHandlers struct {
	materialService services.MaterialService
}

func NewMaterialHandlers(materialService services.MaterialService) *MaterialHandlers {
	return &MaterialHandlers{materialService: materialService}
}

// CreateInward handles POST /materials/inward
func (h *MaterialHandlers) CreateInward(c echo.Context) error {
	var inward models.MaterialInward
	if err := c.Bind(&inward); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.materialService.CreateInward(c.Request().Context(), &inward); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Material inward recorded",
		"inward":  inward,
	})
}

// GetInward handles GET /materials/inward/:id
func (h *MaterialHandlers) GetInward(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	inward, err := h.materialService.GetInward(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Material inward not found")
	}
	return c.JSON(http.StatusOK, inward)
}

// ListInward handles GET /materials/inward
func (h *MaterialHandlers) ListInward(c echo.Context) error {
	limit, offset := parsePagination(c)
	inwards, err := h.materialService.ListInward(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list material inwards")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"inwards": inwards})
}

// DeleteInward handles DELETE /materials/inward/:id
func (h *MaterialHandlers) DeleteInward(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	if err := h.materialService.DeleteInward(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Material inward deleted"})
}

// CreatePurchase handles POST /purchases
func (h *MaterialHandlers) CreatePurchase(c echo.Context) error {
	var purchase models.Purchase
	if err := c.Bind(&purchase); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.materialService.CreatePurchase(c.Request().Context(), &purchase); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Purchase recorded",
		"purchase": purchase,
	})
}

// GetPurchase handles GET /purchases/:id
func (h *MaterialHandlers) GetPurchase(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	purchase, err := h.materialService.GetPurchase(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Purchase not found")
	}
	return c.JSON(http.StatusOK, purchase)
}

// ListPurchases handles GET /purchases
func (h *MaterialHandlers) ListPurchases(c echo.Context) error {
	limit, offset := parsePagination(c)
	purchases, err := h.materialService.ListPurchases(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list purchases")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"purchases": purchases})
}

// DeletePurchase handles DELETE /purchases/:id
func (h *MaterialHandlers) DeletePurchase(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	if err := h.materialService.DeletePurchase(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Purchase deleted"})
}

// CreateOut handles POST /materials/out
func (h *MaterialHandlers) CreateOut(c echo.Context) error {
	var out models.MaterialOut
	if err := c.Bind(&out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.materialService.CreateOut(c.Request().Context(), &out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Material out recorded",
		"out":     out,
	})
}

// GetOut handles GET /materials/out/:id
func (h *MaterialHandlers) GetOut(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	out, err := h.materialService.GetOut(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Material out not found")
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateOutStatus handles PATCH /materials/out/:id/status
func (h *MaterialHandlers) UpdateOutStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.materialService.UpdateOutStatus(c.Request().Context(), id, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Status updated"})
}

// ListOut handles GET /materials/out
func (h *MaterialHandlers) ListOut(c echo.Context) error {
	limit, offset := parsePagination(c)
	outs, err := h.materialService.ListOut(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list material outs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"outs": outs})
}

// DeleteOut handles DELETE /materials/out/:id
func (h *MaterialHandlers) DeleteOut(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	if err := h.materialService.DeleteOut(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Material out deleted"})
}
