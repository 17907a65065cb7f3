package handlers

import (
	"net/http"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// BranchHandlers handles clinic branches
type BranchHandlers struct {
	branchService services.BranchService
}

func NewBranchHandlers(branchService services.BranchService) *BranchHandlers {
	return &BranchHandlers{branchService: branchService}
}

// CreateBranch handles POST /branches
func (h *BranchHandlers) CreateBranch(c echo.Context) error {
	var branch models.Branch
	if err := c.Bind(&branch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.branchService.Create(c.Request().Context(), &branch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Branch created",
		"branch":  branch,
	})
}

// GetBranch handles GET /branches/:id
func (h *BranchHandlers) GetBranch(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid branch ID")
	}
	branch, err := h.branchService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Branch not found")
	}
	return c.JSON(http.StatusOK, branch)
}

// UpdateBranch handles PUT /branches/:id
func (h *BranchHandlers) UpdateBranch(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid branch ID")
	}

	var branch models.Branch
	if err := c.Bind(&branch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	branch.ID = id

	if err := h.branchService.Update(c.Request().Context(), &branch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, branch)
}

// DeleteBranch handles DELETE /branches/:id
func (h *BranchHandlers) DeleteBranch(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid branch ID")
	}
	if err := h.branchService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Branch deleted"})
}

// ListBranches handles GET /branches
func (h *BranchHandlers) ListBranches(c echo.Context) error {
	limit, offset := parsePagination(c)
	branches, err := h.branchService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list branches")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"branches": branches})
}
