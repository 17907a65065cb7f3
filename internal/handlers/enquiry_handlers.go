package handlers

import (
	"net/http"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// EnquiryHandlers handles patient enquiry journeys
type EnquiryHandlers struct {
	enquiryService services.EnquiryService
}

func NewEnquiryHandlers(enquiryService services.EnquiryService) *EnquiryHandlers {
	return &EnquiryHandlers{enquiryService: enquiryService}
}

// CreateEnquiry handles POST /enquiries
func (h *EnquiryHandlers) CreateEnquiry(c echo.Context) error {
	var enquiry models.Enquiry
	if err := c.Bind(&enquiry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.enquiryService.Create(c.Request().Context(), &enquiry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Enquiry created",
		"enquiry": enquiry,
	})
}

// GetEnquiry handles GET /enquiries/:id
func (h *EnquiryHandlers) GetEnquiry(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid enquiry ID")
	}
	enquiry, err := h.enquiryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Enquiry not found")
	}
	return c.JSON(http.StatusOK, enquiry)
}

// UpdateEnquiry handles PUT /enquiries/:id
func (h *EnquiryHandlers) UpdateEnquiry(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid enquiry ID")
	}

	var enquiry models.Enquiry
	if err := c.Bind(&enquiry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	enquiry.ID = id

	if err := h.enquiryService.Update(c.Request().Context(), &enquiry); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, enquiry)
}

// AddVisit handles POST /enquiries/:id/visits
func (h *EnquiryHandlers) AddVisit(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid enquiry ID")
	}

	var visit models.EnquiryVisit
	if err := c.Bind(&visit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.enquiryService.AddVisit(c.Request().Context(), id, visit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Visit recorded",
		"is_sale": visit.IsSale(),
	})
}

// ListEnquiries handles GET /enquiries
func (h *EnquiryHandlers) ListEnquiries(c echo.Context) error {
	limit, offset := parsePagination(c)
	enquiries, err := h.enquiryService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list enquiries")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"enquiries": enquiries})
}

// DeleteEnquiry handles DELETE /enquiries/:id
func (h *EnquiryHandlers) DeleteEnquiry(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid enquiry ID")
	}
	if err := h.enquiryService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Enquiry deleted"})
}
