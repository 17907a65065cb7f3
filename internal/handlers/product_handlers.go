package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"audimart/internal/common"
	"audimart/internal/models"
	"audimart/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for the product catalog
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type productRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Company       string  `json:"company"`
	MRP           float64 `json:"mrp"`
	DealerPrice   float64 `json:"dealer_price"`
	HasGST        bool    `json:"has_gst"`
	GSTPercent    float64 `json:"gst_percent"`
	HSNCode       *string `json:"hsn_code"`
	SerialTracked bool    `json:"serial_tracked"`
}

func (h *ProductHandlers) validateProduct(req *productRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Product name is required")
	}
	if req.MRP < 0 || req.DealerPrice < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Prices cannot be negative")
	}
	if req.GSTPercent < 0 || req.GSTPercent > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "GST percent must be between 0 and 100")
	}
	if req.HSNCode != nil && *req.HSNCode != "" {
		if err := common.ValidateHSNCode(*req.HSNCode, "hsn_code"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateProduct(&req); err != nil {
		return err
	}

	product := &models.Product{
		Name:          req.Name,
		Type:          req.Type,
		Company:       req.Company,
		MRP:           req.MRP,
		DealerPrice:   req.DealerPrice,
		HasGST:        req.HasGST,
		GSTPercent:    req.GSTPercent,
		HSNCode:       req.HSNCode,
		SerialTracked: req.SerialTracked,
	}
	if err := h.productService.Create(c.Request().Context(), product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateProduct(&req); err != nil {
		return err
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	product.Name = req.Name
	product.Type = req.Type
	product.Company = req.Company
	product.MRP = req.MRP
	product.DealerPrice = req.DealerPrice
	product.HasGST = req.HasGST
	product.GSTPercent = req.GSTPercent
	product.HSNCode = req.HSNCode
	product.SerialTracked = req.SerialTracked

	if err := h.productService.Update(c.Request().Context(), product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Product deleted"})
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, offset := parsePagination(c)

	products, err := h.productService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// SearchProducts handles GET /products/search
func (h *ProductHandlers) SearchProducts(c echo.Context) error {
	filter := &models.ProductSearchFilter{
		Query:     c.QueryParam("q"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	filter.Limit, filter.Offset = parsePagination(c)

	if t := c.QueryParam("type"); t != "" {
		filter.Type = &t
	}
	if company := c.QueryParam("company"); company != "" {
		filter.Company = &company
	}
	if st := c.QueryParam("serial_tracked"); st != "" {
		tracked := st == "true"
		filter.SerialTracked = &tracked
	}
	if min := c.QueryParam("min_mrp"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			filter.MinMRP = &v
		}
	}
	if max := c.QueryParam("max_mrp"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			filter.MaxMRP = &v
		}
	}

	products, err := h.productService.Search(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"products": products})
}

func parsePagination(c echo.Context) (int, int) {
	limit := 20
	offset := 0
	if l := c.QueryParam("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
