package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.E(apperr.KindInvalidRequest, "product id must be an integer", err)
	}

	product, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.E(apperr.KindInvalidRequest, "invalid request body", err)
	}

	product, err := h.catalogService.CreateProduct(ctx, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) AttachImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.E(apperr.KindInvalidRequest, "product id must be an integer", err)
	}

	var req dto.AttachImageRequest
	if err := c.Bind(&req); err != nil {
		return apperr.E(apperr.KindInvalidRequest, "invalid request body", err)
	}

	if err := h.catalogService.AttachImage(ctx, id, &req); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) RecordOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.E(apperr.KindInvalidRequest, "invalid request body", err)
	}

	orderID, err := h.catalogService.RecordOrder(ctx, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, &dto.RecordOrderResponse{
		Success: true,
		OrderID: orderID,
	})
}

func (h *CatalogHandler) RecentOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	orders, err := h.catalogService.RecentOrders(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *CatalogHandler) TopProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	products, err := h.catalogService.TopProducts(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
