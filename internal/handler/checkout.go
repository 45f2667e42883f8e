package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return apperr.E(apperr.KindInvalidRequest, "invalid request body", err)
	}

	cfg, err := h.checkoutService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{
		Success: true,
		Config:  cfg,
	})
}
