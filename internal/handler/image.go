package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type ImageHandler struct {
	imageService service.ImageService
}

func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

func (h *ImageHandler) GetImage(c echo.Context) error {
	ctx := c.Request().Context()

	path := c.QueryParam("path")
	if path == "" {
		return apperr.E(apperr.KindInvalidRequest, "path query parameter is required", nil)
	}

	dataURL, err := h.imageService.Get(ctx, path)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ImageResponse{
		Success: true,
		DataURL: dataURL,
	})
}

func (h *ImageHandler) PutImage(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PutImageRequest
	if err := c.Bind(&req); err != nil {
		return apperr.E(apperr.KindInvalidRequest, "invalid request body", err)
	}

	if err := h.imageService.Put(ctx, req.Path, req.DataURL); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ImageResponse{
		Success: true,
	})
}
