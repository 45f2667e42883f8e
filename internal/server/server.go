package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/handler"
	"storefront-backend/internal/service"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	imageHandler    *handler.ImageHandler
	catalogHandler  *handler.CatalogHandler
	log             zerolog.Logger
}

func NewServer(
	checkoutService service.CheckoutService,
	imageService service.ImageService,
	catalogService service.CatalogService,
	log zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(log))
	e.Use(corsMiddleware())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		imageHandler:    handler.NewImageHandler(imageService),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		log:             log,
	}

	e.HTTPErrorHandler = s.handleError
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/checkout/order", s.checkoutHandler.CreateOrder)

	api.GET("/images", s.imageHandler.GetImage)
	api.PUT("/images", s.imageHandler.PutImage)

	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)
	api.GET("/categories", s.catalogHandler.ListCategories)

	// -------- admin console --------
	admin := api.Group("/admin")
	admin.POST("/products", s.catalogHandler.CreateProduct)
	admin.POST("/products/:id/images", s.catalogHandler.AttachImage)
	admin.POST("/orders", s.catalogHandler.RecordOrder)
	admin.GET("/orders/recent", s.catalogHandler.RecentOrders)
	admin.GET("/products/top", s.catalogHandler.TopProducts)

	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// handleError maps every error to the uniform {success:false, error} body.
// Unknown errors become a generic 500; the full detail goes to the log only.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		// router-level errors: 404 on unknown routes, 405 on wrong methods
		status = httpErr.Code
		switch status {
		case http.StatusNotFound:
			msg = "not found"
		case http.StatusMethodNotAllowed:
			msg = "method not allowed"
		default:
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			}
		}
	default:
		kind := apperr.KindOf(err)
		status = kind.HTTPStatus()
		msg = apperr.PublicMessage(err)
	}

	if status >= 500 {
		s.log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	if jsonErr := c.JSON(status, &dto.ErrorResponse{Success: false, Error: msg}); jsonErr != nil {
		s.log.Error().Err(jsonErr).Msg("write error response")
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
