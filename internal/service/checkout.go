package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/rs/zerolog"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/repository"
)

var supportedCurrencies = map[string]bool{
	"INR": true,
	"USD": true,
	"EUR": true,
	"GBP": true,
	"AUD": true,
	"SGD": true,
}

type CheckoutService interface {
	CreateOrder(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutConfig, error)
}

type checkoutServiceImpl struct {
	gateway       client.GatewayClient
	customerRepo  repository.CustomerRepository
	log           zerolog.Logger
	storeName     string
	description   string
	themeColor    string
	upsertTimeout time.Duration
}

func NewCheckoutService(
	gateway client.GatewayClient,
	customerRepo repository.CustomerRepository,
	checkoutCfg *config.Checkout,
	log zerolog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		gateway:       gateway,
		customerRepo:  customerRepo,
		log:           log,
		storeName:     checkoutCfg.StoreName,
		description:   checkoutCfg.Description,
		themeColor:    checkoutCfg.ThemeColor,
		upsertTimeout: time.Duration(checkoutCfg.UpsertTimeout) * time.Second,
	}
}

// CreateOrder validates the checkout request, creates the gateway order, and
// returns the widget config. The customer upsert runs best-effort in the
// background: its failure is logged and counted but never fails the checkout.
// Amounts are minor currency units throughout.
func (s *checkoutServiceImpl) CreateOrder(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutConfig, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, &client.CreateOrderRequest{
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Receipt:     req.Receipt,
		Notes: map[string]string{
			"customer_email": req.Email,
		},
	})
	if err != nil {
		metrics.CheckoutFailuresTotal.Inc()
		return nil, err
	}
	metrics.CheckoutOrdersTotal.Inc()

	if req.Email != "" {
		s.upsertCustomerAsync(req)
	}

	return &dto.CheckoutConfig{
		Key:         s.gateway.KeyID(),
		OrderID:     order.ID,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Name:        s.storeName,
		Description: s.description,
		Prefill: dto.Prefill{
			Email:   req.Email,
			Contact: req.Phone,
		},
		Theme: dto.Theme{
			Color: s.themeColor,
		},
	}, nil
}

// upsertCustomerAsync runs on a background context so a client disconnect
// cannot cancel the write mid-flight.
func (s *checkoutServiceImpl) upsertCustomerAsync(req *dto.CheckoutRequest) {
	params := &repository.UpsertCustomerParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.upsertTimeout)
		defer cancel()

		id, err := s.customerRepo.Upsert(ctx, params)
		if err != nil {
			metrics.CustomerUpsertFailuresTotal.Inc()
			s.log.Error().
				Err(err).
				Str("email", params.Email).
				Msg("best-effort customer upsert failed")
			return
		}
		s.log.Debug().
			Int64("customer_id", id).
			Str("email", params.Email).
			Msg("customer upserted")
	}()
}

func validateCheckoutRequest(req *dto.CheckoutRequest) error {
	if req.AmountMinor <= 0 {
		return apperr.E(apperr.KindInvalidRequest, "amount must be a positive integer in minor units", nil)
	}
	if len(req.Currency) != 3 || !supportedCurrencies[req.Currency] {
		return apperr.E(apperr.KindInvalidRequest, "currency must be a supported 3-letter code", nil)
	}
	if req.Receipt == "" {
		return apperr.E(apperr.KindInvalidRequest, "receipt is required", nil)
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return apperr.E(apperr.KindInvalidRequest, "customer email is malformed", nil)
		}
	}
	return nil
}
