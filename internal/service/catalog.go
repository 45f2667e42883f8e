package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error)
	AttachImage(ctx context.Context, productID int64, req *dto.AttachImageRequest) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	RecordOrder(ctx context.Context, req *dto.RecordOrderRequest) (string, error)
	RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
}

type catalogServiceImpl struct {
	catalogRepo repository.CatalogRepository
	orderRepo   repository.OrderRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository, orderRepo repository.OrderRepository) CatalogService {
	return &catalogServiceImpl{
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.catalogRepo.ListProducts(ctx)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.catalogRepo.GetProduct(ctx, id)
}

// CreateProduct takes the admin price in major units ("19.99") and stores
// minor units. This is the only major-unit surface in the system.
func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	if req.Name == "" {
		return nil, apperr.E(apperr.KindInvalidRequest, "product name is required", nil)
	}
	if len(req.Currency) != 3 {
		return nil, apperr.E(apperr.KindInvalidRequest, "currency must be a 3-letter code", nil)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, apperr.E(apperr.KindInvalidRequest, "price must be a decimal amount in major units",
			fmt.Errorf("parse price %q: %w", req.Price, err))
	}
	if price.IsNegative() || price.IsZero() {
		return nil, apperr.E(apperr.KindInvalidRequest, "price must be positive", nil)
	}
	minor := price.Mul(decimal.NewFromInt(100))
	if !minor.IsInteger() {
		return nil, apperr.E(apperr.KindInvalidRequest, "price has more than two decimal places", nil)
	}
	if !minor.BigInt().IsInt64() {
		return nil, apperr.E(apperr.KindInvalidRequest, "price is out of range", nil)
	}

	return s.catalogRepo.CreateProduct(ctx, &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       minor.IntPart(),
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		Active:      true,
	})
}

func (s *catalogServiceImpl) AttachImage(ctx context.Context, productID int64, req *dto.AttachImageRequest) error {
	if req.URL == "" {
		return apperr.E(apperr.KindInvalidRequest, "image url is required", nil)
	}
	if _, err := s.catalogRepo.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.catalogRepo.AttachImage(ctx, &model.ProductImage{
		ProductID: productID,
		URL:       req.URL,
		Position:  req.Position,
	})
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

var allowedOrderStatuses = map[string]bool{
	"CREATED": true,
	"PAID":    true,
	"FAILED":  true,
}

// RecordOrder persists an order row and its line items once the gateway has
// confirmed payment. The order id is assigned by the repository when absent.
func (s *catalogServiceImpl) RecordOrder(ctx context.Context, req *dto.RecordOrderRequest) (string, error) {
	if req.AmountMinor <= 0 {
		return "", apperr.E(apperr.KindInvalidRequest, "amount must be a positive integer in minor units", nil)
	}
	if req.Receipt == "" {
		return "", apperr.E(apperr.KindInvalidRequest, "receipt is required", nil)
	}
	if len(req.Currency) != 3 {
		return "", apperr.E(apperr.KindInvalidRequest, "currency must be a 3-letter code", nil)
	}
	if req.Status != "" && !allowedOrderStatuses[req.Status] {
		return "", apperr.E(apperr.KindInvalidRequest, "status must be CREATED, PAID or FAILED", nil)
	}

	items := make([]*model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return "", apperr.E(apperr.KindInvalidRequest, "item quantity must be positive", nil)
		}
		items[i] = &model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Currency:  req.Currency,
		}
	}

	return s.orderRepo.InsertOrder(ctx, &model.Order{
		CustomerID:  req.CustomerID,
		GatewayID:   req.GatewayOrderID,
		Receipt:     req.Receipt,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Status:      req.Status,
	}, items)
}

func (s *catalogServiceImpl) RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.orderRepo.RecentOrders(ctx, limit)
}

func (s *catalogServiceImpl) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.orderRepo.TopProducts(ctx, limit)
}
