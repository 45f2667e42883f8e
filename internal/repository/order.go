package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
)

type OrderRepository interface {
	// InsertOrder stores an order and its line items; a missing order id is
	// assigned here.
	InsertOrder(ctx context.Context, order *model.Order, items []*model.OrderItem) (string, error)
	RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
}

type orderRepoImpl struct {
	data client.DataClient
}

func NewOrderRepository(data client.DataClient) OrderRepository {
	return &orderRepoImpl{
		data: data,
	}
}

func (r *orderRepoImpl) InsertOrder(ctx context.Context, order *model.Order, items []*model.OrderItem) (string, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = "CREATED"
	}

	if err := r.data.Insert(ctx, "orders", []*model.Order{order}, nil); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	for _, item := range items {
		item.OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.data.Insert(ctx, "order_items", items, nil); err != nil {
			return "", fmt.Errorf("insert order items: %w", err)
		}
	}

	return order.ID, nil
}

func (r *orderRepoImpl) RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error) {
	var rows []model.RecentOrder
	err := r.data.RPC(ctx, "recent_orders", map[string]int{"p_limit": limit}, &rows)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return rows, nil
}

func (r *orderRepoImpl) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	var rows []model.TopProduct
	err := r.data.RPC(ctx, "top_products", map[string]int{"p_limit": limit}, &rows)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return rows, nil
}
