package repository

import (
	"context"
	"fmt"
	"strconv"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
)

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	AttachImage(ctx context.Context, image *model.ProductImage) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type catalogRepoImpl struct {
	data client.DataClient
}

func NewCatalogRepository(data client.DataClient) CatalogRepository {
	return &catalogRepoImpl{
		data: data,
	}
}

func (r *catalogRepoImpl) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.data.Select(ctx, "products", client.Filter{"active": "true"}, &products)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

func (r *catalogRepoImpl) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var products []model.Product
	err := r.data.Select(ctx, "products", client.Filter{"id": strconv.FormatInt(id, 10)}, &products)
	if err != nil {
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	if len(products) == 0 {
		return nil, apperr.E(apperr.KindNotFound, "product not found", nil)
	}
	return &products[0], nil
}

func (r *catalogRepoImpl) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	var created []model.Product
	err := r.data.Insert(ctx, "products", []*model.Product{product}, &created)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("insert product: empty representation returned")
	}
	return &created[0], nil
}

func (r *catalogRepoImpl) AttachImage(ctx context.Context, image *model.ProductImage) error {
	if err := r.data.Insert(ctx, "product_images", []*model.ProductImage{image}, nil); err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

func (r *catalogRepoImpl) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.data.Select(ctx, "categories", nil, &categories)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return categories, nil
}
