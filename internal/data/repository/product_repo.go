package repository

import (
	"context"
	"fmt"
	"net/url"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type ProductRepository interface {
	// admin
	FindAll(ctx context.Context) ([]entity.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	AdminDelete(ctx context.Context, id string) error

	// seller
	FindMine(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, in *entity.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id string, in *entity.ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewProductRepository(api backend.Client, log *zap.Logger) ProductRepository {
	return &productRepository{
		api: api,
		log: log.With(zap.String("repository", "product")),
	}
}

type productsEnvelope struct {
	Products []entity.Product `json:"products"`
}

type productEnvelope struct {
	Product *entity.Product `json:"product"`
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var out productsEnvelope
	if err := r.api.Get(ctx, "/api/products", nil, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out.Products, nil
}

func (r *productRepository) SetActive(ctx context.Context, id string, active bool) error {
	body := map[string]any{"settings": map[string]bool{"isActive": active}}
	if err := r.api.Put(ctx, "/api/admin/product/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("set product %s active=%t: %w", id, active, err)
	}
	return nil
}

func (r *productRepository) AdminDelete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/api/products/admin/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("admin delete product %s: %w", id, err)
	}
	return nil
}

func (r *productRepository) FindMine(ctx context.Context) ([]entity.Product, error) {
	var out productsEnvelope
	if err := r.api.Get(ctx, "/api/products/seller/my-products", nil, &out); err != nil {
		return nil, fmt.Errorf("list own products: %w", err)
	}
	return out.Products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var out productEnvelope
	if err := r.api.Get(ctx, "/api/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if out.Product == nil {
		return nil, fmt.Errorf("get product %s: response has no product", id)
	}
	return out.Product, nil
}

func (r *productRepository) Create(ctx context.Context, in *entity.ProductInput) (*entity.Product, error) {
	var out productEnvelope
	if err := r.api.Post(ctx, "/api/products", in, &out); err != nil {
		return nil, fmt.Errorf("create product %q: %w", in.Name, err)
	}
	return out.Product, nil
}

func (r *productRepository) Update(ctx context.Context, id string, in *entity.ProductInput) (*entity.Product, error) {
	var out productEnvelope
	if err := r.api.Put(ctx, "/api/products/"+url.PathEscape(id), in, &out); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return out.Product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/api/products/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
