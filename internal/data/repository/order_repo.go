package repository

import (
	"context"
	"fmt"
	"net/url"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type OrderRepository interface {
	// admin
	FindAll(ctx context.Context, query url.Values) (*ListResult[entity.Order], error)
	Cancel(ctx context.Context, id string) error

	// seller
	FindMine(ctx context.Context) ([]entity.Order, error)
	FindByID(ctx context.Context, id string) (*entity.Order, error)
}

type orderRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewOrderRepository(api backend.Client, log *zap.Logger) OrderRepository {
	return &orderRepository{
		api: api,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) FindAll(ctx context.Context, query url.Values) (*ListResult[entity.Order], error) {
	var out struct {
		Orders []entity.Order `json:"orders"`
		Pages  int            `json:"pages"`
		Total  int64          `json:"total"`
	}
	if err := r.api.Get(ctx, "/api/admin/orders", query, &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &ListResult[entity.Order]{Items: out.Orders, Pages: out.Pages, Total: out.Total}, nil
}

func (r *orderRepository) Cancel(ctx context.Context, id string) error {
	if err := r.api.Put(ctx, "/api/admin/orders/"+url.PathEscape(id)+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("cancel order %s: %w", id, err)
	}
	return nil
}

func (r *orderRepository) FindMine(ctx context.Context) ([]entity.Order, error) {
	var out struct {
		Orders []entity.Order `json:"orders"`
	}
	if err := r.api.Get(ctx, "/api/seller/orders", nil, &out); err != nil {
		return nil, fmt.Errorf("list own orders: %w", err)
	}
	return out.Orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var out struct {
		Order *entity.Order `json:"order"`
	}
	if err := r.api.Get(ctx, "/api/orders/get/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if out.Order == nil {
		return nil, fmt.Errorf("get order %s: response has no order", id)
	}
	return out.Order, nil
}
