package repository

import (
	"context"
	"fmt"
	"net/url"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type StoreRepository interface {
	// admin
	FindAll(ctx context.Context, query url.Values) (*ListResult[entity.Store], error)
	FindByID(ctx context.Context, id string) (*entity.Store, error)
	Verify(ctx context.Context, storeID string, approve bool) error
	SetActive(ctx context.Context, storeID string, activate bool) error

	// seller
	FindMine(ctx context.Context) (*entity.Store, error)
	UpdateMine(ctx context.Context, update any) error
}

type storeRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewStoreRepository(api backend.Client, log *zap.Logger) StoreRepository {
	return &storeRepository{
		api: api,
		log: log.With(zap.String("repository", "store")),
	}
}

type storeEnvelope struct {
	Store *entity.Store `json:"store"`
}

func (r *storeRepository) FindAll(ctx context.Context, query url.Values) (*ListResult[entity.Store], error) {
	var out struct {
		Stores []entity.Store `json:"stores"`
		Pages  int            `json:"pages"`
		Total  int64          `json:"total"`
	}
	if err := r.api.Get(ctx, "/api/admin/stores", query, &out); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return &ListResult[entity.Store]{Items: out.Stores, Pages: out.Pages, Total: out.Total}, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*entity.Store, error) {
	var out storeEnvelope
	if err := r.api.Get(ctx, "/api/admin/stores/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get store %s: %w", id, err)
	}
	if out.Store == nil {
		return nil, fmt.Errorf("get store %s: response has no store", id)
	}
	return out.Store, nil
}

func (r *storeRepository) Verify(ctx context.Context, storeID string, approve bool) error {
	body := map[string]any{"storeId": storeID, "approve": approve}
	if err := r.api.Post(ctx, "/api/admin/stores/verify", body, nil); err != nil {
		return fmt.Errorf("verify store %s: %w", storeID, err)
	}
	return nil
}

func (r *storeRepository) SetActive(ctx context.Context, storeID string, activate bool) error {
	body := map[string]any{"storeId": storeID, "activate": activate}
	if err := r.api.Put(ctx, "/api/admin/stores/status", body, nil); err != nil {
		return fmt.Errorf("set store %s active=%t: %w", storeID, activate, err)
	}
	return nil
}

// FindMine returns (nil, nil) when the seller has no store yet.
func (r *storeRepository) FindMine(ctx context.Context) (*entity.Store, error) {
	var out storeEnvelope
	if err := r.api.Get(ctx, "/api/store", nil, &out); err != nil {
		return nil, fmt.Errorf("get own store: %w", err)
	}
	return out.Store, nil
}

func (r *storeRepository) UpdateMine(ctx context.Context, update any) error {
	if err := r.api.Post(ctx, "/api/store/update", update, nil); err != nil {
		return fmt.Errorf("update own store: %w", err)
	}
	return nil
}
