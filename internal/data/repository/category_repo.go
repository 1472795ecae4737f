package repository

import (
	"context"
	"fmt"
	"net/url"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, in any) error
	Update(ctx context.Context, slug string, in any) error
	Delete(ctx context.Context, slug string) error
}

type categoryRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewCategoryRepository(api backend.Client, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		api: api,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	var out struct {
		Categories []entity.Category `json:"categories"`
	}
	if err := r.api.Get(ctx, "/api/admin/category", nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out.Categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, in any) error {
	if err := r.api.Post(ctx, "/api/admin/category", in, nil); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, slug string, in any) error {
	if err := r.api.Put(ctx, "/api/admin/category/"+url.PathEscape(slug), in, nil); err != nil {
		return fmt.Errorf("update category %s: %w", slug, err)
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, slug string) error {
	if err := r.api.Delete(ctx, "/api/admin/category/"+url.PathEscape(slug), nil); err != nil {
		return fmt.Errorf("delete category %s: %w", slug, err)
	}
	return nil
}
