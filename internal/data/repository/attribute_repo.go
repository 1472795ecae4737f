package repository

import (
	"context"
	"fmt"
	"net/url"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type AttributeRepository interface {
	FindAll(ctx context.Context) ([]entity.Attribute, error)
	Create(ctx context.Context, in any) error
	Update(ctx context.Context, id string, in any) error
	Delete(ctx context.Context, id string) error
}

type attributeRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewAttributeRepository(api backend.Client, log *zap.Logger) AttributeRepository {
	return &attributeRepository{
		api: api,
		log: log.With(zap.String("repository", "attribute")),
	}
}

func (r *attributeRepository) FindAll(ctx context.Context) ([]entity.Attribute, error) {
	var out struct {
		Data []entity.Attribute `json:"data"`
	}
	if err := r.api.Get(ctx, "/api/attribute", nil, &out); err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return out.Data, nil
}

func (r *attributeRepository) Create(ctx context.Context, in any) error {
	if err := r.api.Post(ctx, "/api/attribute", in, nil); err != nil {
		return fmt.Errorf("create attribute: %w", err)
	}
	return nil
}

func (r *attributeRepository) Update(ctx context.Context, id string, in any) error {
	if err := r.api.Put(ctx, "/api/attribute/"+url.PathEscape(id), in, nil); err != nil {
		return fmt.Errorf("update attribute %s: %w", id, err)
	}
	return nil
}

func (r *attributeRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/api/attribute/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete attribute %s: %w", id, err)
	}
	return nil
}
