package usecase

import (
	"context"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/listing"
	"marketplace-console/pkg/apperr"

	"go.uber.org/zap"
)

const attributeRequired = "Please fill all fields."

type AttributeService interface {
	List(ctx context.Context) (*response.ListPage[response.AttributeRow], error)
	// Options lists attributes for the variable product picker.
	Options(ctx context.Context) ([]entity.Attribute, error)
	Get(ctx context.Context, id string) (*entity.Attribute, error)
	// Save creates when id is empty and updates otherwise.
	Save(ctx context.Context, id string, form *request.AttributeForm) error
	Delete(ctx context.Context, id string) error
}

type attributeService struct {
	repo *repository.Repository
	list *listing.Controller[entity.Attribute]
	log  *zap.Logger
}

func NewAttributeService(d Deps) AttributeService {
	s := &attributeService{
		repo: d.Repo,
		log:  d.Log.With(zap.String("service", "attribute")),
	}
	s.list = newController(d, "attributes", func(ctx context.Context, _ request.ListQuery) (*repository.ListResult[entity.Attribute], error) {
		return all(s.repo.Attribute.FindAll(ctx))
	})
	return s
}

func (s *attributeService) List(ctx context.Context) (*response.ListPage[response.AttributeRow], error) {
	snap, err := s.list.Load(ctx, sessionKey(ctx), request.ListQuery{Page: 1})
	return listPage(snap, func(a entity.Attribute) (response.AttributeRow, bool) {
		return response.AttributeRow{
			Attribute: a,
			Actions: []response.Action{
				{Label: "Delete", Path: "/vendor/attributes/" + a.ID + "/delete", Style: "danger", Confirm: true},
			},
		}, true
	}), err
}

func (s *attributeService) Options(ctx context.Context) ([]entity.Attribute, error) {
	attrs, err := s.repo.Attribute.FindAll(ctx)
	if err != nil {
		s.log.Warn("Failed to load attribute options", zap.Error(err))
		return nil, withFallback(err, "Could not load attributes.")
	}
	return attrs, nil
}

func (s *attributeService) Get(ctx context.Context, id string) (*entity.Attribute, error) {
	attrs, err := s.repo.Attribute.FindAll(ctx)
	if err != nil {
		return nil, withFallback(err, "Could not load attributes.")
	}
	for i := range attrs {
		if attrs[i].ID == id {
			return &attrs[i], nil
		}
	}
	return nil, apperr.NotFoundErr("Attribute not found")
}

func (s *attributeService) Save(ctx context.Context, id string, form *request.AttributeForm) error {
	if errs := form.Validate(); len(errs) > 0 {
		return invalid(attributeRequired, errs)
	}
	action, call := "create:"+form.Name, func(ctx context.Context) error {
		return s.repo.Attribute.Create(ctx, form)
	}
	if id != "" {
		action, call = "update:"+id, func(ctx context.Context) error {
			return s.repo.Attribute.Update(ctx, id, form)
		}
	}
	if err := s.list.Mutate(ctx, sessionKey(ctx), action, call); err != nil {
		s.log.Error("Attribute save failed", zap.String("attribute_id", id), zap.Error(err))
		return withFallback(err, "Failed to save attribute")
	}
	return nil
}

func (s *attributeService) Delete(ctx context.Context, id string) error {
	err := s.list.Mutate(ctx, sessionKey(ctx), "delete:"+id, func(ctx context.Context) error {
		return s.repo.Attribute.Delete(ctx, id)
	})
	if err != nil {
		s.log.Error("Attribute delete failed", zap.String("attribute_id", id), zap.Error(err))
		return withFallback(err, "Failed to delete attribute")
	}
	return nil
}
