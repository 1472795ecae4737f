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

type CategoryService interface {
	List(ctx context.Context) (*response.ListPage[response.CategoryRow], error)
	Get(ctx context.Context, slug string) (*entity.Category, error)
	Create(ctx context.Context, form *request.CategoryForm) error
	Update(ctx context.Context, slug string, form *request.CategoryForm) error
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo *repository.Repository
	list *listing.Controller[entity.Category]
	log  *zap.Logger
}

func NewCategoryService(d Deps) CategoryService {
	s := &categoryService{
		repo: d.Repo,
		log:  d.Log.With(zap.String("service", "category")),
	}
	s.list = newController(d, "categories", func(ctx context.Context, _ request.ListQuery) (*repository.ListResult[entity.Category], error) {
		return all(s.repo.Category.FindAll(ctx))
	})
	return s
}

func (s *categoryService) List(ctx context.Context) (*response.ListPage[response.CategoryRow], error) {
	snap, err := s.list.Load(ctx, sessionKey(ctx), request.ListQuery{Page: 1})
	return listPage(snap, func(c entity.Category) (response.CategoryRow, bool) {
		return response.CategoryRow{
			Category: c,
			Actions: []response.Action{
				{Label: "Delete", Path: "/admin/categories/" + c.Slug + "/delete", Style: "danger", Confirm: true},
			},
		}, true
	}), err
}

// Get looks the category up in the full list; the API has no single-category read.
func (s *categoryService) Get(ctx context.Context, slug string) (*entity.Category, error) {
	cats, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, withFallback(err, "Could not load categories.")
	}
	for i := range cats {
		if cats[i].Slug == slug {
			return &cats[i], nil
		}
	}
	return nil, apperr.NotFoundErr("Category not found")
}

func (s *categoryService) Create(ctx context.Context, form *request.CategoryForm) error {
	if errs := form.Validate(); len(errs) > 0 {
		return invalid("Category name is required.", errs)
	}
	err := s.list.Mutate(ctx, sessionKey(ctx), "create:"+form.Name, func(ctx context.Context) error {
		return s.repo.Category.Create(ctx, form)
	})
	if err != nil {
		s.log.Error("Category create failed", zap.String("name", form.Name), zap.Error(err))
		return withFallback(err, "Error adding category")
	}
	return nil
}

func (s *categoryService) Update(ctx context.Context, slug string, form *request.CategoryForm) error {
	if errs := form.Validate(); len(errs) > 0 {
		return invalid("Category name is required.", errs)
	}
	err := s.list.Mutate(ctx, sessionKey(ctx), "update:"+slug, func(ctx context.Context) error {
		return s.repo.Category.Update(ctx, slug, form)
	})
	if err != nil {
		s.log.Error("Category update failed", zap.String("slug", slug), zap.Error(err))
		return withFallback(err, "Error updating category")
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.list.Mutate(ctx, sessionKey(ctx), "delete:"+slug, func(ctx context.Context) error {
		return s.repo.Category.Delete(ctx, slug)
	})
	if err != nil {
		s.log.Error("Category delete failed", zap.String("slug", slug), zap.Error(err))
		return withFallback(err, "Delete failed")
	}
	return nil
}
