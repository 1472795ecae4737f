package usecase

import (
	"context"
	"fmt"
	"strconv"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/listing"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/media"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

const productFallback = "Something went wrong. Please try again."

type ProductService interface {
	// admin
	AdminList(ctx context.Context) (*response.ListPage[response.ProductRow], error)
	Toggle(ctx context.Context, productID string) error
	AdminDelete(ctx context.Context, productID string) error

	// seller
	VendorList(ctx context.Context) (*response.ListPage[response.ProductRow], error)
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Create(ctx context.Context, form *request.ProductForm, files []media.File) (*entity.Product, error)
	Update(ctx context.Context, productID string, form *request.ProductForm, files []media.File) (*entity.Product, error)
	Delete(ctx context.Context, productID string) error
}

type productService struct {
	repo     *repository.Repository
	uploader media.Uploader
	maxFiles int
	admin    *listing.Controller[entity.Product]
	vendor   *listing.Controller[entity.Product]
	log      *zap.Logger
}

func NewProductService(d Deps) ProductService {
	s := &productService{
		repo:     d.Repo,
		uploader: d.Uploader,
		maxFiles: 5,
		log:      d.Log.With(zap.String("service", "product")),
	}
	if d.Config != nil && d.Config.Media.MaxFiles > 0 {
		s.maxFiles = d.Config.Media.MaxFiles
	}
	s.admin = newController(d, "admin-products", func(ctx context.Context, _ request.ListQuery) (*repository.ListResult[entity.Product], error) {
		return all(s.repo.Product.FindAll(ctx))
	})
	s.vendor = newController(d, "vendor-products", func(ctx context.Context, _ request.ListQuery) (*repository.ListResult[entity.Product], error) {
		return all(s.repo.Product.FindMine(ctx))
	})
	return s
}

func (s *productService) AdminList(ctx context.Context) (*response.ListPage[response.ProductRow], error) {
	snap, err := s.admin.Load(ctx, sessionKey(ctx), request.ListQuery{Page: 1})
	return listPage(snap, func(p entity.Product) (response.ProductRow, bool) {
		base := "/admin/products/" + p.ID
		return response.ProductRow{
			Product: p,
			Active:  p.Settings.IsActive,
			Actions: []response.Action{
				{Label: "Toggle", Path: base + "/toggle", Style: "primary"},
				{Label: "Delete", Path: base + "/delete", Style: "danger", Confirm: true},
			},
		}, true
	}), err
}

// Toggle flips settings.isActive in the cached list first and puts it back
// when the backend refuses.
func (s *productService) Toggle(ctx context.Context, productID string) error {
	sid := sessionKey(ctx)
	snap, ok := s.admin.Snapshot(ctx, sid)
	if !ok {
		return apperr.NotFoundErr("Product list is out of date, please reload.")
	}
	current, found := false, false
	for _, p := range snap.Items {
		if p.ID == productID {
			current, found = p.Settings.IsActive, true
			break
		}
	}
	if !found {
		return apperr.NotFoundErr("Product not found")
	}

	match := func(p entity.Product) bool { return p.ID == productID }
	set := func(v bool) func(*entity.Product) {
		return func(p *entity.Product) { p.Settings.IsActive = v }
	}

	if _, err := s.admin.Patch(ctx, sid, match, set(!current)); err != nil {
		s.log.Warn("Optimistic patch failed", zap.String("product_id", productID), zap.Error(err))
	}
	err := s.admin.Mutate(ctx, sid, "toggle:"+productID+":"+strconv.FormatBool(!current), func(ctx context.Context) error {
		return s.repo.Product.SetActive(ctx, productID, !current)
	})
	if err != nil {
		if _, perr := s.admin.Patch(ctx, sid, match, set(current)); perr != nil {
			s.log.Warn("Failed to revert optimistic patch", zap.String("product_id", productID), zap.Error(perr))
		}
		s.log.Error("Product toggle failed", zap.String("product_id", productID), zap.Error(err))
		return withFallback(err, "Failed to toggle product status.")
	}
	return nil
}

func (s *productService) AdminDelete(ctx context.Context, productID string) error {
	err := s.admin.Mutate(ctx, sessionKey(ctx), "delete:"+productID, func(ctx context.Context) error {
		return s.repo.Product.AdminDelete(ctx, productID)
	})
	if err != nil {
		s.log.Error("Product delete failed", zap.String("product_id", productID), zap.Error(err))
		return withFallback(err, "Failed to delete product")
	}
	return nil
}

func (s *productService) VendorList(ctx context.Context) (*response.ListPage[response.ProductRow], error) {
	snap, err := s.vendor.Load(ctx, sessionKey(ctx), request.ListQuery{Page: 1})
	return listPage(snap, func(p entity.Product) (response.ProductRow, bool) {
		return response.ProductRow{
			Product: p,
			Active:  p.IsActive || p.Settings.IsActive,
			Actions: []response.Action{
				{Label: "Delete", Path: "/vendor/products/" + p.ID + "/delete", Style: "danger", Confirm: true},
			},
		}, true
	}), err
}

func (s *productService) Get(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to load product", zap.String("product_id", productID), zap.Error(err))
		return nil, withFallback(err, "Product not found")
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, form *request.ProductForm, files []media.File) (*entity.Product, error) {
	in, err := s.prepare(ctx, form, files)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Product.Create(ctx, &in)
	if err != nil {
		s.log.Error("Product create failed", zap.String("name", in.Name), zap.Error(err))
		return nil, withFallback(err, productFallback)
	}
	s.log.Info("Product created", zap.String("product_id", p.ID), zap.Int("images", len(in.Images)))
	return p, nil
}

func (s *productService) Update(ctx context.Context, productID string, form *request.ProductForm, files []media.File) (*entity.Product, error) {
	in, err := s.prepare(ctx, form, files)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Product.Update(ctx, productID, &in)
	if err != nil {
		s.log.Error("Product update failed", zap.String("product_id", productID), zap.Error(err))
		return nil, withFallback(err, productFallback)
	}
	return p, nil
}

// prepare validates the form, uploads new files and assembles the record.
// Nothing reaches the marketplace API unless every step succeeded.
func (s *productService) prepare(ctx context.Context, form *request.ProductForm, files []media.File) (entity.ProductInput, error) {
	form.Normalize()
	errs := form.Validate()
	if total := len(form.Images) + len(files); total > s.maxFiles {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["images"] = fmt.Sprintf("At most %d images per product", s.maxFiles)
	}
	for _, f := range files {
		if !f.IsImage() {
			if errs == nil {
				errs = map[string]string{}
			}
			errs["images"] = f.Name + " is not an image"
			break
		}
	}
	if len(errs) > 0 {
		msg := "Please fix the highlighted fields."
		if m, ok := errs["category"]; ok {
			msg = m
		}
		s.log.Debug("Product form rejected", zap.String("fields", utils.FormatValidationErrors(errs)))
		return entity.ProductInput{}, invalid(msg, errs)
	}

	assets, err := media.UploadAll(ctx, s.uploader, files)
	if err != nil {
		s.log.Error("Product image upload failed", zap.Int("files", len(files)), zap.Error(err))
		return entity.ProductInput{}, withFallback(err, "Image upload failed, please try again.")
	}
	urls := make([]string, len(assets))
	for i, a := range assets {
		urls[i] = a.URL
	}

	in, err := form.Input(urls)
	if err != nil {
		return entity.ProductInput{}, invalid("Please fix the highlighted fields.", map[string]string{"price": err.Error()})
	}
	return in, nil
}

func (s *productService) Delete(ctx context.Context, productID string) error {
	err := s.vendor.Mutate(ctx, sessionKey(ctx), "delete:"+productID, func(ctx context.Context) error {
		return s.repo.Product.Delete(ctx, productID)
	})
	if err != nil {
		s.log.Error("Product delete failed", zap.String("product_id", productID), zap.Error(err))
		return withFallback(err, "Failed to delete product")
	}
	return nil
}
