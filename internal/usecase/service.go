package usecase

import (
	"context"
	"errors"
	"time"

	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/listing"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/media"
	"marketplace-console/pkg/metrics"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Dashboard DashboardService
	Seller    SellerService
	Store     StoreService
	Order     OrderService
	Product   ProductService
	Category  CategoryService
	Attribute AttributeService
	Shipping  ShippingService
}

// Deps are the collaborators shared by every service.
type Deps struct {
	Repo     *repository.Repository
	Uploader media.Uploader
	Cache    cache.Cache
	Config   *utils.Config
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		Auth:      NewAuthService(d.Repo, d.Log),
		Dashboard: NewDashboardService(d.Repo, d.Log),
		Seller:    NewSellerService(d),
		Store:     NewStoreService(d),
		Order:     NewOrderService(d),
		Product:   NewProductService(d),
		Category:  NewCategoryService(d),
		Attribute: NewAttributeService(d),
		Shipping:  NewShippingService(d.Repo, d.Log),
	}
}

func (d Deps) snapshotTTL() time.Duration {
	if d.Config == nil {
		return 0
	}
	return d.Config.Cache.SnapshotTTL
}

// newController builds the list controller of one view.
func newController[T any](d Deps, view string, fetch listing.FetchFunc[T]) *listing.Controller[T] {
	return listing.NewController(view, fetch, d.Cache, d.snapshotTTL(), d.Metrics, d.Log)
}

func sessionKey(ctx context.Context) string {
	sid, _ := utils.GetSessionIDFromContext(ctx)
	return sid
}

// listPage turns a snapshot into rows. row may drop an item by returning false.
func listPage[T, R any](snap *listing.Snapshot[T], row func(T) (R, bool)) *response.ListPage[R] {
	page := &response.ListPage[R]{
		Query:      snap.Query,
		Page:       snap.Page(),
		TotalPages: snap.TotalPages,
		Total:      snap.Total,
		Stale:      snap.Stale,
		Notice:     snap.Notice,
		Rows:       make([]R, 0, len(snap.Items)),
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	for _, it := range snap.Items {
		if r, ok := row(it); ok {
			page.Rows = append(page.Rows, r)
		}
	}
	return page
}

// all wraps an unpaged collection as a single page.
func all[T any](items []T, err error) (*repository.ListResult[T], error) {
	if err != nil {
		return nil, err
	}
	return &repository.ListResult[T]{Items: items, Pages: 1, Total: int64(len(items))}, nil
}

// withFallback makes sure err carries a public message. Backend messages win.
func withFallback(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if ae, ok := apperr.As(err); ok {
		if ae.PublicMsg != "" {
			return err
		}
		return &apperr.AppError{Kind: ae.Kind, PublicMsg: fallback, Fields: ae.Fields, Err: err}
	}
	return &apperr.AppError{Kind: apperr.Internal, PublicMsg: fallback, Err: err}
}

func invalid(msg string, fields map[string]string) error {
	return apperr.InvalidErr(msg, fields)
}
