package usecase

import (
	"context"
	"fmt"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/session"
	"marketplace-console/pkg/apperr"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Admin(ctx context.Context) (*response.AdminDashboard, error)
	Vendor(ctx context.Context) (*response.VendorDashboard, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Admin(ctx context.Context) (*response.AdminDashboard, error) {
	stats, err := s.repo.Dashboard.AdminStats(ctx)
	if err != nil {
		s.log.Error("Failed to load admin stats", zap.Error(err))
		return &response.AdminDashboard{}, withFallback(err, "Could not load dashboard stats.")
	}
	return &response.AdminDashboard{Stats: *stats}, nil
}

// Vendor loads the store and the order count side by side. A seller without
// a store still gets a dashboard.
func (s *dashboardService) Vendor(ctx context.Context) (*response.VendorDashboard, error) {
	dash := &response.VendorDashboard{}
	if user, ok := session.UserFrom(ctx); ok {
		dash.User = user
	}

	var (
		store  *entity.Store
		orders []entity.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.repo.Store.FindMine(gctx)
		if apperr.KindOf(err) == apperr.NotFound {
			return nil
		}
		if err != nil {
			return fmt.Errorf("store: %w", err)
		}
		store = st
		return nil
	})
	g.Go(func() error {
		o, err := s.repo.Order.FindMine(gctx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		orders = o
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load vendor dashboard", zap.Error(err))
		return dash, withFallback(err, "Could not load your store.")
	}

	dash.Store = store
	dash.StoreMissing = store == nil
	dash.OrderCount = len(orders)
	return dash, nil
}
