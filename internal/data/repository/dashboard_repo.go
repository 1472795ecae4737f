package repository

import (
	"context"
	"fmt"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type DashboardRepository interface {
	AdminStats(ctx context.Context) (*entity.DashboardStats, error)
}

type dashboardRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewDashboardRepository(api backend.Client, log *zap.Logger) DashboardRepository {
	return &dashboardRepository{
		api: api,
		log: log.With(zap.String("repository", "dashboard")),
	}
}

func (r *dashboardRepository) AdminStats(ctx context.Context) (*entity.DashboardStats, error) {
	var out struct {
		Stats entity.DashboardStats `json:"stats"`
	}
	if err := r.api.Get(ctx, "/api/admin/dashboard", nil, &out); err != nil {
		return nil, fmt.Errorf("admin dashboard: %w", err)
	}
	return &out.Stats, nil
}
