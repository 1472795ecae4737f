package usecase

import (
	"context"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/pkg/apperr"

	"go.uber.org/zap"
)

// ShippingDraftNotice is shown on every shipping page.
const ShippingDraftNotice = "Shipping zones are drafts kept for this browser session only. They are not saved to the marketplace yet."

type ShippingService interface {
	List(ctx context.Context) ([]entity.ShippingZone, error)
	Get(ctx context.Context, id string) (*entity.ShippingZone, error)
	Save(ctx context.Context, form *request.ShippingZoneForm) (entity.ShippingZone, error)
	Delete(ctx context.Context, id string) error
}

type shippingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShippingService(repo *repository.Repository, log *zap.Logger) ShippingService {
	return &shippingService{
		repo: repo,
		log:  log.With(zap.String("service", "shipping")),
	}
}

func (s *shippingService) List(ctx context.Context) ([]entity.ShippingZone, error) {
	zones, err := s.repo.ShippingZone.FindAll(ctx, sessionKey(ctx))
	if err != nil {
		s.log.Error("Failed to read zone drafts", zap.Error(err))
		return nil, withFallback(err, "Could not load shipping zones.")
	}
	return zones, nil
}

func (s *shippingService) Get(ctx context.Context, id string) (*entity.ShippingZone, error) {
	zones, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		if zones[i].ID == id {
			return &zones[i], nil
		}
	}
	return nil, apperr.NotFoundErr("Shipping zone not found")
}

func (s *shippingService) Save(ctx context.Context, form *request.ShippingZoneForm) (entity.ShippingZone, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return entity.ShippingZone{}, invalid("Please fill all required fields.", errs)
	}
	zone, err := form.Zone()
	if err != nil {
		return entity.ShippingZone{}, invalid("Please fill all required fields.", map[string]string{"rate": "Must be a number"})
	}
	saved, err := s.repo.ShippingZone.Save(ctx, sessionKey(ctx), zone)
	if err != nil {
		s.log.Error("Failed to save zone draft", zap.Error(err))
		return entity.ShippingZone{}, withFallback(err, "Could not save shipping zone.")
	}
	return saved, nil
}

func (s *shippingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.ShippingZone.Delete(ctx, sessionKey(ctx), id); err != nil {
		s.log.Error("Failed to delete zone draft", zap.String("zone_id", id), zap.Error(err))
		return withFallback(err, "Could not delete shipping zone.")
	}
	return nil
}
