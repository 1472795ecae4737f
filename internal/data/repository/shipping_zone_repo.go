package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShippingZoneRepository keeps zones as drafts of one console session. The
// marketplace API has no shipping zone endpoint; replace this implementation
// once it does.
type ShippingZoneRepository interface {
	FindAll(ctx context.Context, sessionID string) ([]entity.ShippingZone, error)
	Save(ctx context.Context, sessionID string, zone entity.ShippingZone) (entity.ShippingZone, error)
	Delete(ctx context.Context, sessionID, zoneID string) error
}

type shippingZoneRepository struct {
	store cache.Cache
	ttl   time.Duration
	mu    sync.Mutex
	log   *zap.Logger
}

func NewShippingZoneRepository(store cache.Cache, ttl time.Duration, log *zap.Logger) ShippingZoneRepository {
	return &shippingZoneRepository{
		store: store,
		ttl:   ttl,
		log:   log.With(zap.String("repository", "shipping_zone")),
	}
}

func zonesKey(sessionID string) string { return "zones:" + sessionID }

func (r *shippingZoneRepository) FindAll(ctx context.Context, sessionID string) ([]entity.ShippingZone, error) {
	var zones []entity.ShippingZone
	if _, err := cache.GetJSON(ctx, r.store, zonesKey(sessionID), &zones); err != nil {
		return nil, fmt.Errorf("load zone drafts: %w", err)
	}
	return zones, nil
}

// Save inserts a zone without ID or replaces the zone with the same ID.
func (r *shippingZoneRepository) Save(ctx context.Context, sessionID string, zone entity.ShippingZone) (entity.ShippingZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	zones, err := r.FindAll(ctx, sessionID)
	if err != nil {
		return entity.ShippingZone{}, err
	}

	replaced := false
	if zone.ID != "" {
		for i := range zones {
			if zones[i].ID == zone.ID {
				zones[i] = zone
				replaced = true
				break
			}
		}
	}
	if !replaced {
		zone.ID = uuid.NewString()
		zones = append(zones, zone)
	}

	if err := cache.SetJSON(ctx, r.store, zonesKey(sessionID), zones, r.ttl); err != nil {
		return entity.ShippingZone{}, fmt.Errorf("store zone drafts: %w", err)
	}
	return zone, nil
}

func (r *shippingZoneRepository) Delete(ctx context.Context, sessionID, zoneID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	zones, err := r.FindAll(ctx, sessionID)
	if err != nil {
		return err
	}
	kept := zones[:0]
	for _, z := range zones {
		if z.ID != zoneID {
			kept = append(kept, z)
		}
	}
	if err := cache.SetJSON(ctx, r.store, zonesKey(sessionID), kept, r.ttl); err != nil {
		return fmt.Errorf("store zone drafts: %w", err)
	}
	return nil
}
