package repository

import (
	"time"

	"marketplace-console/pkg/backend"
	"marketplace-console/pkg/cache"

	"go.uber.org/zap"
)

type Repository struct {
	Session      SessionRepository
	Dashboard    DashboardRepository
	Seller       SellerRepository
	Store        StoreRepository
	Product      ProductRepository
	Order        OrderRepository
	Category     CategoryRepository
	Attribute    AttributeRepository
	ShippingZone ShippingZoneRepository
}

// NewRepository wires every repository to the marketplace API. Shipping
// zones have no API and live in store as per-session drafts.
func NewRepository(api backend.Client, store cache.Cache, draftTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Session:      NewSessionRepository(api, log),
		Dashboard:    NewDashboardRepository(api, log),
		Seller:       NewSellerRepository(api, log),
		Store:        NewStoreRepository(api, log),
		Product:      NewProductRepository(api, log),
		Order:        NewOrderRepository(api, log),
		Category:     NewCategoryRepository(api, log),
		Attribute:    NewAttributeRepository(api, log),
		ShippingZone: NewShippingZoneRepository(store, draftTTL, log),
	}
}

// ListResult is one page of a backend collection.
type ListResult[T any] struct {
	Items []T
	Pages int
	Total int64
}
