package response

import "marketplace-console/internal/data/entity"

type AdminDashboard struct {
	Stats entity.DashboardStats
}

type VendorDashboard struct {
	User       *entity.User
	Store      *entity.Store
	OrderCount int
	// StoreMissing is set when the seller has not created a store yet.
	StoreMissing bool
}
