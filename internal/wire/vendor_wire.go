package wire

import (
	"marketplace-console/internal/adaptor"
	"marketplace-console/internal/layout"
	"marketplace-console/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVendor(
	r chi.Router,
	handler *adaptor.Handler,
	log *zap.Logger,
) {
	panel := layout.PanelVendor

	// ==================== PUBLIC ROUTES ====================
	r.Get(panel.LoginPath(), handler.VendorAuth.LoginPage)
	r.Post(panel.LoginPath(), handler.VendorAuth.Login)

	// ==================== SELLER ROUTES ====================
	r.Route(panel.Root(), func(r chi.Router) {
		r.Use(middleware.RequireRole(panel.Role(), panel.LoginPath(), log))
		r.Use(middleware.NoStore)
		r.NotFound(handler.Page.NotFound)

		r.Post("/logout", handler.VendorAuth.Logout)
		r.Get("/", handler.Dashboard.Vendor)

		r.Get("/products", handler.Product.VendorList)
		r.Post("/products/{id}/delete", handler.Product.Delete)
		r.Get("/add-product", handler.Product.NewPage)
		r.Post("/add-product", handler.Product.Create)
		r.Get("/edit-product/{id}", handler.Product.EditPage)
		r.Post("/edit-product/{id}", handler.Product.Update)

		r.Get("/store-info", handler.Store.Info)
		r.Post("/store-info", handler.Store.UpdateInfo)

		r.Get("/orders", handler.Order.VendorList)
		r.Get("/orders/{id}", handler.Order.Detail)

		r.Get("/shipping", handler.Shipping.List)
		r.Post("/shipping", handler.Shipping.Save)
		r.Post("/shipping/{id}/delete", handler.Shipping.Delete)

		r.Get("/attributes", handler.Attribute.List)
		r.Post("/attributes", handler.Attribute.Save)
		r.Get("/attributes/{id}/edit", handler.Attribute.Edit)
		r.Post("/attributes/{id}", handler.Attribute.Save)
		r.Post("/attributes/{id}/delete", handler.Attribute.Delete)
	})
}
