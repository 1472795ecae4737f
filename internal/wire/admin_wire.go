package wire

import (
	"marketplace-console/internal/adaptor"
	"marketplace-console/internal/layout"
	"marketplace-console/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	log *zap.Logger,
) {
	panel := layout.PanelAdmin

	// ==================== PUBLIC ROUTES ====================
	r.Get(panel.LoginPath(), handler.AdminAuth.LoginPage)
	r.Post(panel.LoginPath(), handler.AdminAuth.Login)

	// ==================== ADMIN ROUTES ====================
	r.Route(panel.Root(), func(r chi.Router) {
		r.Use(middleware.RequireRole(panel.Role(), panel.LoginPath(), log))
		r.Use(middleware.NoStore)
		r.NotFound(handler.Page.NotFound)

		r.Post("/logout", handler.AdminAuth.Logout)
		r.Get("/", handler.Dashboard.Admin)

		r.Get("/sellers", handler.Seller.List)
		r.Post("/sellers/{id}/verify", handler.Seller.Verify)
		r.Post("/sellers/{id}/status", handler.Seller.SetStatus)

		r.Get("/stores", handler.Store.List)
		r.Get("/stores/{id}", handler.Store.Detail)
		r.Post("/stores/{id}/verify", handler.Store.Verify)
		r.Post("/stores/{id}/status", handler.Store.SetStatus)

		r.Get("/orders", handler.Order.AdminList)
		r.Post("/orders/{id}/cancel", handler.Order.Cancel)

		r.Get("/products", handler.Product.AdminList)
		r.Post("/products/{id}/toggle", handler.Product.Toggle)
		r.Post("/products/{id}/delete", handler.Product.AdminDelete)

		r.Get("/categories", handler.Category.List)
		r.Post("/categories", handler.Category.Create)
		r.Get("/categories/{slug}/edit", handler.Category.Edit)
		r.Post("/categories/{slug}", handler.Category.Update)
		r.Post("/categories/{slug}/delete", handler.Category.Delete)
	})
}
