package adaptor

import (
	"net/http"

	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	admin   base
	vendor  base
	service usecase.DashboardService
}

func NewDashboardHandler(service usecase.DashboardService, web *Web, log *zap.Logger) *DashboardHandler {
	log = log.With(zap.String("handler", "dashboard"))
	return &DashboardHandler{
		admin:   base{web: web, panel: layout.PanelAdmin, log: log},
		vendor:  base{web: web, panel: layout.PanelVendor, log: log},
		service: service,
	}
}

// Admin handles GET /admin. Stats that fail to load render as zeros with a
// notice.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.Admin(r.Context())
	if h.admin.handled(w, r, err) {
		return
	}
	v := View{Title: "Dashboard", Data: dash}
	if err != nil {
		v.Notice = apperr.PublicMessage(err, "Could not load dashboard stats.")
	}
	h.admin.render(w, r, http.StatusOK, "admin_dashboard", v)
}

// Vendor handles GET /vendor.
func (h *DashboardHandler) Vendor(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.Vendor(r.Context())
	if h.vendor.handled(w, r, err) {
		return
	}
	v := View{Title: "Dashboard", Data: dash}
	if err != nil {
		v.Notice = apperr.PublicMessage(err, "Could not load your store.")
	}
	h.vendor.render(w, r, http.StatusOK, "vendor_dashboard", v)
}
