package adaptor

import (
	"net/http"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	admin   base
	vendor  base
	service usecase.OrderService
}

func NewOrderHandler(service usecase.OrderService, web *Web, log *zap.Logger) *OrderHandler {
	log = log.With(zap.String("handler", "order"))
	return &OrderHandler{
		admin:   base{web: web, panel: layout.PanelAdmin, log: log},
		vendor:  base{web: web, panel: layout.PanelVendor, log: log},
		service: service,
	}
}

type adminOrdersPage struct {
	List     *response.ListPage[response.OrderRow]
	Statuses []entity.OrderStatus
	Status   string
}

// AdminList handles GET /admin/orders?status=&page=.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.AdminList(r.Context(), request.ParseListQuery(r.URL.Query()))
	if h.admin.handled(w, r, err) {
		return
	}
	h.admin.render(w, r, http.StatusOK, "admin_orders", View{
		Title:  "Orders",
		Notice: page.Notice,
		Data: adminOrdersPage{
			List:     page,
			Statuses: entity.OrderStatuses,
			Status:   page.Query.Status,
		},
	})
}

// Cancel handles POST /admin/orders/{id}/cancel after confirmation.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if !h.admin.confirmed(w, r, "Are you sure you want to cancel this order?", "/admin/orders") {
		return
	}
	err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"))
	h.admin.done(w, r, err, "Order cancelled successfully.", "/admin/orders")
}

// VendorList handles GET /vendor/orders.
func (h *OrderHandler) VendorList(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.VendorList(r.Context())
	if h.vendor.handled(w, r, err) {
		return
	}
	h.vendor.render(w, r, http.StatusOK, "vendor_orders", View{
		Title:  "Orders",
		Notice: page.Notice,
		Data:   page,
	})
}

// Detail handles GET /vendor/orders/{id}.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.vendor.failed(w, r, err, "Order", "Order not found")
		return
	}
	h.vendor.render(w, r, http.StatusOK, "order_detail", View{Title: "Order " + order.Reference(), Data: order})
}
