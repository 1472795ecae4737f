package adaptor

import (
	"net/http"

	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SellerHandler struct {
	base
	service usecase.SellerService
}

func NewSellerHandler(service usecase.SellerService, web *Web, log *zap.Logger) *SellerHandler {
	return &SellerHandler{
		base:    base{web: web, panel: layout.PanelAdmin, log: log.With(zap.String("handler", "seller"))},
		service: service,
	}
}

// List handles GET /admin/sellers?tab=verified|unverified&page=N.
func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), request.ParseListQuery(r.URL.Query()))
	if h.handled(w, r, err) {
		return
	}
	h.render(w, r, http.StatusOK, "sellers", View{
		Title:  "Sellers",
		Notice: page.Notice,
		Data:   page,
	})
}

// Verify handles POST /admin/sellers/{id}/verify with approve=true|false.
// Revoking asks for confirmation first.
func (h *SellerHandler) Verify(w http.ResponseWriter, r *http.Request) {
	approve := r.PostFormValue("approve") == "true"
	if !approve && !h.confirmed(w, r, "Revoke this seller's verification?", "/admin/sellers") {
		return
	}
	msg := "Seller verified."
	if !approve {
		msg = "Seller verification revoked."
	}
	err := h.service.Verify(r.Context(), chi.URLParam(r, "id"), approve)
	h.done(w, r, err, msg, "/admin/sellers")
}

// SetStatus handles POST /admin/sellers/{id}/status with activate=true|false.
func (h *SellerHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	activate := r.PostFormValue("activate") == "true"
	msg := "Seller activated."
	if !activate {
		msg = "Seller deactivated."
	}
	err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), activate)
	h.done(w, r, err, msg, "/admin/sellers")
}
