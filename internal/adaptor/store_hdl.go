package adaptor

import (
	"net/http"

	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type StoreHandler struct {
	admin   base
	vendor  base
	service usecase.StoreService
}

func NewStoreHandler(service usecase.StoreService, web *Web, log *zap.Logger) *StoreHandler {
	log = log.With(zap.String("handler", "store"))
	return &StoreHandler{
		admin:   base{web: web, panel: layout.PanelAdmin, log: log},
		vendor:  base{web: web, panel: layout.PanelVendor, log: log},
		service: service,
	}
}

// List handles GET /admin/stores.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), request.ParseListQuery(r.URL.Query()))
	if h.admin.handled(w, r, err) {
		return
	}
	h.admin.render(w, r, http.StatusOK, "stores", View{
		Title:  "Stores",
		Notice: page.Notice,
		Data:   page,
	})
}

// Detail handles GET /admin/stores/{id}.
func (h *StoreHandler) Detail(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.admin.failed(w, r, err, "Store", "Store not found")
		return
	}
	h.admin.render(w, r, http.StatusOK, "store_detail", View{Title: st.StoreName, Data: st})
}

// Verify handles POST /admin/stores/{id}/verify.
func (h *StoreHandler) Verify(w http.ResponseWriter, r *http.Request) {
	approve := r.PostFormValue("approve") == "true"
	if !approve && !h.admin.confirmed(w, r, "Revoke this store's verification?", "/admin/stores") {
		return
	}
	msg := "Store verified."
	if !approve {
		msg = "Store verification revoked."
	}
	err := h.service.Verify(r.Context(), chi.URLParam(r, "id"), approve)
	h.admin.done(w, r, err, msg, "/admin/stores")
}

// SetStatus handles POST /admin/stores/{id}/status.
func (h *StoreHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	activate := r.PostFormValue("activate") == "true"
	msg := "Store activated."
	if !activate {
		msg = "Store deactivated."
	}
	err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), activate)
	h.admin.done(w, r, err, msg, "/admin/stores")
}

type storeInfoPage struct {
	Form request.StoreInfoForm
	// New is set when the seller has no store yet.
	New bool
}

// Info handles GET /vendor/store-info.
func (h *StoreHandler) Info(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Mine(r.Context())
	if h.vendor.handled(w, r, err) {
		return
	}

	v := View{Title: "Store Info"}
	switch {
	case err == nil:
		v.Data = storeInfoPage{Form: request.StoreInfoFormFrom(st)}
	case apperr.KindOf(err) == apperr.NotFound:
		v.Data = storeInfoPage{New: true}
	default:
		v.Notice = apperr.PublicMessage(err, "Could not load your store.")
		v.Data = storeInfoPage{}
	}
	h.vendor.render(w, r, http.StatusOK, "store_info", v)
}

// UpdateInfo handles the multipart POST /vendor/store-info.
func (h *StoreHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	logo, err := file(r, "logo")
	if err != nil {
		h.updateFailed(w, r, err, request.BindStoreInfo(r.PostForm))
		return
	}
	banner, err := file(r, "banner")
	if err != nil {
		h.updateFailed(w, r, err, request.BindStoreInfo(r.PostForm))
		return
	}

	form := request.BindStoreInfo(r.PostForm)
	if err := h.service.UpdateMine(r.Context(), &form, logo, banner); err != nil {
		h.updateFailed(w, r, err, form)
		return
	}
	h.vendor.flash(w, r, "success", "Store updated successfully.")
	h.vendor.seeOther(w, r, "/vendor/store-info")
}

// updateFailed shows the form again with what the seller typed.
func (h *StoreHandler) updateFailed(w http.ResponseWriter, r *http.Request, err error, form request.StoreInfoForm) {
	if h.vendor.handled(w, r, err) {
		return
	}
	h.vendor.render(w, r, apperr.HTTPStatus(err), "store_info", View{
		Title:  "Store Info",
		Error:  apperr.PublicMessage(err, "Error updating store."),
		Errors: fieldErrors(err),
		Data:   storeInfoPage{Form: form},
	})
}
