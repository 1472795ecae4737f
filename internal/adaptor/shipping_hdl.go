package adaptor

import (
	"net/http"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShippingHandler struct {
	base
	service usecase.ShippingService
}

func NewShippingHandler(service usecase.ShippingService, web *Web, log *zap.Logger) *ShippingHandler {
	return &ShippingHandler{
		base:    base{web: web, panel: layout.PanelVendor, log: log.With(zap.String("handler", "shipping"))},
		service: service,
	}
}

type shippingPage struct {
	Zones  []entity.ShippingZone
	Form   request.ShippingZoneForm
	States []string
}

// List handles GET /vendor/shipping. ?edit={id} loads a zone into the form.
func (h *ShippingHandler) List(w http.ResponseWriter, r *http.Request) {
	form := request.ShippingZoneForm{ShippingType: string(entity.ShippingFree)}
	if id := r.URL.Query().Get("edit"); id != "" {
		z, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.flash(w, r, "error", apperr.PublicMessage(err, "Shipping zone not found"))
			h.seeOther(w, r, "/vendor/shipping")
			return
		}
		form = request.ShippingZoneFormFrom(z)
	}
	h.page(w, r, http.StatusOK, form, View{})
}

// Save handles POST /vendor/shipping. The hidden id decides between add and edit.
func (h *ShippingHandler) Save(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	form := request.BindShippingZone(r.PostForm)
	if _, err := h.service.Save(r.Context(), &form); err != nil {
		h.page(w, r, apperr.HTTPStatus(err), form, View{
			Error:  apperr.PublicMessage(err, "Could not save shipping zone."),
			Errors: fieldErrors(err),
		})
		return
	}
	msg := "Shipping zone added."
	if form.ID != "" {
		msg = "Shipping zone updated."
	}
	h.flash(w, r, "success", msg)
	h.seeOther(w, r, "/vendor/shipping")
}

// Delete handles POST /vendor/shipping/{id}/delete after confirmation.
func (h *ShippingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.confirmed(w, r, "Delete this shipping zone?", "/vendor/shipping") {
		return
	}
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, err, "Shipping zone deleted.", "/vendor/shipping")
}

func (h *ShippingHandler) page(w http.ResponseWriter, r *http.Request, status int, form request.ShippingZoneForm, v View) {
	zones, err := h.service.List(r.Context())
	if err != nil && v.Error == "" {
		v.Error = apperr.PublicMessage(err, "Could not load shipping zones.")
	}
	v.Title = "Shipping"
	v.Notice = usecase.ShippingDraftNotice
	v.Data = shippingPage{Zones: zones, Form: form, States: entity.IndianStates}
	h.render(w, r, status, "shipping", v)
}
