package adaptor

import (
	"net/http"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AttributeHandler struct {
	base
	service usecase.AttributeService
}

func NewAttributeHandler(service usecase.AttributeService, web *Web, log *zap.Logger) *AttributeHandler {
	return &AttributeHandler{
		base:    base{web: web, panel: layout.PanelVendor, log: log.With(zap.String("handler", "attribute"))},
		service: service,
	}
}

type attributesPage struct {
	List   *response.ListPage[response.AttributeRow]
	Form   request.AttributeForm
	ID     string
	Action string
	Colors []string
	Sizes  []string
}

// List handles GET /vendor/attributes.
func (h *AttributeHandler) List(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, request.AttributeForm{}, "", View{})
}

// Edit handles GET /vendor/attributes/{id}/edit.
func (h *AttributeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if h.handled(w, r, err) {
			return
		}
		h.flash(w, r, "error", apperr.PublicMessage(err, "Attribute not found"))
		h.seeOther(w, r, "/vendor/attributes")
		return
	}
	h.page(w, r, http.StatusOK, request.AttributeFormFrom(a), id, View{})
}

// Save handles POST /vendor/attributes and POST /vendor/attributes/{id}.
func (h *AttributeHandler) Save(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	id := chi.URLParam(r, "id")
	form := request.BindAttribute(r.PostForm)
	if err := h.service.Save(r.Context(), id, &form); err != nil {
		if h.handled(w, r, err) {
			return
		}
		h.page(w, r, apperr.HTTPStatus(err), form, id, View{
			Error:  apperr.PublicMessage(err, "Failed to save attribute"),
			Errors: fieldErrors(err),
		})
		return
	}
	msg := "Attribute created successfully."
	if id != "" {
		msg = "Attribute updated successfully."
	}
	h.flash(w, r, "success", msg)
	h.seeOther(w, r, "/vendor/attributes")
}

// Delete handles POST /vendor/attributes/{id}/delete after confirmation.
func (h *AttributeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.confirmed(w, r, "Are you sure you want to delete this attribute?", "/vendor/attributes") {
		return
	}
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, err, "Attribute deleted.", "/vendor/attributes")
}

func (h *AttributeHandler) page(w http.ResponseWriter, r *http.Request, status int, form request.AttributeForm, id string, v View) {
	list, err := h.service.List(r.Context())
	if h.handled(w, r, err) {
		return
	}
	page := attributesPage{
		List:   list,
		Form:   form,
		ID:     id,
		Action: "/vendor/attributes",
		Colors: entity.AttributeColors,
		Sizes:  entity.AttributeSizes,
	}
	if id != "" {
		page.Action = "/vendor/attributes/" + id
	}
	v.Title = "Attributes"
	v.Notice = list.Notice
	v.Data = page
	h.render(w, r, status, "attributes", v)
}
