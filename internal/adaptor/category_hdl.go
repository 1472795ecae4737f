package adaptor

import (
	"net/http"

	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	base
	service usecase.CategoryService
}

func NewCategoryHandler(service usecase.CategoryService, web *Web, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		base:    base{web: web, panel: layout.PanelAdmin, log: log.With(zap.String("handler", "category"))},
		service: service,
	}
}

// categoriesPage is the list with the add form, or the edit form when Slug
// is set.
type categoriesPage struct {
	List   *response.ListPage[response.CategoryRow]
	Form   request.CategoryForm
	Slug   string
	Action string
}

// List handles GET /admin/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, request.CategoryForm{}, "", View{})
}

// Edit handles GET /admin/categories/{slug}/edit.
func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	c, err := h.service.Get(r.Context(), slug)
	if err != nil {
		if h.handled(w, r, err) {
			return
		}
		h.flash(w, r, "error", apperr.PublicMessage(err, "Category not found"))
		h.seeOther(w, r, "/admin/categories")
		return
	}
	h.page(w, r, http.StatusOK, request.CategoryFormFrom(c), slug, View{})
}

// Create handles POST /admin/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	form := request.BindCategory(r.PostForm)
	if err := h.service.Create(r.Context(), &form); err != nil {
		h.rejected(w, r, err, form, "", "Error adding category")
		return
	}
	h.flash(w, r, "success", "Category added successfully.")
	h.seeOther(w, r, "/admin/categories")
}

// Update handles POST /admin/categories/{slug}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	slug := chi.URLParam(r, "slug")
	form := request.BindCategory(r.PostForm)
	if err := h.service.Update(r.Context(), slug, &form); err != nil {
		h.rejected(w, r, err, form, slug, "Error updating category")
		return
	}
	h.flash(w, r, "success", "Category updated successfully.")
	h.seeOther(w, r, "/admin/categories")
}

// Delete handles POST /admin/categories/{slug}/delete after confirmation.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.confirmed(w, r, "Are you sure you want to delete this category?", "/admin/categories") {
		return
	}
	err := h.service.Delete(r.Context(), chi.URLParam(r, "slug"))
	h.done(w, r, err, "Category deleted.", "/admin/categories")
}

func (h *CategoryHandler) rejected(w http.ResponseWriter, r *http.Request, err error, form request.CategoryForm, slug, fallback string) {
	if h.handled(w, r, err) {
		return
	}
	h.page(w, r, apperr.HTTPStatus(err), form, slug, View{
		Error:  apperr.PublicMessage(err, fallback),
		Errors: fieldErrors(err),
	})
}

func (h *CategoryHandler) page(w http.ResponseWriter, r *http.Request, status int, form request.CategoryForm, slug string, v View) {
	list, err := h.service.List(r.Context())
	if h.handled(w, r, err) {
		return
	}
	page := categoriesPage{List: list, Form: form, Slug: slug, Action: "/admin/categories"}
	if slug != "" {
		page.Action = "/admin/categories/" + slug
	}
	v.Title = "Categories"
	v.Notice = list.Notice
	v.Data = page
	h.render(w, r, status, "categories", v)
}
