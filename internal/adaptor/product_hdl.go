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

type ProductHandler struct {
	admin      base
	vendor     base
	service    usecase.ProductService
	attributes usecase.AttributeService
}

func NewProductHandler(service usecase.ProductService, attributes usecase.AttributeService, web *Web, log *zap.Logger) *ProductHandler {
	log = log.With(zap.String("handler", "product"))
	return &ProductHandler{
		admin:      base{web: web, panel: layout.PanelAdmin, log: log},
		vendor:     base{web: web, panel: layout.PanelVendor, log: log},
		service:    service,
		attributes: attributes,
	}
}

// AdminList handles GET /admin/products.
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.AdminList(r.Context())
	if h.admin.handled(w, r, err) {
		return
	}
	h.admin.render(w, r, http.StatusOK, "admin_products", View{
		Title:  "Products",
		Notice: page.Notice,
		Data:   page,
	})
}

// Toggle handles POST /admin/products/{id}/toggle.
func (h *ProductHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	err := h.service.Toggle(r.Context(), chi.URLParam(r, "id"))
	h.admin.done(w, r, err, "Product status updated.", "/admin/products")
}

// AdminDelete handles POST /admin/products/{id}/delete after confirmation.
func (h *ProductHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if !h.admin.confirmed(w, r, "Are you sure you want to delete this product?", "/admin/products") {
		return
	}
	err := h.service.AdminDelete(r.Context(), chi.URLParam(r, "id"))
	h.admin.done(w, r, err, "Product deleted.", "/admin/products")
}

// VendorList handles GET /vendor/products.
func (h *ProductHandler) VendorList(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.VendorList(r.Context())
	if h.vendor.handled(w, r, err) {
		return
	}
	h.vendor.render(w, r, http.StatusOK, "vendor_products", View{
		Title:  "Products",
		Notice: page.Notice,
		Data:   page,
	})
}

// Delete handles POST /vendor/products/{id}/delete after confirmation.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.vendor.confirmed(w, r, "Are you sure you want to delete this product?", "/vendor/products") {
		return
	}
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.vendor.done(w, r, err, "Product deleted.", "/vendor/products")
}

type productPage struct {
	Form       *request.ProductForm
	Attributes []entity.Attribute
	Action     string
	Edit       bool
}

// NewPage handles GET /vendor/add-product.
func (h *ProductHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	form := request.NewProductForm()
	h.form(w, r, http.StatusOK, &form, "", View{})
}

// Create handles the multipart POST /vendor/add-product. A submit carrying an
// op only edits the form and shows it again.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "")
}

// EditPage handles GET /vendor/edit-product/{id}.
func (h *ProductHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.vendor.failed(w, r, err, "Edit Product", "Product not found")
		return
	}
	form := request.ProductFormFrom(p)
	h.form(w, r, http.StatusOK, &form, id, View{})
}

// Update handles the multipart POST /vendor/edit-product/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, chi.URLParam(r, "id"))
}

func (h *ProductHandler) submit(w http.ResponseWriter, r *http.Request, id string) {
	picked, err := files(r, "files")
	form := request.BindProduct(r.PostForm)
	if err != nil {
		h.form(w, r, apperr.HTTPStatus(err), &form, id, View{Error: apperr.PublicMessage(err, genericFailure)})
		return
	}

	if op, ok := request.ParseOp(r.PostFormValue("op")); ok {
		form.Apply(op)
		h.form(w, r, http.StatusOK, &form, id, View{})
		return
	}

	ctx := r.Context()
	if id == "" {
		_, err = h.service.Create(ctx, &form, picked)
	} else {
		_, err = h.service.Update(ctx, id, &form, picked)
	}
	if h.vendor.handled(w, r, err) {
		return
	}
	if err != nil {
		h.form(w, r, apperr.HTTPStatus(err), &form, id, View{
			Error:  apperr.PublicMessage(err, "Something went wrong. Please try again."),
			Errors: fieldErrors(err),
		})
		return
	}

	msg := "Product added successfully."
	if id != "" {
		msg = "Product updated successfully."
	}
	h.vendor.flash(w, r, "success", msg)
	h.vendor.seeOther(w, r, "/vendor/products")
}

func (h *ProductHandler) form(w http.ResponseWriter, r *http.Request, status int, form *request.ProductForm, id string, v View) {
	attrs, err := h.attributes.Options(r.Context())
	if h.vendor.handled(w, r, err) {
		return
	}
	if err != nil && v.Notice == "" {
		v.Notice = "Could not load attributes."
	}

	page := productPage{Form: form, Attributes: attrs, Action: "/vendor/add-product"}
	v.Title = "Add Product"
	if id != "" {
		page.Action = "/vendor/edit-product/" + id
		page.Edit = true
		v.Title = "Edit Product"
	}
	v.Data = page
	h.vendor.render(w, r, status, "product_form", v)
}
