package adaptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/session"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/media"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxUploadSize   = 10 << 20
	maxMultipartMem = 32 << 20
	genericFailure  = "Something went wrong. Please try again."
)

// Sessions is what the handlers need from the console session.
type Sessions interface {
	Flasher
	Load(r *http.Request) session.State
	Start(w http.ResponseWriter, r *http.Request, role, credential string) (session.State, error)
	Destroy(w http.ResponseWriter, r *http.Request) error
}

// Principals caches the signed-in user per console session.
type Principals interface {
	Remember(ctx context.Context, sid string, user *entity.User)
	Forget(ctx context.Context, sid string)
}

// Web bundles the page plumbing shared by every handler.
type Web struct {
	Render     *Renderer
	Sessions   Sessions
	Principals Principals
}

type Handler struct {
	AdminAuth  *AuthHandler
	VendorAuth *AuthHandler
	Dashboard  *DashboardHandler
	Seller     *SellerHandler
	Store      *StoreHandler
	Order      *OrderHandler
	Product    *ProductHandler
	Category   *CategoryHandler
	Attribute  *AttributeHandler
	Shipping   *ShippingHandler
	Page       *PageHandler
}

func NewHandler(service *usecase.Service, web *Web, log *zap.Logger) *Handler {
	return &Handler{
		AdminAuth:  NewAuthHandler(service.Auth, web, layout.PanelAdmin, log),
		VendorAuth: NewAuthHandler(service.Auth, web, layout.PanelVendor, log),
		Dashboard:  NewDashboardHandler(service.Dashboard, web, log),
		Seller:     NewSellerHandler(service.Seller, web, log),
		Store:      NewStoreHandler(service.Store, web, log),
		Order:      NewOrderHandler(service.Order, web, log),
		Product:    NewProductHandler(service.Product, service.Attribute, web, log),
		Category:   NewCategoryHandler(service.Category, web, log),
		Attribute:  NewAttributeHandler(service.Attribute, web, log),
		Shipping:   NewShippingHandler(service.Shipping, web, log),
		Page:       NewPageHandler(web, log),
	}
}

// base holds the helpers every page handler shares. panel is the console
// the handler serves.
type base struct {
	web   *Web
	panel layout.Panel
	log   *zap.Logger
}

func (b *base) render(w http.ResponseWriter, r *http.Request, status int, page string, v View) {
	v.Panel = b.panel
	b.web.Render.Render(w, r, status, page, v)
}

func (b *base) flash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	b.web.Sessions.AddFlash(w, r, kind, msg)
}

func (b *base) seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// back is the same-site return target posted with a row action.
func (b *base) back(r *http.Request, fallback string) string {
	return utils.LocalPath(r.FormValue("return"), fallback)
}

// toLogin ends the console session after the backend refused its credential.
func (b *base) toLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if sid, ok := utils.GetSessionIDFromContext(ctx); ok {
		b.web.Principals.Forget(ctx, sid)
	}
	if err := b.web.Sessions.Destroy(w, r); err != nil {
		b.log.Warn("Failed to clear session", zap.Error(err))
	}
	b.seeOther(w, r, b.panel.LoginPath())
}

// handled deals with errors no page can recover from: a dropped request or
// an expired credential. It reports whether the response is done.
func (b *base) handled(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	if apperr.IsAuth(err) {
		b.toLogin(w, r)
		return true
	}
	return false
}

// done finishes a row action with a flash and a redirect back to the list.
func (b *base) done(w http.ResponseWriter, r *http.Request, err error, success, fallback string) {
	if b.handled(w, r, err) {
		return
	}
	if err != nil {
		b.flash(w, r, "error", apperr.PublicMessage(err, genericFailure))
	} else if success != "" {
		b.flash(w, r, "success", success)
	}
	b.seeOther(w, r, b.back(r, fallback))
}

// failed renders the message page for a load that has nothing to show.
func (b *base) failed(w http.ResponseWriter, r *http.Request, err error, title, fallback string) {
	if b.handled(w, r, err) {
		return
	}
	b.render(w, r, apperr.HTTPStatus(err), "message", View{
		Title: title,
		Error: apperr.PublicMessage(err, fallback),
	})
}

type confirmPage struct {
	Prompt string
	Action string
	Fields map[string]string
	Return string
	Cancel string
}

// confirmed reports whether the POST carries confirm=yes. Otherwise it
// renders the confirmation page re-posting the same fields.
func (b *base) confirmed(w http.ResponseWriter, r *http.Request, prompt, fallback string) bool {
	if r.PostFormValue("confirm") == "yes" {
		return true
	}
	fields := map[string]string{}
	for k, v := range r.PostForm {
		if k == "confirm" || k == "return" || strings.HasPrefix(k, "gorilla.csrf") || len(v) == 0 {
			continue
		}
		fields[k] = v[0]
	}
	ret := b.back(r, fallback)
	b.render(w, r, http.StatusOK, "confirm", View{
		Title: "Please confirm",
		Data: confirmPage{
			Prompt: prompt,
			Action: r.URL.Path,
			Fields: fields,
			Return: ret,
			Cancel: ret,
		},
	})
	return false
}

// files reads the non-empty uploads of field into memory.
func files(r *http.Request, field string) ([]media.File, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
			if errors.Is(err, http.ErrNotMultipart) {
				return nil, nil
			}
			return nil, apperr.InvalidErr("Could not read the uploaded files.", nil)
		}
	}

	headers := r.MultipartForm.File[field]
	out := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		if fh.Size == 0 {
			continue
		}
		if fh.Size > maxUploadSize {
			return nil, apperr.InvalidErr(fmt.Sprintf("%s is larger than 10 MB.", fh.Filename), nil)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		out = append(out, media.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return out, nil
}

// file is the single upload of field, or nil when none was chosen.
func file(r *http.Request, field string) (*media.File, error) {
	fs, err := files(r, field)
	if err != nil || len(fs) == 0 {
		return nil, err
	}
	return &fs[0], nil
}
