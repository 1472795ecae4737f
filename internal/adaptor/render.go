package adaptor

import (
	"bytes"
	"html/template"
	"net/http"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/session"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Flasher is the part of the session manager the pages need.
type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, kind, message string)
	Flashes(w http.ResponseWriter, r *http.Request) []session.FlashMessage
}

// View is the data every page template receives.
type View struct {
	Title     string
	Panel     layout.Panel
	Nav       []layout.NavItem
	User      *entity.User
	Flashes   []session.FlashMessage
	CSRFField template.HTML
	// Path is the request URI, the return target of row actions.
	Path   string
	Notice string
	Error  string
	Errors map[string]string
	Data   any
}

type Renderer struct {
	templates *TemplateCache
	flashes   Flasher
	log       *zap.Logger
}

func NewRenderer(templates *TemplateCache, flashes Flasher, log *zap.Logger) *Renderer {
	return &Renderer{
		templates: templates,
		flashes:   flashes,
		log:       log.With(zap.String("component", "render")),
	}
}

// Render executes page into a buffer first so a template error never leaves
// a half written response behind.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, v View) {
	tmpl := rd.templates.Get(page)
	if tmpl == nil {
		rd.log.Error("Unknown page template", zap.String("page", page))
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	if user, ok := session.UserFrom(r.Context()); ok {
		v.User = user
	}
	if v.Panel != "" && v.User != nil {
		v.Nav = v.Panel.Nav(r.URL.Path)
	}
	v.CSRFField = csrf.TemplateField(r)
	v.Path = r.URL.RequestURI()
	if rd.flashes != nil {
		v.Flashes = rd.flashes.Flashes(w, r)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		rd.log.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
