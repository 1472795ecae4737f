package adaptor

import (
	"net/http"

	"marketplace-console/internal/data/entity"

	"go.uber.org/zap"
)

// PageHandler serves the pages outside both panels.
type PageHandler struct {
	base
}

func NewPageHandler(web *Web, log *zap.Logger) *PageHandler {
	return &PageHandler{base: base{web: web, log: log.With(zap.String("handler", "page"))}}
}

// Home sends a signed-in user to their panel and everyone else to the seller login.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	st := h.web.Sessions.Load(r)
	switch {
	case st.Authenticated() && st.Role == string(entity.RoleAdmin):
		h.seeOther(w, r, "/admin")
	case st.Authenticated():
		h.seeOther(w, r, "/vendor")
	default:
		h.seeOther(w, r, "/vendor/login")
	}
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "message", View{
		Title: "Page not found",
		Error: "The page you are looking for does not exist.",
	})
}
