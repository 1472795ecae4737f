package wire

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"marketplace-console/internal/adaptor"
	"marketplace-console/internal/session"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/middleware"
	"marketplace-console/pkg/utils"
	"marketplace-console/web"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds sessions, services, pages and the router on top of the
// shared dependencies.
func Wiring(d usecase.Deps) (*App, error) {
	templates, err := adaptor.LoadTemplates(web.FS)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	sessions := session.NewManager(d.Config.Session, d.Log)
	principals := session.NewRegistry(d.Cache, d.Repo.Session, d.Config.Session.PrincipalTTL, d.Log)

	service := usecase.NewService(d)
	handler := adaptor.NewHandler(service, &adaptor.Web{
		Render:     adaptor.NewRenderer(templates, sessions, d.Log),
		Sessions:   sessions,
		Principals: principals,
	}, d.Log)

	router, err := setupRouter(handler, sessions, principals, d)
	if err != nil {
		return nil, err
	}
	return &App{Router: router}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	sessions middleware.SessionLoader,
	principals middleware.PrincipalResolver,
	d usecase.Deps,
) (*chi.Mux, error) {
	config, logger := d.Config, d.Log
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics(d.Metrics))

	started := time.Now()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h := utils.Health{
			Status: "ok",
			App:    config.App.Name,
			Uptime: time.Since(started).Round(time.Second).String(),
			Checks: map[string]string{"cache": "ok"},
		}
		// the snapshot store backs every list page
		if err := d.Cache.Set(r.Context(), "health", []byte("1"), time.Second); err != nil {
			h.Status, h.Checks["cache"] = "degraded", err.Error()
		}
		utils.ResponseHealth(w, h)
	})
	if config.Metrics.Enabled && d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.NotFound(handler.Page.NotFound)

	r.Group(func(r chi.Router) {
		if config.Session.CSRFEnabled {
			r.Use(csrfProtect(config))
		}
		r.Use(middleware.Session(sessions, principals, logger))

		r.Get("/", handler.Page.Home)
		wireAdmin(r, handler, logger)
		wireVendor(r, handler, logger)
	})

	return r, nil
}

// csrfProtect guards every form post. Requests served over plain HTTP must be
// marked as such or the origin check rejects them.
func csrfProtect(config *utils.Config) func(http.Handler) http.Handler {
	key, ok := utils.DecodeKey(config.Session.CSRFKey)
	switch {
	case ok:
		key = key[:32]
	default:
		if secret, ok := utils.DecodeKey(config.Session.Key); ok {
			key = utils.DeriveKey(secret, "csrf", 32)
		} else {
			key = utils.RandomKey(32)
		}
	}
	protect := csrf.Protect(
		key,
		csrf.Secure(config.Session.CookieSecure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins([]string{"localhost:" + config.App.Port, "127.0.0.1:" + config.App.Port, "localhost", "127.0.0.1"}),
	)
	return func(next http.Handler) http.Handler {
		guarded := protect(next)
		if config.Session.CookieSecure {
			return guarded
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guarded.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
