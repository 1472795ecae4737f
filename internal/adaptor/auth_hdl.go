package adaptor

import (
	"net/http"

	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	base
	service usecase.AuthService
}

func NewAuthHandler(service usecase.AuthService, web *Web, panel layout.Panel, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		base: base{
			web:   web,
			panel: panel,
			log:   log.With(zap.String("handler", "auth"), zap.String("panel", string(panel))),
		},
		service: service,
	}
}

type loginPage struct {
	Email   string
	Heading string
}

func (h *AuthHandler) heading() string {
	if h.panel == layout.PanelAdmin {
		return "Admin Login"
	}
	return "Seller Login"
}

// LoginPage handles GET /{panel}/login. A signed-in user of the panel's role
// goes straight to the dashboard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if role, ok := utils.GetRoleFromContext(r.Context()); ok && role == string(h.panel.Role()) {
		h.seeOther(w, r, h.panel.Root())
		return
	}
	h.render(w, r, http.StatusOK, "login", View{
		Title: h.heading(),
		Data:  loginPage{Heading: h.heading()},
	})
}

// Login handles POST /{panel}/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login", View{
			Title: h.heading(),
			Error: "Invalid form submission.",
			Data:  loginPage{Heading: h.heading()},
		})
		return
	}
	req := request.BindLogin(r.PostForm)

	user, credential, err := h.service.Login(r.Context(), h.panel.Role(), &req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if apperr.KindOf(err) == apperr.Invalid {
			status = http.StatusOK
		}
		h.render(w, r, status, "login", View{
			Title:  h.heading(),
			Error:  apperr.PublicMessage(err, "Login failed. Please try again."),
			Errors: fieldErrors(err),
			Data:   loginPage{Email: req.Email, Heading: h.heading()},
		})
		return
	}

	st, err := h.web.Sessions.Start(w, r, string(user.Role), credential)
	if err != nil {
		h.log.Error("Failed to start session", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "login", View{
			Title: h.heading(),
			Error: genericFailure,
			Data:  loginPage{Email: req.Email, Heading: h.heading()},
		})
		return
	}
	h.web.Principals.Remember(r.Context(), st.SessionID, user)

	h.log.Info("Signed in", zap.String("user_id", user.ID), zap.String("session", st.SessionID))
	h.seeOther(w, r, h.panel.Root())
}

// Logout handles POST /{panel}/logout. When the backend refuses, the session
// is kept and the user stays where they were.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.service.Logout(ctx)
	if err != nil && !apperr.IsAuth(err) {
		h.flash(w, r, "error", apperr.PublicMessage(err, "An error occurred, please try again."))
		h.seeOther(w, r, h.back(r, h.panel.Root()))
		return
	}
	h.toLogin(w, r)
}

// fieldErrors returns the per-field messages carried by a validation error.
func fieldErrors(err error) map[string]string {
	if ae, ok := apperr.As(err); ok {
		return ae.Fields
	}
	return nil
}
