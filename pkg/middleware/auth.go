package middleware

import (
	"context"
	"errors"
	"net/http"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/session"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

type SessionLoader interface {
	Load(r *http.Request) session.State
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, sid string) (*entity.User, error)
}

// Session resolves the principal of the console session once per request and
// puts it, the backend credential and the session id into the context.
// Anonymous requests pass through untouched; the guards decide.
func Session(sessions SessionLoader, principals PrincipalResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessions.Load(r)
			if !state.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetTokenContext(r.Context(), state.Credential)
			ctx = utils.SetSessionIDContext(ctx, state.SessionID)

			user, err := principals.Resolve(ctx, state.SessionID)
			switch {
			case err == nil:
				ctx = utils.SetUserContext(ctx, user.ID, string(user.Role))
				ctx = session.WithUser(ctx, user)
			case errors.Is(err, context.Canceled):
				return
			case apperr.IsAuth(err):
				logger.Debug("Backend session no longer valid", zap.String("sid", state.SessionID))
			default:
				logger.Warn("Failed to resolve principal",
					zap.String("sid", state.SessionID),
					zap.String("request_id", utils.GetRequestIDFromContext(ctx)),
					zap.Error(err),
				)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the resolved principal has
// role. Everybody else is sent to loginPath before anything is rendered.
func RequireRole(role entity.UserRole, loginPath string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := utils.GetRoleFromContext(r.Context())
			if !ok || current != string(role) {
				if ok {
					logger.Warn("Role check: access attempt with another role",
						zap.String("role", current),
						zap.String("want", string(role)),
						zap.String("path", r.URL.Path),
					)
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
