package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/session"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubLoader session.State

func (s stubLoader) Load(*http.Request) session.State { return session.State(s) }

type stubResolver struct {
	user  *entity.User
	err   error
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, sid string) (*entity.User, error) {
	s.calls++
	return s.user, s.err
}

func guarded(loader SessionLoader, resolver PrincipalResolver, role entity.UserRole) http.Handler {
	log := zap.NewNop()
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := utils.GetTokenFromContext(r.Context())
		w.Write([]byte("protected:" + token))
	})
	return Session(loader, resolver, log)(RequireRole(role, "/admin/login", log)(final))
}

func TestRequireRoleRedirectsAnonymous(t *testing.T) {
	resolver := &stubResolver{}
	h := guarded(stubLoader{}, resolver, entity.RoleAdmin)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/sellers", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "protected")
	assert.Zero(t, resolver.calls, "anonymous sessions never reach the backend")
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	resolver := &stubResolver{user: &entity.User{Base: entity.Base{ID: "u1"}, Role: entity.RoleSeller}}
	h := guarded(stubLoader{SessionID: "sid", Credential: "token=a"}, resolver, entity.RoleAdmin)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestRequireRoleTreatsFailedWhoAmIAsAnonymous(t *testing.T) {
	resolver := &stubResolver{err: apperr.UnauthorizedErr("expired")}
	h := guarded(stubLoader{SessionID: "sid", Credential: "token=a"}, resolver, entity.RoleAdmin)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	resolver := &stubResolver{user: &entity.User{Base: entity.Base{ID: "u1"}, Role: entity.RoleAdmin}}
	h := guarded(stubLoader{SessionID: "sid", Credential: "token=a"}, resolver, entity.RoleAdmin)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "protected:token=a", rec.Body.String())
}

func TestRequestIDIsMintedAndEchoed(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc-123", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "bad id\n")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "bad id\n", seen)
}

func TestRecoverRendersErrorPage(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}
