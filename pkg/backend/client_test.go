package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(utils.BackendConfig{URL: srv.URL + "/", Timeout: 2 * time.Second}, nil, zap.NewNop())
}

func TestGetForwardsCredentialAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/sellers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "token=abc", r.Header.Get("Cookie"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"sellers":[{"_id":"s1"}],"pages":3}`))
	})

	ctx := utils.SetTokenContext(context.Background(), "token=abc")
	ctx = utils.SetRequestIDContext(ctx, "req-1")

	var out struct {
		Sellers []struct {
			ID string `json:"_id"`
		} `json:"sellers"`
		Pages int `json:"pages"`
	}
	err := c.Get(ctx, "/api/admin/sellers", url.Values{"page": {"2"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Pages)
	require.Len(t, out.Sellers, 1)
	assert.Equal(t, "s1", out.Sellers[0].ID)
}

func TestPostSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s1", body["sellerId"])
		assert.Equal(t, true, body["approve"])
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.Post(context.Background(), "/api/admin/sellers/verify", map[string]any{"sellerId": "s1", "approve": true}, nil)
	require.NoError(t, err)
}

func TestErrorStatusCarriesServerMessageAndIsNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Category already exists"}`))
	})

	err := c.Post(context.Background(), "/api/admin/category", map[string]string{"name": "Shoes"}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "Category already exists", apperr.PublicMessage(err, "Error adding category"))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestUnauthorizedMapsToAuthKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not authorized"}`, http.StatusUnauthorized)
	})
	err := c.Get(context.Background(), "/api/users/dashboard", nil, &struct{}{})
	assert.True(t, apperr.IsAuth(err))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	c := NewClient(utils.BackendConfig{URL: "http://127.0.0.1:1", Timeout: time.Second}, nil, zap.NewNop())
	err := c.Get(context.Background(), "/api/store", nil, nil)
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
}

func TestDoReturnsCookies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "jwt-value", Path: "/"})
		w.Write([]byte(`{"user":{"role":"admin"}}`))
	})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/users/login", Body: map[string]string{}}, &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "token=jwt-value", CookieHeader(resp.Cookies))
}
