package wire

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/usecase"
	"marketplace-console/pkg/backend"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminUser  = `{"_id":"u-admin","name":"Root","email":"root@example.com","role":"admin"}`
	sellerUser = `{"_id":"u-seller","name":"Asha","email":"asha@example.com","role":"seller"}`
)

// marketplace fakes the backend API. Bodies are keyed by "METHOD /path".
type marketplace struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
}

func (m *marketplace) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	m.mu.Lock()
	m.calls = append(m.calls, key)
	body := m.bodies[key]
	m.mu.Unlock()

	switch key {
	case "POST /api/users/login":
		raw, _ := io.ReadAll(r.Body)
		user := adminUser
		if strings.Contains(string(raw), "asha@") {
			user = sellerUser
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "jwt", Path: "/"})
		w.Write([]byte(`{"user":` + user + `}`))
		return
	case "GET /api/users/dashboard":
		w.Write([]byte(`{"user":` + adminUser + `}`))
		return
	}
	if body == "" {
		body = `{"success":true}`
	}
	w.Write([]byte(body))
}

func (m *marketplace) called(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == key {
			return true
		}
	}
	return false
}

type console struct {
	t      *testing.T
	url    string
	client *http.Client
	api    *marketplace
}

func newConsole(t *testing.T, bodies map[string]string) *console {
	t.Helper()
	api := &marketplace{bodies: bodies}
	backendSrv := httptest.NewServer(api)
	t.Cleanup(backendSrv.Close)

	config := &utils.Config{
		App:     utils.AppConfig{Name: "console-test", Port: "0"},
		Backend: utils.BackendConfig{URL: backendSrv.URL, Timeout: 2 * time.Second},
		Session: utils.SessionConfig{MaxAge: time.Hour, PrincipalTTL: time.Minute},
		Cache:   utils.CacheConfig{SnapshotTTL: time.Minute},
	}
	log := zap.NewNop()
	store := cache.NewMemory(0)
	t.Cleanup(func() { store.Close() })

	client := backend.NewClient(config.Backend, nil, log)
	app, err := Wiring(usecase.Deps{
		Repo:   repository.NewRepository(client, store, config.Session.MaxAge, log),
		Cache:  store,
		Config: config,
		Log:    log,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &console{
		t:   t,
		url: srv.URL,
		api: api,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *console) get(path string) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.client.Get(c.url + path)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *console) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.client.PostForm(c.url+path, form)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *console) login(path, email string) {
	c.t.Helper()
	resp, _ := c.post(path, url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	c := newConsole(t, nil)

	resp, _ := c.get("/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, _ = c.get("/vendor/products")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/vendor/login", resp.Header.Get("Location"))

	assert.False(t, c.api.called("GET /api/admin/dashboard"), "nothing is fetched before the guard")
}

func TestLoginPageAndHealth(t *testing.T) {
	c := newConsole(t, nil)

	resp, body := c.get("/admin/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Admin Login")

	resp, body = c.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"app":"console-test"`)
}

func TestSellerCannotEnterAdminPanel(t *testing.T) {
	c := newConsole(t, nil)

	resp, body := c.post("/admin/login", url.Values{"email": {"asha@example.com"}, "password": {"secret"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Access denied. Not an admin.")
	assert.True(t, c.api.called("POST /api/users/logout"), "the refused backend session is closed")

	resp, _ = c.get("/admin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminApprovesSeller(t *testing.T) {
	c := newConsole(t, map[string]string{
		"GET /api/admin/dashboard": `{"stats":{"totalUsers":3}}`,
		"GET /api/admin/sellers":   `{"sellers":[{"_id":"s1","name":"Kiran","email":"kiran@example.com","isSellerVerified":false}],"pages":1,"total":1}`,
	})
	c.login("/admin/login", "root@example.com")

	resp, body := c.get("/admin/sellers?tab=unverified")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Kiran")
	assert.Contains(t, body, `action="/admin/sellers/s1/verify"`)

	resp, _ = c.post("/admin/sellers/s1/verify", url.Values{"approve": {"true"}, "return": {"/admin/sellers?tab=unverified"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/sellers?tab=unverified", resp.Header.Get("Location"))
	assert.True(t, c.api.called("POST /api/admin/sellers/verify"))

	_, body = c.get("/admin/sellers?tab=unverified")
	assert.Contains(t, body, "Seller verified.")
}

func TestCancelOnlyOffersUnshippedOrders(t *testing.T) {
	c := newConsole(t, map[string]string{
		"GET /api/admin/orders": `{"orders":[
			{"_id":"o1","orderId":"ORD-1","status":"pending","totalAmount":100},
			{"_id":"o2","orderId":"ORD-2","status":"processing","totalAmount":200},
			{"_id":"o3","orderId":"ORD-3","status":"shipped","totalAmount":300},
			{"_id":"o4","orderId":"ORD-4","status":"delivered","totalAmount":400}
		],"pages":1,"total":4}`,
	})
	c.login("/admin/login", "root@example.com")

	resp, body := c.get("/admin/orders")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/admin/orders/o1/cancel"`)
	assert.Contains(t, body, `action="/admin/orders/o2/cancel"`)
	assert.NotContains(t, body, `action="/admin/orders/o3/cancel"`)
	assert.NotContains(t, body, `action="/admin/orders/o4/cancel"`)

	// unconfirmed post asks first and leaves the order alone
	resp, body = c.post("/admin/orders/o1/cancel", url.Values{"return": {"/admin/orders"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Are you sure you want to cancel this order?")
	assert.False(t, c.api.called("PUT /api/admin/orders/o1/cancel"))

	resp, _ = c.post("/admin/orders/o1/cancel", url.Values{"return": {"/admin/orders"}, "confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, c.api.called("PUT /api/admin/orders/o1/cancel"))
}

func TestDeletesAskBeforeCallingBackend(t *testing.T) {
	cases := []struct {
		name, email, path, prompt, backend string
	}{
		{"admin product", "root@example.com", "/admin/products/p1/delete", "Are you sure you want to delete this product?", "DELETE /api/products/admin/p1"},
		{"category", "root@example.com", "/admin/categories/shoes/delete", "Are you sure you want to delete this category?", "DELETE /api/admin/category/shoes"},
		{"vendor product", "asha@example.com", "/vendor/products/p2/delete", "Are you sure you want to delete this product?", "DELETE /api/products/p2"},
		{"attribute", "asha@example.com", "/vendor/attributes/a1/delete", "Are you sure you want to delete this attribute?", "DELETE /api/attribute/a1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newConsole(t, nil)
			if strings.HasPrefix(tc.path, "/admin") {
				c.login("/admin/login", tc.email)
			} else {
				c.login("/vendor/login", tc.email)
			}

			resp, body := c.post(tc.path, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tc.prompt)
			assert.Contains(t, body, `name="confirm" value="yes"`)
			assert.False(t, c.api.called(tc.backend), "nothing is deleted before confirming")

			resp, _ = c.post(tc.path, url.Values{"confirm": {"yes"}})
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.True(t, c.api.called(tc.backend))
		})
	}
}

func TestProductWithoutCategoryIsNotSaved(t *testing.T) {
	c := newConsole(t, nil)
	c.login("/vendor/login", "asha@example.com")

	resp, body := c.post("/vendor/add-product", url.Values{
		"name":        {"Linen Shirt"},
		"price":       {"799"},
		"productType": {"simple"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "At least one category is required")
	assert.Contains(t, body, `value="Linen Shirt"`, "the form keeps what was typed")
	assert.False(t, c.api.called("POST /api/products"))
}

func TestUnknownPageIsNotFound(t *testing.T) {
	c := newConsole(t, nil)

	resp, body := c.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")

	c.login("/admin/login", "root@example.com")
	resp, body = c.get("/admin/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

func TestLogoutEndsSession(t *testing.T) {
	c := newConsole(t, nil)
	c.login("/vendor/login", "asha@example.com")

	resp, _ := c.post("/vendor/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/vendor/login", resp.Header.Get("Location"))
	assert.True(t, c.api.called("POST /api/users/logout"))

	resp, _ = c.get("/vendor")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}
