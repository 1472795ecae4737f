package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorded struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type fakeAPI struct {
	mu       sync.Mutex
	calls    []recorded
	response map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls = append(f.calls, recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})
	resp := f.response[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if resp == "" {
		resp = `{"success":true}`
	}
	w.Write([]byte(resp))
}

func (f *fakeAPI) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newRepo(t *testing.T, responses map[string]string) (*Repository, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{response: responses}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := backend.NewClient(utils.BackendConfig{URL: srv.URL, Timeout: 2 * time.Second}, nil, zap.NewNop())
	mem := cache.NewMemory(0)
	t.Cleanup(func() { mem.Close() })
	return NewRepository(client, mem, time.Hour, zap.NewNop()), api
}

func TestSellerRepository(t *testing.T) {
	repo, api := newRepo(t, map[string]string{
		"GET /api/admin/sellers": `{"sellers":[{"_id":"s1","name":"Asha","isSellerVerified":false}],"pages":2,"total":11}`,
	})
	ctx := context.Background()

	res, err := repo.Seller.FindAll(ctx, url.Values{"page": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Asha", res.Items[0].Name)
	assert.Equal(t, "1", api.last().Query.Get("page"))

	require.NoError(t, repo.Seller.Verify(ctx, "s1", true, "Verified by admin"))
	call := api.last()
	assert.Equal(t, "POST /api/admin/sellers/verify", call.Method+" "+call.Path)
	assert.Equal(t, map[string]any{"sellerId": "s1", "approve": true, "notes": "Verified by admin"}, call.Body)

	require.NoError(t, repo.Seller.SetActive(ctx, "s1", false, ""))
	call = api.last()
	assert.Equal(t, "PUT /api/admin/sellers/status", call.Method+" "+call.Path)
	assert.Equal(t, map[string]any{"sellerId": "s1", "activate": false}, call.Body)
}

func TestOrderAndProductEndpoints(t *testing.T) {
	repo, api := newRepo(t, map[string]string{
		"GET /api/orders/get/o-1": `{"order":{"_id":"o-1","orderId":"ORD-1","status":"shipped","totalAmount":1200}}`,
	})
	ctx := context.Background()

	require.NoError(t, repo.Order.Cancel(ctx, "o-1"))
	assert.Equal(t, "PUT /api/admin/orders/o-1/cancel", api.last().Method+" "+api.last().Path)

	order, err := repo.Order.FindByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, order.Status)
	assert.Equal(t, "1200", order.TotalAmount.String())

	require.NoError(t, repo.Product.SetActive(ctx, "p-1", false))
	call := api.last()
	assert.Equal(t, "PUT /api/admin/product/p-1", call.Method+" "+call.Path)
	assert.Equal(t, map[string]any{"settings": map[string]any{"isActive": false}}, call.Body)

	require.NoError(t, repo.Product.AdminDelete(ctx, "p-1"))
	assert.Equal(t, "DELETE /api/products/admin/p-1", api.last().Method+" "+api.last().Path)

	require.NoError(t, repo.Product.Delete(ctx, "p-2"))
	assert.Equal(t, "DELETE /api/products/p-2", api.last().Method+" "+api.last().Path)
}

func TestAttributeEnvelope(t *testing.T) {
	repo, _ := newRepo(t, map[string]string{
		"GET /api/attribute": `{"data":[{"_id":"a1","name":"Tee","colors":["Red"],"sizes":["M","L"]}]}`,
	})
	attrs, err := repo.Attribute.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, []string{"M", "L"}, attrs[0].Sizes)
}

func TestLoginReturnsCookieHeader(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc"})
		w.Write([]byte(`{"user":{"_id":"u1","name":"Root","role":"admin"}}`))
	})
	srv := httptest.NewServer(api)
	defer srv.Close()

	client := backend.NewClient(utils.BackendConfig{URL: srv.URL}, nil, zap.NewNop())
	repo := NewSessionRepository(client, zap.NewNop())

	user, cookie, err := repo.Login(context.Background(), "root@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, "token=abc", cookie)
}

func TestShippingZoneDrafts(t *testing.T) {
	repo, api := newRepo(t, nil)
	ctx := context.Background()

	z, err := repo.ShippingZone.Save(ctx, "sid-1", entity.ShippingZone{ZoneName: "South", States: []string{"Kerala"}, ShippingType: entity.ShippingFree})
	require.NoError(t, err)
	require.NotEmpty(t, z.ID)

	z.ZoneName = "South India"
	_, err = repo.ShippingZone.Save(ctx, "sid-1", z)
	require.NoError(t, err)

	zones, err := repo.ShippingZone.FindAll(ctx, "sid-1")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "South India", zones[0].ZoneName)

	other, err := repo.ShippingZone.FindAll(ctx, "sid-2")
	require.NoError(t, err)
	assert.Empty(t, other, "drafts are per session")

	require.NoError(t, repo.ShippingZone.Delete(ctx, "sid-1", z.ID))
	zones, _ = repo.ShippingZone.FindAll(ctx, "sid-1")
	assert.Empty(t, zones)

	assert.Empty(t, api.calls, "zones never reach the marketplace API")
}
