package adaptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/layout"
	"marketplace-console/internal/session"
	"marketplace-console/web"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFlasher struct {
	pending []session.FlashMessage
}

func (s *stubFlasher) AddFlash(_ http.ResponseWriter, _ *http.Request, kind, msg string) {
	s.pending = append(s.pending, session.FlashMessage{Type: kind, Message: msg})
}

func (s *stubFlasher) Flashes(http.ResponseWriter, *http.Request) []session.FlashMessage {
	out := s.pending
	s.pending = nil
	return out
}

func newTestRenderer(t *testing.T) (*Renderer, *stubFlasher) {
	t.Helper()
	templates, err := LoadTemplates(web.FS)
	require.NoError(t, err)
	flashes := &stubFlasher{}
	return NewRenderer(templates, flashes, zap.NewNop()), flashes
}

func TestLoadTemplatesCoversEveryPage(t *testing.T) {
	templates, err := LoadTemplates(web.FS)
	require.NoError(t, err)

	for _, page := range []string{
		"login", "confirm", "message",
		"admin_dashboard", "sellers", "stores", "store_detail", "admin_orders", "admin_products", "categories",
		"vendor_dashboard", "vendor_products", "product_form", "store_info", "vendor_orders", "order_detail",
		"shipping", "attributes",
	} {
		assert.NotNil(t, templates.Get(page), page)
	}
	assert.Nil(t, templates.Get("missing"))
}

func TestRenderOrdersPage(t *testing.T) {
	rd, flashes := newTestRenderer(t)
	flashes.AddFlash(nil, nil, "success", "Order cancelled successfully.")

	page := &response.ListPage[response.OrderRow]{
		Query:      request.ListQuery{Page: 1, Status: "pending"},
		Page:       1,
		TotalPages: 3,
		Rows: []response.OrderRow{
			{
				Order:     entity.Order{Base: entity.Base{ID: "o1"}, OrderID: "ORD-1", Status: entity.OrderPending, TotalAmount: decimal.NewFromInt(1500)},
				CanCancel: true,
				Actions:   []response.Action{{Label: "Cancel", Path: "/admin/orders/o1/cancel", Confirm: true, Style: "danger"}},
			},
			{
				Order: entity.Order{Base: entity.Base{ID: "o2"}, OrderID: "ORD-2", Status: entity.OrderDelivered, TotalAmount: decimal.NewFromInt(99)},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil)
	rec := httptest.NewRecorder()
	rd.Render(rec, req, http.StatusOK, "admin_orders", View{
		Title: "Orders",
		Panel: layout.PanelAdmin,
		Data: adminOrdersPage{
			List:     page,
			Statuses: entity.OrderStatuses,
			Status:   "pending",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ORD-1")
	assert.Contains(t, body, "₹1500.00")
	assert.Contains(t, body, `action="/admin/orders/o1/cancel"`)
	assert.NotContains(t, body, `action="/admin/orders/o2/cancel"`)
	assert.Contains(t, body, `value="/admin/orders?status=pending"`, "row actions return to the filtered list")
	assert.Contains(t, body, `href="?page=2`, "pager keeps the query readable")
	assert.Contains(t, body, "Order cancelled successfully.")
	assert.Contains(t, body, "Page 1 of 3")
}

func TestRenderUnknownPageFails(t *testing.T) {
	rd, _ := newTestRenderer(t)
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", View{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderLoginShowsFieldErrors(t *testing.T) {
	rd, _ := newTestRenderer(t)
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodPost, "/vendor/login", nil), http.StatusOK, "login", View{
		Title:  "Seller Login",
		Panel:  layout.PanelVendor,
		Error:  "Please enter your email and password.",
		Errors: map[string]string{"email": "Invalid email format"},
		Data:   loginPage{Email: "not-an-email", Heading: "Seller Login"},
	})

	body := rec.Body.String()
	assert.Contains(t, body, "Seller Login")
	assert.Contains(t, body, "Invalid email format")
	assert.Contains(t, body, `value="not-an-email"`)
}

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs()

	money := funcs["money"].(func(decimal.Decimal) string)
	assert.Equal(t, "₹12.50", money(decimal.RequireFromString("12.5")))

	has := funcs["has"].(func([]string, string) bool)
	assert.True(t, has([]string{"Red", "Blue"}, "Blue"))
	assert.False(t, has(nil, "Blue"))
}
