package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// carry copies Set-Cookie of a response onto the next request, like a browser.
func carry(rec *httptest.ResponseRecorder, next *http.Request) *http.Request {
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestManagerStartLoadDestroy(t *testing.T) {
	m := NewManager(utils.SessionConfig{MaxAge: time.Hour}, zap.NewNop())

	rec := httptest.NewRecorder()
	st, err := m.Start(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil), "admin", "token=abc")
	require.NoError(t, err)
	require.NotEmpty(t, st.SessionID)

	req := carry(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	loaded := m.Load(req)
	assert.Equal(t, st, loaded)
	assert.True(t, loaded.Authenticated())

	rec = httptest.NewRecorder()
	require.NoError(t, m.Destroy(rec, req))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestManagerIgnoresForeignCookie(t *testing.T) {
	a := NewManager(utils.SessionConfig{}, zap.NewNop())
	b := NewManager(utils.SessionConfig{}, zap.NewNop())

	rec := httptest.NewRecorder()
	_, err := a.Start(rec, httptest.NewRequest(http.MethodPost, "/", nil), "seller", "token=x")
	require.NoError(t, err)

	st := b.Load(carry(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.False(t, st.Authenticated())
}

func TestFlashesArePoppedOnce(t *testing.T) {
	m := NewManager(utils.SessionConfig{}, zap.NewNop())

	rec := httptest.NewRecorder()
	m.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/", nil), "success", "Seller approved")

	req := carry(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	rec = httptest.NewRecorder()
	flashes := m.Flashes(rec, req)
	require.Len(t, flashes, 1)
	assert.Equal(t, FlashMessage{Type: "success", Message: "Seller approved"}, flashes[0])

	again := m.Flashes(httptest.NewRecorder(), carry(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, again)
}

type countingSessions struct {
	calls atomic.Int32
	user  *entity.User
	gate  chan struct{}
}

func (c *countingSessions) Login(context.Context, string, string) (*entity.User, string, error) {
	return nil, "", nil
}

func (c *countingSessions) Logout(context.Context) error { return nil }

func (c *countingSessions) WhoAmI(ctx context.Context) (*entity.User, error) {
	c.calls.Add(1)
	if c.gate != nil {
		<-c.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.user, nil
}

func TestRegistryResolvesOncePerSession(t *testing.T) {
	mem := cache.NewMemory(0)
	defer mem.Close()
	sessions := &countingSessions{
		user: &entity.User{Base: entity.Base{ID: "u1"}, Role: entity.RoleAdmin},
		gate: make(chan struct{}),
	}
	reg := NewRegistry(mem, sessions, time.Minute, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := reg.Resolve(context.Background(), "sid-1")
			assert.NoError(t, err)
			assert.Equal(t, "u1", u.ID)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(sessions.gate)
	wg.Wait()

	_, err := reg.Resolve(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, sessions.calls.Load())

	reg.Forget(context.Background(), "sid-1")
	sessions.gate = nil
	_, err = reg.Resolve(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, sessions.calls.Load())
}

func TestRegistrySurvivesCancelledLeader(t *testing.T) {
	mem := cache.NewMemory(0)
	defer mem.Close()
	sessions := &countingSessions{
		user: &entity.User{Base: entity.Base{ID: "u1"}, Role: entity.RoleSeller},
		gate: make(chan struct{}),
	}
	reg := NewRegistry(mem, sessions, time.Minute, zap.NewNop())

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := make(chan error, 1)
	go func() {
		_, err := reg.Resolve(leaderCtx, "sid-2")
		leader <- err
	}()
	time.Sleep(20 * time.Millisecond)

	follower := make(chan *entity.User, 1)
	go func() {
		u, err := reg.Resolve(context.Background(), "sid-2")
		assert.NoError(t, err)
		follower <- u
	}()
	time.Sleep(20 * time.Millisecond)

	// the first request goes away while the lookup is in flight
	cancel()
	close(sessions.gate)

	assert.NoError(t, <-leader)
	u := <-follower
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.EqualValues(t, 1, sessions.calls.Load())
}

func TestUserFromContext(t *testing.T) {
	_, ok := UserFrom(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), &entity.User{Name: "Root"})
	u, ok := UserFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "Root", u.Name)
}
