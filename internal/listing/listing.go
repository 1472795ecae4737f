// Package listing keeps the state of list pages: the last good snapshot of
// every (console session, view) pair and the in-flight fetch generation.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/metrics"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FetchFunc queries one page of the collection behind a view.
type FetchFunc[T any] func(ctx context.Context, q request.ListQuery) (*repository.ListResult[T], error)

type Snapshot[T any] struct {
	Items      []T               `json:"items"`
	TotalPages int               `json:"totalPages"`
	Total      int64             `json:"total"`
	Query      request.ListQuery `json:"query"`
	Generation uint64            `json:"generation"`
	FetchedAt  time.Time         `json:"fetchedAt"`

	// set on the returned copy only, never stored
	Stale      bool   `json:"-"`
	Superseded bool   `json:"-"`
	Notice     string `json:"-"`
}

// Page clamps the snapshot's page into [1, TotalPages].
func (s *Snapshot[T]) Page() int {
	if s.TotalPages < 1 {
		return 1
	}
	if s.Query.Page < 1 {
		return 1
	}
	if s.Query.Page > s.TotalPages {
		return s.TotalPages
	}
	return s.Query.Page
}

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

type Controller[T any] struct {
	view    string
	fetch   FetchFunc[T]
	store   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *zap.Logger

	mu      sync.Mutex
	seq     map[string]uint64
	running map[string]inflight
	group   singleflight.Group
}

func NewController[T any](view string, fetch FetchFunc[T], store cache.Cache, ttl time.Duration, m *metrics.Metrics, log *zap.Logger) *Controller[T] {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Controller[T]{
		view:    view,
		fetch:   fetch,
		store:   store,
		ttl:     ttl,
		metrics: m,
		log:     log.With(zap.String("view", view)),
		seq:     make(map[string]uint64),
		running: make(map[string]inflight),
	}
}

func (c *Controller[T]) key(sid string) string {
	return "list:" + c.view + ":" + sid
}

// begin starts a new generation for key and cancels the one in flight.
func (c *Controller[T]) begin(ctx context.Context, key string) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.running[key]; ok {
		prev.cancel()
	}
	gen := c.seq[key] + 1
	c.seq[key] = gen

	fctx, cancel := context.WithCancel(ctx)
	c.running[key] = inflight{gen: gen, cancel: cancel}
	return fctx, gen
}

// finish reports whether gen is still the latest generation of key.
func (c *Controller[T]) finish(key string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	run, ok := c.running[key]
	if ok && run.gen == gen {
		run.cancel()
		delete(c.running, key)
	}
	return c.seq[key] == gen
}

// Loading reports whether a fetch is in flight for the session's view.
func (c *Controller[T]) Loading(sid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.running[c.key(sid)]
	return ok
}

// Load fetches q for the session and replaces the stored snapshot on
// success. On failure the last good snapshot comes back marked Stale
// together with the error. A load overtaken by a newer one for the same key
// returns Superseded and stores nothing.
func (c *Controller[T]) Load(ctx context.Context, sid string, q request.ListQuery) (*Snapshot[T], error) {
	key := c.key(sid)
	fctx, gen := c.begin(ctx, key)

	res, err := c.fetch(fctx, q)
	latest := c.finish(key, gen)

	if !latest {
		c.log.Debug("Discarding superseded list response", zap.Uint64("generation", gen))
		if err == nil {
			return c.fresh(res, q, gen, true), nil
		}
		snap := c.last(ctx, key, q)
		snap.Superseded = true
		return snap, nil
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return c.last(ctx, key, q), err
		}
		c.log.Error("List fetch failed",
			zap.String("session", sid),
			zap.Int("page", q.Page),
			zap.Error(err),
		)
		snap := c.last(ctx, key, q)
		snap.Stale = true
		snap.Notice = "Could not refresh. Showing cached data."
		if len(snap.Items) == 0 {
			snap.Notice = apperr.PublicMessage(err, "Could not load data, please try again.")
		}
		c.metrics.StaleRender(c.view)
		return snap, err
	}

	snap := c.fresh(res, q, gen, false)
	if err := cache.SetJSON(ctx, c.store, key, snap, c.ttl); err != nil {
		c.log.Warn("Failed to store list snapshot", zap.Error(err))
	}
	return snap, nil
}

func (c *Controller[T]) fresh(res *repository.ListResult[T], q request.ListQuery, gen uint64, superseded bool) *Snapshot[T] {
	snap := &Snapshot[T]{
		Query:      q,
		Generation: gen,
		FetchedAt:  time.Now(),
		Superseded: superseded,
		TotalPages: 1,
	}
	if res != nil {
		snap.Items = res.Items
		snap.Total = res.Total
		switch {
		case res.Pages > 0:
			snap.TotalPages = res.Pages
		case q.PerPage > 0 && res.Total > 0:
			snap.TotalPages = utils.CalculateTotalPages(res.Total, q.PerPage)
		}
	}
	if snap.Total == 0 {
		snap.Total = int64(len(snap.Items))
	}
	return snap
}

// last returns the stored snapshot or an empty one for q.
func (c *Controller[T]) last(ctx context.Context, key string, q request.ListQuery) *Snapshot[T] {
	var snap Snapshot[T]
	ok, err := cache.GetJSON(ctx, c.store, key, &snap)
	if err != nil {
		c.log.Warn("Failed to read list snapshot", zap.Error(err))
	}
	if !ok {
		return &Snapshot[T]{Query: q, TotalPages: 1}
	}
	return &snap
}

// Snapshot returns the stored snapshot of the session's view, if any.
func (c *Controller[T]) Snapshot(ctx context.Context, sid string) (*Snapshot[T], bool) {
	var snap Snapshot[T]
	ok, err := cache.GetJSON(ctx, c.store, c.key(sid), &snap)
	if err != nil || !ok {
		return nil, false
	}
	return &snap, true
}

// Mutate runs fn once for identical in-flight actions of a session, so a
// double submit issues one backend call. State is left alone; the caller
// redirects to the list and the next Load re-fetches.
func (c *Controller[T]) Mutate(ctx context.Context, sid, action string, fn func(context.Context) error) error {
	_, err, shared := c.group.Do(c.key(sid)+":"+action, func() (any, error) {
		return nil, fn(ctx)
	})
	if shared {
		c.log.Debug("Joined in-flight action", zap.String("action", action))
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.view, action, err)
	}
	return nil
}

// Patch applies fn to every stored item matched by match. It reports whether
// anything changed.
func (c *Controller[T]) Patch(ctx context.Context, sid string, match func(T) bool, fn func(*T)) (bool, error) {
	key := c.key(sid)

	c.mu.Lock()
	defer c.mu.Unlock()

	var snap Snapshot[T]
	ok, err := cache.GetJSON(ctx, c.store, key, &snap)
	if err != nil || !ok {
		return false, err
	}
	changed := false
	for i := range snap.Items {
		if match(snap.Items[i]) {
			fn(&snap.Items[i])
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	return true, cache.SetJSON(ctx, c.store, key, &snap, c.ttl)
}
