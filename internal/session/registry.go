package session

import (
	"context"
	"fmt"
	"time"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/pkg/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Registry is the process-wide principal cache. A principal is resolved once
// per console session and TTL; guards read it from the request context.
type Registry struct {
	store    cache.Cache
	sessions repository.SessionRepository
	ttl      time.Duration
	group    singleflight.Group
	log      *zap.Logger
}

func NewRegistry(store cache.Cache, sessions repository.SessionRepository, ttl time.Duration, log *zap.Logger) *Registry {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Registry{
		store:    store,
		sessions: sessions,
		ttl:      ttl,
		log:      log.With(zap.String("component", "registry")),
	}
}

func principalKey(sid string) string { return "principal:" + sid }

// Resolve returns the cached principal of sid or asks the backend once.
// ctx must carry the backend credential.
func (r *Registry) Resolve(ctx context.Context, sid string) (*entity.User, error) {
	var user entity.User
	ok, err := cache.GetJSON(ctx, r.store, principalKey(sid), &user)
	if err != nil {
		r.log.Warn("Principal cache read failed", zap.String("sid", sid), zap.Error(err))
	}
	if ok {
		return &user, nil
	}

	// joined callers share the lookup, so it outlives any one of them
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(sid, func() (any, error) {
		u, err := r.sessions.WhoAmI(shared)
		if err != nil {
			return nil, err
		}
		r.Remember(shared, sid, u)
		return u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	return v.(*entity.User), nil
}

func (r *Registry) Remember(ctx context.Context, sid string, user *entity.User) {
	if err := cache.SetJSON(ctx, r.store, principalKey(sid), user, r.ttl); err != nil {
		r.log.Warn("Principal cache write failed", zap.String("sid", sid), zap.Error(err))
	}
}

func (r *Registry) Forget(ctx context.Context, sid string) {
	if err := r.store.Delete(ctx, principalKey(sid)); err != nil {
		r.log.Warn("Principal cache delete failed", zap.String("sid", sid), zap.Error(err))
	}
}
