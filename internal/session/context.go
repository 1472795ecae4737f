package session

import (
	"context"

	"marketplace-console/internal/data/entity"
)

type userCtxKey struct{}

func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFrom returns the principal resolved for this request, if any.
func UserFrom(ctx context.Context) (*entity.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*entity.User)
	return u, ok && u != nil
}
