package repository

import (
	"context"
	"fmt"
	"net/http"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type SessionRepository interface {
	// Login returns the user and the backend session cookie header.
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Logout(ctx context.Context) error
	// WhoAmI resolves the user behind the credential in ctx.
	WhoAmI(ctx context.Context) (*entity.User, error)
}

type sessionRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewSessionRepository(api backend.Client, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		api: api,
		log: log.With(zap.String("repository", "session")),
	}
}

type userEnvelope struct {
	User *entity.User `json:"user"`
}

func (r *sessionRepository) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	var out userEnvelope
	resp, err := r.api.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   "/api/users/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if out.User == nil {
		return nil, "", fmt.Errorf("login: response has no user")
	}
	return out.User, backend.CookieHeader(resp.Cookies), nil
}

func (r *sessionRepository) Logout(ctx context.Context) error {
	if err := r.api.Post(ctx, "/api/users/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (r *sessionRepository) WhoAmI(ctx context.Context) (*entity.User, error) {
	var out userEnvelope
	if err := r.api.Get(ctx, "/api/users/dashboard", nil, &out); err != nil {
		return nil, fmt.Errorf("whoami: %w", err)
	}
	if out.User == nil {
		return nil, fmt.Errorf("whoami: response has no user")
	}
	return out.User, nil
}
