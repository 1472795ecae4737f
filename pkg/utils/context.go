package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RoleKey      contextKey = "role"
	TokenKey     contextKey = "token"
	RequestIDKey contextKey = "request_id"
	SessionIDKey contextKey = "session_id"
)

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}

func SetUserContext(ctx context.Context, userID string, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetTokenFromContext returns the backend credential (Cookie header value)
// forwarded on every backend call made with this context.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetSessionIDFromContext returns the console session id. It is empty for
// anonymous requests.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionIDKey).(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}

func SetSessionIDContext(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sid)
}
