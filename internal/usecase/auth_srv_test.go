package usecase

import (
	"context"
	"testing"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginRefusesOtherRole(t *testing.T) {
	tests := []struct {
		panel entity.UserRole
		user  entity.UserRole
		msg   string
	}{
		{entity.RoleAdmin, entity.RoleSeller, "Access denied. Not an admin."},
		{entity.RoleSeller, entity.RoleAdmin, "Unauthorized access."},
	}
	for _, tt := range tests {
		t.Run(string(tt.panel), func(t *testing.T) {
			sessions := &MockSessionRepository{}
			sessions.On("Login", mock.Anything, "a@b.co", "pw").Return(&entity.User{Role: tt.user}, "token=x", nil)
			sessions.On("Logout", mock.MatchedBy(func(ctx context.Context) bool {
				token, _ := utils.GetTokenFromContext(ctx)
				return token == "token=x"
			})).Return(nil)

			svc := NewAuthService(&repository.Repository{Session: sessions}, zap.NewNop())
			_, _, err := svc.Login(context.Background(), tt.panel, &request.LoginRequest{Email: "a@b.co", Password: "pw"})

			require.Error(t, err)
			assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
			assert.Equal(t, tt.msg, apperr.PublicMessage(err, ""))
			sessions.AssertExpectations(t)
		})
	}
}

func TestLoginValidatesBeforeCallingBackend(t *testing.T) {
	sessions := &MockSessionRepository{}
	svc := NewAuthService(&repository.Repository{Session: sessions}, zap.NewNop())

	_, _, err := svc.Login(context.Background(), entity.RoleAdmin, &request.LoginRequest{Email: "a@b.co"})
	require.Error(t, err)
	ae, _ := apperr.As(err)
	require.NotNil(t, ae)
	assert.Contains(t, ae.Fields, "password")
	sessions.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginReturnsCredential(t *testing.T) {
	sessions := &MockSessionRepository{}
	sessions.On("Login", mock.Anything, "a@b.co", "pw").Return(&entity.User{Base: entity.Base{ID: "u1"}, Role: entity.RoleAdmin}, "token=x", nil)

	svc := NewAuthService(&repository.Repository{Session: sessions}, zap.NewNop())
	user, cred, err := svc.Login(context.Background(), entity.RoleAdmin, &request.LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "token=x", cred)
}
