package usecase

import (
	"context"
	"fmt"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	// Login signs in against the marketplace API and returns the user and the
	// backend credential. A user of another role is refused.
	Login(ctx context.Context, role entity.UserRole, req *request.LoginRequest) (*entity.User, string, error)
	Logout(ctx context.Context) error
}

type authService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		log:  log.With(zap.String("service", "auth")),
	}
}

// RoleDeniedMessage is shown when a valid user signs in to the wrong panel.
func RoleDeniedMessage(role entity.UserRole) string {
	if role == entity.RoleAdmin {
		return "Access denied. Not an admin."
	}
	return "Unauthorized access."
}

func (s *authService) Login(ctx context.Context, role entity.UserRole, req *request.LoginRequest) (*entity.User, string, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, "", invalid("Please enter your email and password.", errs)
	}

	// 2. Login ke backend
	user, credential, err := s.repo.Session.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Info("Login rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, "", withFallback(err, "Login failed")
	}
	if credential == "" {
		s.log.Error("Login succeeded without a session cookie", zap.String("email", req.Email))
		return nil, "", &apperr.AppError{Kind: apperr.Unavailable, PublicMsg: "Login failed", Err: fmt.Errorf("no session cookie")}
	}

	// 3. Cek role
	if user.Role != role {
		s.log.Warn("Login with wrong role",
			zap.String("email", req.Email),
			zap.String("role", string(user.Role)),
			zap.String("want", string(role)),
		)
		// do not leave a live backend session behind
		if err := s.repo.Session.Logout(utils.SetTokenContext(ctx, credential)); err != nil {
			s.log.Warn("Failed to close refused session", zap.Error(err))
		}
		return nil, "", apperr.ForbiddenErr(RoleDeniedMessage(role))
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, credential, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.repo.Session.Logout(ctx); err != nil {
		s.log.Error("Logout failed", zap.Error(err))
		return withFallback(err, "An error occurred, please try again.")
	}
	return nil
}
