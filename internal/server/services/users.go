// Package services implements the server-side use cases on top of the
// repositories.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/server/auth"
	"github.com/pkolesov/launchbook/internal/server/config"
	"github.com/pkolesov/launchbook/internal/server/models"
	"github.com/pkolesov/launchbook/internal/server/repositories/users"
)

// Limiter throttles login attempts per identifier.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

type UserService struct {
	repo          users.Repository
	limiter       Limiter
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(repo users.Repository, limiter Limiter, cfg *config.Config) *UserService {
	return &UserService{
		repo:          repo,
		limiter:       limiter,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Login exchanges an email for a session token. An empty or malformed
// email yields no token and no error; the caller stays logged out. A
// first-time email creates the account.
func (s *UserService) Login(ctx context.Context, email string) (string, error) {

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", nil
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email); err != nil {
			if errors.Is(err, common.ErrTooManyAttempts) {
				return "", err
			}
			return "", common.ErrInternal
		}
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInternal
		}
		user, err = s.repo.Create(ctx, &models.User{ID: uuid.NewString(), Email: email})
		if err != nil {
			return "", common.ErrInternal
		}
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// UserIDFromToken verifies a session token presented on a protected
// operation.
func (s *UserService) UserIDFromToken(tokenString string) (string, error) {
	return auth.UserIDFromToken(tokenString, s.jwtSecret)
}
