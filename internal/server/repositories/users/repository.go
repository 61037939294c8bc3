// Package users persists traveller accounts.
package users

import (
	"context"

	"github.com/pkolesov/launchbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
