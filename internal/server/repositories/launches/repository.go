// Package launches persists the launch catalogue.
package launches

import (
	"context"

	"github.com/pkolesov/launchbook/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Launch, error)
	GetByID(ctx context.Context, id string) (*models.Launch, error)
}
