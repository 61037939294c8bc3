// Package trips persists the bookings linking travellers to launches.
package trips

import (
	"context"

	"github.com/pkolesov/launchbook/internal/server/models"
)

type Repository interface {
	// Book books the given launches for the user in one transaction and
	// reports which launch IDs were actually booked. IDs that do not
	// exist in the catalogue, or that the user had already booked, are
	// absent from the result.
	Book(ctx context.Context, userID string, launchIDs []string) ([]string, error)
	Cancel(ctx context.Context, userID string, launchID string) error
	ListByUser(ctx context.Context, userID string) ([]models.Launch, error)
}
