package services

import (
	"context"

	"github.com/pkolesov/launchbook/internal/client/client"
	"github.com/pkolesov/launchbook/internal/common"
)

// BookingService performs the protected booking operations. Every
// protected call consults the gate first and refuses with
// common.ErrLoginRequired when no credential is present, leaving the
// action unperformed; the caller then routes the user into the login
// flow and does not retry on their behalf.
type BookingService struct {
	client client.Client
	gate   *Gate
}

func NewBookingService(c client.Client, gate *Gate) *BookingService {
	return &BookingService{client: c, gate: gate}
}

// Launches lists upcoming launches. Browsing is not gated.
func (s *BookingService) Launches(ctx context.Context) ([]client.Launch, error) {
	return s.client.Launches(ctx)
}

func (s *BookingService) BookTrip(ctx context.Context, launchID string) (*client.BookingPayload, error) {
	if !s.gate.IsAuthenticated(ctx) {
		return nil, common.ErrLoginRequired
	}
	return s.client.BookTrips(ctx, []string{launchID})
}

func (s *BookingService) CancelTrip(ctx context.Context, launchID string) (*client.BookingPayload, error) {
	if !s.gate.IsAuthenticated(ctx) {
		return nil, common.ErrLoginRequired
	}
	return s.client.CancelTrip(ctx, launchID)
}

func (s *BookingService) BookedTrips(ctx context.Context) ([]client.Launch, error) {
	if !s.gate.IsAuthenticated(ctx) {
		return nil, common.ErrLoginRequired
	}
	return s.client.BookedTrips(ctx)
}
