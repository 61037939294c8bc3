package cli

import (
	"context"
	"errors"
	"log"

	"github.com/pkolesov/launchbook/internal/client/client"
	"github.com/pkolesov/launchbook/internal/common"
)

// Book attempts to book a seat on the given launch. When the gate
// refuses, the user is routed into the login flow and the booking is
// not retried automatically.
func (a *App) Book(ctx context.Context, launchID string) error {
	payload, err := a.booking.BookTrip(ctx, launchID)
	if err != nil {
		return a.reportBookingError(ctx, err)
	}
	if payload.Success {
		log.Printf("Trip booked: %s", payload.Message)
	} else {
		log.Printf("Booking refused: %s", payload.Message)
	}
	return nil
}

// Cancel cancels a booked trip, with the same gating as Book.
func (a *App) Cancel(ctx context.Context, launchID string) error {
	payload, err := a.booking.CancelTrip(ctx, launchID)
	if err != nil {
		return a.reportBookingError(ctx, err)
	}
	if payload.Success {
		log.Printf("Trip cancelled: %s", payload.Message)
	} else {
		log.Printf("Cancellation refused: %s", payload.Message)
	}
	return nil
}

// Launches lists upcoming launches; browsing needs no credential.
func (a *App) Launches(ctx context.Context) error {
	launches, err := a.booking.Launches(ctx)
	if err != nil {
		log.Printf("Cannot list launches: %s", err.Error())
		return nil
	}
	for _, l := range launches {
		log.Printf("%s  %-12s %-20s %s", l.ID, l.Rocket, l.Mission, l.Site)
	}
	return nil
}

// Trips lists the launches the current user has booked.
func (a *App) Trips(ctx context.Context) error {
	trips, err := a.booking.BookedTrips(ctx)
	if err != nil {
		return a.reportBookingError(ctx, err)
	}
	if len(trips) == 0 {
		log.Printf("No trips booked")
		return nil
	}
	for _, l := range trips {
		log.Printf("%s  %-12s %-20s %s", l.ID, l.Rocket, l.Mission, l.Site)
	}
	return nil
}

// Status reports the gate decision and server reachability.
func (a *App) Status(ctx context.Context) error {
	if a.isAuthenticated(ctx) {
		log.Printf("Logged in")
	} else {
		log.Printf("Logged out")
	}
	if err := a.api.Ping(ctx); err != nil {
		log.Printf("Server unreachable: %s", err.Error())
	} else {
		log.Printf("Server reachable")
	}
	return nil
}

func (a *App) reportBookingError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrLoginRequired):
		log.Printf("Login required")
		return a.Login(ctx)
	case errors.Is(err, client.ErrUnauthorized):
		log.Printf("Session rejected by the server; try logging in again")
		return nil
	case errors.Is(err, client.ErrUnavailable):
		log.Printf("Server unavailable; try again later")
		return nil
	default:
		return err
	}
}
