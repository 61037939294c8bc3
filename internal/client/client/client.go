// Package client defines the remote API surface the CLI talks to and its
// GraphQL-over-HTTP implementation.
package client

import "context"

// Launch is one bookable rocket launch.
type Launch struct {
	ID      string
	Site    string
	Mission string
	Rocket  string
}

// LoginPayload is the outcome of a login request that completed at the
// transport level. Token may be empty even on a successful response;
// Messages carries any structured errors returned alongside it.
type LoginPayload struct {
	Token    string
	Messages []string
}

// BookingPayload reports the result of a booking mutation.
type BookingPayload struct {
	Success bool
	Message string
}

type Client interface {
	Close() error
	Login(ctx context.Context, email string) (*LoginPayload, error)
	Launches(ctx context.Context) ([]Launch, error)
	BookTrips(ctx context.Context, launchIDs []string) (*BookingPayload, error)
	CancelTrip(ctx context.Context, launchID string) (*BookingPayload, error)
	BookedTrips(ctx context.Context) ([]Launch, error)
	Ping(ctx context.Context) error
}
