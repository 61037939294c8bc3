// Package cli implements the interactive Launchbook client: a small REPL
// over the booking service, with the login flow reachable both directly
// and through the credential gate.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/pkolesov/launchbook/internal/client/client"
	"github.com/pkolesov/launchbook/internal/client/config"
	"github.com/pkolesov/launchbook/internal/client/credstore"
	"github.com/pkolesov/launchbook/internal/client/services"
	"github.com/pkolesov/launchbook/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *credstore.SQLiteStore
	gate    *services.Gate
	booking *services.BookingService
	api     client.Client
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	store, err := credstore.Open(ctx, c.DataDir)
	if err != nil {
		return nil, err
	}

	gate := services.NewGate(store)
	api := client.NewGraphQLClient(c.ServerEndpointURL, gate, c.RequestTimeout)
	booking := services.NewBookingService(api, gate)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	return &App{
		config:  c,
		logger:  logger,
		store:   store,
		gate:    gate,
		booking: booking,
		api:     api,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() {
	_ = a.api.Close()
	_ = a.store.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}

func (a *App) isAuthenticated(ctx context.Context) bool {
	return a.gate.IsAuthenticated(ctx)
}
