// Package server initializes and runs the Launchbook backend: it opens
// the database, applies migrations, wires the services and serves the
// HTTP endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkolesov/launchbook/internal/logging"
	"github.com/pkolesov/launchbook/internal/server/config"
	"github.com/pkolesov/launchbook/internal/server/httpapi"
	"github.com/pkolesov/launchbook/internal/server/migrations"
	"github.com/pkolesov/launchbook/internal/server/ratelimit"
	"github.com/pkolesov/launchbook/internal/server/repositories/launches"
	"github.com/pkolesov/launchbook/internal/server/repositories/trips"
	"github.com/pkolesov/launchbook/internal/server/repositories/users"
	"github.com/pkolesov/launchbook/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rdb    *redis.Client
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	limiter := ratelimit.NewRedisLimiter(rdb, c.LoginMaxAttempts, c.LoginAttemptWindow)

	userService := services.NewUserService(users.NewPostgresRepository(db), limiter, c)
	bookingService := services.NewBookingService(launches.NewPostgresRepository(db), trips.NewPostgresRepository(db))

	handler := httpapi.NewHandler(userService, bookingService, logger)
	server := httpapi.NewServer(c.EndpointAddr, handler, logger)

	return &App{config: c, logger: logger, db: db, rdb: rdb, server: server}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "error", err.Error())
	}

	if err := app.rdb.Close(); err != nil {
		app.logger.Error(ctx, "redis close error", "error", err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
