// Package server assembles the workout tracker: storage, catalog cache,
// services and the HTTP and gRPC listeners, and runs them until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Sonchiik/Workout-Traker/internal/logging"
	"github.com/Sonchiik/Workout-Traker/internal/observability"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/cache"
	"github.com/Sonchiik/Workout-Traker/internal/server/config"
	gs "github.com/Sonchiik/Workout-Traker/internal/server/grpc"
	"github.com/Sonchiik/Workout-Traker/internal/server/httpapi"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
	"github.com/Sonchiik/Workout-Traker/internal/server/services"
)

const (
	requestTimeout    = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	redis      *redis.Client
	httpServer *http.Server
	grpcServer *gs.GRPCServer
}

// NewApp connects to PostgreSQL (applying migrations) and, when configured,
// Redis, then wires every service behind the HTTP and gRPC servers.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg, os.Stdout)

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb := NewRedisClient(ctx, cfg, logger)

	return assemble(cfg, logger, db, repomanager.NewPostgresRepositoryManager(), rdb), nil
}

func assemble(cfg *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, rdb *redis.Client) *App {
	tokens := auth.NewTokenManager([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)

	var catalog *cache.Cache
	if rdb != nil {
		catalog = cache.New(rdb, cfg.CatalogCacheTTL, logger)
	}

	metrics := observability.NewMetrics()

	h := httpapi.NewHandler(httpapi.Deps{
		Users:         services.NewUserService(db, rm, tokens, cfg),
		Exercises:     services.NewExerciseService(db, rm, catalog, logger),
		Plans:         services.NewPlanService(db, rm),
		PlanExercises: services.NewPlanExerciseService(db, rm),
		Tokens:        tokens,
		Metrics:       metrics,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr: cfg.EndpointAddrHTTP,
		Handler: h.Routes(httpapi.MiddlewareConfig{
			Production:     cfg.IsProduction(),
			RequestTimeout: requestTimeout,
		}),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		redis:      rdb,
		httpServer: srv,
		grpcServer: gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, tokens),
	}
}

// NewLogger builds the process logger: debug level outside production.
func NewLogger(cfg *config.Config, w io.Writer) logging.Logger {
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	return logging.New(w, cfg.LogFormat, level)
}

// OpenDatabase opens the pgx pool behind database/sql, checks it answers and
// brings the schema up to date.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewRedisClient returns nil when no Redis address is configured. An
// unreachable Redis is logged and kept: the catalog cache falls back to the
// database on every error.
func NewRedisClient(ctx context.Context, cfg *config.Config, logger logging.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "redis ping", "error", err)
	}
	return rdb
}

// Run serves HTTP and gRPC until ctx is cancelled or SIGINT, SIGTERM or
// SIGQUIT arrives. A failing listener stops the other one.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "config", app.config.String())

	lis, err := net.Listen("tcp", app.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpcServer.Run(gctx) })
	g.Go(func() error { return app.serveHTTP(gctx, lis) })

	err = g.Wait()
	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) serveHTTP(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
		errCh <- app.httpServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the database pool and the Redis client.
func (app *App) Close() error {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}
