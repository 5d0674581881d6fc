// Package server wires the catsocial server together: configuration, the
// PostgreSQL connection and migrations, object storage, services, the gRPC
// endpoint and the Prometheus scrape endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/logging"
	"github.com/dmitrijs2005/catsocial/internal/server/config"
	"github.com/dmitrijs2005/catsocial/internal/server/metrics"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catsocial/internal/server/services"
	"github.com/dmitrijs2005/catsocial/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/catsocial/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	metrics *metrics.Metrics
	grpc    *gs.GRPCServer
}

// NewApp connects to the database, applies migrations and builds every
// service. The caller must call Run, which closes the database on return.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	images, err := storage.NewS3Store(ctx, storage.Config{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		URLValidity:  c.ImageURLValidity,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	m := metrics.New()
	tx := dbx.NewTransactor(db, nil)
	paginator := pagination.NewPaginator(pagination.NewCodec([]byte(c.CursorSecret)), pagination.Limits{
		Default: c.DefaultPageSize,
		Max:     c.MaxPageSize,
	})

	sessions := services.NewSessionService(tx, rm)
	svc := gs.Services{
		Sessions:    sessions,
		Users:       services.NewUserService(tx, rm, sessions, images, logger),
		Graph:       services.NewGraphService(tx, rm, m),
		Cats:        services.NewCatService(tx, rm, images, m, logger),
		Collections: services.NewCollectionService(tx, rm, m),
		Comments:    services.NewCommentService(tx, rm),
		Feed:        services.NewFeedService(tx, rm, paginator, images),
	}

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		metrics: m,
		grpc:    gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, m),
	}, nil
}

// Run serves gRPC and metrics until ctx is cancelled, SIGINT or SIGTERM
// arrives, or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.grpc.Run(ctx)
	})

	if app.config.EndpointAddrMetrics != "" {
		g.Go(func() error {
			return serveHTTP(ctx, app.logger, &http.Server{
				Addr:              app.config.EndpointAddrMetrics,
				Handler:           app.metrics.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			})
		})
	}

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

// serveHTTP runs srv until ctx is done, then shuts it down gracefully.
func serveHTTP(ctx context.Context, l logging.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		l.Info(ctx, "Starting metrics server", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
