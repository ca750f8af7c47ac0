// Package server initializes and runs the Rosebud API server. It opens the
// database, runs schema migrations, wires the service and HTTP layers, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rosebudapp/rosebud/internal/logging"
	"github.com/rosebudapp/rosebud/internal/server/config"
	"github.com/rosebudapp/rosebud/internal/server/handler"
	"github.com/rosebudapp/rosebud/internal/server/metrics"
	"github.com/rosebudapp/rosebud/internal/server/repositories/repomanager"
	"github.com/rosebudapp/rosebud/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	router := handler.NewRouter(
		handler.RouterConfig{
			SecretKey: c.SecretKey,
			AuthRPS:   c.AuthRPS,
			AuthBurst: c.AuthBurst,
		},
		handler.Deps{
			Users:       services.NewUserService(db, rm, c),
			Entries:     services.NewEntryService(db, rm),
			Groups:      services.NewGroupService(db, rm),
			Tags:        services.NewTagService(db, rm),
			Attachments: services.NewAttachmentService(c),
			Metrics:     collector,
			Gatherer:    registry,
			Logger:      logger,
		},
	)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: &http.Server{Addr: c.EndpointAddr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives, then
// shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting server...", "addr", app.config.EndpointAddr)
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.db.Close()
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := app.server.Shutdown(shutdownCtx)
	if closeErr := app.db.Close(); err == nil {
		err = closeErr
	}
	return err
}
