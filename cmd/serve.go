package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"komfovent_gateway/internal/config"
	"komfovent_gateway/internal/handlers"
	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/metrics"
	"komfovent_gateway/internal/repository"
	"komfovent_gateway/internal/repository/db"
	"komfovent_gateway/internal/server"
	"komfovent_gateway/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll the unit and serve the REST, WebSocket and metrics API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireServe(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(parent context.Context, cfg *config.Config) error {
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)

	database, err := openDB(parent, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return err
	}
	client := komfovent.NewClient(clientCfg)
	defer client.Close()

	discOpts := cfg.Discovery
	discOpts.Profile = client.Profile()
	m := metrics.New(client.Profile().ModeNames())

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(service.Deps{
		Repos:      repos,
		Device:     client,
		Discoverer: komfovent.NewDiscovery(discOpts),
		Metrics:    m,
		Auth:       cfg.Auth,
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log, m.Handler())

	// context for background goroutines
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	log.Infow("device_configured", "url", client.BaseURL(), "profile", client.Profile().Device,
		"poll_interval", service.ClampPollInterval(cfg.Device.PollInterval))
	go services.Poller.Run(ctx, cfg.Device.PollInterval)

	srv := server.New(cfg.HTTP.Options)
	runHTTPServer(srv, cfg.HTTP.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
	return nil
}

// openDB initializes the SQLite journal.
func openDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "komfovent.db")
		dbPath = "komfovent.db"
	}
	return db.InitDB(ctx, dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the poller; an in-flight panel request is cancelled with it
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
