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

	"grain_dryer/internal/config"
	"grain_dryer/internal/handlers"
	"grain_dryer/internal/logger"
	"grain_dryer/internal/mqtt"
	"grain_dryer/internal/push"
	"grain_dryer/internal/repository"
	"grain_dryer/internal/server"
	"grain_dryer/internal/service"
	"grain_dryer/internal/stream"
)

func main() {
	// load config.yml + environment
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	// open DB
	db, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// wire dependencies
	repos := repository.NewRepository(db)
	hub := stream.NewHub(log)
	sender := newPushSender(ctx, cfg, log)
	services := service.NewService(repos, hub, sender, cfg.Thresholds, cfg.StableWindow(), log)
	hub.SetSnapshotSource(services.Broadcast)
	apiHandler := handlers.NewHandler(services, hub, log)

	// periodic latest-snapshot re-broadcast for polling clients
	go services.Broadcast.Run(ctx, cfg.PollInterval())

	// optional MQTT ingestion path for devices that publish instead of POSTing
	ingestor := startMQTT(ctx, cfg, services, log)
	if ingestor != nil {
		defer ingestor.Close()
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "dryer.db")
		dbPath = "dryer.db"
	}
	return repository.InitDB(dbPath)
}

// newPushSender picks the SNS sender when configured, a no-op otherwise.
func newPushSender(ctx context.Context, cfg *config.Config, log *logger.Logger) service.PushSender {
	if !cfg.Push.Enabled || cfg.Push.TopicArn == "" {
		log.Infow("push delivery disabled")
		return push.NewNoopSender()
	}
	sender, err := push.NewSNSSender(ctx, cfg.Push.Region, cfg.Push.TopicArn)
	if err != nil {
		log.Errorw("push sender init failed; continuing without push", "err", err)
		return push.NewNoopSender()
	}
	return sender
}

// startMQTT starts the broker subscription when enabled. A broken
// broker connection is not fatal: HTTP ingestion still works.
func startMQTT(ctx context.Context, cfg *config.Config, services *service.Service, log *logger.Logger) *mqtt.Ingestor {
	if !cfg.MQTT.Enabled {
		return nil
	}
	ingestor := mqtt.NewIngestor(mqtt.Options{
		Broker:   cfg.MQTT.Broker,
		Topic:    cfg.MQTT.Topic,
		ClientID: cfg.MQTT.ClientID,
	}, services.Broadcast, log)
	if err := ingestor.Start(ctx); err != nil {
		log.Errorw("mqtt ingestor failed to start; continuing with HTTP ingestion only", "err", err)
		return nil
	}
	return ingestor
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
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

	// stop background goroutines (timer loop, MQTT handler context)
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
