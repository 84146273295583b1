package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kumbhsarthi/sarthi/internal/adapters/catalog"
	"github.com/kumbhsarthi/sarthi/internal/adapters/http"
	natsadapter "github.com/kumbhsarthi/sarthi/internal/adapters/nats"
	"github.com/kumbhsarthi/sarthi/internal/adapters/postgres"
	"github.com/kumbhsarthi/sarthi/internal/adapters/valkey"
	"github.com/kumbhsarthi/sarthi/internal/core/ports"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
	"github.com/kumbhsarthi/sarthi/internal/pkg/config"
	"github.com/kumbhsarthi/sarthi/internal/pkg/logging"
	"github.com/kumbhsarthi/sarthi/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("sarthi-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("sarthi-api", cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database (archive only, the API serves without it)
	var db *postgres.DB
	var archive *postgres.ArchiveRepo
	if d, err := postgres.New(ctx, cfg.Database.DSN()); err != nil {
		slog.Warn("database unavailable, archive endpoints disabled", "error", err)
	} else {
		db = d
		archive = postgres.NewArchiveRepo(db)
		defer db.Close()
	}

	// Cache + snapshot store
	var cache *valkey.Cache
	var snapshots *valkey.SnapshotStore
	if c, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, running without snapshot persistence", "error", err)
	} else {
		cache = c
		snapshots = valkey.NewSnapshotStore(c)
		defer cache.Close()
	}

	// NATS relay publisher
	var publisher *natsadapter.Publisher
	if p, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, events stay local", "error", err)
	} else {
		publisher = p
		defer publisher.Close()
	}

	// Raw NATS connection for the WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Typed nils must not leak into the interface fields
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	var snapStore ports.SnapshotStore
	if snapshots != nil {
		snapStore = snapshots
	}
	var relay ports.EmergencyPublisher
	if publisher != nil {
		relay = publisher
	}

	// Services
	cat := catalog.New()
	facilitySvc := usecases.NewFacilityService(cat, cacheSvc)
	emergencySvc := usecases.NewEmergencyService(ctx, snapStore, relay,
		usecases.WithZoneAnchors(catalog.ZoneAnchors()))

	deps := &http.Dependencies{
		Facilities:  facilitySvc,
		Emergencies: emergencySvc,
		Archive:     archive,
		NATS:        natsConn,
		DB:          db,
		Cache:       cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Kumbh Sarthi API",
	})
	app.Use(recover.New())

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
