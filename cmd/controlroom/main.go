package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kumbhsarthi/sarthi/internal/adapters/catalog"
	natsadapter "github.com/kumbhsarthi/sarthi/internal/adapters/nats"
	"github.com/kumbhsarthi/sarthi/internal/adapters/postgres"
	"github.com/kumbhsarthi/sarthi/internal/adapters/valkey"
	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/ports"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
	"github.com/kumbhsarthi/sarthi/internal/pkg/config"
	"github.com/kumbhsarthi/sarthi/internal/pkg/logging"
	"github.com/kumbhsarthi/sarthi/internal/pkg/metrics"
)

// The control room consumer mirrors relayed emergency events into its own
// store and archives every case durably in Postgres.
func main() {
	cfg, err := config.Load("sarthi-controlroom")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("sarthi-controlroom", cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable archive
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	archive := postgres.NewArchiveRepo(db)

	// Snapshot store for the mirrored ring
	var snapStore ports.SnapshotStore
	if cache, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, mirror starts empty on restart", "error", err)
	} else {
		snapStore = valkey.NewSnapshotStore(cache)
		defer cache.Close()
	}

	// Mirror store: no publisher, this side never echoes events back.
	store := usecases.NewEmergencyService(ctx, snapStore, nil,
		usecases.WithZoneAnchors(catalog.ZoneAnchors()))

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, cfg.NATS.Durable)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	handler := func(ctx context.Context, ev *ports.EmergencyEvent) error {
		if err := store.ApplyRemote(ctx, ev); err != nil {
			if errors.Is(err, domain.ErrStaleVersion) {
				// Redelivery of an old version, nothing to do
				slog.Debug("stale relay event ignored", "case", ev.Data.ID)
			} else {
				return err
			}
		}
		metrics.RemoteEventsApplied.WithLabelValues(string(ev.Type)).Inc()

		if err := archive.Upsert(ctx, &ev.Data); err != nil {
			return err
		}
		return nil
	}

	if err := sub.Subscribe(ctx, handler); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("control room consumer started", "durable", cfg.NATS.Durable)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("control room consumer stopping")
}
