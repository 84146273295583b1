package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/kumbhsarthi/sarthi/internal/adapters/catalog"
	natsadapter "github.com/kumbhsarthi/sarthi/internal/adapters/nats"
	"github.com/kumbhsarthi/sarthi/internal/adapters/valkey"
	"github.com/kumbhsarthi/sarthi/internal/core/ports"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
	"github.com/kumbhsarthi/sarthi/internal/pkg/config"
	"github.com/kumbhsarthi/sarthi/internal/pkg/logging"
	"github.com/kumbhsarthi/sarthi/internal/workflows"
)

// The dispatcher worker runs dispatch workflows: locating responders and
// pushing cases through the dispatch stage.
func main() {
	cfg, err := config.Load("sarthi-dispatcher")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup("sarthi-dispatcher", cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	// Shared emergency store: snapshots + relay, same as the API
	var snapStore ports.SnapshotStore
	if cache, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		snapStore = valkey.NewSnapshotStore(cache)
		defer cache.Close()
	}

	var relay ports.EmergencyPublisher
	var publisher *natsadapter.Publisher
	if p, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, status updates stay local", "error", err)
	} else {
		publisher = p
		relay = p
		defer p.Close()
	}

	cat := catalog.New()
	emergencySvc := usecases.NewEmergencyService(ctx, snapStore, relay,
		usecases.WithZoneAnchors(catalog.ZoneAnchors()))
	facilitySvc := usecases.NewFacilityService(cat, nil)

	activities := &workflows.DispatchActivities{
		Emergencies: emergencySvc,
		Facilities:  facilitySvc,
	}
	if publisher != nil {
		activities.NATS = publisher.Conn()
	}

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.DispatchWorkflow)
	w.RegisterActivity(activities)

	// Relayed events keep the local mirror current; every fresh insert
	// kicks off a dispatch workflow. The workflow ID is derived from the
	// case ID, so redelivered inserts cannot start a second run.
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, "dispatcher")
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	handler := func(ctx context.Context, ev *ports.EmergencyEvent) error {
		if err := emergencySvc.ApplyRemote(ctx, ev); err != nil {
			slog.Debug("relay event not applied", "case", ev.Data.ID, "error", err)
		}
		if ev.Type != ports.EventInsert {
			return nil
		}

		opts := client.StartWorkflowOptions{
			ID:        "dispatch-" + ev.Data.ID,
			TaskQueue: cfg.Temporal.TaskQueue,
		}
		input := workflows.DispatchInput{
			CaseID: ev.Data.ID,
			Type:   string(ev.Data.Type),
			Zone:   ev.Data.Zone,
			Lat:    ev.Data.Location.Lat,
			Lng:    ev.Data.Location.Lng,
		}
		if _, err := c.ExecuteWorkflow(ctx, opts, workflows.DispatchWorkflow, input); err != nil {
			var already *serviceerror.WorkflowExecutionAlreadyStarted
			if errors.As(err, &already) {
				return nil
			}
			return err
		}
		slog.Info("dispatch workflow started", "case", ev.Data.ID)
		return nil
	}

	if err := sub.Subscribe(ctx, handler); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("dispatcher worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
