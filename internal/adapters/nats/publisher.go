package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/ports"
)

// Subjects for the emergency relay topic.
const (
	SubjectInsertPrefix = "sarthi.emergency.insert."
	SubjectUpdatePrefix = "sarthi.emergency.update."
	SubjectWildcard     = "sarthi.emergency.>"
)

// Publisher implements ports.EmergencyPublisher over NATS.
// Publishes are fire-and-forget from the caller's perspective: they are
// handed to a bounded retry queue and the caller never waits on the relay.
type Publisher struct {
	conn  *nats.Conn
	js    nats.JetStreamContext
	queue *retryQueue
}

// NewPublisher connects to NATS, ensures the emergency stream exists, and
// starts the retry worker.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "EMERGENCY_EVENTS",
		Subjects:  []string{SubjectWildcard},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update.
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	p := &Publisher{conn: conn, js: js}
	p.queue = newRetryQueue(p.publishNow)
	p.queue.start()
	return p, nil
}

// publishNow performs a single synchronous publish attempt.
func (p *Publisher) publishNow(subject string, data []byte) error {
	_, err := p.js.Publish(subject, data)
	return err
}

func (p *Publisher) publish(subjectPrefix string, evType ports.EmergencyEventType, c *domain.EmergencyCase) error {
	data, err := json.Marshal(ports.EmergencyEvent{Type: evType, Data: *c})
	if err != nil {
		return err
	}
	p.queue.enqueue(subjectPrefix+c.ID, data)
	return nil
}

// PublishInsert relays a new case.
func (p *Publisher) PublishInsert(ctx context.Context, c *domain.EmergencyCase) error {
	return p.publish(SubjectInsertPrefix, ports.EventInsert, c)
}

// PublishUpdate relays a status change.
func (p *Publisher) PublishUpdate(ctx context.Context, c *domain.EmergencyCase) error {
	return p.publish(SubjectUpdatePrefix, ports.EventUpdate, c)
}

// Conn exposes the underlying connection for the WebSocket relay.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close stops the retry worker, drains, and closes the connection.
func (p *Publisher) Close() {
	p.queue.stop()
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
