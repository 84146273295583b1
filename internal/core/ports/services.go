package ports

import (
	"context"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

// EmergencyEventType is the relay envelope discriminator.
type EmergencyEventType string

const (
	EventInsert EmergencyEventType = "INSERT"
	EventUpdate EmergencyEventType = "UPDATE"
)

// EmergencyEvent is the wire envelope relayed between process instances.
type EmergencyEvent struct {
	Type EmergencyEventType   `json:"type"`
	Data domain.EmergencyCase `json:"data"`
}

// EmergencyPublisher publishes case events to the relay.
// Delivery is best-effort: implementations may retry but must never block
// the caller on relay availability.
type EmergencyPublisher interface {
	PublishInsert(ctx context.Context, c *domain.EmergencyCase) error
	PublishUpdate(ctx context.Context, c *domain.EmergencyCase) error
}

// EmergencySubscriber delivers relayed case events from other instances.
type EmergencySubscriber interface {
	Subscribe(ctx context.Context, handler func(ctx context.Context, ev *EmergencyEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
