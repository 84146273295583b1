package http

import (
	"github.com/nats-io/nats.go"

	"github.com/kumbhsarthi/sarthi/internal/adapters/postgres"
	"github.com/kumbhsarthi/sarthi/internal/adapters/valkey"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Facilities  *usecases.FacilityService
	Emergencies *usecases.EmergencyService
	Archive     *postgres.ArchiveRepo
	NATS        *nats.Conn
	DB          *postgres.DB
	Cache       *valkey.Cache
}
