package ports

import (
	"context"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

// FacilityCatalog answers read-only queries over the fixed facility set.
type FacilityCatalog interface {
	All() []domain.Facility
	ByCategory(category domain.FacilityCategory) []domain.Facility
	GetByID(id string) (*domain.Facility, bool)
}

// SnapshotStore persists the emergency ring as a single opaque blob,
// overwritten wholesale on every mutation.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// ArchiveRepository persists emergency cases durably for the control room,
// beyond the bounded in-memory ring.
type ArchiveRepository interface {
	Upsert(ctx context.Context, c *domain.EmergencyCase) error
	GetByID(ctx context.Context, id string) (*domain.EmergencyCase, error)
	ListRecent(ctx context.Context, limit int) ([]domain.EmergencyCase, error)
	CountByStatus(ctx context.Context) (map[domain.CaseStatus]int, error)
}
