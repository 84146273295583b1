package workflows_test

import (
	"context"
	"testing"

	"github.com/kumbhsarthi/sarthi/internal/adapters/catalog"
	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
	"github.com/kumbhsarthi/sarthi/internal/workflows"
)

func newActivities() (*workflows.DispatchActivities, *catalog.Catalog) {
	cat := catalog.New()
	return &workflows.DispatchActivities{
		Facilities: usecases.NewFacilityService(cat, nil),
	}, cat
}

func TestFindRespondingFacility_ByCoordinates(t *testing.T) {
	a, cat := newActivities()

	// Next to Ramkund the closest medical post is the Ramkund first-aid station.
	id, err := a.FindRespondingFacility(context.Background(), "Medical", "Ramkund", 19.9975, 73.7898)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := cat.GetByID(id)
	if !ok {
		t.Fatalf("unknown facility %s", id)
	}
	if f.Category != domain.CategoryMedical {
		t.Errorf("expected a medical facility, got %s (%s)", id, f.Category)
	}
	if id != "med-2" {
		t.Errorf("expected med-2 nearest to Ramkund, got %s", id)
	}
}

func TestFindRespondingFacility_ZoneAnchorFallback(t *testing.T) {
	a, cat := newActivities()

	// No coordinates on the case: the zone anchor stands in.
	id, err := a.FindRespondingFacility(context.Background(), "LostPerson", "Ramkund", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := cat.GetByID(id)
	if !ok {
		t.Fatalf("unknown facility %s", id)
	}
	if f.Category != domain.CategoryLostFound {
		t.Errorf("expected lost & found, got %s (%s)", id, f.Category)
	}
}

func TestFindRespondingFacility_DefaultsToHelpdesk(t *testing.T) {
	a, cat := newActivities()

	id, err := a.FindRespondingFacility(context.Background(), "Crowd", "Tapovan", 20.0012, 73.7945)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := cat.GetByID(id)
	if !ok {
		t.Fatalf("unknown facility %s", id)
	}
	if f.Category != domain.CategoryHelpdesk {
		t.Errorf("expected a helpdesk, got %s (%s)", id, f.Category)
	}
}
