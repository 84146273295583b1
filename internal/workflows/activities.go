package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/kumbhsarthi/sarthi/internal/adapters/catalog"
	"github.com/kumbhsarthi/sarthi/internal/core/domain"
	"github.com/kumbhsarthi/sarthi/internal/core/usecases"
)

// SubjectDispatchNotice carries dispatch confirmations to control room consoles.
const SubjectDispatchNotice = "sarthi.dispatch.notice"

// DispatchActivities holds the activity implementations for the dispatch workflow.
type DispatchActivities struct {
	Emergencies *usecases.EmergencyService
	Facilities  *usecases.FacilityService
	NATS        *nats.Conn
}

// respondingCategory maps an emergency type to the facility category that
// responds to it. Everything without a dedicated facility goes to a helpdesk.
func respondingCategory(emergencyType string) domain.FacilityCategory {
	switch domain.EmergencyType(emergencyType) {
	case domain.EmergencyMedical:
		return domain.CategoryMedical
	case domain.EmergencyLostPerson:
		return domain.CategoryLostFound
	default:
		return domain.CategoryHelpdesk
	}
}

// FindRespondingFacility returns the ID of the nearest facility able to
// respond to the emergency type. A case without coordinates falls back to
// its zone anchor.
func (a *DispatchActivities) FindRespondingFacility(ctx context.Context, emergencyType, zone string, lat, lng float64) (string, error) {
	origin := domain.GeoPoint{Lat: lat, Lng: lng}
	if lat == 0 && lng == 0 {
		if p, ok := catalog.ZoneAnchor(zone); ok {
			origin = p
		}
	}

	f, err := a.Facilities.Nearest(ctx, origin, respondingCategory(emergencyType))
	if err != nil {
		return "", fmt.Errorf("find responding facility: %w", err)
	}
	if f == nil {
		return "", fmt.Errorf("no %s facility available", respondingCategory(emergencyType))
	}
	return f.ID, nil
}

// GetFacilityName returns the display name of a facility by ID.
func (a *DispatchActivities) GetFacilityName(ctx context.Context, facilityID string) (string, error) {
	f := a.Facilities.GetByID(ctx, facilityID)
	if f == nil {
		return "", fmt.Errorf("facility %s not found", facilityID)
	}
	return f.Name, nil
}

// MarkDispatching moves the case into Dispatching.
func (a *DispatchActivities) MarkDispatching(ctx context.Context, caseID string) error {
	return a.Emergencies.UpdateStatus(ctx, caseID, domain.StatusDispatching)
}

// MarkDispatched confirms the dispatch.
func (a *DispatchActivities) MarkDispatched(ctx context.Context, caseID string) error {
	return a.Emergencies.UpdateStatus(ctx, caseID, domain.StatusDispatched)
}

// MarkInvestigating parks the case for manual handling (saga compensation).
func (a *DispatchActivities) MarkInvestigating(ctx context.Context, caseID string) error {
	return a.Emergencies.UpdateStatus(ctx, caseID, domain.StatusInvestigating)
}

// NotifyControlRoom publishes a dispatch notice for control room consoles.
func (a *DispatchActivities) NotifyControlRoom(ctx context.Context, caseID, facilityID, facilityName string) error {
	notice := map[string]string{
		"case_id":       caseID,
		"facility_id":   facilityID,
		"facility_name": facilityName,
	}
	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}

	if a.NATS == nil {
		slog.Info("dispatch notice (no relay)", "case", caseID, "facility", facilityName)
		return nil
	}
	if err := a.NATS.Publish(SubjectDispatchNotice, data); err != nil {
		return fmt.Errorf("publish dispatch notice: %w", err)
	}
	return nil
}
