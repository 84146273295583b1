package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// DispatchInput is the input for the dispatch workflow.
type DispatchInput struct {
	CaseID string
	Type   string
	Zone   string
	Lat    float64
	Lng    float64
}

// DispatchWorkflow orchestrates responder dispatch for a reported emergency:
// locate the nearest responding facility, move the case into Dispatching,
// notify the control room, and confirm Dispatched. If notification fails the
// case is parked back in Investigating (saga compensation) so an operator
// picks it up manually.
func DispatchWorkflow(ctx workflow.Context, input DispatchInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting dispatch workflow", "case", input.CaseID, "type", input.Type)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Find the nearest facility that can respond
	var facilityID string
	var facilityName string
	err := workflow.ExecuteActivity(ctx, "FindRespondingFacility", input.Type, input.Zone, input.Lat, input.Lng).Get(ctx, &facilityID)
	if err != nil {
		return err
	}
	_ = workflow.ExecuteActivity(ctx, "GetFacilityName", facilityID).Get(ctx, &facilityName)

	// Step 2: Move the case into Dispatching
	err = workflow.ExecuteActivity(ctx, "MarkDispatching", input.CaseID).Get(ctx, nil)
	if err != nil {
		return err
	}

	// Step 3: Notify the control room
	err = workflow.ExecuteActivity(ctx, "NotifyControlRoom", input.CaseID, facilityID, facilityName).Get(ctx, nil)
	if err != nil {
		logger.Warn("control room notification failed, compensating", "error", err)
		// Compensate: park the case for manual handling
		_ = workflow.ExecuteActivity(ctx, "MarkInvestigating", input.CaseID).Get(ctx, nil)
		return err
	}

	// Step 4: Confirm dispatch
	err = workflow.ExecuteActivity(ctx, "MarkDispatched", input.CaseID).Get(ctx, nil)
	if err != nil {
		return err
	}

	logger.Info("Dispatch complete", "case", input.CaseID, "facility", facilityID)
	return nil
}
