package domain

import (
	"errors"
	"testing"
)

func TestCanTransition_Forward(t *testing.T) {
	allowed := []struct{ from, to CaseStatus }{
		{StatusNew, StatusInvestigating},
		{StatusNew, StatusDispatching},
		{StatusNew, StatusDispatched},
		{StatusNew, StatusOnScene},
		{StatusNew, StatusResolved},
		{StatusInvestigating, StatusDispatching},
		{StatusDispatching, StatusDispatched},
		{StatusDispatched, StatusOnScene},
		{StatusOnScene, StatusResolved},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransition(tr.to) {
			t.Errorf("%s → %s should be allowed", tr.from, tr.to)
		}
	}
}

func TestCanTransition_Backward(t *testing.T) {
	forbidden := []struct{ from, to CaseStatus }{
		{StatusResolved, StatusNew},
		{StatusResolved, StatusOnScene},
		{StatusOnScene, StatusInvestigating},
		{StatusDispatched, StatusNew},
		{StatusInvestigating, StatusNew},
		{StatusNew, StatusNew},
	}
	for _, tr := range forbidden {
		if tr.from.CanTransition(tr.to) {
			t.Errorf("%s → %s should be rejected", tr.from, tr.to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	if CaseStatus("Bogus").CanTransition(StatusResolved) {
		t.Error("unknown status should never transition")
	}
	if StatusNew.CanTransition(CaseStatus("Bogus")) {
		t.Error("transition to unknown status should be rejected")
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(StatusNew, StatusOnScene); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateTransition(StatusResolved, StatusNew)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestValidateCoordinate(t *testing.T) {
	if err := ValidateCoordinate(19.9975, 73.7898); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCoordinate(91, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
	if err := ValidateCoordinate(0, -181); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}
