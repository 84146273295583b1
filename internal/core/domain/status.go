package domain

import "fmt"

// CaseStatus is the lifecycle state of an emergency case.
type CaseStatus string

const (
	StatusNew           CaseStatus = "New"
	StatusInvestigating CaseStatus = "Investigating"
	StatusDispatching   CaseStatus = "Dispatching"
	StatusDispatched    CaseStatus = "Dispatched"
	StatusOnScene       CaseStatus = "OnScene"
	StatusResolved      CaseStatus = "Resolved"
)

// Valid reports whether s is a known status.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInvestigating, StatusDispatching, StatusDispatched, StatusOnScene, StatusResolved:
		return true
	}
	return false
}

// rank orders statuses along the forward-only lifecycle.
// Investigating, Dispatching, and Dispatched share a stage: a control room
// operator may move a case between them, but never back to New.
func (s CaseStatus) rank() int {
	switch s {
	case StatusNew:
		return 0
	case StatusInvestigating, StatusDispatching, StatusDispatched:
		return 1
	case StatusOnScene:
		return 2
	case StatusResolved:
		return 3
	}
	return -1
}

// CanTransition reports whether a case may move from s to next.
// The lifecycle is strictly forward-moving: New → {Investigating, Dispatching,
// Dispatched} → OnScene → Resolved. Resolved is terminal.
func (s CaseStatus) CanTransition(next CaseStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	from, to := s.rank(), next.rank()
	if from == 3 {
		return false // Resolved never regresses
	}
	if from == to {
		// Lateral moves are only meaningful within the dispatch stage.
		return from == 1 && s != next
	}
	return to > from
}

// ValidateTransition returns ErrIllegalTransition if the move is not allowed.
func ValidateTransition(from, to CaseStatus) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s → %s", ErrIllegalTransition, from, to)
	}
	return nil
}
