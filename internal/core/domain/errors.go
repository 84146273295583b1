package domain

import "errors"

var (
	// ErrCaseNotFound is returned when no case with the given id exists locally.
	ErrCaseNotFound = errors.New("emergency case not found")

	// ErrFacilityNotFound is returned when no facility with the given id exists.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrIllegalTransition is returned when a status update would move a case
	// backwards through its lifecycle.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrStaleVersion is returned when a remote update carries a version that
	// does not exceed the locally held one.
	ErrStaleVersion = errors.New("stale case version")

	// ErrInvalidCoordinate is returned for coordinates outside valid ranges.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// ValidateCoordinate checks latitude and longitude ranges.
func ValidateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}
