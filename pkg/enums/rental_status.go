package enums

import "fmt"

// RentalStatus tracks the lifecycle of a rental transaction.
type RentalStatus string

const (
	RentalStatusConfirmed RentalStatus = "confirmed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusCompleted RentalStatus = "completed"
)

var validRentalStatuses = []RentalStatus{
	RentalStatusConfirmed,
	RentalStatusCancelled,
	RentalStatusCompleted,
}

var rentalStatusTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusConfirmed: {RentalStatusCancelled, RentalStatusCompleted},
	RentalStatusCancelled: nil,
	RentalStatusCompleted: nil,
}

// String implements fmt.Stringer.
func (s RentalStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RentalStatus.
func (s RentalStatus) IsValid() bool {
	for _, candidate := range validRentalStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s RentalStatus) IsTerminal() bool {
	return s.IsValid() && len(rentalStatusTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-applying the current status is always allowed.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	for _, candidate := range rentalStatusTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseRentalStatus converts raw input into a RentalStatus.
func ParseRentalStatus(value string) (RentalStatus, error) {
	for _, candidate := range validRentalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental status %q", value)
}
