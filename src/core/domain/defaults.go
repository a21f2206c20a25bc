package domain

import "time"

// ApplyDateDefaults fills omitted dates with now. Both dates default to the
// creation instant, including the date of birth.
func ApplyDateDefaults(e *Employee, now time.Time) {
	if e.DateOfJoining.IsZero() {
		e.DateOfJoining = now
	}
	if e.DateOfBirth.IsZero() {
		e.DateOfBirth = now
	}
}
