package postgres

import "github.com/pkg/errors"

// Failure classes the controllers translate into distinct responses. They
// are never collapsed into one generic error so the caller can tell a
// missing record from a denied or locked one.
var (
	ErrNotFound          = errors.New("not found")
	ErrNotAssigned       = errors.New("you are not assigned to this subject")
	ErrAttendanceLocked  = errors.New("attendance for this date is already locked")
	ErrEditWindowExpired = errors.New("attendance can only be updated within 24 hours")
)
