package attendance

import (
	"math"
	"time"

	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres"

	"github.com/pkg/errors"
)

// EditWindow is how long after a record's day a single-record amendment is
// still allowed.
const EditWindow = 24 * time.Hour

const (
	reasonInitial = "Initial marking"
	reasonUpdated = "Updated by teacher"
)

// ValidStatus reports whether s belongs to the closed status vocabulary.
func ValidStatus(s string) bool {
	switch s {
	case entity.StatusPresent, entity.StatusAbsent, entity.StatusLate:
		return true
	}

	return false
}

// ValidEntries drops entries carrying an unknown status. Dropped entries
// never fail the batch, they are just not written or counted.
func ValidEntries(entries []MarkEntry) []MarkEntry {
	valid := make([]MarkEntry, 0, len(entries))
	for _, e := range entries {
		if ValidStatus(e.Status) {
			valid = append(valid, e)
		}
	}

	return valid
}

// NormalizeDay truncates t to midnight UTC. The normalized day is part of
// the record identity, so two calls differing only in time-of-day hit the
// same rows.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts a plain day or an RFC3339 timestamp and normalizes it.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NormalizeDay(t), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parsing date")
	}

	return NormalizeDay(t), nil
}

// CanAmend decides whether a single record may still be amended: it must be
// unlocked and within the edit window measured from the record's day.
func CanAmend(isLocked bool, day time.Time, now time.Time) error {
	if isLocked {
		return postgres.ErrAttendanceLocked
	}

	if now.Sub(day) > EditWindow {
		return postgres.ErrEditWindowExpired
	}

	return nil
}

// NewChange builds one history entry. History is append-only; callers never
// replace or reorder existing entries.
func NewChange(changedBy int, oldStatus *string, newStatus, reason string, at time.Time) entity.Change {
	return entity.Change{
		ChangedBy: changedBy,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedAt: at,
		Reason:    reason,
	}
}

// Percentage computes the attendance percentage with present and late in
// the numerator, rounded to two decimals.
func Percentage(present, late, total int) float64 {
	if total <= 0 {
		return 0
	}

	return math.Round(float64(present+late)/float64(total)*100*100) / 100
}
