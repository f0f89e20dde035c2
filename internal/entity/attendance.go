package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses form a closed vocabulary: present and late count
// toward attendance percentages, absent never does.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	StudentID *int       `json:"student_id" bun:"student_id"`
	SubjectID *int       `json:"subject_id" bun:"subject_id"`
	Date      *time.Time `json:"date"       bun:"date"`
	Status    *string    `json:"status"     bun:"status"`
	MarkedBy  *int       `json:"marked_by"  bun:"marked_by"`
	Hour      *string    `json:"hour"       bun:"hour"`
	MarkedAt  *time.Time `json:"marked_at"  bun:"marked_at"`
	IsLocked  *bool      `json:"is_locked"  bun:"is_locked"`
	LockedAt  *time.Time `json:"locked_at"  bun:"locked_at"`
	Changes   []Change   `json:"changes"    bun:"changes,type:jsonb"`
}

// Change is one entry of the append-only history kept on every attendance
// row. Every mutation appends exactly one entry, the first mark included.
type Change struct {
	ChangedBy int       `json:"changed_by"`
	OldStatus *string   `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
	Reason    string    `json:"reason"`
}
