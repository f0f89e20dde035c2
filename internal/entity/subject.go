package entity

import (
	"github.com/uptrace/bun"
)

type Subject struct {
	bun.BaseModel `bun:"table:subjects"`

	BasicEntity
	Code         *string `json:"code"          bun:"code"`
	Name         *string `json:"name"          bun:"name"`
	Description  *string `json:"description"   bun:"description"`
	DepartmentID *int    `json:"department_id" bun:"department_id"`
	Semester     *int    `json:"semester"      bun:"semester"`
	TeacherID    *int    `json:"teacher_id"    bun:"teacher_id"`
	IsActive     *bool   `json:"is_active"     bun:"is_active"`
}

// SubjectAccess is the resolved authorization context for one teacher acting
// on one subject. It is produced once per call and handed to the attendance
// mutations so they never re-query assignment state.
type SubjectAccess struct {
	TeacherID int
	SubjectID int
}
