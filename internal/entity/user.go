package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	UserID         *string `json:"user_id"         bun:"user_id"`
	FullName       *string `json:"full_name"       bun:"full_name"`
	Email          *string `json:"email"           bun:"email"`
	Password       *string `json:"-"               bun:"password"`
	Role           *string `json:"role"            bun:"role"`
	Batch          *string `json:"batch"           bun:"batch"`
	Semester       *int    `json:"semester"        bun:"semester"`
	RegisterNumber *string `json:"register_number" bun:"register_number"`
	Phone          *string `json:"phone"           bun:"phone"`
	DepartmentID   *int    `json:"department_id"   bun:"department_id"`
	IsActive       *bool   `json:"is_active"       bun:"is_active"`
}
