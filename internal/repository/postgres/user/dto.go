package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	Role         *string
	Batch        *string
	Semester     *int
	DepartmentID *int
}

type SignInRequest struct {
	UserID   string `json:"user_id"  form:"user_id"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token"  form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type GetListResponse struct {
	ID             int     `json:"id"`
	UserID         string  `json:"user_id"`
	FullName       *string `json:"full_name"`
	Role           string  `json:"role"`
	Batch          *string `json:"batch,omitempty"`
	Semester       *int    `json:"semester,omitempty"`
	RegisterNumber *string `json:"register_number,omitempty"`
	DepartmentID   *int    `json:"department_id"`
	Department     *string `json:"department"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IsActive       bool    `json:"is_active"`
}

type GetDetailByIdResponse struct {
	ID             int     `json:"id"`
	UserID         string  `json:"user_id"`
	FullName       *string `json:"full_name"`
	Role           string  `json:"role"`
	Batch          *string `json:"batch,omitempty"`
	Semester       *int    `json:"semester,omitempty"`
	RegisterNumber *string `json:"register_number,omitempty"`
	DepartmentID   *int    `json:"department_id"`
	Department     *string `json:"department"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IsActive       bool    `json:"is_active"`
}

type CreateRequest struct {
	UserID         *string `json:"user_id"         form:"user_id"`
	Password       *string `json:"password"        form:"password"`
	Role           *string `json:"role"            form:"role"`
	FullName       *string `json:"full_name"       form:"full_name"`
	Batch          *string `json:"batch"           form:"batch"`
	Semester       *int    `json:"semester"        form:"semester"`
	RegisterNumber *string `json:"register_number" form:"register_number"`
	DepartmentID   *int    `json:"department_id"   form:"department_id"`
	Phone          *string `json:"phone"           form:"phone"`
	Email          *string `json:"email"           form:"email"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID int `json:"id" bun:"-"`

	UserID         *string `json:"user_id"         bun:"user_id"`
	Password       *string `json:"-"               bun:"password"`
	Role           *string `json:"role"            bun:"role"`
	FullName       *string `json:"full_name"       bun:"full_name"`
	Batch          *string `json:"batch"           bun:"batch"`
	Semester       *int    `json:"semester"        bun:"semester"`
	RegisterNumber *string `json:"register_number" bun:"register_number"`
	DepartmentID   *int    `json:"department_id"   bun:"department_id"`
	Phone          *string `json:"phone"           bun:"phone"`
	Email          *string `json:"email"           bun:"email"`
	IsActive       bool    `json:"is_active"       bun:"is_active"`

	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID             int     `json:"id"              form:"id"`
	UserID         *string `json:"user_id"         form:"user_id"`
	Password       *string `json:"password"        form:"password"`
	Role           *string `json:"role"            form:"role"`
	FullName       *string `json:"full_name"       form:"full_name"`
	Batch          *string `json:"batch"           form:"batch"`
	Semester       *int    `json:"semester"        form:"semester"`
	RegisterNumber *string `json:"register_number" form:"register_number"`
	DepartmentID   *int    `json:"department_id"   form:"department_id"`
	Phone          *string `json:"phone"           form:"phone"`
	Email          *string `json:"email"           form:"email"`
	IsActive       *bool   `json:"is_active"       form:"is_active"`
}
