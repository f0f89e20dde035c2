package subject

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	Semester     *int
}

type GetListResponse struct {
	ID           int     `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DepartmentID *int    `json:"department_id"`
	Department   *string `json:"department"`
	Semester     *int    `json:"semester"`
	TeacherID    *int    `json:"teacher_id"`
	TeacherName  *string `json:"teacher_name"`
	IsActive     bool    `json:"is_active"`
}

type GetDetailByIdResponse struct {
	ID           int     `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DepartmentID *int    `json:"department_id"`
	Department   *string `json:"department"`
	Semester     *int    `json:"semester"`
	TeacherID    *int    `json:"teacher_id"`
	TeacherName  *string `json:"teacher_name"`
	IsActive     bool    `json:"is_active"`
	Students     int     `json:"students"`
}

type CreateRequest struct {
	Code         *string `json:"code"          form:"code"`
	Name         *string `json:"name"          form:"name"`
	Description  *string `json:"description"   form:"description"`
	DepartmentID *int    `json:"department_id" form:"department_id"`
	Semester     *int    `json:"semester"      form:"semester"`
	TeacherID    *int    `json:"teacher_id"    form:"teacher_id"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:subjects"`

	ID int `json:"id" bun:"-"`

	Code         *string `json:"code"          bun:"code"`
	Name         *string `json:"name"          bun:"name"`
	Description  *string `json:"description"   bun:"description"`
	DepartmentID *int    `json:"department_id" bun:"department_id"`
	Semester     *int    `json:"semester"      bun:"semester"`
	TeacherID    *int    `json:"teacher_id"    bun:"teacher_id"`
	IsActive     bool    `json:"is_active"     bun:"is_active"`

	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int     `json:"id"            form:"id"`
	Code         *string `json:"code"          form:"code"`
	Name         *string `json:"name"          form:"name"`
	Description  *string `json:"description"   form:"description"`
	DepartmentID *int    `json:"department_id" form:"department_id"`
	Semester     *int    `json:"semester"      form:"semester"`
	TeacherID    *int    `json:"teacher_id"    form:"teacher_id"`
	IsActive     *bool   `json:"is_active"     form:"is_active"`
}

type AssignTeacherRequest struct {
	SubjectID *int `json:"subject_id" form:"subject_id"`
	TeacherID *int `json:"teacher_id" form:"teacher_id"`
}

type EnrollStudentsRequest struct {
	SubjectID  *int  `json:"subject_id"  form:"subject_id"`
	StudentIDs []int `json:"student_ids" form:"student_ids"`
}

type GetStudentResponse struct {
	ID             int     `json:"id"`
	UserID         string  `json:"user_id"`
	FullName       *string `json:"full_name"`
	Batch          *string `json:"batch,omitempty"`
	Semester       *int    `json:"semester,omitempty"`
	RegisterNumber *string `json:"register_number,omitempty"`
}
