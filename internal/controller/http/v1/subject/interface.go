package subject

import (
	"context"

	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/subject"
)

type Subject interface {
	GetList(ctx context.Context, filter subject.Filter) ([]subject.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (subject.GetDetailByIdResponse, error)
	GetMySubjects(ctx context.Context) ([]subject.GetListResponse, error)
	GetStudents(ctx context.Context, subjectID int) ([]subject.GetStudentResponse, error)
	Create(ctx context.Context, request subject.CreateRequest) (subject.CreateResponse, error)
	UpdateColumns(ctx context.Context, request subject.UpdateRequest) error
	AssignTeacher(ctx context.Context, request subject.AssignTeacherRequest) error
	EnrollStudents(ctx context.Context, request subject.EnrollStudentsRequest) (int, error)
	Delete(ctx context.Context, id int) error
}
