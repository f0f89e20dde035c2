package attendance

import (
	"context"

	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/attendance"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/auditlog"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/subject"
)

type Attendance interface {
	GetById(ctx context.Context, id int) (entity.Attendance, error)
	Mark(ctx context.Context, access entity.SubjectAccess, request attendance.MarkRequest) (int, error)
	Lock(ctx context.Context, access entity.SubjectAccess, request attendance.LockRequest) (int, error)
	Update(ctx context.Context, access entity.SubjectAccess, request attendance.UpdateRequest) (entity.Attendance, error)
	BulkMarkPresent(ctx context.Context, request attendance.BulkPresentRequest) (int, error)
	GetHistory(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.GetListResponse, int, error)
	GetListByStudent(ctx context.Context, filter attendance.StudentFilter) ([]attendance.GetListResponse, int, error)
	GetDailyByStudent(ctx context.Context, day string) ([]attendance.GetListResponse, error)
	GetStatsByStudent(ctx context.Context) (attendance.StatsResponse, error)
	GetLogs(ctx context.Context, filter attendance.LogsFilter) ([]attendance.GetListResponse, int, error)
	GetDashboardStats(ctx context.Context) (attendance.DashboardStats, error)
	GetExportRows(ctx context.Context, filter attendance.ExportFilter) ([]attendance.ExportRow, error)
}

type Subject interface {
	ResolveTeacherAccess(ctx context.Context, subjectID int) (entity.SubjectAccess, error)
	GetById(ctx context.Context, id int) (entity.Subject, error)
	GetStudents(ctx context.Context, subjectID int) ([]subject.GetStudentResponse, error)
}

type AuditLog interface {
	Record(entry auditlog.Entry)
}
