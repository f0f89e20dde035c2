package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

// MarkEntry is one student's status inside a bulk marking call.
type MarkEntry struct {
	StudentID int    `json:"student_id" form:"student_id"`
	Status    string `json:"status"     form:"status"`
}

type MarkRequest struct {
	SubjectID  *int        `json:"subject_id" form:"subject_id"`
	Date       string      `json:"date"       form:"date"`
	Hour       *string     `json:"hour"       form:"hour"`
	Attendance []MarkEntry `json:"attendance" form:"attendance"`
}

type MarkResponse struct {
	Marked int `json:"marked"`
}

type LockRequest struct {
	SubjectID *int   `json:"subject_id" form:"subject_id"`
	Date      string `json:"date"       form:"date"`
}

type LockResponse struct {
	Locked int `json:"locked"`
}

type UpdateRequest struct {
	ID     int     `json:"id"     form:"id"`
	Status *string `json:"status" form:"status"`
	Reason *string `json:"reason" form:"reason"`
}

type BulkPresentRequest struct {
	SubjectID  *int   `json:"subject_id"  form:"subject_id"`
	Date       string `json:"date"        form:"date"`
	StudentIDs []int  `json:"student_ids" form:"student_ids"`
}

type HistoryFilter struct {
	SubjectID *int
	Date      *string
	Batch     *string
	Page      *int
	Limit     *int
}

type StudentFilter struct {
	SubjectID *int
	StartDate *string
	EndDate   *string
	Page      *int
	Limit     *int
}

// LogsFilter enumerates the exact-match fields an admin may filter the
// ledger on; anything else never reaches the store.
type LogsFilter struct {
	Date      *string
	SubjectID *int
	StudentID *int
	Status    *string
	Page      *int
	Limit     *int
}

type ExportFilter struct {
	StartDate *string
	EndDate   *string
	SubjectID *int
	StudentID *int
}

type GetListResponse struct {
	ID          int        `json:"id"`
	Date        *date.Date `json:"date"`
	Status      string     `json:"status"`
	Hour        *string    `json:"hour,omitempty"`
	IsLocked    bool       `json:"is_locked"`
	StudentID   int        `json:"student_id"`
	StudentCode *string    `json:"student_user_id"`
	StudentName *string    `json:"student_name"`
	Batch       *string    `json:"batch,omitempty"`
	SubjectID   int     `json:"subject_id"`
	SubjectCode *string `json:"subject_code"`
	SubjectName *string `json:"subject_name"`
	MarkedBy    *string `json:"marked_by"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type SubjectStats struct {
	SubjectID   int     `json:"subject_id"`
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Total       int     `json:"total"`
	Present     int     `json:"present"`
	Late        int     `json:"late"`
	Absent      int     `json:"absent"`
	Percentage  float64 `json:"percentage"`
}

type MonthlyStats struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	Absent     int     `json:"absent"`
	Percentage float64 `json:"percentage"`
}

type OverallStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	Absent     int     `json:"absent"`
	Percentage float64 `json:"percentage"`
}

type StatsResponse struct {
	BySubject []SubjectStats `json:"by_subject"`
	Overall   OverallStats   `json:"overall"`
	Monthly   []MonthlyStats `json:"monthly"`
}

type DashboardSubjectStats struct {
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Total       int     `json:"total"`
	Present     int     `json:"present"`
	Percentage  float64 `json:"percentage"`
}

type DashboardStats struct {
	TotalStudents     int                     `json:"total_students"`
	TotalTeachers     int                     `json:"total_teachers"`
	TotalSubjects     int                     `json:"total_subjects"`
	OverallPercentage float64                 `json:"overall_attendance_percentage"`
	TodayPresent      int                     `json:"today_present"`
	TodayAbsent       int                     `json:"today_absent"`
	TodayTotal        int                     `json:"today_total"`
	BySubject         []DashboardSubjectStats `json:"attendance_by_subject"`
}

// ExportRow is one line of an admin export (CSV, xlsx or the printable
// sheet).
type ExportRow struct {
	Date        time.Time
	StudentCode string
	StudentName string
	Batch       string
	SubjectCode string
	SubjectName string
	Status      string
	MarkedBy    string
}
