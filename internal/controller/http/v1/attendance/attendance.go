package attendance

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/attendance"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/auditlog"
	"github.com/Niranjjith/Attendance-System/internal/service"
)

type Controller struct {
	attendance Attendance
	subject    Subject
	audit      AuditLog
}

func NewController(attendance Attendance, subject Subject, audit AuditLog) *Controller {
	return &Controller{attendance: attendance, subject: subject, audit: audit}
}

func (uc Controller) record(c *web.Context, action string, entityID *int, details interface{}) {
	claims, ok := auth.GetClaims(c.Ctx)
	if !ok {
		return
	}

	uc.audit.Record(auditlog.Entry{
		Action:      action,
		Entity:      "attendance",
		EntityID:    entityID,
		PerformedBy: claims.UserId,
		Details:     details,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
}

// Mark handles a teacher's bulk marking call for one subject and day.
func (uc Controller) Mark(c *web.Context) error {
	var request attendance.MarkRequest
	if err := c.BindFunc(&request, "SubjectID", "Date"); err != nil {
		return c.RespondError(err)
	}

	access, err := uc.subject.ResolveTeacherAccess(c.Ctx, *request.SubjectID)
	if err != nil {
		return c.RespondError(err)
	}

	marked, err := uc.attendance.Mark(c.Ctx, access, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.record(c, "MARK", request.SubjectID, map[string]interface{}{
		"date":   request.Date,
		"marked": marked,
	})

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"marked": marked,
		},
		"status": true,
	}, http.StatusOK)
}

// Lock freezes one subject's day.
func (uc Controller) Lock(c *web.Context) error {
	var request attendance.LockRequest
	if err := c.BindFunc(&request, "SubjectID", "Date"); err != nil {
		return c.RespondError(err)
	}

	access, err := uc.subject.ResolveTeacherAccess(c.Ctx, *request.SubjectID)
	if err != nil {
		return c.RespondError(err)
	}

	locked, err := uc.attendance.Lock(c.Ctx, access, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.record(c, "LOCK", request.SubjectID, map[string]interface{}{
		"date":   request.Date,
		"locked": locked,
	})

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"locked": locked,
		},
		"status": true,
	}, http.StatusOK)
}

// Update amends a single record. Access is resolved against the record's own
// subject, not anything the client sends.
func (uc Controller) Update(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request attendance.UpdateRequest
	if err := c.BindFunc(&request, "Status"); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	detail, err := uc.attendance.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if detail.SubjectID == nil {
		return c.RespondError(web.NewRequestError(errors.New("record has no subject"), http.StatusInternalServerError))
	}

	access, err := uc.subject.ResolveTeacherAccess(c.Ctx, *detail.SubjectID)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Update(c.Ctx, access, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.record(c, "UPDATE", &id, map[string]interface{}{
		"status": *request.Status,
	})

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// BulkMarkPresent is the admin shortcut that marks a whole class present.
func (uc Controller) BulkMarkPresent(c *web.Context) error {
	var request attendance.BulkPresentRequest
	if err := c.BindFunc(&request, "SubjectID", "Date"); err != nil {
		return c.RespondError(err)
	}

	marked, err := uc.attendance.BulkMarkPresent(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.record(c, "BULK_MARK_PRESENT", request.SubjectID, map[string]interface{}{
		"date":   request.Date,
		"marked": marked,
	})

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"marked": marked,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetHistory(c *web.Context) error {
	var filter attendance.HistoryFilter

	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if batch, ok := c.GetQueryFunc(reflect.String, "batch").(*string); ok {
		filter.Batch = batch
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetHistory(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetMyAttendance(c *web.Context) error {
	var filter attendance.StudentFilter

	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if startDate, ok := c.GetQueryFunc(reflect.String, "start_date").(*string); ok {
		filter.StartDate = startDate
	}
	if endDate, ok := c.GetQueryFunc(reflect.String, "end_date").(*string); ok {
		filter.EndDate = endDate
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetListByStudent(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetMyDaily(c *web.Context) error {
	day := c.Query("date")
	if day == "" {
		return c.RespondError(web.NewRequestError(errors.New("date parameter is required"), http.StatusBadRequest))
	}

	list, err := uc.attendance.GetDailyByStudent(c.Ctx, day)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetMyStats(c *web.Context) error {
	response, err := uc.attendance.GetStatsByStudent(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetLogs(c *web.Context) error {
	var filter attendance.LogsFilter

	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if studentID, ok := c.GetQueryFunc(reflect.Int, "student_id").(*int); ok {
		filter.StudentID = studentID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetLogs(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDashboardStats(c *web.Context) error {
	response, err := uc.attendance.GetDashboardStats(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// Export streams the filtered ledger as CSV or, with format=xlsx, as a
// workbook.
func (uc Controller) Export(c *web.Context) error {
	var filter attendance.ExportFilter

	if startDate, ok := c.GetQueryFunc(reflect.String, "start_date").(*string); ok {
		filter.StartDate = startDate
	}
	if endDate, ok := c.GetQueryFunc(reflect.String, "end_date").(*string); ok {
		filter.EndDate = endDate
	}
	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if studentID, ok := c.GetQueryFunc(reflect.Int, "student_id").(*int); ok {
		filter.StudentID = studentID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	rows, err := uc.attendance.GetExportRows(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	if c.Query("format") == "xlsx" {
		content, err := service.BuildAttendanceWorkbook(rows)
		if err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
		}

		c.Header("Content-Disposition", `attachment; filename="attendance.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
		return nil
	}

	content, err := service.BuildAttendanceCSV(rows)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.csv"`)
	c.Data(http.StatusOK, "text/csv", content)
	return nil
}

// Sheet renders a printable marking sheet for one subject and day.
func (uc Controller) Sheet(c *web.Context) error {
	subjectID := c.GetParam(reflect.Int, "subject_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	day := c.Query("date")
	if day == "" {
		return c.RespondError(web.NewRequestError(errors.New("date parameter is required"), http.StatusBadRequest))
	}

	detail, err := uc.subject.GetById(c.Ctx, subjectID)
	if err != nil {
		return c.RespondError(err)
	}

	enrolled, err := uc.subject.GetStudents(c.Ctx, subjectID)
	if err != nil {
		return c.RespondError(err)
	}

	students := make([]service.SheetStudent, 0, len(enrolled))
	for _, s := range enrolled {
		student := service.SheetStudent{UserID: s.UserID}
		if s.FullName != nil {
			student.FullName = *s.FullName
		}
		students = append(students, student)
	}

	var code, name string
	if detail.Code != nil {
		code = *detail.Code
	}
	if detail.Name != nil {
		name = *detail.Name
	}

	content, err := service.BuildAttendanceSheet(code, name, day, students)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="attendance-sheet.pdf"`)
	c.Data(http.StatusOK, "application/pdf", content)
	return nil
}
