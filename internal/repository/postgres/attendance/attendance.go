package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// upsertRow is the write model for the idempotent create-or-update keyed by
// (student_id, subject_id, date).
type upsertRow struct {
	bun.BaseModel `bun:"table:attendance"`

	StudentID int             `bun:"student_id"`
	SubjectID int             `bun:"subject_id"`
	Date      time.Time       `bun:"date"`
	Status    string          `bun:"status"`
	MarkedBy  int             `bun:"marked_by"`
	Hour      *string         `bun:"hour"`
	MarkedAt  time.Time       `bun:"marked_at"`
	IsLocked  bool            `bun:"is_locked"`
	Changes   []entity.Change `bun:"changes,type:jsonb"`
	CreatedAt time.Time       `bun:"created_at"`
	CreatedBy int             `bun:"created_by"`
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Attendance{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Attendance{}, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	return detail, nil
}

// Mark applies a bulk status batch for one subject and day. The partition
// lock state is checked immediately before the writes; each entry is then
// upserted independently so one bad row never takes the batch down.
func (r Repository) Mark(ctx context.Context, access entity.SubjectAccess, request MarkRequest) (int, error) {
	if err := r.ValidateStruct(&request, "SubjectID", "Date"); err != nil {
		return 0, err
	}
	if len(request.Attendance) == 0 {
		return 0, web.NewRequestError(errors.New("attendance entries are required"), http.StatusBadRequest)
	}

	day, err := ParseDay(request.Date)
	if err != nil {
		return 0, web.NewRequestError(err, http.StatusBadRequest)
	}

	locked, err := r.partitionLocked(ctx, access.SubjectID, day)
	if err != nil {
		return 0, err
	}
	if locked {
		return 0, web.NewRequestError(postgres.ErrAttendanceLocked, http.StatusConflict)
	}

	now := time.Now()
	entries := ValidEntries(request.Attendance)

	marked := 0
	for _, e := range entries {
		row := upsertRow{
			StudentID: e.StudentID,
			SubjectID: access.SubjectID,
			Date:      day,
			Status:    e.Status,
			MarkedBy:  access.TeacherID,
			Hour:      request.Hour,
			MarkedAt:  now,
			IsLocked:  false,
			Changes:   []entity.Change{NewChange(access.TeacherID, nil, e.Status, reasonInitial, now)},
			CreatedAt: now,
			CreatedBy: access.TeacherID,
		}

		_, err := r.NewInsert().Model(&row).
			On("CONFLICT (student_id, subject_id, date) DO UPDATE").
			Set("status = EXCLUDED.status").
			Set("marked_by = EXCLUDED.marked_by").
			Set("marked_at = EXCLUDED.marked_at").
			Set("hour = EXCLUDED.hour").
			Set("changes = attendance.changes || EXCLUDED.changes").
			Set("updated_at = EXCLUDED.marked_at").
			Set("updated_by = EXCLUDED.marked_by").
			Exec(ctx)
		if err != nil {
			// Independent per-key batch: a failed entry is logged, the rest
			// still apply, and the returned count stays truthful.
			log.Printf("marking attendance student=%d subject=%d: %v", e.StudentID, access.SubjectID, err)
			continue
		}

		marked++
	}

	return marked, nil
}

// Lock flips every row of the (subject, day) partition to locked. Rows that
// are already locked are left alone so the returned count is the number
// actually flipped; locking a locked partition is a no-op, not an error.
func (r Repository) Lock(ctx context.Context, access entity.SubjectAccess, request LockRequest) (int, error) {
	if err := r.ValidateStruct(&request, "SubjectID", "Date"); err != nil {
		return 0, err
	}

	day, err := ParseDay(request.Date)
	if err != nil {
		return 0, web.NewRequestError(err, http.StatusBadRequest)
	}

	res, err := r.NewUpdate().
		Table("attendance").
		Where("deleted_at IS NULL AND subject_id = ? AND date = ? AND is_locked = false", access.SubjectID, day).
		Set("is_locked = true").
		Set("locked_at = ?", time.Now()).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", access.TeacherID).
		Exec(ctx)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "locking attendance"), http.StatusInternalServerError)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "counting locked attendance"), http.StatusInternalServerError)
	}

	return int(n), nil
}

// Update amends a single record while it is unlocked and inside the edit
// window, appending one history entry with the old and new status.
func (r Repository) Update(ctx context.Context, access entity.SubjectAccess, request UpdateRequest) (entity.Attendance, error) {
	if err := r.ValidateStruct(&request, "ID", "Status"); err != nil {
		return entity.Attendance{}, err
	}

	if !ValidStatus(*request.Status) {
		return entity.Attendance{}, web.NewRequestError(errors.Errorf("unknown status %q", *request.Status), http.StatusBadRequest)
	}

	detail, err := r.GetById(ctx, request.ID)
	if err != nil {
		return entity.Attendance{}, err
	}

	isLocked := detail.IsLocked != nil && *detail.IsLocked
	if err := CanAmend(isLocked, *detail.Date, time.Now()); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, postgres.ErrAttendanceLocked) {
			status = http.StatusConflict
		}
		return entity.Attendance{}, web.NewRequestError(err, status)
	}

	now := time.Now()
	reason := reasonUpdated
	if request.Reason != nil && *request.Reason != "" {
		reason = *request.Reason
	}

	change := NewChange(access.TeacherID, detail.Status, *request.Status, reason, now)
	changeJSON, err := json.Marshal([]entity.Change{change})
	if err != nil {
		return entity.Attendance{}, web.NewRequestError(errors.Wrap(err, "encoding change entry"), http.StatusInternalServerError)
	}

	q := r.NewUpdate().
		Table("attendance").
		Where("deleted_at IS NULL AND id = ?", request.ID).
		Set("status = ?", *request.Status).
		Set("changes = changes || ?::jsonb", string(changeJSON)).
		Set("updated_at = ?", now).
		Set("updated_by = ?", access.TeacherID)

	if _, err = q.Exec(ctx); err != nil {
		return entity.Attendance{}, web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusInternalServerError)
	}

	return r.GetById(ctx, request.ID)
}

// BulkMarkPresent marks every given student (or every enrolled student when
// none are given) present through the same upsert path as Mark, history
// entries included.
func (r Repository) BulkMarkPresent(ctx context.Context, request BulkPresentRequest) (int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return 0, err
	}

	if err := r.ValidateStruct(&request, "SubjectID", "Date"); err != nil {
		return 0, err
	}

	studentIDs := request.StudentIDs
	if len(studentIDs) == 0 {
		rows, err := r.QueryContext(ctx, `
			SELECT student_id FROM subject_students WHERE subject_id = $1
		`, *request.SubjectID)
		if err != nil {
			return 0, web.NewRequestError(errors.Wrap(err, "selecting enrolled students"), http.StatusInternalServerError)
		}
		defer rows.Close()

		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				return 0, web.NewRequestError(errors.Wrap(err, "scanning enrolled student"), http.StatusInternalServerError)
			}
			studentIDs = append(studentIDs, id)
		}
		if err := rows.Err(); err != nil {
			return 0, web.NewRequestError(errors.Wrap(err, "selecting enrolled students"), http.StatusInternalServerError)
		}
	}

	entries := make([]MarkEntry, 0, len(studentIDs))
	for _, id := range studentIDs {
		entries = append(entries, MarkEntry{StudentID: id, Status: entity.StatusPresent})
	}

	access := entity.SubjectAccess{TeacherID: claims.UserId, SubjectID: *request.SubjectID}

	return r.Mark(ctx, access, MarkRequest{
		SubjectID:  request.SubjectID,
		Date:       request.Date,
		Attendance: entries,
	})
}

// partitionLocked reports whether any row of the (subject, day) partition is
// locked. The check runs right before the batch writes; a concurrent lock
// call can still win the race, which the store's unique key then contains to
// per-row conflicts.
func (r Repository) partitionLocked(ctx context.Context, subjectID int, day time.Time) (bool, error) {
	var locked bool

	err := r.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance
			WHERE deleted_at IS NULL AND subject_id = $1 AND date = $2 AND is_locked = true
		)
	`, subjectID, day).Scan(&locked)
	if err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "checking lock state"), http.StatusInternalServerError)
	}

	return locked, nil
}

const listColumns = `
	a.id,
	a.date,
	a.status,
	a.hour,
	a.is_locked,
	a.student_id,
	st.user_id,
	st.full_name,
	st.batch,
	a.subject_id,
	s.code,
	s.name,
	m.full_name
`

const listJoins = `
	FROM attendance a
	LEFT JOIN users st ON st.id = a.student_id
	LEFT JOIN subjects s ON s.id = a.subject_id
	LEFT JOIN users m ON m.id = a.marked_by
`

func (r Repository) scanList(rows *sql.Rows) ([]GetListResponse, error) {
	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var dateString string

		if err := rows.Scan(
			&detail.ID,
			&dateString,
			&detail.Status,
			&detail.Hour,
			&detail.IsLocked,
			&detail.StudentID,
			&detail.StudentCode,
			&detail.StudentName,
			&detail.Batch,
			&detail.SubjectID,
			&detail.SubjectCode,
			&detail.SubjectName,
			&detail.MarkedBy,
		); err != nil {
			return nil, errors.Wrap(err, "scanning attendance list")
		}

		day, err := date.ParseDate(dateString)
		if err != nil {
			return nil, errors.Wrap(err, "converting date")
		}
		detail.Date = &day

		list = append(list, detail)
	}

	return list, rows.Err()
}

// GetHistory lists a teacher's marked records, newest day first.
func (r Repository) GetHistory(ctx context.Context, filter HistoryFilter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleTeacher)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE a.deleted_at IS NULL"
	var args []interface{}

	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		whereQuery += fmt.Sprintf(" AND a.subject_id = $%d", len(args))
	}
	if filter.Date != nil {
		day, err := ParseDay(*filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(err, http.StatusBadRequest)
		}
		args = append(args, day)
		whereQuery += fmt.Sprintf(" AND a.date = $%d", len(args))
	}
	if filter.Batch != nil {
		args = append(args, *filter.Batch)
		whereQuery += fmt.Sprintf(" AND st.batch = $%d", len(args))
	}

	countQuery := "SELECT count(a.id) " + listJoins + whereQuery

	query := "SELECT " + listColumns + listJoins + whereQuery + " ORDER BY a.date DESC, a.id"
	query += pageQuery(filter.Page, filter.Limit)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance history"), http.StatusInternalServerError)
	}
	defer rows.Close()

	list, err := r.scanList(rows)
	if err != nil {
		return nil, 0, web.NewRequestError(err, http.StatusInternalServerError)
	}

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting attendance history"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetListByStudent lists the calling student's own records.
func (r Repository) GetListByStudent(ctx context.Context, filter StudentFilter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleStudent)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE a.deleted_at IS NULL AND a.student_id = $1"
	args := []interface{}{claims.UserId}

	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		whereQuery += fmt.Sprintf(" AND a.subject_id = $%d", len(args))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		start, err := ParseDay(*filter.StartDate)
		if err != nil {
			return nil, 0, web.NewRequestError(err, http.StatusBadRequest)
		}
		end, err := ParseDay(*filter.EndDate)
		if err != nil {
			return nil, 0, web.NewRequestError(err, http.StatusBadRequest)
		}
		args = append(args, start)
		whereQuery += fmt.Sprintf(" AND a.date >= $%d", len(args))
		args = append(args, end)
		whereQuery += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}

	countQuery := "SELECT count(a.id) " + listJoins + whereQuery

	query := "SELECT " + listColumns + listJoins + whereQuery + " ORDER BY a.date DESC, a.id"
	query += pageQuery(filter.Page, filter.Limit)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting student attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	list, err := r.scanList(rows)
	if err != nil {
		return nil, 0, web.NewRequestError(err, http.StatusInternalServerError)
	}

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting student attendance"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetDailyByStudent returns the calling student's records for one day.
func (r Repository) GetDailyByStudent(ctx context.Context, dayStr string) ([]GetListResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleStudent)
	if err != nil {
		return nil, err
	}

	day, err := ParseDay(dayStr)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}

	query := "SELECT " + listColumns + listJoins +
		"WHERE a.deleted_at IS NULL AND a.student_id = $1 AND a.date = $2 ORDER BY a.id"

	rows, err := r.QueryContext(ctx, query, claims.UserId, day)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting daily attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	list, err := r.scanList(rows)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return list, nil
}

// GetStatsByStudent aggregates the calling student's attendance per subject,
// per month and overall. Present and late count toward the percentage.
func (r Repository) GetStatsByStudent(ctx context.Context) (StatsResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleStudent)
	if err != nil {
		return StatsResponse{}, err
	}

	var response StatsResponse

	rows, err := r.QueryContext(ctx, `
		SELECT
			a.subject_id,
			s.code,
			s.name,
			count(*) AS total,
			count(*) FILTER (WHERE a.status = 'present') AS present,
			count(*) FILTER (WHERE a.status = 'late') AS late,
			count(*) FILTER (WHERE a.status = 'absent') AS absent
		FROM attendance a
		JOIN subjects s ON s.id = a.subject_id
		WHERE a.deleted_at IS NULL AND a.student_id = $1
		GROUP BY a.subject_id, s.code, s.name
		ORDER BY s.code
	`, claims.UserId)
	if err != nil {
		return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting subject stats"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var s SubjectStats
		if err = rows.Scan(&s.SubjectID, &s.SubjectCode, &s.SubjectName, &s.Total, &s.Present, &s.Late, &s.Absent); err != nil {
			return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "scanning subject stats"), http.StatusInternalServerError)
		}
		s.Percentage = Percentage(s.Present, s.Late, s.Total)
		response.BySubject = append(response.BySubject, s)

		response.Overall.Total += s.Total
		response.Overall.Present += s.Present
		response.Overall.Late += s.Late
		response.Overall.Absent += s.Absent
	}
	if err = rows.Err(); err != nil {
		return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting subject stats"), http.StatusInternalServerError)
	}

	response.Overall.Percentage = Percentage(response.Overall.Present, response.Overall.Late, response.Overall.Total)

	monthRows, err := r.QueryContext(ctx, `
		SELECT
			EXTRACT(YEAR FROM a.date)::int AS year,
			EXTRACT(MONTH FROM a.date)::int AS month,
			count(*) AS total,
			count(*) FILTER (WHERE a.status = 'present') AS present,
			count(*) FILTER (WHERE a.status = 'late') AS late,
			count(*) FILTER (WHERE a.status = 'absent') AS absent
		FROM attendance a
		WHERE a.deleted_at IS NULL AND a.student_id = $1
		GROUP BY year, month
		ORDER BY year DESC, month DESC
	`, claims.UserId)
	if err != nil {
		return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting monthly stats"), http.StatusInternalServerError)
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var m MonthlyStats
		if err = monthRows.Scan(&m.Year, &m.Month, &m.Total, &m.Present, &m.Late, &m.Absent); err != nil {
			return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "scanning monthly stats"), http.StatusInternalServerError)
		}
		m.Percentage = Percentage(m.Present, m.Late, m.Total)
		response.Monthly = append(response.Monthly, m)
	}
	if err = monthRows.Err(); err != nil {
		return StatsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting monthly stats"), http.StatusInternalServerError)
	}

	return response, nil
}

// GetLogs lists ledger rows for admins with the enumerated filters.
func (r Repository) GetLogs(ctx context.Context, filter LogsFilter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE a.deleted_at IS NULL"
	var args []interface{}

	if filter.Date != nil {
		day, err := ParseDay(*filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(err, http.StatusBadRequest)
		}
		args = append(args, day)
		whereQuery += fmt.Sprintf(" AND a.date = $%d", len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		whereQuery += fmt.Sprintf(" AND a.subject_id = $%d", len(args))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		whereQuery += fmt.Sprintf(" AND a.student_id = $%d", len(args))
	}
	if filter.Status != nil {
		if !ValidStatus(*filter.Status) {
			return nil, 0, web.NewRequestError(errors.Errorf("unknown status %q", *filter.Status), http.StatusBadRequest)
		}
		args = append(args, *filter.Status)
		whereQuery += fmt.Sprintf(" AND a.status = $%d", len(args))
	}

	countQuery := "SELECT count(a.id) " + listJoins + whereQuery

	query := "SELECT " + listColumns + listJoins + whereQuery + " ORDER BY a.date DESC, a.id"
	query += pageQuery(filter.Page, filter.Limit)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance logs"), http.StatusInternalServerError)
	}
	defer rows.Close()

	list, err := r.scanList(rows)
	if err != nil {
		return nil, 0, web.NewRequestError(err, http.StatusInternalServerError)
	}

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting attendance logs"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetDashboardStats aggregates the admin dashboard numbers.
func (r Repository) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return DashboardStats{}, err
	}

	var response DashboardStats
	var present, total int

	err = r.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM users WHERE deleted_at IS NULL AND role = 'STUDENT' AND is_active) AS total_students,
			(SELECT count(*) FROM users WHERE deleted_at IS NULL AND role = 'TEACHER' AND is_active) AS total_teachers,
			(SELECT count(*) FROM subjects WHERE deleted_at IS NULL AND is_active) AS total_subjects,
			(SELECT count(*) FROM attendance WHERE deleted_at IS NULL AND date = CURRENT_DATE AND status IN ('present', 'late')) AS today_present,
			(SELECT count(*) FROM attendance WHERE deleted_at IS NULL AND date = CURRENT_DATE AND status = 'absent') AS today_absent,
			(SELECT count(*) FROM attendance WHERE deleted_at IS NULL AND date = CURRENT_DATE) AS today_total,
			(SELECT count(*) FROM attendance WHERE deleted_at IS NULL AND status IN ('present', 'late')) AS present,
			(SELECT count(*) FROM attendance WHERE deleted_at IS NULL) AS total
	`).Scan(
		&response.TotalStudents,
		&response.TotalTeachers,
		&response.TotalSubjects,
		&response.TodayPresent,
		&response.TodayAbsent,
		&response.TodayTotal,
		&present,
		&total,
	)
	if err != nil {
		return DashboardStats{}, web.NewRequestError(errors.Wrap(err, "selecting dashboard stats"), http.StatusInternalServerError)
	}

	response.OverallPercentage = Percentage(present, 0, total)

	rows, err := r.QueryContext(ctx, `
		SELECT
			s.code,
			s.name,
			count(*) AS total,
			count(*) FILTER (WHERE a.status IN ('present', 'late')) AS present
		FROM attendance a
		JOIN subjects s ON s.id = a.subject_id
		WHERE a.deleted_at IS NULL
		GROUP BY s.code, s.name
		ORDER BY s.code
	`)
	if err != nil {
		return DashboardStats{}, web.NewRequestError(errors.Wrap(err, "selecting dashboard subject stats"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var s DashboardSubjectStats
		if err = rows.Scan(&s.SubjectCode, &s.SubjectName, &s.Total, &s.Present); err != nil {
			return DashboardStats{}, web.NewRequestError(errors.Wrap(err, "scanning dashboard subject stats"), http.StatusInternalServerError)
		}
		s.Percentage = Percentage(s.Present, 0, s.Total)
		response.BySubject = append(response.BySubject, s)
	}
	if err = rows.Err(); err != nil {
		return DashboardStats{}, web.NewRequestError(errors.Wrap(err, "selecting dashboard subject stats"), http.StatusInternalServerError)
	}

	return response, nil
}

// GetExportRows returns the rows of an admin export, newest day first.
func (r Repository) GetExportRows(ctx context.Context, filter ExportFilter) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	whereQuery := "WHERE a.deleted_at IS NULL"
	var args []interface{}

	if filter.StartDate != nil && filter.EndDate != nil {
		start, err := ParseDay(*filter.StartDate)
		if err != nil {
			return nil, web.NewRequestError(err, http.StatusBadRequest)
		}
		end, err := ParseDay(*filter.EndDate)
		if err != nil {
			return nil, web.NewRequestError(err, http.StatusBadRequest)
		}
		args = append(args, start)
		whereQuery += fmt.Sprintf(" AND a.date >= $%d", len(args))
		args = append(args, end)
		whereQuery += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		whereQuery += fmt.Sprintf(" AND a.subject_id = $%d", len(args))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		whereQuery += fmt.Sprintf(" AND a.student_id = $%d", len(args))
	}

	query := `
		SELECT
			a.date,
			COALESCE(st.user_id, ''),
			COALESCE(st.full_name, ''),
			COALESCE(st.batch, ''),
			COALESCE(s.code, ''),
			COALESCE(s.name, ''),
			a.status,
			COALESCE(m.full_name, '')
	` + listJoins + whereQuery + " ORDER BY a.date DESC, a.id"

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting export rows"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ExportRow

	for rows.Next() {
		var row ExportRow
		var dateString string

		if err = rows.Scan(
			&dateString,
			&row.StudentCode,
			&row.StudentName,
			&row.Batch,
			&row.SubjectCode,
			&row.SubjectName,
			&row.Status,
			&row.MarkedBy,
		); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning export row"), http.StatusInternalServerError)
		}

		day, err := date.ParseDate(dateString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting export date"), http.StatusInternalServerError)
		}
		row.Date = day.ToTime()

		list = append(list, row)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting export rows"), http.StatusInternalServerError)
	}

	return list, nil
}

func pageQuery(page, limit *int) string {
	q := ""

	if limit != nil {
		q += fmt.Sprintf(" LIMIT %d", *limit)
		if page != nil && *page > 1 {
			q += fmt.Sprintf(" OFFSET %d", (*page-1)*(*limit))
		}
	}

	return q
}
