package subject

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// ResolveTeacherAccess checks whether the calling teacher may mutate the given
// subject and returns the typed access the mutation paths require. The answer
// comes from a fresh query every time; nothing inside a token survives an
// unassignment. A teacher is allowed when the subject row names them as the
// teacher or when a subject_teachers row does.
func (r Repository) ResolveTeacherAccess(ctx context.Context, subjectID int) (entity.SubjectAccess, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleTeacher)
	if err != nil {
		return entity.SubjectAccess{}, err
	}

	var allowed bool

	err = r.QueryRowContext(ctx, `
		SELECT
			COALESCE(s.teacher_id = $2, false) OR EXISTS (
				SELECT 1 FROM subject_teachers st
				WHERE st.subject_id = s.id AND st.teacher_id = $2
			)
		FROM subjects s
		WHERE s.deleted_at IS NULL AND s.id = $1
	`, subjectID, claims.UserId).Scan(&allowed)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.SubjectAccess{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.SubjectAccess{}, web.NewRequestError(errors.Wrap(err, "checking subject access"), http.StatusInternalServerError)
	}

	if !allowed {
		return entity.SubjectAccess{}, web.NewRequestError(postgres.ErrNotAssigned, http.StatusForbidden)
	}

	return entity.SubjectAccess{TeacherID: claims.UserId, SubjectID: subjectID}, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Subject, error) {
	var detail entity.Subject

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Subject{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Subject{}, web.NewRequestError(errors.Wrap(err, "selecting subject"), http.StatusInternalServerError)
	}

	return detail, nil
}

const listColumns = `
	s.id,
	s.code,
	s.name,
	s.description,
	s.department_id,
	d.name,
	s.semester,
	s.teacher_id,
	t.full_name,
	s.is_active
`

const listJoins = `
	FROM subjects s
	LEFT JOIN department d ON d.id = s.department_id
	LEFT JOIN users t ON t.id = s.teacher_id
`

func scanList(rows *sql.Rows) ([]GetListResponse, error) {
	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err := rows.Scan(
			&detail.ID,
			&detail.Code,
			&detail.Name,
			&detail.Description,
			&detail.DepartmentID,
			&detail.Department,
			&detail.Semester,
			&detail.TeacherID,
			&detail.TeacherName,
			&detail.IsActive,
		); err != nil {
			return nil, errors.Wrap(err, "scanning subject list")
		}

		list = append(list, detail)
	}

	return list, rows.Err()
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE s.deleted_at IS NULL"
	var args []interface{}

	if filter.Search != nil {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		whereQuery += fmt.Sprintf(" AND (s.code ILIKE $%d OR s.name ILIKE $%d)", len(args), len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		whereQuery += fmt.Sprintf(" AND s.department_id = $%d", len(args))
	}
	if filter.Semester != nil {
		args = append(args, *filter.Semester)
		whereQuery += fmt.Sprintf(" AND s.semester = $%d", len(args))
	}

	query := "SELECT " + listColumns + listJoins + whereQuery + " ORDER BY s.code"

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting subjects"), http.StatusInternalServerError)
	}
	defer rows.Close()

	list, err := scanList(rows)
	if err != nil {
		return nil, 0, web.NewRequestError(err, http.StatusInternalServerError)
	}

	countQuery := "SELECT count(s.id) " + listJoins + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting subjects"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := "SELECT " + listColumns + `,
		(SELECT count(*) FROM subject_students ss WHERE ss.subject_id = s.id)
	` + listJoins + "WHERE s.deleted_at IS NULL AND s.id = $1"

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.Code,
		&detail.Name,
		&detail.Description,
		&detail.DepartmentID,
		&detail.Department,
		&detail.Semester,
		&detail.TeacherID,
		&detail.TeacherName,
		&detail.IsActive,
		&detail.Students,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting subject detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetMySubjects lists the subjects the calling teacher owns or is assigned to.
func (r Repository) GetMySubjects(ctx context.Context) ([]GetListResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleTeacher)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + listColumns + listJoins + `
		WHERE s.deleted_at IS NULL AND s.is_active AND (
			s.teacher_id = $1 OR EXISTS (
				SELECT 1 FROM subject_teachers st
				WHERE st.subject_id = s.id AND st.teacher_id = $1
			)
		)
		ORDER BY s.code
	`

	rows, err := r.QueryContext(ctx, query, claims.UserId)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting teacher subjects"), http.StatusInternalServerError)
	}
	defer rows.Close()

	list, err := scanList(rows)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return list, nil
}

// GetStudents lists the students enrolled in one subject.
func (r Repository) GetStudents(ctx context.Context, subjectID int) ([]GetStudentResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleTeacher, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			u.id,
			u.user_id,
			u.full_name,
			u.batch,
			u.semester,
			u.register_number
		FROM subject_students ss
		JOIN users u ON u.id = ss.student_id
		WHERE u.deleted_at IS NULL AND u.is_active AND ss.subject_id = $1
		ORDER BY u.full_name
	`, subjectID)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting subject students"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetStudentResponse

	for rows.Next() {
		var detail GetStudentResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FullName,
			&detail.Batch,
			&detail.Semester,
			&detail.RegisterNumber,
		); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning subject student"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting subject students"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Code", "Name"); err != nil {
		return CreateResponse{}, err
	}

	codeUsed := true
	if err := r.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM subjects WHERE code = $1 AND deleted_at IS NULL)
	`, *request.Code).Scan(&codeUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "subject code check"), http.StatusInternalServerError)
	}
	if codeUsed {
		return CreateResponse{}, web.NewRequestError(errors.New("subject code is used"), http.StatusBadRequest)
	}

	var response CreateResponse

	response.Code = request.Code
	response.Name = request.Name
	response.Description = request.Description
	response.DepartmentID = request.DepartmentID
	response.Semester = request.Semester
	response.TeacherID = request.TeacherID
	response.IsActive = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating subject"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("subjects").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Code != nil {
		codeUsed := true
		if err := r.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM subjects WHERE code = $1 AND deleted_at IS NULL AND id != $2)
		`, *request.Code, request.ID).Scan(&codeUsed); err != nil {
			return web.NewRequestError(errors.Wrap(err, "subject code check"), http.StatusInternalServerError)
		}
		if codeUsed {
			return web.NewRequestError(errors.New("subject code is used"), http.StatusBadRequest)
		}
		q.Set("code = ?", request.Code)
	}

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Description != nil {
		q.Set("description = ?", request.Description)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.Semester != nil {
		q.Set("semester = ?", request.Semester)
	}
	if request.TeacherID != nil {
		q.Set("teacher_id = ?", request.TeacherID)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating subject"), http.StatusBadRequest)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// AssignTeacher adds a co-teacher to a subject. Assigning the same teacher
// twice is a no-op.
func (r Repository) AssignTeacher(ctx context.Context, request AssignTeacherRequest) error {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "SubjectID", "TeacherID"); err != nil {
		return err
	}

	if _, err := r.GetById(ctx, *request.SubjectID); err != nil {
		return err
	}

	_, err = r.ExecContext(ctx, `
		INSERT INTO subject_teachers (subject_id, teacher_id)
		VALUES ($1, $2)
		ON CONFLICT (subject_id, teacher_id) DO NOTHING
	`, *request.SubjectID, *request.TeacherID)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "assigning teacher"), http.StatusBadRequest)
	}

	return nil
}

// EnrollStudents enrolls students into a subject and returns how many rows
// were actually added; duplicates are skipped.
func (r Repository) EnrollStudents(ctx context.Context, request EnrollStudentsRequest) (int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return 0, err
	}

	if err := r.ValidateStruct(&request, "SubjectID"); err != nil {
		return 0, err
	}
	if len(request.StudentIDs) == 0 {
		return 0, web.NewRequestError(errors.New("student_ids are required"), http.StatusBadRequest)
	}

	if _, err := r.GetById(ctx, *request.SubjectID); err != nil {
		return 0, err
	}

	enrolled := 0
	for _, studentID := range request.StudentIDs {
		res, err := r.ExecContext(ctx, `
			INSERT INTO subject_students (subject_id, student_id)
			VALUES ($1, $2)
			ON CONFLICT (subject_id, student_id) DO NOTHING
		`, *request.SubjectID, studentID)
		if err != nil {
			return enrolled, web.NewRequestError(errors.Wrap(err, "enrolling student"), http.StatusBadRequest)
		}

		if n, _ := res.RowsAffected(); n > 0 {
			enrolled++
		}
	}

	return enrolled, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "subjects", id)
}
