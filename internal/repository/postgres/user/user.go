package user

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func validRole(role string) bool {
	switch role {
	case auth.RoleAdmin, auth.RoleTeacher, auth.RoleStudent:
		return true
	}

	return false
}

// GetByUserID looks a user up by login id for sign-in. Inactive accounts
// cannot sign in.
func (r Repository) GetByUserID(ctx context.Context, userID string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("user_id = ? AND deleted_at IS NULL AND is_active", userID).
		Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("user not found"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

const listColumns = `
	u.id,
	u.user_id,
	u.full_name,
	u.role,
	u.batch,
	u.semester,
	u.register_number,
	u.department_id,
	d.name,
	u.phone,
	u.email,
	u.is_active
`

const listJoins = `
	FROM users u
	LEFT JOIN department d ON d.id = u.department_id
`

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE u.deleted_at IS NULL"
	var args []interface{}

	if filter.Search != nil {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		whereQuery += fmt.Sprintf(" AND (u.user_id ILIKE $%d OR u.full_name ILIKE $%d)", len(args), len(args))
	}
	if filter.Role != nil {
		role := strings.ToUpper(*filter.Role)
		if !validRole(role) {
			return nil, 0, web.NewRequestError(errors.Errorf("unknown role %q", *filter.Role), http.StatusBadRequest)
		}
		args = append(args, role)
		whereQuery += fmt.Sprintf(" AND u.role = $%d", len(args))
	}
	if filter.Batch != nil {
		args = append(args, *filter.Batch)
		whereQuery += fmt.Sprintf(" AND u.batch = $%d", len(args))
	}
	if filter.Semester != nil {
		args = append(args, *filter.Semester)
		whereQuery += fmt.Sprintf(" AND u.semester = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		whereQuery += fmt.Sprintf(" AND u.department_id = $%d", len(args))
	}

	query := "SELECT " + listColumns + listJoins + whereQuery + " ORDER BY u.created_at DESC"

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
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FullName,
			&detail.Role,
			&detail.Batch,
			&detail.Semester,
			&detail.RegisterNumber,
			&detail.DepartmentID,
			&detail.Department,
			&detail.Phone,
			&detail.Email,
			&detail.IsActive,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	countQuery := "SELECT count(u.id) " + listJoins + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting users"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	return r.detail(ctx, id)
}

// GetMe returns the calling user's own profile.
func (r Repository) GetMe(ctx context.Context) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	return r.detail(ctx, claims.UserId)
}

func (r Repository) detail(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	query := "SELECT " + listColumns + listJoins + "WHERE u.deleted_at IS NULL AND u.id = $1"

	var detail GetDetailByIdResponse

	err := r.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.FullName,
		&detail.Role,
		&detail.Batch,
		&detail.Semester,
		&detail.RegisterNumber,
		&detail.DepartmentID,
		&detail.Department,
		&detail.Phone,
		&detail.Email,
		&detail.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "UserID", "Password", "FullName", "Role"); err != nil {
		return CreateResponse{}, err
	}

	role := strings.ToUpper(*request.Role)
	if !validRole(role) {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be ADMIN, TEACHER or STUDENT"), http.StatusBadRequest)
	}

	userIdUsed := true
	if err := r.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1 AND deleted_at IS NULL)
	`, *request.UserID).Scan(&userIdUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "user_id check"), http.StatusInternalServerError)
	}
	if userIdUsed {
		return CreateResponse{}, web.NewRequestError(errors.New("user_id is used"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	var response CreateResponse

	response.UserID = request.UserID
	response.Password = &hashedPassword
	response.Role = &role
	response.FullName = request.FullName
	response.Batch = request.Batch
	response.Semester = request.Semester
	response.RegisterNumber = request.RegisterNumber
	response.DepartmentID = request.DepartmentID
	response.Phone = request.Phone
	response.Email = request.Email
	response.IsActive = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	response.Password = nil

	return response, nil
}

// CreateMany creates users one by one. A failed row is logged and skipped so
// one bad import line never takes the file down; the returned count is the
// number actually created.
func (r Repository) CreateMany(ctx context.Context, requests []CreateRequest) (int, error) {
	created := 0
	for _, request := range requests {
		if _, err := r.Create(ctx, request); err != nil {
			if _, ok := web.IsRequestError(err); ok {
				id := ""
				if request.UserID != nil {
					id = *request.UserID
				}
				log.Printf("importing user %s: %v", id, err)
				continue
			}
			return created, err
		}
		created++
	}

	return created, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.UserID != nil {
		userIdUsed := true
		if err := r.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1 AND deleted_at IS NULL AND id != $2)
		`, *request.UserID, request.ID).Scan(&userIdUsed); err != nil {
			return web.NewRequestError(errors.Wrap(err, "user_id check"), http.StatusInternalServerError)
		}
		if userIdUsed {
			return web.NewRequestError(errors.New("user_id is used"), http.StatusBadRequest)
		}
		q.Set("user_id = ?", request.UserID)
	}

	if request.Role != nil {
		role := strings.ToUpper(*request.Role)
		if !validRole(role) {
			return web.NewRequestError(errors.New("incorrect role. role should be ADMIN, TEACHER or STUDENT"), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}

	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}

	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.Batch != nil {
		q.Set("batch = ?", request.Batch)
	}
	if request.Semester != nil {
		q.Set("semester = ?", request.Semester)
	}
	if request.RegisterNumber != nil {
		q.Set("register_number = ?", request.RegisterNumber)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// ChangePassword changes the calling user's own password after verifying the
// old one.
func (r Repository) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "OldPassword", "NewPassword"); err != nil {
		return err
	}

	var current string
	err = r.QueryRowContext(ctx, `
		SELECT password FROM users WHERE id = $1 AND deleted_at IS NULL
	`, claims.UserId).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting password"), http.StatusInternalServerError)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(current), []byte(request.OldPassword)); err != nil {
		return web.NewRequestError(errors.New("incorrect old password"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	_, err = r.NewUpdate().Table("users").
		Where("deleted_at IS NULL AND id = ?", claims.UserId).
		Set("password = ?", string(hash)).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating password"), http.StatusInternalServerError)
	}

	return nil
}

// ExistingUserIDs returns every login id currently taken, for import
// validation.
func (r Repository) ExistingUserIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT user_id FROM users WHERE deleted_at IS NULL
	`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting user ids"), http.StatusInternalServerError)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning user id"), http.StatusInternalServerError)
		}
		ids[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting user ids"), http.StatusInternalServerError)
	}

	return ids, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "users", id)
}
