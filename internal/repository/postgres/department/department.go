package department

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

func (r Repository) GetById(ctx context.Context, id int) (entity.Department, error) {
	var detail entity.Department

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Department{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Department{}, web.NewRequestError(errors.Wrap(err, "selecting department"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE deleted_at IS NULL"
	var args []interface{}

	if filter.Search != nil {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		whereQuery += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	query := "SELECT id, name FROM department " + whereQuery + " ORDER BY name"

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
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting departments"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(&detail.ID, &detail.Name); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning department list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting departments"), http.StatusInternalServerError)
	}

	countQuery := "SELECT count(id) FROM department " + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting departments"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, `
		SELECT id, name FROM department WHERE deleted_at IS NULL AND id = $1
	`, id).Scan(&detail.ID, &detail.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting department detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name"); err != nil {
		return CreateResponse{}, err
	}

	nameUsed := true
	if err := r.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM department WHERE name = $1 AND deleted_at IS NULL)
	`, *request.Name).Scan(&nameUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "department name check"), http.StatusInternalServerError)
	}
	if nameUsed {
		return CreateResponse{}, web.NewRequestError(errors.New("department name is used"), http.StatusBadRequest)
	}

	var response CreateResponse

	response.Name = request.Name
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating department"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Name"); err != nil {
		return err
	}

	nameUsed := true
	if err := r.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM department WHERE name = $1 AND deleted_at IS NULL AND id != $2)
	`, *request.Name, request.ID).Scan(&nameUsed); err != nil {
		return web.NewRequestError(errors.Wrap(err, "department name check"), http.StatusInternalServerError)
	}
	if nameUsed {
		return web.NewRequestError(errors.New("department name is used"), http.StatusBadRequest)
	}

	res, err := r.NewUpdate().Table("department").
		Where("deleted_at IS NULL AND id = ?", request.ID).
		Set("name = ?", request.Name).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating department"), http.StatusBadRequest)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// Names maps department names to ids, for import validation and templates.
func (r Repository) Names(ctx context.Context) (map[string]int, error) {
	rows, err := r.QueryContext(ctx, `
		SELECT id, name FROM department WHERE deleted_at IS NULL
	`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting department names"), http.StatusInternalServerError)
	}
	defer rows.Close()

	names := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err = rows.Scan(&id, &name); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning department name"), http.StatusInternalServerError)
		}
		names[name] = id
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting department names"), http.StatusInternalServerError)
	}

	return names, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "department", id)
}
