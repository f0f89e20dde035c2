package user

import (
	"errors"
	"net/http"
	"reflect"
	"sort"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/user"
	"github.com/Niranjjith/Attendance-System/internal/service"
	"github.com/Niranjjith/Attendance-System/internal/service/excel"
)

type Controller struct {
	user       User
	department Department
	baseURL    string
}

func NewController(user User, department Department, baseURL string) *Controller {
	return &Controller{user: user, department: department, baseURL: baseURL}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter user.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if role, ok := c.GetQueryFunc(reflect.String, "role").(*string); ok {
		filter.Role = role
	}
	if batch, ok := c.GetQueryFunc(reflect.String, "batch").(*string); ok {
		filter.Batch = batch
	}
	if semester, ok := c.GetQueryFunc(reflect.Int, "semester").(*int); ok {
		filter.Semester = semester
	}
	if departmentID, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.user.GetList(c.Ctx, filter)
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

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetMe(c *web.Context) error {
	response, err := uc.user.GetMe(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request user.CreateRequest
	if err := c.BindFunc(&request, "UserID", "Password", "FullName", "Role"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request user.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.user.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ChangePassword(c *web.Context) error {
	var request user.ChangePasswordRequest
	if err := c.BindFunc(&request, "OldPassword", "NewPassword"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.ChangePassword(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// ImportStudents creates student accounts from an uploaded workbook. Invalid
// lines are reported back by row number, the valid ones are still created.
func (uc Controller) ImportStudents(c *web.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("file is required"), http.StatusBadRequest))
	}

	path, err := service.Upload(file, "imports")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	departments, err := uc.department.Names(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	existing, err := uc.user.ExistingUserIDs(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	rows, invalidRows, err := excel.ReadStudentImport(path, departments, existing)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	requests := make([]user.CreateRequest, 0, len(rows))
	for _, row := range rows {
		row := row
		role := auth.RoleStudent
		request := user.CreateRequest{
			UserID:       &row.UserID,
			Password:     &row.Password,
			Role:         &role,
			FullName:     &row.FullName,
			Semester:     row.Semester,
			DepartmentID: row.DepartmentID,
		}
		if row.Batch != "" {
			request.Batch = &row.Batch
		}
		if row.RegisterNumber != "" {
			request.RegisterNumber = &row.RegisterNumber
		}
		if row.Phone != "" {
			request.Phone = &row.Phone
		}
		if row.Email != "" {
			request.Email = &row.Email
		}
		requests = append(requests, request)
	}

	created, err := uc.user.CreateMany(c.Ctx, requests)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created":      created,
			"invalid_rows": invalidRows,
		},
		"status": true,
	}, http.StatusOK)
}

// ImportTemplate streams the empty student import workbook.
func (uc Controller) ImportTemplate(c *web.Context) error {
	departments, err := uc.department.Names(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	names := make([]string, 0, len(departments))
	for name := range departments {
		names = append(names, name)
	}
	sort.Strings(names)

	content, err := excel.BuildStudentTemplate(names)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="students-template.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
	return nil
}

// Card renders a student's printable ID card with a QR code.
func (uc Controller) Card(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Role != auth.RoleStudent {
		return c.RespondError(web.NewRequestError(errors.New("cards are only issued to students"), http.StatusBadRequest))
	}

	var fullName, batch string
	if detail.FullName != nil {
		fullName = *detail.FullName
	}
	if detail.Batch != nil {
		batch = *detail.Batch
	}

	content, err := service.BuildStudentCard(detail.UserID, fullName, batch, uc.baseURL+"/student/"+detail.UserID)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="student-card.pdf"`)
	c.Data(http.StatusOK, "application/pdf", content)
	return nil
}
