package auditlog

import (
	"net/http"
	"reflect"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/auditlog"
)

type Controller struct {
	auditlog AuditLog
}

func NewController(auditlog AuditLog) *Controller {
	return &Controller{auditlog}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter auditlog.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if action, ok := c.GetQueryFunc(reflect.String, "action").(*string); ok {
		filter.Action = action
	}
	if entityName, ok := c.GetQueryFunc(reflect.String, "entity").(*string); ok {
		filter.Entity = entityName
	}
	if performedBy, ok := c.GetQueryFunc(reflect.Int, "performed_by").(*int); ok {
		filter.PerformedBy = performedBy
	}
	if startDate, ok := c.GetQueryFunc(reflect.String, "start_date").(*string); ok {
		filter.StartDate = startDate
	}
	if endDate, ok := c.GetQueryFunc(reflect.String, "end_date").(*string); ok {
		filter.EndDate = endDate
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.auditlog.GetList(c.Ctx, filter)
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
