package auditlog

import (
	"context"

	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/auditlog"
)

type AuditLog interface {
	GetList(ctx context.Context, filter auditlog.Filter) ([]auditlog.GetListResponse, int, error)
}
