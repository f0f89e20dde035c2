package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/entity"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

const recordTimeout = 5 * time.Second

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Record writes one audit entry in the background. The write is detached from
// the request: it never blocks the caller and a failed write is logged and
// swallowed, the business response is already decided by then.
func (r Repository) Record(entry Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := r.record(ctx, entry); err != nil {
			log.Printf("recording audit entry %s %s: %v", entry.Action, entry.Entity, err)
		}
	}()
}

func (r Repository) record(ctx context.Context, entry Entry) error {
	details := json.RawMessage("{}")
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return errors.Wrap(err, "encoding details")
		}
		details = raw
	}

	row := entity.AuditLog{
		Action:      entry.Action,
		Entity:      entry.Entity,
		EntityID:    entry.EntityID,
		PerformedBy: entry.PerformedBy,
		Details:     details,
		CreatedAt:   time.Now(),
	}
	if entry.IPAddress != "" {
		row.IPAddress = &entry.IPAddress
	}
	if entry.UserAgent != "" {
		row.UserAgent = &entry.UserAgent
	}

	if _, err := r.NewInsert().Model(&row).Exec(ctx); err != nil {
		return errors.Wrap(err, "inserting audit entry")
	}

	return nil
}

// GetList lists audit entries for admins, newest first.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE true"
	var args []interface{}

	if filter.Action != nil {
		args = append(args, *filter.Action)
		whereQuery += fmt.Sprintf(" AND l.action = $%d", len(args))
	}
	if filter.Entity != nil {
		args = append(args, *filter.Entity)
		whereQuery += fmt.Sprintf(" AND l.entity = $%d", len(args))
	}
	if filter.PerformedBy != nil {
		args = append(args, *filter.PerformedBy)
		whereQuery += fmt.Sprintf(" AND l.performed_by = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		whereQuery += fmt.Sprintf(" AND l.created_at >= $%d::date", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		whereQuery += fmt.Sprintf(" AND l.created_at < $%d::date + interval '1 day'", len(args))
	}

	const joins = `
		FROM audit_logs l
		LEFT JOIN users u ON u.id = l.performed_by
	`

	query := `
		SELECT
			l.id,
			l.action,
			l.entity,
			l.entity_id,
			l.performed_by,
			u.full_name,
			l.details,
			l.ip_address,
			l.user_agent,
			l.created_at
	` + joins + whereQuery + " ORDER BY l.created_at DESC, l.id DESC"

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
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting audit entries"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Action,
			&detail.Entity,
			&detail.EntityID,
			&detail.PerformedBy,
			&detail.Performer,
			&detail.Details,
			&detail.IPAddress,
			&detail.UserAgent,
			&detail.CreatedAt,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning audit entry"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting audit entries"), http.StatusInternalServerError)
	}

	countQuery := "SELECT count(l.id) " + joins + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting audit entries"), http.StatusInternalServerError)
	}

	return list, count, nil
}
