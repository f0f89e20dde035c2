package entity

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs"`

	ID          int             `json:"id"           bun:"id,pk,autoincrement"`
	Action      string          `json:"action"       bun:"action"`
	Entity      string          `json:"entity"       bun:"entity"`
	EntityID    *int            `json:"entity_id"    bun:"entity_id"`
	PerformedBy int             `json:"performed_by" bun:"performed_by"`
	Details     json.RawMessage `json:"details"      bun:"details,type:jsonb"`
	IPAddress   *string         `json:"ip_address"   bun:"ip_address"`
	UserAgent   *string         `json:"user_agent"   bun:"user_agent"`
	CreatedAt   time.Time       `json:"created_at"   bun:"created_at"`
}
