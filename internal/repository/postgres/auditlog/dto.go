package auditlog

import (
	"encoding/json"
	"time"
)

type Filter struct {
	Limit       *int
	Offset      *int
	Page        *int
	Action      *string
	Entity      *string
	PerformedBy *int
	StartDate   *string
	EndDate     *string
}

type GetListResponse struct {
	ID          int             `json:"id"`
	Action      string          `json:"action"`
	Entity      string          `json:"entity"`
	EntityID    *int            `json:"entity_id"`
	PerformedBy int             `json:"performed_by"`
	Performer   *string         `json:"performer"`
	Details     json.RawMessage `json:"details"`
	IPAddress   *string         `json:"ip_address"`
	UserAgent   *string         `json:"user_agent"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Entry is what emitters hand in; everything else is stamped by the store.
type Entry struct {
	Action      string
	Entity      string
	EntityID    *int
	PerformedBy int
	Details     interface{}
	IPAddress   string
	UserAgent   string
}
