package domain

import (
	"context"
	"time"
)

// ActivityLogEntry is one immutable line of the audit trail. The ledger
// is append-only: the repository exposes no update or delete.
type ActivityLogEntry struct {
	ID              int64     `json:"id"`
	ApplicationID   int64     `json:"application_id"`
	Action          string    `json:"action"`
	PreviousStatus  *string   `json:"previous_status,omitempty"` // nil for creation events
	NewStatus       string    `json:"new_status"`
	Comment         *string   `json:"comment,omitempty"`
	PerformedBy     string    `json:"performed_by"`
	PerformedByRole string    `json:"performed_by_role"` // applicant | admin | bot
	IsAutomated     bool      `json:"is_automated"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined data
	PerformedByUsername *string `json:"performed_by_username,omitempty"`
}

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *ActivityLogEntry) error
	// ListByApplication returns the application's trail, newest first.
	ListByApplication(ctx context.Context, applicationID int64) ([]ActivityLogEntry, error)
	// ListAutomated returns the most recent automated entries.
	ListAutomated(ctx context.Context, limit int) ([]ActivityLogEntry, error)
	CountAutomated(ctx context.Context) (int64, error)
}
