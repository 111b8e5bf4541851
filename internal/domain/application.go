package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrConflict signals a lost compare-and-swap: another writer changed
	// the application's status between read and update.
	ErrConflict = errors.New("concurrent status update")
)

// Application represents a job application moving through the status pipeline
type Application struct {
	ID             int64      `json:"id"`
	ApplicantID    string     `json:"applicant_id"`
	JobRoleID      int64      `json:"job_role_id" validate:"required"`
	Status         string     `json:"status"` // applied → reviewed → interview → offer / rejected / withdrawn
	Resume         string     `json:"resume" validate:"required"` // URL or file path
	CoverLetter    *string    `json:"cover_letter,omitempty"`
	Experience     *int       `json:"experience,omitempty"` // years
	Skills         []string   `json:"skills,omitempty"`
	ExpectedSalary *float64   `json:"expected_salary,omitempty"`
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	IsAutomated    bool       `json:"is_automated"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Joined data for list responses. The job role join is LEFT: a role
	// deleted by an admin leaves a dangling reference, not an error.
	ApplicantUsername *string `json:"applicant_username,omitempty"`
	ApplicantEmail    *string `json:"applicant_email,omitempty"`
	JobRoleTitle      *string `json:"job_role_title,omitempty"`
	JobRoleType       *string `json:"job_role_type,omitempty"`
	JobRoleDepartment *string `json:"job_role_department,omitempty"`
}

// ApplicationFilter narrows application queries to what a role may see.
// Zero value means unrestricted (admin).
type ApplicationFilter struct {
	ApplicantID   *string
	TechnicalOnly bool
}

// ApplicationDetail bundles an application with its activity trail
type ApplicationDetail struct {
	Application *Application       `json:"application"`
	ActivityLog []ActivityLogEntry `json:"activity_log"`
}

// DashboardStats holds role-scoped aggregate counts
type DashboardStats struct {
	TotalApplications int              `json:"total_applications"`
	StatusBreakdown   map[string]int   `json:"status_breakdown"`
	AutomatedEntries  *int64           `json:"automated_entries,omitempty"` // bot/admin only
}

// BatchResult summarizes one automation run
type BatchResult struct {
	Examined int     `json:"examined"`
	Updated  []int64 `json:"updated"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	Fetch(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	CountByStatus(ctx context.Context, filter ApplicationFilter) (map[string]int, error)
	// FindEligible returns applications qualifying for automated
	// processing: technical job role and status in
	// {applied, reviewed, interview}.
	FindEligible(ctx context.Context) ([]Application, error)
	// UpdateStatus overwrites the status unconditionally (manual path).
	UpdateStatus(ctx context.Context, id int64, status string, automated bool) error
	// AdvanceStatus moves from -> to only if the stored status still
	// equals from. Returns ErrConflict when a concurrent writer won.
	AdvanceStatus(ctx context.Context, id int64, from, to string, automated bool) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	Create(ctx context.Context, actor *User, input *Application) (*Application, error)
	List(ctx context.Context, actor *User) ([]Application, error)
	Get(ctx context.Context, actor *User, id int64) (*ApplicationDetail, error)
	UpdateStatus(ctx context.Context, actor *User, id int64, status string, comment *string) (*Application, error)
	Stats(ctx context.Context, actor *User) (*DashboardStats, error)
}

// BotUsecase is the automated status-progression engine
type BotUsecase interface {
	// RunOnce examines every eligible application and, independently per
	// application, advances it one step with the configured probability.
	RunOnce(ctx context.Context, actor *User) (*BatchResult, error)
	// TriggerSingle unconditionally advances one eligible application by
	// one step, bypassing the probability draw.
	TriggerSingle(ctx context.Context, id int64, actor *User, comment *string) (*Application, error)
	// Activity returns the most recent automated ledger entries and the
	// all-time automated entry count.
	Activity(ctx context.Context, limit int) ([]ActivityLogEntry, int64, error)
}
