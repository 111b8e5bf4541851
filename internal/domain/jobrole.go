package domain

import (
	"context"
	"time"
)

// Job role types
const (
	RoleTypeTechnical    = "technical"
	RoleTypeNonTechnical = "non-technical"
)

type JobRole struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Department   string    `json:"department"`
	Type         string    `json:"type"` // technical | non-technical
	IsActive     bool      `json:"is_active"`
	Requirements []string  `json:"requirements"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type JobRoleRepository interface {
	Create(ctx context.Context, role *JobRole) error
	GetByID(ctx context.Context, id int64) (*JobRole, error)
	Fetch(ctx context.Context) ([]JobRole, error)
	Update(ctx context.Context, role *JobRole) error
	// Delete removes the role only. Applications referencing it are left
	// in place with a dangling reference.
	Delete(ctx context.Context, id int64) error
}

type JobRoleUsecase interface {
	Create(ctx context.Context, actor *User, role *JobRole) error
	Get(ctx context.Context, id int64) (*JobRole, error)
	List(ctx context.Context) ([]JobRole, error)
	Update(ctx context.Context, actor *User, role *JobRole) error
	Delete(ctx context.Context, actor *User, id int64) error
}
