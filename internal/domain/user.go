package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleApplicant = "applicant"
	RoleAdmin     = "admin"
	RoleBot       = "bot"
)

type User struct {
	ID        string    `json:"id"` // UUID
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // applicant | admin | bot
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FindFirstByRole returns the oldest user holding the given role,
	// or ErrNotFound. Used to resolve the automation actor.
	FindFirstByRole(ctx context.Context, role string) (*User, error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	ResolveAutomationActor(ctx context.Context) (*User, error)
}
