package postgres

import (
	"context"
	"errors"
	"time"

	"go-application-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRoleRepo struct {
	db *pgxpool.Pool
}

// NewJobRoleRepository creates a new job role repository
func NewJobRoleRepository(db *pgxpool.Pool) domain.JobRoleRepository {
	return &jobRoleRepo{db: db}
}

// Create inserts a new job role
func (r *jobRoleRepo) Create(ctx context.Context, role *domain.JobRole) error {
	query := `
		INSERT INTO job_roles (title, description, department, type, is_active, requirements, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		role.Title,
		role.Description,
		role.Department,
		role.Type,
		role.IsActive,
		role.Requirements,
		role.CreatedBy,
		role.CreatedAt,
		role.UpdatedAt,
	).Scan(&role.ID)
}

// GetByID retrieves a job role by ID
func (r *jobRoleRepo) GetByID(ctx context.Context, id int64) (*domain.JobRole, error) {
	query := `
		SELECT id, title, description, department, type, is_active, requirements, created_by, created_at, updated_at
		FROM job_roles
		WHERE id = $1`

	var role domain.JobRole
	err := r.db.QueryRow(ctx, query, id).Scan(
		&role.ID, &role.Title, &role.Description, &role.Department, &role.Type,
		&role.IsActive, &role.Requirements, &role.CreatedBy, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// Fetch retrieves all job roles, newest first
func (r *jobRoleRepo) Fetch(ctx context.Context) ([]domain.JobRole, error) {
	query := `
		SELECT id, title, description, department, type, is_active, requirements, created_by, created_at, updated_at
		FROM job_roles
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.JobRole
	for rows.Next() {
		var role domain.JobRole
		if err := rows.Scan(
			&role.ID, &role.Title, &role.Description, &role.Department, &role.Type,
			&role.IsActive, &role.Requirements, &role.CreatedBy, &role.CreatedAt, &role.UpdatedAt,
		); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update overwrites the mutable fields of a job role
func (r *jobRoleRepo) Update(ctx context.Context, role *domain.JobRole) error {
	query := `
		UPDATE job_roles
		SET title = $2, description = $3, department = $4, type = $5, is_active = $6, requirements = $7, updated_at = $8
		WHERE id = $1`

	role.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		role.ID, role.Title, role.Description, role.Department, role.Type,
		role.IsActive, role.Requirements, role.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the role row only; applications keep their reference.
func (r *jobRoleRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM job_roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
