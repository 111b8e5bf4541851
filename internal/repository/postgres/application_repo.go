package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-application-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// columns shared by every application select; job role is LEFT JOINed so
// applications survive an admin deleting their role.
const applicationSelect = `
	SELECT
		a.id, a.applicant_id, a.job_role_id, a.status, a.resume,
		a.cover_letter, a.experience, a.skills, a.expected_salary,
		a.available_from, a.is_automated, a.created_at, a.updated_at,
		u.username AS applicant_username,
		u.email AS applicant_email,
		r.title AS job_role_title,
		r.type AS job_role_type,
		r.department AS job_role_department
	FROM applications a
	LEFT JOIN users u ON a.applicant_id = u.id
	LEFT JOIN job_roles r ON a.job_role_id = r.id`

func scanApplication(row pgx.Row, app *domain.Application) error {
	return row.Scan(
		&app.ID, &app.ApplicantID, &app.JobRoleID, &app.Status, &app.Resume,
		&app.CoverLetter, &app.Experience, &app.Skills, &app.ExpectedSalary,
		&app.AvailableFrom, &app.IsAutomated, &app.CreatedAt, &app.UpdatedAt,
		&app.ApplicantUsername, &app.ApplicantEmail,
		&app.JobRoleTitle, &app.JobRoleType, &app.JobRoleDepartment,
	)
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (applicant_id, job_role_id, status, resume, cover_letter, experience, skills, expected_salary, available_from, is_automated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}

	return r.db.QueryRow(ctx, query,
		app.ApplicantID,
		app.JobRoleID,
		app.Status,
		app.Resume,
		app.CoverLetter,
		app.Experience,
		app.Skills,
		app.ExpectedSalary,
		app.AvailableFrom,
		app.IsAutomated,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
}

// GetByID retrieves an application by ID with joined applicant and role data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := applicationSelect + ` WHERE a.id = $1`

	var app domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, query, id), &app); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Fetch retrieves applications visible under the given filter, newest first
func (r *applicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := applicationSelect
	where, args := filterClause(filter)
	query += where + ` ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CountByStatus returns per-status counts under the given filter
func (r *applicationRepo) CountByStatus(ctx context.Context, filter domain.ApplicationFilter) (map[string]int, error) {
	query := `
		SELECT a.status, COUNT(*)
		FROM applications a
		LEFT JOIN job_roles r ON a.job_role_id = r.id`
	where, args := filterClause(filter)
	query += where + ` GROUP BY a.status`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// filterClause renders an ApplicationFilter as a WHERE fragment.
func filterClause(filter domain.ApplicationFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.ApplicantID != nil {
		args = append(args, *filter.ApplicantID)
		conds = append(conds, fmt.Sprintf("a.applicant_id = $%d", len(args)))
	}
	if filter.TechnicalOnly {
		args = append(args, domain.RoleTypeTechnical)
		conds = append(conds, fmt.Sprintf("r.type = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// FindEligible returns applications qualifying for automated processing:
// technical job role, status still progressing through the pipeline.
func (r *applicationRepo) FindEligible(ctx context.Context) ([]domain.Application, error) {
	query := applicationSelect + `
	WHERE r.type = $1
	  AND a.status = ANY($2)
	ORDER BY a.created_at ASC`

	eligible := []string{domain.StatusApplied, domain.StatusReviewed, domain.StatusInterview}

	rows, err := r.db.Query(ctx, query, domain.RoleTypeTechnical, eligible)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// UpdateStatus overwrites the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string, automated bool) error {
	query := `UPDATE applications SET status = $2, is_automated = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, automated, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdvanceStatus moves from -> to only when the stored status still equals
// from. A zero-row update on an existing application means a concurrent
// writer changed the status first.
func (r *applicationRepo) AdvanceStatus(ctx context.Context, id int64, from, to string, automated bool) error {
	query := `UPDATE applications SET status = $3, is_automated = $4, updated_at = $5 WHERE id = $1 AND status = $2`
	result, err := r.db.Exec(ctx, query, id, from, to, automated, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}
