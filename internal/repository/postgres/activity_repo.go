package postgres

import (
	"context"
	"errors"
	"time"

	"go-application-tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreign key violation
const pgErrForeignKey = "23503"

type activityLogRepo struct {
	db *pgxpool.Pool
}

// NewActivityLogRepository creates the append-only activity ledger.
// There is deliberately no update or delete: entries are immutable.
func NewActivityLogRepository(db *pgxpool.Pool) domain.ActivityLogRepository {
	return &activityLogRepo{db: db}
}

// Create appends one ledger entry. A missing application surfaces as
// domain.ErrNotFound via the foreign key.
func (r *activityLogRepo) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_logs (application_id, action, previous_status, new_status, comment, performed_by, performed_by_role, is_automated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	entry.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, query,
		entry.ApplicationID,
		entry.Action,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.Comment,
		entry.PerformedBy,
		entry.PerformedByRole,
		entry.IsAutomated,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKey {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

const activitySelect = `
	SELECT
		l.id, l.application_id, l.action, l.previous_status, l.new_status,
		l.comment, l.performed_by, l.performed_by_role, l.is_automated, l.created_at,
		u.username AS performed_by_username
	FROM activity_logs l
	LEFT JOIN users u ON l.performed_by = u.id`

// ListByApplication returns an application's trail, newest first
func (r *activityLogRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.ActivityLogEntry, error) {
	query := activitySelect + `
	WHERE l.application_id = $1
	ORDER BY l.created_at DESC`

	return r.list(ctx, query, applicationID)
}

// ListAutomated returns the most recent automated entries
func (r *activityLogRepo) ListAutomated(ctx context.Context, limit int) ([]domain.ActivityLogEntry, error) {
	query := activitySelect + `
	WHERE l.is_automated = true
	ORDER BY l.created_at DESC
	LIMIT $1`

	return r.list(ctx, query, limit)
}

func (r *activityLogRepo) CountAutomated(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs WHERE is_automated = true`).Scan(&n)
	return n, err
}

func (r *activityLogRepo) list(ctx context.Context, query string, args ...any) ([]domain.ActivityLogEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityLogEntry
	for rows.Next() {
		var e domain.ActivityLogEntry
		if err := rows.Scan(
			&e.ID, &e.ApplicationID, &e.Action, &e.PreviousStatus, &e.NewStatus,
			&e.Comment, &e.PerformedBy, &e.PerformedByRole, &e.IsAutomated, &e.CreatedAt,
			&e.PerformedByUsername,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
