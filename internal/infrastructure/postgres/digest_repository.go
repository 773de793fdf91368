package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.DigestRepository = (*DigestRepo)(nil)

// DigestRepo read-only aggregate queries feeding the digest emails.
type DigestRepo struct {
	pool *pgxpool.Pool
}

// NewDigestRepository builds the digest query adapter.
func NewDigestRepository(pool *pgxpool.Pool) *DigestRepo {
	return &DigestRepo{pool: pool}
}

// OverdueIncidents returns open incidents assigned to (or reported by) the
// user whose due date has passed.
func (r *DigestRepo) OverdueIncidents(ctx context.Context, tenantID, userID string, now time.Time) ([]repository.DigestItem, error) {
	const query = `
		SELECT id, title, due_date
		FROM incidents
		WHERE tenant_id = $1
		  AND (assigned_to = $2 OR (assigned_to = '' AND reported_by = $2))
		  AND status <> 'CLOSED'
		  AND due_date IS NOT NULL AND due_date < $3
		ORDER BY due_date`
	return r.queryItems(ctx, query, "incident", tenantID, userID, now)
}

// OverdueMeasures returns the user's open measures past their due date.
func (r *DigestRepo) OverdueMeasures(ctx context.Context, tenantID, userID string, now time.Time) ([]repository.DigestItem, error) {
	const query = `
		SELECT id, title, due_date
		FROM measures
		WHERE tenant_id = $1 AND assigned_to = $2
		  AND status = 'OPEN'
		  AND due_date IS NOT NULL AND due_date < $3
		ORDER BY due_date`
	return r.queryItems(ctx, query, "measure", tenantID, userID, now)
}

// UpcomingMeasures returns the user's open measures due inside the window.
func (r *DigestRepo) UpcomingMeasures(ctx context.Context, tenantID, userID string, from, to time.Time) ([]repository.DigestItem, error) {
	const query = `
		SELECT id, title, due_date
		FROM measures
		WHERE tenant_id = $1 AND assigned_to = $2
		  AND status = 'OPEN'
		  AND due_date >= $3 AND due_date < $4
		ORDER BY due_date`
	return r.queryItems(ctx, query, "measure", tenantID, userID, from, to)
}

// ExpiringTraining returns the user's training records expiring before the
// deadline, already-expired ones included.
func (r *DigestRepo) ExpiringTraining(ctx context.Context, tenantID, userID string, to time.Time) ([]repository.DigestItem, error) {
	const query = `
		SELECT id, title, expires_at
		FROM training_records
		WHERE tenant_id = $1 AND user_id = $2
		  AND expires_at IS NOT NULL AND expires_at < $3
		ORDER BY expires_at`
	return r.queryItems(ctx, query, "training", tenantID, userID, to)
}

// UpcomingEvents returns tenant-wide audits, inspections and management
// review meetings scheduled inside the window.
func (r *DigestRepo) UpcomingEvents(ctx context.Context, tenantID string, from, to time.Time) ([]repository.DigestItem, error) {
	const query = `
		SELECT id, title, lower(type) AS kind, scheduled_at
		FROM audits
		WHERE tenant_id = $1 AND status = 'PLANNED'
		  AND scheduled_at >= $2 AND scheduled_at < $3
		UNION ALL
		SELECT id, title, 'meeting' AS kind, scheduled_at
		FROM meetings
		WHERE tenant_id = $1 AND status = 'PLANNED'
		  AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at`
	rows, err := r.pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("digest.UpcomingEvents: %w", err)
	}
	defer rows.Close()
	var items []repository.DigestItem
	for rows.Next() {
		var it repository.DigestItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Kind, &it.Due); err != nil {
			return nil, fmt.Errorf("digest.UpcomingEvents scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReviewCounts counts documents, chemicals and risk assessments whose next
// review falls before the deadline.
func (r *DigestRepo) ReviewCounts(ctx context.Context, tenantID string, by time.Time) (repository.ReviewCounts, error) {
	const query = `
		SELECT
		    (SELECT COUNT(*) FROM documents
		     WHERE tenant_id = $1 AND status = 'PUBLISHED'
		       AND next_review_date IS NOT NULL AND next_review_date < $2) AS documents,
		    (SELECT COUNT(*) FROM chemicals
		     WHERE tenant_id = $1 AND status = 'ACTIVE'
		       AND next_review_date IS NOT NULL AND next_review_date < $2) AS chemicals,
		    (SELECT COUNT(*) FROM risk_assessments
		     WHERE tenant_id = $1 AND status = 'APPROVED'
		       AND next_review_date IS NOT NULL AND next_review_date < $2) AS risks`
	var c repository.ReviewCounts
	err := r.pool.QueryRow(ctx, query, tenantID, by).Scan(&c.Documents, &c.Chemicals, &c.Risks)
	if err != nil {
		return repository.ReviewCounts{}, fmt.Errorf("digest.ReviewCounts: %w", err)
	}
	return c, nil
}

// UnreadNotifications counts the user's unread notifications.
func (r *DigestRepo) UnreadNotifications(ctx context.Context, tenantID, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE tenant_id = $1 AND user_id = $2 AND is_read = false`,
		tenantID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("digest.UnreadNotifications: %w", err)
	}
	return count, nil
}

// queryItems runs a (id, title, due) query and tags every row with kind.
func (r *DigestRepo) queryItems(ctx context.Context, query, kind string, args ...any) ([]repository.DigestItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("digest query (%s): %w", kind, err)
	}
	defer rows.Close()
	var items []repository.DigestItem
	for rows.Next() {
		it := repository.DigestItem{Kind: kind}
		if err := rows.Scan(&it.ID, &it.Title, &it.Due); err != nil {
			return nil, fmt.Errorf("digest scan (%s): %w", kind, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
