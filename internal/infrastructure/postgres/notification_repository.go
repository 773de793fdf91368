package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implements NotificationRepository over PostgreSQL (usable with pool or tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository builds the notification persistence adapter. Pass pool or tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, tenant_id, user_id, type, title, message, link, is_read, created_at`

// Create persists one notification.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.TenantID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// CreateBatch inserts several notifications in one round trip (SDS fan-out).
func (r *NotificationRepo) CreateBatch(ns []*entity.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, n := range ns {
		batch.Queue(query, n.ID, n.TenantID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range ns {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert notification batch: %w", err)
		}
	}
	return nil
}

// ListByUser lists a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(tenantID, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE tenant_id = $1 AND user_id = $2 AND ($3 = false OR is_read = false)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, tenantID, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.TenantID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// UnreadCount counts a user's unread notifications.
func (r *NotificationRepo) UnreadCount(tenantID, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM notifications WHERE tenant_id = $1 AND user_id = $2 AND is_read = false`,
		tenantID, userID,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read.
func (r *NotificationRepo) MarkRead(tenantID, userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE tenant_id = $1 AND user_id = $2 AND id = $3`,
		tenantID, userID, id,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read.
func (r *NotificationRepo) MarkAllRead(tenantID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE tenant_id = $1 AND user_id = $2 AND is_read = false`,
		tenantID, userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
