package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// NotificationRepository persistence port for notifications.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	// CreateBatch inserts several notifications in one call (SDS fan-out).
	CreateBatch(ns []*entity.Notification) error
	ListByUser(tenantID, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	UnreadCount(tenantID, userID string) (int, error)
	MarkRead(tenantID, userID, id string) error
	MarkAllRead(tenantID, userID string) error
}
