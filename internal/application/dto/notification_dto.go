package dto

import "time"

// NotificationResponse output for a notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse paginated notification list with the unread total.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
	Page   PageResponse           `json:"page"`
}
