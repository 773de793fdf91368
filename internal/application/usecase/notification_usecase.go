package usecase

import (
	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// NotificationUseCase reading and acknowledging a user's notifications.
// Creation happens as a side effect of the background jobs, not here.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase builds the use case.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List lists a user's notifications with the unread counter.
func (uc *NotificationUseCase) List(tenantID, userID string, unreadOnly bool, limit, offset int) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.ListByUser(tenantID, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.UnreadCount(tenantID, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items:  items,
		Unread: unread,
		Page:   dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MarkRead acknowledges one notification.
func (uc *NotificationUseCase) MarkRead(tenantID, userID, id string) error {
	return uc.repo.MarkRead(tenantID, userID, id)
}

// MarkAllRead acknowledges everything unread.
func (uc *NotificationUseCase) MarkAllRead(tenantID, userID string) error {
	return uc.repo.MarkAllRead(tenantID, userID)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
