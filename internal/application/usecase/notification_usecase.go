package usecase

import (
	"context"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// NotificationUseCase lecture des notifications de l'utilisateur connecté.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase construit le cas d'usage.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// List retourne les notifications de l'utilisateur et le compteur non lues.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, limit int) (*dto.NotificationListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	list, err := uc.notifications.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := uc.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Type:      n.Type,
			Lu:        n.Lu,
			CreatedAt: n.CreatedAt,
		})
	}
	return &dto.NotificationListResponse{Items: items, Unread: unread}, nil
}

// MarkRead marque une notification de l'utilisateur comme lue.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.notifications.MarkRead(ctx, id, userID)
}
