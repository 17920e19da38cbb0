package repository

import (
	"context"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// FeaturedRepository port de persistance pour les produits vedettes.
type FeaturedRepository interface {
	List(ctx context.Context) ([]entity.FeaturedProduct, error)
	Count(ctx context.Context) (int, error)
	FindByProduit(ctx context.Context, produitID string) (*entity.FeaturedProduct, error)
	Insert(ctx context.Context, fp *entity.FeaturedProduct) error
	Delete(ctx context.Context, id string) error
	UpdatePosition(ctx context.Context, id string, position int) error
}

// BannerRepository port de persistance pour les bannières.
type BannerRepository interface {
	List(ctx context.Context) ([]entity.Banner, error)
	GetByID(ctx context.Context, id string) (*entity.Banner, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, b *entity.Banner) error
	Update(ctx context.Context, b *entity.Banner) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository port de persistance pour les notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)
}

// ActivityLogFilter critères de la vue admin du journal d'activité.
type ActivityLogFilter struct {
	ActionType string // vide = toutes les actions
	Search     string // ilike sur user_email et description
	Limit      int
}

// ActivityLogRepository port de persistance pour le journal d'activité.
type ActivityLogRepository interface {
	Insert(ctx context.Context, l *entity.ActivityLog) error
	List(ctx context.Context, f ActivityLogFilter) ([]entity.ActivityLog, error)
}
