package repository

import (
	"context"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// UserRepository port de persistance pour les profils utilisateurs.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateStatut(ctx context.Context, id, statut string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
}

// RoleRepository port de persistance pour les attributions de rôle (user_roles).
type RoleRepository interface {
	Create(ctx context.Context, a *entity.RoleAssignment) error
	ListByUser(ctx context.Context, userID string) ([]entity.RoleAssignment, error)
	UpdateStatut(ctx context.Context, id, statut string) error
	// ListByRoleAndStatut sert la vue admin "vendeurs en attente de validation".
	ListByRoleAndStatut(ctx context.Context, role, statut string) ([]entity.RoleAssignment, error)
}
