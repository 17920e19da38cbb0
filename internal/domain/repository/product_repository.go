package repository

import (
	"context"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// ProductRepository port de persistance pour les produits.
//
// Create retourne domain.ErrDuplicateSlug sur collision de slug et
// domain.ErrPermissionDenied si la politique d'accès refuse l'écriture ; le
// cas d'usage de publication s'appuie sur ces erreurs typées pour ses replis.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	UpdateStatut(ctx context.Context, id, statut string) error
	Delete(ctx context.Context, id string) error
	ListByVendeur(ctx context.Context, vendeurID string, limit, offset int) ([]*entity.Product, error)
	ListOnline(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListByCategorie(ctx context.Context, categorieID string, limit, offset int) ([]*entity.Product, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)

	// GetForUpdate verrouille la ligne (SELECT ... FOR UPDATE) le temps de la
	// transaction de commande ; DecrementStock décrémente le stock et crédite
	// ventes_total dans la même écriture.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	DecrementStock(ctx context.Context, id string, quantite int) error

	// RestoreStock défait un DecrementStock quand la ligne quitte la chaîne
	// active (annulation ou suppression) : le stock est re-crédité et
	// ventes_total décrémenté sans jamais passer sous zéro.
	RestoreStock(ctx context.Context, id string, quantite int) error
}

// CategoryRepository port de persistance pour les catégories.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
}

// ReviewRepository port de persistance pour les avis produits.
// Create retourne domain.ErrDuplicate si le client a déjà noté ce produit.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	ListByProduit(ctx context.Context, produitID string) ([]entity.Review, error)
}
