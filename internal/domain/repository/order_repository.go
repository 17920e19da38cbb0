package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// CartRepository port de persistance pour le panier. ListByUser joint le
// produit de chaque ligne (nom, prix, stock) pour le calcul des totaux.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error)
	GetLine(ctx context.Context, lineID string) (*entity.CartLine, error)
	FindLine(ctx context.Context, userID, produitID string) (*entity.CartLine, error)
	Insert(ctx context.Context, line *entity.CartLine) error
	UpdateQuantite(ctx context.Context, lineID string, quantite int) error
	Delete(ctx context.Context, lineID string) error
	ClearUser(ctx context.Context, userID string) error
}

// OrderRepository port de persistance pour les commandes client et leurs lignes.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateLine(ctx context.Context, l *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	UpdateStatut(ctx context.Context, id, statut string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int) ([]*entity.Order, error)
	Count(ctx context.Context) (int, error)
	// PlatformRevenue somme les totaux des seules commandes livrées :
	// l'exclusion des commandes en cours ou annulées se fait par filtre.
	PlatformRevenue(ctx context.Context) (decimal.Decimal, error)
}

// VendorOrderRepository port de persistance pour les commandes vendeur.
type VendorOrderRepository interface {
	Create(ctx context.Context, vo *entity.VendorOrder) error
	GetByID(ctx context.Context, id string) (*entity.VendorOrder, error)
	ListByVendeur(ctx context.Context, vendeurID string) ([]*entity.VendorOrder, error)
	ListByCommande(ctx context.Context, commandeID string) ([]*entity.VendorOrder, error)
	UpdateStatut(ctx context.Context, id, statut string) error
	Delete(ctx context.Context, id string) error
	// VendorRevenue somme prix_unitaire*quantite des lignes livrées du vendeur.
	VendorRevenue(ctx context.Context, vendeurID string) (decimal.Decimal, error)
}
