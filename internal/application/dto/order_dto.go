package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartRequest ajout d'un produit au panier. Si le produit y figure déjà,
// les quantités s'additionnent.
type AddCartRequest struct {
	ProduitID string `json:"produit_id" validate:"required,uuid"`
	Quantite  int    `json:"quantite" validate:"required,min=1"`
}

// UpdateCartRequest changement de quantité d'une ligne. Une quantité <= 0
// supprime la ligne.
type UpdateCartRequest struct {
	Quantite int `json:"quantite"`
}

// CartLineResponse une ligne du panier avec son produit joint.
type CartLineResponse struct {
	ID         string          `json:"id"`
	ProduitID  string          `json:"produit_id"`
	Nom        string          `json:"nom"`
	Prix       decimal.Decimal `json:"prix"`
	Quantite   int             `json:"quantite"`
	Stock      int             `json:"stock"`
	Image      string          `json:"image,omitempty"`
	SousTotal  decimal.Decimal `json:"sous_total"`
}

// CartResponse le panier complet, recalculé à chaque lecture.
type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
}

// CheckoutRequest passage de commande sur le contenu du panier.
type CheckoutRequest struct {
	AdresseLivraison string `json:"adresse_livraison" validate:"required,min=1,max=500"`
	MethodePaiement  string `json:"methode_paiement" validate:"required"`
}

// OrderLineResponse une ligne de commande, prix unitaire figé à l'achat.
type OrderLineResponse struct {
	ID           string          `json:"id"`
	ProduitID    string          `json:"produit_id"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
}

// OrderResponse sortie d'une commande.
type OrderResponse struct {
	ID               string              `json:"id"`
	ClientID         string              `json:"client_id"`
	Total            decimal.Decimal     `json:"total"`
	AdresseLivraison string              `json:"adresse_livraison"`
	MethodePaiement  string              `json:"methode_paiement"`
	Statut           string              `json:"statut"`
	CreatedAt        time.Time           `json:"created_at"`
	Items            []OrderLineResponse `json:"items,omitempty"`
}

// OrderListResponse liste paginée de commandes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// VendorOrderResponse la part d'une commande attribuée à un vendeur.
type VendorOrderResponse struct {
	ID           string          `json:"id"`
	CommandeID   string          `json:"commande_id"`
	ProduitID    string          `json:"produit_id"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	Statut       string          `json:"statut"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UpdateOrderStatusRequest changement de statut demandé.
type UpdateOrderStatusRequest struct {
	Statut string `json:"statut" validate:"required"`
}

// RevenueResponse chiffre d'affaires (commandes livrées uniquement).
type RevenueResponse struct {
	Revenue decimal.Decimal `json:"revenue"`
}
