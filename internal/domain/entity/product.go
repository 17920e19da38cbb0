package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'un produit.
const (
	ProduitBrouillon = "brouillon"
	ProduitEnLigne   = "en_ligne"
	ProduitSuspendu  = "suspendu"
)

// Product un produit du catalogue (table produits). Le slug est unique sur toute
// la plateforme ; VentesTotal est incrémenté à la commande.
type Product struct {
	ID          string
	VendeurID   string
	CategorieID string
	Nom         string
	Description string
	Prix        decimal.Decimal
	Stock       int
	Images      []string
	Statut      string // brouillon | en_ligne | suspendu
	Slug        string
	VentesTotal int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category une catégorie du catalogue.
type Category struct {
	ID          string
	Nom         string
	Slug        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// Review un avis client sur un produit (table avis) : note 1 à 5, commentaire
// optionnel, un seul avis par (client, produit).
type Review struct {
	ID          string
	ProduitID   string
	ClientID    string
	Note        int
	Commentaire string
	CreatedAt   time.Time
}
