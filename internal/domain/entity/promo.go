package entity

import "time"

// PromoLimit plafond commun aux produits vedettes et aux bannières.
const PromoLimit = 10

// FeaturedProduct une entrée du carrousel de produits vedettes (table
// produits_vedettes), ordonnée par position (1..PromoLimit).
type FeaturedProduct struct {
	ID        string
	ProduitID string
	Position  int
	Produit   *Product
	CreatedAt time.Time
}

// Banner une bannière promotionnelle de la page d'accueil (table banners).
// ExpiresAt nil = sans expiration ; une bannière expirée est signalée mais
// jamais supprimée automatiquement.
type Banner struct {
	ID          string
	Title       string
	ImageURL    string
	SubImages   []string
	Link        string
	CategorieID string
	Position    int
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// Expired indique si la bannière a dépassé sa date d'expiration.
func (b Banner) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}
