package dto

import "time"

// AddFeaturedRequest mise en vedette d'un produit.
type AddFeaturedRequest struct {
	ProduitID string `json:"produit_id" validate:"required,uuid"`
}

// MoveFeaturedRequest déplacement dans le carrousel : up ou down.
type MoveFeaturedRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// FeaturedResponse un produit vedette avec sa fiche jointe.
type FeaturedResponse struct {
	ID       string          `json:"id"`
	Position int             `json:"position"`
	Product  ProductResponse `json:"product"`
}

// CreateBannerRequest création d'une bannière. L'image principale est
// envoyée en multipart, les champs texte dans le formulaire.
type CreateBannerRequest struct {
	Titre       string `form:"titre" validate:"required,min=1,max=200"`
	LienURL     string `form:"lien_url"`
	CategorieID string `form:"categorie_id"`
	ExpiresAt   string `form:"expires_at"` // RFC 3339, optionnel
}

// BannerResponse sortie d'une bannière. Expired est dérivé d'ExpiresAt à la
// lecture, jamais stocké.
type BannerResponse struct {
	ID          string     `json:"id"`
	Titre       string     `json:"titre"`
	ImageURL    string     `json:"image_url"`
	SousImages  []string   `json:"sous_images,omitempty"`
	LienURL     string     `json:"lien_url,omitempty"`
	CategorieID string     `json:"categorie_id,omitempty"`
	Position    int        `json:"position"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Expired     bool       `json:"expired"`
	CreatedAt   time.Time  `json:"created_at"`
}
