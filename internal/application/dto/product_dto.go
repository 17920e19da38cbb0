package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrée de création/publication d'un produit.
type CreateProductRequest struct {
	Nom         string          `json:"nom" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Prix        decimal.Decimal `json:"prix"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategorieID string          `json:"categorie_id"`
	Images      []string        `json:"images"`
}

// UpdateProductRequest mise à jour partielle d'un produit.
type UpdateProductRequest struct {
	Nom         *string          `json:"nom" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Prix        *decimal.Decimal `json:"prix"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	CategorieID *string          `json:"categorie_id"`
	Images      []string         `json:"images"`
}

// ProductResponse sortie d'un produit.
type ProductResponse struct {
	ID          string          `json:"id"`
	VendeurID   string          `json:"vendeur_id"`
	CategorieID string          `json:"categorie_id,omitempty"`
	Nom         string          `json:"nom"`
	Description string          `json:"description,omitempty"`
	Prix        decimal.Decimal `json:"prix"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	Statut      string          `json:"statut"`
	Slug        string          `json:"slug"`
	VentesTotal int             `json:"ventes_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PublishProductResponse résultat de publication : le produit et son état
// effectif (en_ligne, ou brouillon si la politique d'accès a refusé la
// publication directe).
type PublishProductResponse struct {
	Product ProductResponse `json:"product"`
	Outcome string          `json:"outcome"` // publie | brouillon
}

// ProductListResponse liste paginée de produits.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductDetailResponse fiche produit publique : produit + vendeur + avis.
type ProductDetailResponse struct {
	Product    ProductResponse  `json:"product"`
	VendeurNom string           `json:"vendeur_nom"`
	Avis       []ReviewResponse `json:"avis"`
}

// CategoryResponse sortie d'une catégorie.
type CategoryResponse struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// CreateReviewRequest entrée de création d'un avis.
type CreateReviewRequest struct {
	Note        int    `json:"note" validate:"required,min=1,max=5"`
	Commentaire string `json:"commentaire" validate:"max=2000"`
}

// ReviewResponse sortie d'un avis.
type ReviewResponse struct {
	ID          string    `json:"id"`
	ProduitID   string    `json:"produit_id"`
	ClientID    string    `json:"client_id"`
	Note        int       `json:"note"`
	Commentaire string    `json:"commentaire,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadImageResponse sortie d'un upload d'image.
type UploadImageResponse struct {
	URL string `json:"url"`
}
