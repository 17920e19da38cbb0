package usecase

import (
	"context"
	"strings"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// CatalogUseCase lectures publiques de la vitrine : catégories, produits en
// ligne, fiche produit, recherche.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	users      repository.UserRepository
}

// NewCatalogUseCase construit le cas d'usage.
func NewCatalogUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories, reviews: reviews, users: users}
}

// Categories retourne toutes les catégories.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{
			ID:          c.ID,
			Nom:         c.Nom,
			Slug:        c.Slug,
			Description: c.Description,
			ImageURL:    c.ImageURL,
		})
	}
	return out, nil
}

// Products retourne les produits en ligne, paginés.
func (uc *CatalogUseCase) Products(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.products.ListOnline(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductList(products, page), nil
}

// ProductsByCategory retourne les produits en ligne d'une catégorie (par slug).
func (uc *CatalogUseCase) ProductsByCategory(ctx context.Context, categorySlug string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	cat, err := uc.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.products.ListByCategorie(ctx, cat.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductList(products, page), nil
}

// ProductBySlug retourne la fiche publique d'un produit en ligne : produit,
// nom du vendeur et avis.
func (uc *CatalogUseCase) ProductBySlug(ctx context.Context, slug string) (*dto.ProductDetailResponse, error) {
	p, err := uc.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Statut != entity.ProduitEnLigne {
		return nil, domain.ErrNotFound
	}

	vendeurNom := ""
	if v, err := uc.users.GetByID(ctx, p.VendeurID); err == nil && v != nil {
		vendeurNom = v.Nom
	}

	avis, err := uc.reviews.ListByProduit(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	avisOut := make([]dto.ReviewResponse, 0, len(avis))
	for _, a := range avis {
		avisOut = append(avisOut, toReviewResponse(a))
	}

	return &dto.ProductDetailResponse{
		Product:    ToProductResponse(p),
		VendeurNom: vendeurNom,
		Avis:       avisOut,
	}, nil
}

// Search recherche les produits en ligne par nom ou description.
func (uc *CatalogUseCase) Search(ctx context.Context, term string, limit int) ([]dto.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.ProductResponse{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	products, err := uc.products.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

func toReviewResponse(a entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:          a.ID,
		ProduitID:   a.ProduitID,
		ClientID:    a.ClientID,
		Note:        a.Note,
		Commentaire: a.Commentaire,
		CreatedAt:   a.CreatedAt,
	}
}
