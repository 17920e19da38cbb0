package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// ReviewUseCase avis clients : note 1 à 5, commentaire optionnel, un seul
// avis par couple (client, produit).
type ReviewUseCase struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

// NewReviewUseCase construit le cas d'usage.
func NewReviewUseCase(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, products: products}
}

// Create dépose un avis sur un produit en ligne. Un second avis du même
// client sur le même produit revient en ErrDuplicate (clé unique).
func (uc *ReviewUseCase) Create(ctx context.Context, clientID, produitID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Note < 1 || in.Note > 5 {
		return nil, domain.ErrInvalidInput
	}

	p, err := uc.products.GetByID(ctx, produitID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Statut != entity.ProduitEnLigne {
		return nil, domain.ErrNotFound
	}

	rev := &entity.Review{
		ID:          uuid.New().String(),
		ProduitID:   produitID,
		ClientID:    clientID,
		Note:        in.Note,
		Commentaire: in.Commentaire,
		CreatedAt:   time.Now(),
	}
	if err := uc.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}

	resp := toReviewResponse(*rev)
	return &resp, nil
}

// ListByProduct retourne les avis d'un produit.
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, produitID string) ([]dto.ReviewResponse, error) {
	avis, err := uc.reviews.ListByProduit(ctx, produitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(avis))
	for _, a := range avis {
		out = append(out, toReviewResponse(a))
	}
	return out, nil
}
