package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// CartUseCase opérations du panier. Chaque mutation recharge le panier
// complet depuis la base et le retourne : l'état du client est toujours celui
// de la dernière lecture, jamais un delta calculé localement.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase construit le cas d'usage.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Get retourne le panier complet avec totaux recalculés.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	return uc.reload(ctx, userID)
}

// Add ajoute une quantité d'un produit. Si le produit figure déjà au panier,
// les quantités s'additionnent sur la ligne existante. La quantité cumulée ne
// peut pas dépasser le stock du produit.
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.AddCartRequest) (*dto.CartResponse, error) {
	if in.Quantite < 1 {
		return nil, domain.ErrInvalidInput
	}

	p, err := uc.products.GetByID(ctx, in.ProduitID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Statut != entity.ProduitEnLigne {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.carts.FindLine(ctx, userID, in.ProduitID)
	if err != nil {
		return nil, err
	}

	total := in.Quantite
	if existing != nil {
		total += existing.Quantite
	}
	if total > p.Stock {
		return nil, domain.ErrInsufficientStock
	}

	if existing != nil {
		if err := uc.carts.UpdateQuantite(ctx, existing.ID, total); err != nil {
			return nil, err
		}
	} else {
		line := &entity.CartLine{
			ID:            uuid.New().String(),
			UtilisateurID: userID,
			ProduitID:     in.ProduitID,
			Quantite:      in.Quantite,
			CreatedAt:     time.Now(),
		}
		if err := uc.carts.Insert(ctx, line); err != nil {
			return nil, err
		}
	}

	return uc.reload(ctx, userID)
}

// UpdateQuantity change la quantité d'une ligne. Une quantité <= 0 supprime
// la ligne ; une quantité au-delà du stock est rejetée avant toute écriture.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, lineID string, quantite int) (*dto.CartResponse, error) {
	line, err := uc.ownedLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}

	if quantite <= 0 {
		if err := uc.carts.Delete(ctx, line.ID); err != nil {
			return nil, err
		}
		return uc.reload(ctx, userID)
	}

	p, err := uc.products.GetByID(ctx, line.ProduitID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if quantite > p.Stock {
		return nil, domain.ErrInsufficientStock
	}

	if err := uc.carts.UpdateQuantite(ctx, line.ID, quantite); err != nil {
		return nil, err
	}
	return uc.reload(ctx, userID)
}

// Remove supprime une ligne du panier.
func (uc *CartUseCase) Remove(ctx context.Context, userID, lineID string) (*dto.CartResponse, error) {
	line, err := uc.ownedLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}
	if err := uc.carts.Delete(ctx, line.ID); err != nil {
		return nil, err
	}
	return uc.reload(ctx, userID)
}

// Clear vide le panier.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) (*dto.CartResponse, error) {
	if err := uc.carts.ClearUser(ctx, userID); err != nil {
		return nil, err
	}
	return uc.reload(ctx, userID)
}

func (uc *CartUseCase) ownedLine(ctx context.Context, userID, lineID string) (*entity.CartLine, error) {
	line, err := uc.carts.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if line.UtilisateurID != userID {
		return nil, domain.ErrForbidden
	}
	return line, nil
}

func (uc *CartUseCase) reload(ctx context.Context, userID string) (*dto.CartResponse, error) {
	lines, err := uc.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildCartResponse(lines), nil
}

// BuildCartResponse agrège les lignes : total = somme des prix x quantités,
// item_count = somme des quantités.
func BuildCartResponse(lines []entity.CartLine) *dto.CartResponse {
	resp := &dto.CartResponse{
		Items: make([]dto.CartLineResponse, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, l := range lines {
		if l.Produit == nil {
			continue
		}
		sousTotal := l.Produit.Prix.Mul(decimal.NewFromInt(int64(l.Quantite)))
		image := ""
		if len(l.Produit.Images) > 0 {
			image = l.Produit.Images[0]
		}
		resp.Items = append(resp.Items, dto.CartLineResponse{
			ID:        l.ID,
			ProduitID: l.ProduitID,
			Nom:       l.Produit.Nom,
			Prix:      l.Produit.Prix,
			Quantite:  l.Quantite,
			Stock:     l.Produit.Stock,
			Image:     image,
			SousTotal: sousTotal,
		})
		resp.Total = resp.Total.Add(sousTotal)
		resp.ItemCount += l.Quantite
	}
	return resp
}
