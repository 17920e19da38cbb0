package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
	"github.com/danmaket/marketplace-api/internal/infrastructure/storage"
	"github.com/danmaket/marketplace-api/pkg/slug"
)

// Tentatives de re-slug sur collision avant abandon.
const maxSlugRetries = 5

// Résultats de publication exposés au client.
const (
	OutcomePublie    = "publie"
	OutcomeBrouillon = "brouillon"
)

// ProductUseCase cycle de vie des produits côté vendeur : publication avec
// replis, mise à jour, suppression, upload d'images.
type ProductUseCase struct {
	products repository.ProductRepository
	images   storage.ImageStore
	feed     audit.Publisher
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(products repository.ProductRepository, images storage.ImageStore, feed audit.Publisher) *ProductUseCase {
	return &ProductUseCase{products: products, images: images, feed: feed}
}

// Publish crée le produit en_ligne. Deux replis, sur erreurs typées du
// repository :
//   - ErrPermissionDenied : la politique d'accès refuse la publication
//     directe, on retente une fois en brouillon et on le signale ;
//   - ErrDuplicateSlug : collision de slug, on retente avec un suffixe
//     aléatoire de 4 caractères, maxSlugRetries fois.
func (uc *ProductUseCase) Publish(ctx context.Context, vendeurID string, in dto.CreateProductRequest) (*dto.PublishProductResponse, error) {
	if in.Nom == "" || in.Prix.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		VendeurID:   vendeurID,
		CategorieID: in.CategorieID,
		Nom:         in.Nom,
		Description: in.Description,
		Prix:        in.Prix,
		Stock:       in.Stock,
		Images:      in.Images,
		Statut:      entity.ProduitEnLigne,
		Slug:        slug.Make(in.Nom),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	outcome := OutcomePublie
	base := p.Slug
	for attempt := 0; ; attempt++ {
		err := uc.products.Create(ctx, p)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, domain.ErrPermissionDenied) && p.Statut == entity.ProduitEnLigne:
			// Retombée en brouillon : même slug, un seul essai supplémentaire.
			p.Statut = entity.ProduitBrouillon
			outcome = OutcomeBrouillon
		case errors.Is(err, domain.ErrDuplicateSlug) && attempt < maxSlugRetries:
			p.Slug = slug.WithSuffix(base)
		default:
			return nil, err
		}
	}

	uc.feed.Publish(ctx, "produits", "INSERT", p.ID)
	return &dto.PublishProductResponse{
		Product: ToProductResponse(p),
		Outcome: outcome,
	}, nil
}

// Update met à jour les champs fournis d'un produit du vendeur.
func (uc *ProductUseCase) Update(ctx context.Context, id, vendeurID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.ownedProduct(ctx, id, vendeurID)
	if err != nil {
		return nil, err
	}

	if in.Nom != nil {
		p.Nom = *in.Nom
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Prix != nil {
		if in.Prix.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Prix = *in.Prix
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.Stock = *in.Stock
	}
	if in.CategorieID != nil {
		p.CategorieID = *in.CategorieID
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	p.UpdatedAt = time.Now()

	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.feed.Publish(ctx, "produits", "UPDATE", p.ID)
	resp := ToProductResponse(p)
	return &resp, nil
}

// SetStatus bascule un produit du vendeur entre brouillon et en_ligne.
// La suspension est réservée à la modération admin.
func (uc *ProductUseCase) SetStatus(ctx context.Context, id, vendeurID, statut string) error {
	if statut != entity.ProduitBrouillon && statut != entity.ProduitEnLigne {
		return domain.ErrInvalidInput
	}
	p, err := uc.ownedProduct(ctx, id, vendeurID)
	if err != nil {
		return err
	}
	if p.Statut == entity.ProduitSuspendu {
		return domain.ErrForbidden
	}
	if err := uc.products.UpdateStatut(ctx, p.ID, statut); err != nil {
		return err
	}
	uc.feed.Publish(ctx, "produits", "UPDATE", p.ID)
	return nil
}

// Delete supprime un produit du vendeur et ses images stockées.
func (uc *ProductUseCase) Delete(ctx context.Context, id, vendeurID string) error {
	p, err := uc.ownedProduct(ctx, id, vendeurID)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, p.ID); err != nil {
		return err
	}
	for _, img := range p.Images {
		// Best-effort : un objet orphelin vaut mieux qu'une suppression bloquée.
		_ = uc.images.Delete(ctx, img)
	}
	uc.feed.Publish(ctx, "produits", "DELETE", p.ID)
	return nil
}

// ListByVendeur retourne les produits du vendeur, tous statuts confondus.
func (uc *ProductUseCase) ListByVendeur(ctx context.Context, vendeurID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.products.ListByVendeur(ctx, vendeurID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductList(products, page), nil
}

// UploadImage stocke une image produit sous la clé du vendeur et retourne son
// URL publique.
func (uc *ProductUseCase) UploadImage(ctx context.Context, vendeurID string, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrInvalidInput
	}
	return uc.images.Upload(ctx, vendeurID, data, filename, contentType)
}

func (uc *ProductUseCase) ownedProduct(ctx context.Context, id, vendeurID string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.VendeurID != vendeurID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// ToProductResponse convertit l'entité en réponse API.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		VendeurID:   p.VendeurID,
		CategorieID: p.CategorieID,
		Nom:         p.Nom,
		Description: p.Description,
		Prix:        p.Prix,
		Stock:       p.Stock,
		Images:      p.Images,
		Statut:      p.Statut,
		Slug:        p.Slug,
		VentesTotal: p.VentesTotal,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(products []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
