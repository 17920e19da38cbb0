package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
	"github.com/danmaket/marketplace-api/internal/infrastructure/storage"
)

// PromoUseCase gestion des produits vedettes et des bannières, toutes deux
// plafonnées à entity.PromoLimit entrées ordonnées par position.
type PromoUseCase struct {
	featured repository.FeaturedRepository
	banners  repository.BannerRepository
	products repository.ProductRepository
	images   storage.ImageStore
	feed     audit.Publisher
}

// NewPromoUseCase construit le cas d'usage.
func NewPromoUseCase(
	featured repository.FeaturedRepository,
	banners repository.BannerRepository,
	products repository.ProductRepository,
	images storage.ImageStore,
	feed audit.Publisher,
) *PromoUseCase {
	return &PromoUseCase{featured: featured, banners: banners, products: products, images: images, feed: feed}
}

// ── Produits vedettes ────────────────────────────────────────────────────────

// ListFeatured retourne le carrousel, position croissante.
func (uc *PromoUseCase) ListFeatured(ctx context.Context) ([]dto.FeaturedResponse, error) {
	list, err := uc.featured.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeaturedResponse, 0, len(list))
	for _, fp := range list {
		resp := dto.FeaturedResponse{ID: fp.ID, Position: fp.Position}
		if fp.Produit != nil {
			resp.Product = ToProductResponse(fp.Produit)
		}
		out = append(out, resp)
	}
	return out, nil
}

// AddFeatured met un produit en vedette à la position suivante. Refusé si le
// produit y figure déjà ou si le plafond est atteint.
func (uc *PromoUseCase) AddFeatured(ctx context.Context, produitID string) (*dto.FeaturedResponse, error) {
	p, err := uc.products.GetByID(ctx, produitID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.featured.FindByProduit(ctx, produitID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	count, err := uc.featured.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= entity.PromoLimit {
		return nil, domain.ErrFeaturedLimit
	}

	fp := &entity.FeaturedProduct{
		ID:        uuid.New().String(),
		ProduitID: produitID,
		Position:  count + 1,
		CreatedAt: time.Now(),
	}
	if err := uc.featured.Insert(ctx, fp); err != nil {
		return nil, err
	}

	uc.feed.Publish(ctx, "produits_vedettes", "INSERT", fp.ID)
	return &dto.FeaturedResponse{ID: fp.ID, Position: fp.Position, Product: ToProductResponse(p)}, nil
}

// RemoveFeatured retire une entrée du carrousel et resserre les positions
// suivantes d'un cran.
func (uc *PromoUseCase) RemoveFeatured(ctx context.Context, id string) error {
	list, err := uc.featured.List(ctx)
	if err != nil {
		return err
	}

	removed := -1
	for _, fp := range list {
		if fp.ID == id {
			removed = fp.Position
			break
		}
	}
	if removed == -1 {
		return domain.ErrNotFound
	}

	if err := uc.featured.Delete(ctx, id); err != nil {
		return err
	}
	for _, fp := range list {
		if fp.Position > removed {
			if err := uc.featured.UpdatePosition(ctx, fp.ID, fp.Position-1); err != nil {
				return err
			}
		}
	}

	uc.feed.Publish(ctx, "produits_vedettes", "DELETE", id)
	return nil
}

// MoveFeatured échange la position de l'entrée avec sa voisine (up ou down).
// Aux bornes du carrousel, l'appel est sans effet.
func (uc *PromoUseCase) MoveFeatured(ctx context.Context, id, direction string) error {
	if direction != "up" && direction != "down" {
		return domain.ErrInvalidInput
	}
	list, err := uc.featured.List(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, fp := range list {
		if fp.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrNotFound
	}

	other := idx - 1
	if direction == "down" {
		other = idx + 1
	}
	if other < 0 || other >= len(list) {
		return nil
	}

	if err := uc.featured.UpdatePosition(ctx, list[idx].ID, list[other].Position); err != nil {
		return err
	}
	if err := uc.featured.UpdatePosition(ctx, list[other].ID, list[idx].Position); err != nil {
		return err
	}

	uc.feed.Publish(ctx, "produits_vedettes", "UPDATE", id)
	return nil
}

// ── Bannières ────────────────────────────────────────────────────────────────

// ListBanners retourne toutes les bannières, expiration dérivée à la lecture.
func (uc *PromoUseCase) ListBanners(ctx context.Context) ([]dto.BannerResponse, error) {
	list, err := uc.banners.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.BannerResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBannerResponse(b, now))
	}
	return out, nil
}

// ActiveBanners retourne les bannières non expirées (vitrine publique).
func (uc *PromoUseCase) ActiveBanners(ctx context.Context) ([]dto.BannerResponse, error) {
	list, err := uc.banners.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.BannerResponse, 0, len(list))
	for _, b := range list {
		if b.Expired(now) {
			continue
		}
		out = append(out, toBannerResponse(b, now))
	}
	return out, nil
}

// CreateBanner crée une bannière : image principale et sous-images vers le
// stockage objet, plafond PromoLimit, position suivante.
func (uc *PromoUseCase) CreateBanner(ctx context.Context, adminID string, in dto.CreateBannerRequest, image []byte, imageName string, subImages [][]byte) (*dto.BannerResponse, error) {
	if in.Titre == "" || len(image) == 0 {
		return nil, domain.ErrInvalidInput
	}

	count, err := uc.banners.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= entity.PromoLimit {
		return nil, domain.ErrBannerLimit
	}

	var expiresAt *time.Time
	if in.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, in.ExpiresAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiresAt = &t
	}

	imageURL, err := uc.images.Upload(ctx, adminID, image, imageName, "")
	if err != nil {
		return nil, err
	}
	var subURLs []string
	for _, sub := range subImages {
		u, err := uc.images.Upload(ctx, adminID, sub, imageName, "")
		if err != nil {
			return nil, err
		}
		subURLs = append(subURLs, u)
	}

	b := &entity.Banner{
		ID:          uuid.New().String(),
		Title:       in.Titre,
		ImageURL:    imageURL,
		SubImages:   subURLs,
		Link:        in.LienURL,
		CategorieID: in.CategorieID,
		Position:    count + 1,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}
	if err := uc.banners.Insert(ctx, b); err != nil {
		return nil, err
	}

	uc.feed.Publish(ctx, "banners", "INSERT", b.ID)
	resp := toBannerResponse(*b, time.Now())
	return &resp, nil
}

// DeleteBanner supprime la bannière et ses objets stockés.
func (uc *PromoUseCase) DeleteBanner(ctx context.Context, id string) error {
	b, err := uc.banners.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if err := uc.banners.Delete(ctx, id); err != nil {
		return err
	}

	_ = uc.images.Delete(ctx, b.ImageURL)
	for _, sub := range b.SubImages {
		_ = uc.images.Delete(ctx, sub)
	}

	uc.feed.Publish(ctx, "banners", "DELETE", id)
	return nil
}

func toBannerResponse(b entity.Banner, now time.Time) dto.BannerResponse {
	return dto.BannerResponse{
		ID:          b.ID,
		Titre:       b.Title,
		ImageURL:    b.ImageURL,
		SousImages:  b.SubImages,
		LienURL:     b.Link,
		CategorieID: b.CategorieID,
		Position:    b.Position,
		ExpiresAt:   b.ExpiresAt,
		Expired:     b.Expired(now),
		CreatedAt:   b.CreatedAt,
	}
}
