package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ repository.FeaturedRepository = (*FeaturedRepo)(nil)

// FeaturedRepo implémentation du port FeaturedRepository sur PostgreSQL.
type FeaturedRepo struct {
	q Querier
}

// NewFeaturedRepository construit l'adaptateur des produits vedettes.
func NewFeaturedRepository(q Querier) *FeaturedRepo {
	return &FeaturedRepo{q: q}
}

// List retourne les produits vedettes ordonnés par position, produit joint.
func (r *FeaturedRepo) List(ctx context.Context) ([]entity.FeaturedProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT fv.id, fv.id_produit, fv.position, fv.created_at,
		       pr.id, pr.id_vendeur, COALESCE(pr.id_categorie::text, ''), pr.nom, COALESCE(pr.description, ''), pr.prix,
		       pr.stock, COALESCE(pr.images, '{}'), COALESCE(pr.statut, 'brouillon'), pr.slug, COALESCE(pr.ventes_total, 0),
		       pr.created_at, pr.updated_at
		FROM produits_vedettes fv
		JOIN produits pr ON pr.id = fv.id_produit
		ORDER BY fv.position`)
	if err != nil {
		return nil, fmt.Errorf("list produits vedettes: %w", err)
	}
	defer rows.Close()

	var list []entity.FeaturedProduct
	for rows.Next() {
		var fp entity.FeaturedProduct
		var p entity.Product
		err := rows.Scan(
			&fp.ID, &fp.ProduitID, &fp.Position, &fp.CreatedAt,
			&p.ID, &p.VendeurID, &p.CategorieID, &p.Nom, &p.Description, &p.Prix,
			&p.Stock, &p.Images, &p.Statut, &p.Slug, &p.VentesTotal, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan produit vedette: %w", err)
		}
		fp.Produit = &p
		list = append(list, fp)
	}
	return list, rows.Err()
}

// Count compte les entrées vedettes (plafond vérifié par le cas d'usage).
func (r *FeaturedRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM produits_vedettes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count produits vedettes: %w", err)
	}
	return n, nil
}

// FindByProduit retourne l'entrée vedette du produit, nil si absente.
func (r *FeaturedRepo) FindByProduit(ctx context.Context, produitID string) (*entity.FeaturedProduct, error) {
	var fp entity.FeaturedProduct
	err := r.q.QueryRow(ctx,
		`SELECT id, id_produit, position, created_at FROM produits_vedettes WHERE id_produit = $1`,
		produitID,
	).Scan(&fp.ID, &fp.ProduitID, &fp.Position, &fp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find produit vedette: %w", err)
	}
	return &fp, nil
}

// Insert ajoute une entrée vedette.
func (r *FeaturedRepo) Insert(ctx context.Context, fp *entity.FeaturedProduct) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO produits_vedettes (id, id_produit, position, created_at) VALUES ($1, $2, $3, $4)`,
		fp.ID, fp.ProduitID, fp.Position, fp.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert produit vedette", err)
	}
	return nil
}

// Delete retire une entrée vedette.
func (r *FeaturedRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM produits_vedettes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete produit vedette: %w", err)
	}
	return nil
}

// UpdatePosition déplace une entrée (réordonnancement manuel).
func (r *FeaturedRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	_, err := r.q.Exec(ctx, `UPDATE produits_vedettes SET position = $2 WHERE id = $1`, id, position)
	if err != nil {
		return mapWriteError("update position vedette", err)
	}
	return nil
}

var _ repository.BannerRepository = (*BannerRepo)(nil)

// BannerRepo implémentation du port BannerRepository sur PostgreSQL.
type BannerRepo struct {
	q Querier
}

// NewBannerRepository construit l'adaptateur des bannières.
func NewBannerRepository(q Querier) *BannerRepo {
	return &BannerRepo{q: q}
}

const bannerColumns = `id, COALESCE(title, ''), image_url, COALESCE(sub_images, '{}'), COALESCE(link, ''), COALESCE(id_categorie::text, ''), position, expires_at, created_at`

func scanBanner(row pgx.Row) (*entity.Banner, error) {
	var b entity.Banner
	err := row.Scan(&b.ID, &b.Title, &b.ImageURL, &b.SubImages, &b.Link, &b.CategorieID, &b.Position, &b.ExpiresAt, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List retourne toutes les bannières ordonnées par position.
func (r *BannerRepo) List(ctx context.Context) ([]entity.Banner, error) {
	rows, err := r.q.Query(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var list []entity.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}

// GetByID retourne une bannière par ID, nil si absente.
func (r *BannerRepo) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	b, err := scanBanner(r.q.QueryRow(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return b, nil
}

// Count compte les bannières.
func (r *BannerRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM banners`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count banners: %w", err)
	}
	return n, nil
}

// Insert ajoute une bannière.
func (r *BannerRepo) Insert(ctx context.Context, b *entity.Banner) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO banners (id, title, image_url, sub_images, link, id_categorie, position, expires_at, created_at)
		 VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, '')::uuid, $7, $8, $9)`,
		b.ID, b.Title, b.ImageURL, b.SubImages, b.Link, b.CategorieID, b.Position, b.ExpiresAt, b.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert banner", err)
	}
	return nil
}

// Update met à jour les champs éditables d'une bannière.
func (r *BannerRepo) Update(ctx context.Context, b *entity.Banner) error {
	_, err := r.q.Exec(ctx,
		`UPDATE banners SET title = NULLIF($2, ''), link = NULLIF($3, ''), id_categorie = NULLIF($4, '')::uuid,
		     position = $5, expires_at = $6
		 WHERE id = $1`,
		b.ID, b.Title, b.Link, b.CategorieID, b.Position, b.ExpiresAt,
	)
	if err != nil {
		return mapWriteError("update banner", err)
	}
	return nil
}

// Delete supprime une bannière (les objets du stockage sont retirés par le cas d'usage).
func (r *BannerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}
