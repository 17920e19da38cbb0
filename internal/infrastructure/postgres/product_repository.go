package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implémentation du port ProductRepository sur PostgreSQL (pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur de persistance des produits.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, id_vendeur, COALESCE(id_categorie::text, ''), nom, COALESCE(description, ''), prix, stock, COALESCE(images, '{}'), COALESCE(statut, 'brouillon'), slug, COALESCE(ventes_total, 0), created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.VendeurID, &p.CategorieID, &p.Nom, &p.Description, &p.Prix,
		&p.Stock, &p.Images, &p.Statut, &p.Slug, &p.VentesTotal, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nouveau produit. Les violations d'unicité du slug et les
// refus de politique d'accès reviennent typés (ErrDuplicateSlug,
// ErrPermissionDenied) pour les replis du cas d'usage de publication.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO produits (id, id_vendeur, id_categorie, nom, description, prix, stock, images, statut, slug, ventes_total, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.VendeurID, p.CategorieID, p.Nom, p.Description, p.Prix, p.Stock,
		p.Images, p.Statut, p.Slug, p.VentesTotal, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert produit", err)
	}
	return nil
}

// GetByID retourne le produit par ID, nil si absent.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM produits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit: %w", err)
	}
	return p, nil
}

// GetBySlug retourne le produit par slug, nil si absent.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM produits WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit by slug: %w", err)
	}
	return p, nil
}

// Update met à jour un produit. Le slug et ventes_total ne bougent pas ici.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE produits SET nom = $2, description = $3, prix = $4, stock = $5, images = $6,
			id_categorie = NULLIF($7, '')::uuid, statut = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nom, p.Description, p.Prix, p.Stock, p.Images, p.CategorieID, p.Statut, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update produit", err)
	}
	return nil
}

// UpdateStatut bascule le statut (publication, suspension, brouillon).
func (r *ProductRepo) UpdateStatut(ctx context.Context, id, statut string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE produits SET statut = $2, updated_at = now() WHERE id = $1`,
		id, statut,
	)
	if err != nil {
		return mapWriteError("update produit statut", err)
	}
	return nil
}

// Delete supprime un produit par ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM produits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete produit: %w", err)
	}
	return nil
}

// ListByVendeur liste le catalogue d'un vendeur, brouillons inclus.
func (r *ProductRepo) ListByVendeur(ctx context.Context, vendeurID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM produits WHERE id_vendeur = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		vendeurID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list produits vendeur: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListOnline liste les produits publiés, pour la vitrine.
func (r *ProductRepo) ListOnline(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM produits WHERE statut = 'en_ligne' ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list produits en ligne: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCategorie liste les produits publiés d'une catégorie.
func (r *ProductRepo) ListByCategorie(ctx context.Context, categorieID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM produits
		 WHERE id_categorie = $1 AND statut = 'en_ligne'
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		categorieID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list produits categorie: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Search recherche les produits publiés par nom ou description (ilike).
func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM produits
		 WHERE statut = 'en_ligne' AND (nom ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		 ORDER BY ventes_total DESC, created_at DESC LIMIT $2`,
		term, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search produits: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Count compte tous les produits.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM produits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count produits: %w", err)
	}
	return n, nil
}

// GetForUpdate verrouille la ligne produit pour la durée de la transaction de
// commande : deux passages en caisse simultanés sur le même produit se
// sérialisent sur ce verrou.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM produits WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit for update: %w", err)
	}
	return p, nil
}

// DecrementStock décrémente le stock et crédite ventes_total d'un même coup.
// Retourne ErrInsufficientStock si le stock ne couvre pas la quantité.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantite int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE produits SET stock = stock - $2, ventes_total = COALESCE(ventes_total, 0) + $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		id, quantite,
	)
	if err != nil {
		return mapWriteError("decrement stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// RestoreStock l'inverse de DecrementStock pour une ligne annulée ou
// supprimée. ventes_total est borné à zéro.
func (r *ProductRepo) RestoreStock(ctx context.Context, id string, quantite int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE produits SET stock = stock + $2, ventes_total = GREATEST(COALESCE(ventes_total, 0) - $2, 0), updated_at = now()
		 WHERE id = $1`,
		id, quantite,
	)
	if err != nil {
		return mapWriteError("restore stock", err)
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
