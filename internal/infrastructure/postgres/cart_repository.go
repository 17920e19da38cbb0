package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implémentation du port CartRepository sur PostgreSQL (pool ou tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construit l'adaptateur de persistance du panier.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartSelect = `
	SELECT pa.id, pa.id_utilisateur, pa.id_produit, pa.quantite, pa.created_at,
	       pr.id, pr.id_vendeur, COALESCE(pr.id_categorie::text, ''), pr.nom, COALESCE(pr.description, ''), pr.prix,
	       pr.stock, COALESCE(pr.images, '{}'), COALESCE(pr.statut, 'brouillon'), pr.slug, COALESCE(pr.ventes_total, 0),
	       pr.created_at, pr.updated_at
	FROM panier pa
	JOIN produits pr ON pr.id = pa.id_produit`

func scanCartLine(row pgx.Row) (*entity.CartLine, error) {
	var l entity.CartLine
	var p entity.Product
	err := row.Scan(
		&l.ID, &l.UtilisateurID, &l.ProduitID, &l.Quantite, &l.CreatedAt,
		&p.ID, &p.VendeurID, &p.CategorieID, &p.Nom, &p.Description, &p.Prix,
		&p.Stock, &p.Images, &p.Statut, &p.Slug, &p.VentesTotal, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Produit = &p
	return &l, nil
}

// ListByUser retourne toutes les lignes du panier de l'utilisateur, produit joint.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error) {
	rows, err := r.q.Query(ctx, cartSelect+` WHERE pa.id_utilisateur = $1 ORDER BY pa.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list panier: %w", err)
	}
	defer rows.Close()

	var list []entity.CartLine
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ligne panier: %w", err)
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

// GetLine retourne une ligne par ID, nil si absente.
func (r *CartRepo) GetLine(ctx context.Context, lineID string) (*entity.CartLine, error) {
	l, err := scanCartLine(r.q.QueryRow(ctx, cartSelect+` WHERE pa.id = $1`, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ligne panier: %w", err)
	}
	return l, nil
}

// FindLine retourne la ligne (utilisateur, produit), nil si absente. Sert à la
// fusion des quantités lors d'un ajout répété.
func (r *CartRepo) FindLine(ctx context.Context, userID, produitID string) (*entity.CartLine, error) {
	l, err := scanCartLine(r.q.QueryRow(ctx,
		cartSelect+` WHERE pa.id_utilisateur = $1 AND pa.id_produit = $2`, userID, produitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ligne panier: %w", err)
	}
	return l, nil
}

// Insert ajoute une nouvelle ligne au panier.
func (r *CartRepo) Insert(ctx context.Context, line *entity.CartLine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO panier (id, id_utilisateur, id_produit, quantite, created_at) VALUES ($1, $2, $3, $4, $5)`,
		line.ID, line.UtilisateurID, line.ProduitID, line.Quantite, line.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert ligne panier", err)
	}
	return nil
}

// UpdateQuantite remplace la quantité d'une ligne.
func (r *CartRepo) UpdateQuantite(ctx context.Context, lineID string, quantite int) error {
	_, err := r.q.Exec(ctx, `UPDATE panier SET quantite = $2 WHERE id = $1`, lineID, quantite)
	if err != nil {
		return mapWriteError("update quantite panier", err)
	}
	return nil
}

// Delete retire une ligne du panier.
func (r *CartRepo) Delete(ctx context.Context, lineID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM panier WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete ligne panier: %w", err)
	}
	return nil
}

// ClearUser vide le panier de l'utilisateur.
func (r *CartRepo) ClearUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM panier WHERE id_utilisateur = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear panier: %w", err)
	}
	return nil
}
