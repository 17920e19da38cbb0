package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/order"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implémentation du port OrderRepository sur PostgreSQL (pool ou tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construit l'adaptateur de persistance des commandes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, id_client, total, adresse_livraison, COALESCE(methode_paiement, ''), COALESCE(statut, 'en_attente'), created_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.ClientID, &o.Total, &o.AdresseLivraison, &o.MethodePaiement, &o.Statut, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste l'en-tête de commande.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO commandes (id, id_client, total, adresse_livraison, methode_paiement, statut, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.ClientID, o.Total, o.AdresseLivraison, o.MethodePaiement, o.Statut, o.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert commande", err)
	}
	return nil
}

// CreateLine persiste une ligne de commande (capture du prix à l'achat).
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO commande_items (id, id_commande, id_produit, quantite, prix_unitaire, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.CommandeID, l.ProduitID, l.Quantite, l.PrixUnitaire, l.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert commande item", err)
	}
	return nil
}

// GetByID retourne la commande et ses lignes, nil si absente.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM commandes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commande: %w", err)
	}
	items, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) listLines(ctx context.Context, commandeID string) ([]entity.OrderLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, id_commande, COALESCE(id_produit::text, ''), quantite, prix_unitaire, created_at
		 FROM commande_items WHERE id_commande = $1 ORDER BY created_at`,
		commandeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list commande items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.CommandeID, &l.ProduitID, &l.Quantite, &l.PrixUnitaire, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commande item: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// ListByClient liste les commandes d'un client, la plus récente d'abord.
func (r *OrderRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM commandes WHERE id_client = $1 ORDER BY created_at DESC`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list commandes client: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// List liste toutes les commandes (vue admin), avec pagination.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM commandes ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list commandes: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatut bascule le statut de la commande. Les règles de transition sont
// vérifiées en amont par le cas d'usage.
func (r *OrderRepo) UpdateStatut(ctx context.Context, id, statut string) error {
	_, err := r.q.Exec(ctx, `UPDATE commandes SET statut = $2 WHERE id = $1`, id, statut)
	if err != nil {
		return mapWriteError("update commande statut", err)
	}
	return nil
}

// Delete supprime la commande et ses lignes.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM commande_items WHERE id_commande = $1`, id); err != nil {
		return fmt.Errorf("delete commande items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM commandes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete commande: %w", err)
	}
	return nil
}

// Search recherche par adresse de livraison ou statut (outil admin).
func (r *OrderRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM commandes
		 WHERE adresse_livraison ILIKE '%' || $1 || '%' OR statut ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC LIMIT $2`,
		term, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search commandes: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// Count compte toutes les commandes.
func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM commandes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count commandes: %w", err)
	}
	return n, nil
}

// PlatformRevenue somme les totaux des commandes livrées uniquement.
func (r *OrderRepo) PlatformRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM commandes WHERE statut = $1`,
		order.StatutLivree,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("platform revenue: %w", err)
	}
	return total, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commande: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
