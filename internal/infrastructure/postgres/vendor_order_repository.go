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

var _ repository.VendorOrderRepository = (*VendorOrderRepo)(nil)

// VendorOrderRepo implémentation du port VendorOrderRepository sur PostgreSQL.
type VendorOrderRepo struct {
	q Querier
}

// NewVendorOrderRepository construit l'adaptateur de persistance des commandes vendeur.
func NewVendorOrderRepository(q Querier) *VendorOrderRepo {
	return &VendorOrderRepo{q: q}
}

const vendorOrderColumns = `id, id_commande, id_vendeur, id_produit, quantite, prix_unitaire, COALESCE(statut, 'en_attente'), created_at`

func scanVendorOrder(row pgx.Row) (*entity.VendorOrder, error) {
	var vo entity.VendorOrder
	err := row.Scan(&vo.ID, &vo.CommandeID, &vo.VendeurID, &vo.ProduitID, &vo.Quantite, &vo.PrixUnitaire, &vo.Statut, &vo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &vo, nil
}

// Create persiste une commande vendeur (éclatement d'une ligne de commande client).
func (r *VendorOrderRepo) Create(ctx context.Context, vo *entity.VendorOrder) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO vendeur_commandes (id, id_commande, id_vendeur, id_produit, quantite, prix_unitaire, statut, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		vo.ID, vo.CommandeID, vo.VendeurID, vo.ProduitID, vo.Quantite, vo.PrixUnitaire, vo.Statut, vo.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert vendeur commande", err)
	}
	return nil
}

// GetByID retourne la commande vendeur par ID, nil si absente.
func (r *VendorOrderRepo) GetByID(ctx context.Context, id string) (*entity.VendorOrder, error) {
	vo, err := scanVendorOrder(r.q.QueryRow(ctx,
		`SELECT `+vendorOrderColumns+` FROM vendeur_commandes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendeur commande: %w", err)
	}
	return vo, nil
}

// ListByVendeur liste les commandes d'un vendeur, la plus récente d'abord.
func (r *VendorOrderRepo) ListByVendeur(ctx context.Context, vendeurID string) ([]*entity.VendorOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+vendorOrderColumns+` FROM vendeur_commandes WHERE id_vendeur = $1 ORDER BY created_at DESC`,
		vendeurID,
	)
	if err != nil {
		return nil, fmt.Errorf("list vendeur commandes: %w", err)
	}
	defer rows.Close()
	return collectVendorOrders(rows)
}

// ListByCommande liste l'éclatement vendeur d'une commande client.
func (r *VendorOrderRepo) ListByCommande(ctx context.Context, commandeID string) ([]*entity.VendorOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+vendorOrderColumns+` FROM vendeur_commandes WHERE id_commande = $1 ORDER BY created_at`,
		commandeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list vendeur commandes par commande: %w", err)
	}
	defer rows.Close()
	return collectVendorOrders(rows)
}

// UpdateStatut bascule le statut (acceptation, expédition, livraison).
func (r *VendorOrderRepo) UpdateStatut(ctx context.Context, id, statut string) error {
	_, err := r.q.Exec(ctx, `UPDATE vendeur_commandes SET statut = $2 WHERE id = $1`, id, statut)
	if err != nil {
		return mapWriteError("update vendeur commande statut", err)
	}
	return nil
}

// Delete supprime une commande vendeur.
func (r *VendorOrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM vendeur_commandes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendeur commande: %w", err)
	}
	return nil
}

// VendorRevenue somme prix_unitaire*quantite des seules lignes livrées du vendeur.
func (r *VendorOrderRepo) VendorRevenue(ctx context.Context, vendeurID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(prix_unitaire * quantite), 0) FROM vendeur_commandes
		 WHERE id_vendeur = $1 AND statut = $2`,
		vendeurID, order.StatutLivree,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("vendeur revenue: %w", err)
	}
	return total, nil
}

func collectVendorOrders(rows pgx.Rows) ([]*entity.VendorOrder, error) {
	var list []*entity.VendorOrder
	for rows.Next() {
		vo, err := scanVendorOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendeur commande: %w", err)
		}
		list = append(list, vo)
	}
	return list, rows.Err()
}
