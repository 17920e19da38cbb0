package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	apporder "github.com/danmaket/marketplace-api/internal/application/order"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

var _ apporder.TxRunner = (*TxRunner)(nil)

// TxRunner exécute un callback dans une transaction PostgreSQL, avec des
// adaptateurs liés à la transaction. Sert au passage de commande : en-tête,
// lignes, éclatement vendeur et décrément de stock sont commités ensemble ou
// pas du tout.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run démarre une transaction, exécute fn avec les repos liés à la tx, puis
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	vendorOrders repository.VendorOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	products := NewProductRepository(tx)
	carts := NewCartRepository(tx)
	orders := NewOrderRepository(tx)
	vendorOrders := NewVendorOrderRepository(tx)

	if err := fn(products, carts, orders, vendorOrders); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
