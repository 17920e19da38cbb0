package order

import (
	"context"

	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// TxRunner exécute fn dans une transaction : les repos passés au callback sont
// liés à la transaction, qui est commitée si fn retourne nil, annulée sinon.
// Implémenté par postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		carts repository.CartRepository,
		orders repository.OrderRepository,
		vendorOrders repository.VendorOrderRepository,
	) error) error
}
