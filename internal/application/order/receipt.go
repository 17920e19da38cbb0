package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// ReceiptLine une ligne du reçu, avec le nom du produit joint.
type ReceiptLine struct {
	ProduitNom   string
	Quantite     int
	PrixUnitaire decimal.Decimal
	SousTotal    decimal.Decimal
}

// ReceiptGenerator rend le reçu PDF d'une commande.
// Implémenté par pdf.MarotoReceiptGenerator.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, o *entity.Order, clientNom, clientEmail string, lines []ReceiptLine) ([]byte, error)
}

// ReceiptUseCase production du reçu PDF d'une commande, réservé à son client
// ou à un admin.
type ReceiptUseCase struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construit le cas d'usage.
func NewReceiptUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, users: users, products: products, generator: generator}
}

// Receipt retourne les octets du PDF.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, orderID, requesterID, requesterRole string) ([]byte, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.ClientID != requesterID && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	client, err := uc.users.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	clientNom, clientEmail := "", ""
	if client != nil {
		clientNom, clientEmail = client.Nom, client.Email
	}

	lines := make([]ReceiptLine, 0, len(o.Items))
	for _, item := range o.Items {
		nom := item.ProduitID
		if p, err := uc.products.GetByID(ctx, item.ProduitID); err == nil && p != nil {
			nom = p.Nom
		}
		lines = append(lines, ReceiptLine{
			ProduitNom:   nom,
			Quantite:     item.Quantite,
			PrixUnitaire: item.PrixUnitaire,
			SousTotal:    item.PrixUnitaire.Mul(decimal.NewFromInt(int64(item.Quantite))),
		})
	}

	return uc.generator.GenerateReceipt(ctx, o, clientNom, clientEmail, lines)
}
