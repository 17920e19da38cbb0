package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/order"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// CheckoutUseCase transforme le panier en commande. Toute l'écriture tient
// dans une seule transaction : en-tête, lignes, éclatement vendeur, décrément
// de stock et vidage du panier sont commités ensemble ou pas du tout.
type CheckoutUseCase struct {
	tx            TxRunner
	notifications repository.NotificationRepository
	recorder      *audit.Recorder
	feed          audit.Publisher
}

// NewCheckoutUseCase construit le cas d'usage.
func NewCheckoutUseCase(tx TxRunner, notifications repository.NotificationRepository, recorder *audit.Recorder, feed audit.Publisher) *CheckoutUseCase {
	return &CheckoutUseCase{tx: tx, notifications: notifications, recorder: recorder, feed: feed}
}

// Checkout passe la commande sur le contenu du panier de clientID.
//
// Dans la transaction : panier non vide → relecture de chaque produit sous
// verrou → rejet ErrPriceChanged si un prix a bougé depuis l'ajout au panier →
// décrément de stock (ErrInsufficientStock si insuffisant) → insertion de la
// commande en_attente, de ses lignes au prix validé et d'une ligne
// vendeur_commandes par produit → vidage du panier.
//
// Après commit : journal d'activité, notification client, diffusion temps réel.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, clientID, clientEmail string, in dto.CheckoutRequest, ip string) (*dto.OrderResponse, error) {
	var created *entity.Order
	vendeurs := make(map[string]struct{})

	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		carts repository.CartRepository,
		orders repository.OrderRepository,
		vendorOrders repository.VendorOrderRepository,
	) error {
		lines, err := carts.ListByUser(ctx, clientID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now()
		o := &entity.Order{
			ID:               uuid.New().String(),
			ClientID:         clientID,
			Total:            decimal.Zero,
			AdresseLivraison: in.AdresseLivraison,
			MethodePaiement:  in.MethodePaiement,
			Statut:           order.StatutEnAttente,
			CreatedAt:        now,
		}

		type fanout struct {
			vendeurID string
			produitID string
			quantite  int
			prix      decimal.Decimal
		}
		var fanouts []fanout

		for _, line := range lines {
			if line.Produit == nil {
				return fmt.Errorf("checkout: produit manquant sur la ligne %s", line.ID)
			}

			fresh, err := products.GetForUpdate(ctx, line.ProduitID)
			if err != nil {
				return err
			}
			if fresh == nil || fresh.Statut != entity.ProduitEnLigne {
				return domain.ErrNotFound
			}
			// Le prix de référence est celui vu par le client dans son
			// panier : toute dérive depuis la dernière lecture rejette la
			// commande plutôt que de facturer un montant jamais affiché.
			if !fresh.Prix.Equal(line.Produit.Prix) {
				return domain.ErrPriceChanged
			}
			if err := products.DecrementStock(ctx, fresh.ID, line.Quantite); err != nil {
				return err
			}

			o.Items = append(o.Items, entity.OrderLine{
				ID:           uuid.New().String(),
				CommandeID:   o.ID,
				ProduitID:    fresh.ID,
				Quantite:     line.Quantite,
				PrixUnitaire: fresh.Prix,
				CreatedAt:    now,
			})
			o.Total = o.Total.Add(fresh.Prix.Mul(decimal.NewFromInt(int64(line.Quantite))))

			fanouts = append(fanouts, fanout{
				vendeurID: fresh.VendeurID,
				produitID: fresh.ID,
				quantite:  line.Quantite,
				prix:      fresh.Prix,
			})
		}

		if err := orders.Create(ctx, o); err != nil {
			return err
		}
		for i := range o.Items {
			if err := orders.CreateLine(ctx, &o.Items[i]); err != nil {
				return err
			}
		}
		for _, f := range fanouts {
			vo := &entity.VendorOrder{
				ID:           uuid.New().String(),
				CommandeID:   o.ID,
				VendeurID:    f.vendeurID,
				ProduitID:    f.produitID,
				Quantite:     f.quantite,
				PrixUnitaire: f.prix,
				Statut:       order.StatutEnAttente,
				CreatedAt:    now,
			}
			if err := vendorOrders.Create(ctx, vo); err != nil {
				return err
			}
			vendeurs[f.vendeurID] = struct{}{}
		}

		if err := carts.ClearUser(ctx, clientID); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      clientID,
		UserEmail:   clientEmail,
		ActionType:  entity.ActionPurchase,
		Description: fmt.Sprintf("commande %s (%s)", created.ID, created.Total.StringFixed(2)),
		IPAddress:   ip,
		Metadata:    map[string]any{"commande_id": created.ID, "total": created.Total.String()},
	})
	uc.notify(ctx, clientID, "commande",
		fmt.Sprintf("Votre commande de %s a bien été enregistrée.", created.Total.StringFixed(2)))
	for vendeurID := range vendeurs {
		uc.notify(ctx, vendeurID, "vendeur",
			fmt.Sprintf("Nouvelle commande à traiter (commande %s).", created.ID))
	}
	uc.feed.Publish(ctx, "commandes", "INSERT", created.ID)

	return toOrderResponse(created), nil
}

func (uc *CheckoutUseCase) notify(ctx context.Context, userID, typ, message string) {
	n := &entity.Notification{
		ID:            uuid.New().String(),
		UtilisateurID: userID,
		Message:       message,
		Type:          typ,
		CreatedAt:     time.Now(),
	}
	// Best-effort : l'échec d'une notification ne remet pas la commande en cause.
	_ = uc.notifications.Create(ctx, n)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.OrderResponse{
		ID:               o.ID,
		ClientID:         o.ClientID,
		Total:            o.Total,
		AdresseLivraison: o.AdresseLivraison,
		MethodePaiement:  o.MethodePaiement,
		Statut:           o.Statut,
		CreatedAt:        o.CreatedAt,
	}
	for _, l := range o.Items {
		resp.Items = append(resp.Items, dto.OrderLineResponse{
			ID:           l.ID,
			ProduitID:    l.ProduitID,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
		})
	}
	return resp
}
