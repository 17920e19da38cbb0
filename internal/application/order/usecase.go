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

// OrderUseCase lecture et cycle de vie des commandes client et vendeur. Chaque
// changement de statut passe par la machine à états avant écriture.
type OrderUseCase struct {
	orders        repository.OrderRepository
	vendorOrders  repository.VendorOrderRepository
	products      repository.ProductRepository
	notifications repository.NotificationRepository
	recorder      *audit.Recorder
	feed          audit.Publisher
}

// NewOrderUseCase construit le cas d'usage.
func NewOrderUseCase(
	orders repository.OrderRepository,
	vendorOrders repository.VendorOrderRepository,
	products repository.ProductRepository,
	notifications repository.NotificationRepository,
	recorder *audit.Recorder,
	feed audit.Publisher,
) *OrderUseCase {
	return &OrderUseCase{
		orders:        orders,
		vendorOrders:  vendorOrders,
		products:      products,
		notifications: notifications,
		recorder:      recorder,
		feed:          feed,
	}
}

// ListByClient retourne les commandes du client.
func (uc *OrderUseCase) ListByClient(ctx context.Context, clientID string) ([]dto.OrderResponse, error) {
	orders, err := uc.orders.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Get retourne une commande. Un client ne voit que les siennes, un admin tout.
func (uc *OrderUseCase) Get(ctx context.Context, id, requesterID, requesterRole string) (*dto.OrderResponse, error) {
	o, err := uc.loadOwned(ctx, id, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Cancel annule une commande du client. Permis uniquement depuis en_attente ou
// en_cours ; les lignes vendeur encore ouvertes sont annulées avec et leur
// stock re-crédité.
func (uc *OrderUseCase) Cancel(ctx context.Context, id, requesterID, requesterRole, requesterEmail, ip string) error {
	o, err := uc.loadOwned(ctx, id, requesterID, requesterRole)
	if err != nil {
		return err
	}
	if !order.CanCancel(o.Statut) {
		return domain.ErrInvalidTransition
	}
	if err := uc.orders.UpdateStatut(ctx, o.ID, order.StatutAnnulee); err != nil {
		return err
	}

	uc.releaseVendorLines(ctx, o.ID)

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      requesterID,
		UserEmail:   requesterEmail,
		ActionType:  entity.ActionOrderStatusChange,
		Description: fmt.Sprintf("commande %s annulée", o.ID),
		IPAddress:   ip,
	})
	uc.feed.Publish(ctx, "commandes", "UPDATE", o.ID)
	return nil
}

// Delete supprime une commande du client. Permis uniquement depuis en_attente ;
// le stock des lignes vendeur est re-crédité avant suppression.
func (uc *OrderUseCase) Delete(ctx context.Context, id, requesterID, requesterRole string) error {
	o, err := uc.loadOwned(ctx, id, requesterID, requesterRole)
	if err != nil {
		return err
	}
	if !order.CanDelete(o.Statut) {
		return domain.ErrInvalidTransition
	}

	vos, err := uc.vendorOrders.ListByCommande(ctx, o.ID)
	if err != nil {
		return err
	}
	for _, vo := range vos {
		if order.CanCancel(vo.Statut) {
			_ = uc.products.RestoreStock(ctx, vo.ProduitID, vo.Quantite)
		}
		if err := uc.vendorOrders.Delete(ctx, vo.ID); err != nil {
			return err
		}
	}
	if err := uc.orders.Delete(ctx, o.ID); err != nil {
		return err
	}
	uc.feed.Publish(ctx, "commandes", "DELETE", o.ID)
	return nil
}

// UpdateStatus fait avancer une commande (vue admin) d'un statut à l'autre.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, statut, adminID, adminEmail, ip string) error {
	if !order.Known(statut) {
		return domain.ErrInvalidInput
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	if !order.CanTransition(o.Statut, statut) {
		return domain.ErrInvalidTransition
	}
	if err := uc.orders.UpdateStatut(ctx, o.ID, statut); err != nil {
		return err
	}
	if statut == order.StatutAnnulee {
		uc.releaseVendorLines(ctx, o.ID)
	}

	uc.notify(ctx, o.ClientID, fmt.Sprintf("Votre commande est passée au statut %s.", statut))
	uc.recorder.Record(ctx, audit.Entry{
		UserID:      adminID,
		UserEmail:   adminEmail,
		ActionType:  entity.ActionOrderStatusChange,
		Description: fmt.Sprintf("commande %s : %s -> %s", o.ID, o.Statut, statut),
		IPAddress:   ip,
	})
	uc.feed.Publish(ctx, "commandes", "UPDATE", o.ID)
	return nil
}

// ListVendorOrders retourne les commandes du vendeur connecté.
func (uc *OrderUseCase) ListVendorOrders(ctx context.Context, vendeurID string) ([]dto.VendorOrderResponse, error) {
	vos, err := uc.vendorOrders.ListByVendeur(ctx, vendeurID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorOrderResponse, 0, len(vos))
	for _, vo := range vos {
		out = append(out, toVendorOrderResponse(vo))
	}
	return out, nil
}

// UpdateVendorStatus fait avancer une commande vendeur dans la même chaîne de
// statuts, indépendamment de la commande mère.
func (uc *OrderUseCase) UpdateVendorStatus(ctx context.Context, id, statut, vendeurID, vendeurEmail, ip string) error {
	if !order.Known(statut) {
		return domain.ErrInvalidInput
	}
	vo, err := uc.vendorOrders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vo == nil {
		return domain.ErrNotFound
	}
	if vo.VendeurID != vendeurID {
		return domain.ErrForbidden
	}
	if !order.CanTransition(vo.Statut, statut) {
		return domain.ErrInvalidTransition
	}
	if err := uc.vendorOrders.UpdateStatut(ctx, vo.ID, statut); err != nil {
		return err
	}
	if statut == order.StatutAnnulee {
		_ = uc.products.RestoreStock(ctx, vo.ProduitID, vo.Quantite)
	}

	parent, err := uc.orders.GetByID(ctx, vo.CommandeID)
	if err == nil && parent != nil {
		uc.notify(ctx, parent.ClientID, fmt.Sprintf("Un article de votre commande est passé au statut %s.", statut))
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:      vendeurID,
		UserEmail:   vendeurEmail,
		ActionType:  entity.ActionVendorOrderAction,
		Description: fmt.Sprintf("commande vendeur %s : %s -> %s", vo.ID, vo.Statut, statut),
		IPAddress:   ip,
	})
	uc.feed.Publish(ctx, "vendeur_commandes", "UPDATE", vo.ID)
	return nil
}

// DeleteVendorOrder supprime une ligne vendeur encore en_attente.
func (uc *OrderUseCase) DeleteVendorOrder(ctx context.Context, id, vendeurID string) error {
	vo, err := uc.vendorOrders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vo == nil {
		return domain.ErrNotFound
	}
	if vo.VendeurID != vendeurID {
		return domain.ErrForbidden
	}
	if !order.CanDelete(vo.Statut) {
		return domain.ErrInvalidTransition
	}
	if err := uc.vendorOrders.Delete(ctx, vo.ID); err != nil {
		return err
	}
	_ = uc.products.RestoreStock(ctx, vo.ProduitID, vo.Quantite)
	uc.feed.Publish(ctx, "vendeur_commandes", "DELETE", vo.ID)
	return nil
}

// releaseVendorLines annule les lignes vendeur encore ouvertes d'une commande
// et re-crédite le stock consommé au checkout. Les lignes déjà expédiées,
// livrées ou annulées ne sont pas touchées.
func (uc *OrderUseCase) releaseVendorLines(ctx context.Context, commandeID string) {
	vos, err := uc.vendorOrders.ListByCommande(ctx, commandeID)
	if err != nil {
		return
	}
	for _, vo := range vos {
		if !order.CanCancel(vo.Statut) {
			continue
		}
		if err := uc.vendorOrders.UpdateStatut(ctx, vo.ID, order.StatutAnnulee); err != nil {
			continue
		}
		_ = uc.products.RestoreStock(ctx, vo.ProduitID, vo.Quantite)
	}
}

// VendorRevenue chiffre d'affaires du vendeur, lignes livrées uniquement.
func (uc *OrderUseCase) VendorRevenue(ctx context.Context, vendeurID string) (decimal.Decimal, error) {
	return uc.vendorOrders.VendorRevenue(ctx, vendeurID)
}

// loadOwned charge la commande et vérifie que le demandeur est son client ou
// un admin.
func (uc *OrderUseCase) loadOwned(ctx context.Context, id, requesterID, requesterRole string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.ClientID != requesterID && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (uc *OrderUseCase) notify(ctx context.Context, userID, message string) {
	n := &entity.Notification{
		ID:            uuid.New().String(),
		UtilisateurID: userID,
		Message:       message,
		Type:          "commande",
		CreatedAt:     time.Now(),
	}
	_ = uc.notifications.Create(ctx, n)
}

func toVendorOrderResponse(vo *entity.VendorOrder) dto.VendorOrderResponse {
	return dto.VendorOrderResponse{
		ID:           vo.ID,
		CommandeID:   vo.CommandeID,
		ProduitID:    vo.ProduitID,
		Quantite:     vo.Quantite,
		PrixUnitaire: vo.PrixUnitaire,
		Statut:       vo.Statut,
		CreatedAt:    vo.CreatedAt,
	}
}
