package order_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	apporder "github.com/danmaket/marketplace-api/internal/application/order"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	domorder "github.com/danmaket/marketplace-api/internal/domain/order"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
	"github.com/danmaket/marketplace-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests du passage de commande : une transaction, totaux au prix validé,
// éclatement vendeur, rejets prix/stock/panier vide.
//
// Le store en mémoire joue tous les ports à la fois ; le TxRunner de test
// exécute la fonction transactionnelle directement dessus. Les rejets testés
// interviennent avant toute écriture, le défaut de rollback du double est donc
// sans incidence sur les assertions.
// ──────────────────────────────────────────────────────────────────────────────

const (
	clientID  = "00000000-0000-0000-0000-00000000c001"
	vendeurA  = "00000000-0000-0000-0000-00000000v00a"
	vendeurB  = "00000000-0000-0000-0000-00000000v00b"
	clientIP  = "203.0.113.7"
	clientEmail = "client@test.fr"
)

type memStore struct {
	products      map[string]*entity.Product
	cartLines     map[string]*entity.CartLine
	orders        map[string]*entity.Order
	orderLines    []*entity.OrderLine
	vendorOrders  map[string]*entity.VendorOrder
	notifications []*entity.Notification
	activityLogs  []*entity.ActivityLog
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{
		products:     make(map[string]*entity.Product),
		cartLines:    make(map[string]*entity.CartLine),
		orders:       make(map[string]*entity.Order),
		vendorOrders: make(map[string]*entity.VendorOrder),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) addCartLine(id, produitID string, quantite int, prixVu decimal.Decimal) {
	p := *s.products[produitID]
	p.Prix = prixVu
	s.cartLines[id] = &entity.CartLine{
		ID:            id,
		UtilisateurID: clientID,
		ProduitID:     produitID,
		Quantite:      quantite,
		Produit:       &p,
		CreatedAt:     time.Now(),
	}
}

// ── ProductRepository ────────────────────────────────────────────────────────

func (s *memStore) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) GetBySlug(context.Context, string) (*entity.Product, error) { return nil, nil }

func (s *memStore) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memStore) UpdateStatut(_ context.Context, id, statut string) error {
	if p, ok := s.products[id]; ok {
		p.Statut = statut
	}
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.products, id)
	return nil
}

func (s *memStore) ListByVendeur(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (s *memStore) ListOnline(context.Context, int, int) ([]*entity.Product, error) { return nil, nil }
func (s *memStore) ListByCategorie(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (s *memStore) Search(context.Context, string, int) ([]*entity.Product, error) { return nil, nil }
func (s *memStore) Count(context.Context) (int, error)                             { return 0, nil }

func (s *memStore) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) DecrementStock(_ context.Context, id string, quantite int) error {
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < quantite {
		return domain.ErrInsufficientStock
	}
	p.Stock -= quantite
	p.VentesTotal += quantite
	return nil
}

func (s *memStore) RestoreStock(_ context.Context, id string, quantite int) error {
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += quantite
	if p.VentesTotal -= quantite; p.VentesTotal < 0 {
		p.VentesTotal = 0
	}
	return nil
}

// ── CartRepository ───────────────────────────────────────────────────────────

func (s *memStore) ListByUser(_ context.Context, userID string) ([]entity.CartLine, error) {
	var out []entity.CartLine
	for _, l := range s.cartLines {
		if l.UtilisateurID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetLine(_ context.Context, lineID string) (*entity.CartLine, error) {
	l, ok := s.cartLines[lineID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (s *memStore) FindLine(context.Context, string, string) (*entity.CartLine, error) {
	return nil, nil
}

func (s *memStore) Insert(_ context.Context, line *entity.CartLine) error {
	cp := *line
	s.cartLines[line.ID] = &cp
	return nil
}

func (s *memStore) UpdateQuantite(_ context.Context, lineID string, quantite int) error {
	if l, ok := s.cartLines[lineID]; ok {
		l.Quantite = quantite
	}
	return nil
}

func (s *memStore) DeleteLine(_ context.Context, lineID string) error {
	delete(s.cartLines, lineID)
	return nil
}

func (s *memStore) ClearUser(_ context.Context, userID string) error {
	for id, l := range s.cartLines {
		if l.UtilisateurID == userID {
			delete(s.cartLines, id)
		}
	}
	return nil
}

// ── OrderRepository / VendorOrderRepository ──────────────────────────────────

type orderStore struct{ s *memStore }

func (r orderStore) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r orderStore) CreateLine(_ context.Context, l *entity.OrderLine) error {
	cp := *l
	r.s.orderLines = append(r.s.orderLines, &cp)
	return nil
}

func (r orderStore) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r orderStore) ListByClient(_ context.Context, clientID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.ClientID == clientID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r orderStore) List(context.Context, int, int) ([]*entity.Order, error) { return nil, nil }

func (r orderStore) UpdateStatut(_ context.Context, id, statut string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Statut = statut
	return nil
}

func (r orderStore) Delete(_ context.Context, id string) error {
	delete(r.s.orders, id)
	return nil
}

func (r orderStore) Search(context.Context, string, int) ([]*entity.Order, error) { return nil, nil }
func (r orderStore) Count(context.Context) (int, error)                           { return len(r.s.orders), nil }
func (r orderStore) PlatformRevenue(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type vendorOrderStore struct{ s *memStore }

func (r vendorOrderStore) Create(_ context.Context, vo *entity.VendorOrder) error {
	cp := *vo
	r.s.vendorOrders[vo.ID] = &cp
	return nil
}

func (r vendorOrderStore) GetByID(_ context.Context, id string) (*entity.VendorOrder, error) {
	vo, ok := r.s.vendorOrders[id]
	if !ok {
		return nil, nil
	}
	cp := *vo
	return &cp, nil
}

func (r vendorOrderStore) ListByVendeur(_ context.Context, vendeurID string) ([]*entity.VendorOrder, error) {
	var out []*entity.VendorOrder
	for _, vo := range r.s.vendorOrders {
		if vo.VendeurID == vendeurID {
			cp := *vo
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r vendorOrderStore) ListByCommande(_ context.Context, commandeID string) ([]*entity.VendorOrder, error) {
	var out []*entity.VendorOrder
	for _, vo := range r.s.vendorOrders {
		if vo.CommandeID == commandeID {
			cp := *vo
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r vendorOrderStore) UpdateStatut(_ context.Context, id, statut string) error {
	vo, ok := r.s.vendorOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	vo.Statut = statut
	return nil
}

func (r vendorOrderStore) Delete(_ context.Context, id string) error {
	delete(r.s.vendorOrders, id)
	return nil
}

func (r vendorOrderStore) VendorRevenue(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// ── NotificationRepository / ActivityLogRepository ───────────────────────────

type sideEffectStore struct{ s *memStore }

func (r sideEffectStore) Create(_ context.Context, n *entity.Notification) error {
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r sideEffectStore) ListByUser(context.Context, string, int) ([]entity.Notification, error) {
	return nil, nil
}
func (r sideEffectStore) MarkRead(context.Context, string, string) error { return nil }
func (r sideEffectStore) CountUnread(context.Context, string) (int, error) {
	return 0, nil
}

func (r sideEffectStore) Insert(_ context.Context, l *entity.ActivityLog) error {
	cp := *l
	r.s.activityLogs = append(r.s.activityLogs, &cp)
	return nil
}

func (r sideEffectStore) List(context.Context, repository.ActivityLogFilter) ([]entity.ActivityLog, error) {
	return nil, nil
}

// cartPort adapte memStore : Delete de CartRepository entre en conflit avec le
// Delete de ProductRepository porté par le même store.
type cartPort struct{ s *memStore }

func (r cartPort) ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return r.s.ListByUser(ctx, userID)
}
func (r cartPort) GetLine(ctx context.Context, lineID string) (*entity.CartLine, error) {
	return r.s.GetLine(ctx, lineID)
}
func (r cartPort) FindLine(ctx context.Context, userID, produitID string) (*entity.CartLine, error) {
	return r.s.FindLine(ctx, userID, produitID)
}
func (r cartPort) Insert(ctx context.Context, line *entity.CartLine) error {
	return r.s.Insert(ctx, line)
}
func (r cartPort) UpdateQuantite(ctx context.Context, lineID string, quantite int) error {
	return r.s.UpdateQuantite(ctx, lineID, quantite)
}
func (r cartPort) Delete(ctx context.Context, lineID string) error {
	return r.s.DeleteLine(ctx, lineID)
}
func (r cartPort) ClearUser(ctx context.Context, userID string) error {
	return r.s.ClearUser(ctx, userID)
}

// fakeTxRunner exécute la fonction transactionnelle directement sur le store.
type fakeTxRunner struct{ s *memStore }

func (t fakeTxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	vendorOrders repository.VendorOrderRepository,
) error) error {
	return fn(t.s, cartPort{t.s}, orderStore{t.s}, vendorOrderStore{t.s})
}

func newCheckoutFixture(s *memStore) *apporder.CheckoutUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	recorder := audit.NewRecorder(sideEffectStore{s}, log)
	return apporder.NewCheckoutUseCase(fakeTxRunner{s}, sideEffectStore{s}, recorder, audit.NopPublisher{})
}

func enLigne(id, vendeurID, p string, stock int) *entity.Product {
	return &entity.Product{
		ID:        id,
		VendeurID: vendeurID,
		Nom:       "produit-" + id,
		Prix:      mustPrix(p),
		Stock:     stock,
		Statut:    entity.ProduitEnLigne,
		Slug:      "produit-" + id,
	}
}

func mustPrix(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func checkoutRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		AdresseLivraison: "12 rue des Lilas, Douala",
		MethodePaiement:  "mobile_money",
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Cas nominal : deux produits de deux vendeurs. Une seule commande en_attente,
// total aux prix validés, une ligne vendeur_commandes par produit, stock
// décrémenté, panier vidé, notification et journal écrits.
func TestCheckout_CommandeComplete(t *testing.T) {
	s := newMemStore(
		enLigne("p1", vendeurA, "10.00", 5),
		enLigne("p2", vendeurB, "2.50", 8),
	)
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	s.addCartLine("l2", "p2", 4, mustPrix("2.50"))
	uc := newCheckoutFixture(s)

	resp, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	require.NoError(t, err)

	assert.Equal(t, domorder.StatutEnAttente, resp.Statut)
	assert.True(t, mustPrix("30.00").Equal(resp.Total),
		"total = 2x10.00 + 4x2.50, obtenu %s", resp.Total)
	require.Len(t, resp.Items, 2)

	require.Len(t, s.orders, 1, "une seule commande en base")
	assert.Len(t, s.orderLines, 2)
	assert.Len(t, s.vendorOrders, 2, "une ligne vendeur par produit")
	for _, vo := range s.vendorOrders {
		assert.Equal(t, domorder.StatutEnAttente, vo.Statut)
	}

	assert.Equal(t, 3, s.products["p1"].Stock, "stock décrémenté de la quantité commandée")
	assert.Equal(t, 4, s.products["p2"].Stock)
	assert.Empty(t, s.cartLines, "le panier est vidé dans la même transaction")

	require.Len(t, s.notifications, 3, "une notification client + une par vendeur")
	notified := make(map[string]bool)
	for _, n := range s.notifications {
		notified[n.UtilisateurID] = true
	}
	assert.True(t, notified[clientID])
	assert.True(t, notified[vendeurA])
	assert.True(t, notified[vendeurB])
	require.Len(t, s.activityLogs, 1)
	assert.Equal(t, entity.ActionPurchase, s.activityLogs[0].ActionType)
	assert.Equal(t, clientEmail, s.activityLogs[0].UserEmail,
		"le journal d'activité porte l'email du client, pas une chaîne vide")
}

// Deux exemplaires d'un produit à 10.00 : une commande de 20.00, une seule
// ligne, panier vidé.
func TestCheckout_DeuxExemplairesUneLigne(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	uc := newCheckoutFixture(s)

	resp, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	require.NoError(t, err)

	assert.True(t, mustPrix("20.00").Equal(resp.Total))
	require.Len(t, resp.Items, 1, "une ligne pour les deux exemplaires")
	assert.Equal(t, 2, resp.Items[0].Quantite)
	assert.True(t, mustPrix("10.00").Equal(resp.Items[0].PrixUnitaire))
	assert.Empty(t, s.cartLines)
}

// Panier vide : rejet typé, aucune écriture.
func TestCheckout_PanierVide(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	uc := newCheckoutFixture(s)

	_, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, s.orders)
	assert.Empty(t, s.notifications)
}

// Le prix a bougé entre l'ajout au panier et le passage de commande : rejet
// ErrPriceChanged plutôt que facturer un montant jamais affiché au client.
func TestCheckout_PrixModifieDepuisLePanier(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "12.00", 5))
	s.addCartLine("l1", "p1", 2, mustPrix("10.00")) // prix vu à l'ajout
	uc := newCheckoutFixture(s)

	_, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	assert.ErrorIs(t, err, domain.ErrPriceChanged)

	assert.Empty(t, s.orders, "aucune commande créée")
	assert.Equal(t, 5, s.products["p1"].Stock, "le stock n'a pas bougé")
	assert.Len(t, s.cartLines, 1, "le panier est conservé pour re-validation")
}

// Stock insuffisant au moment du passage : rejet typé.
func TestCheckout_StockInsuffisant(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 1))
	s.addCartLine("l1", "p1", 3, mustPrix("10.00"))
	uc := newCheckoutFixture(s)

	_, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.orders)
}

// Un produit passé hors ligne depuis l'ajout au panier bloque la commande.
func TestCheckout_ProduitRetireDepuisLePanier(t *testing.T) {
	p := enLigne("p1", vendeurA, "10.00", 5)
	p.Statut = entity.ProduitSuspendu
	s := newMemStore(p)
	s.addCartLine("l1", "p1", 1, mustPrix("10.00"))
	// La jointure du panier porte encore l'ancien statut.
	s.cartLines["l1"].Produit.Statut = entity.ProduitEnLigne
	uc := newCheckoutFixture(s)

	_, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Cycle de vie après commande ──────────────────────────────────────────────

func newOrderFixture(s *memStore) *apporder.OrderUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	recorder := audit.NewRecorder(sideEffectStore{s}, log)
	return apporder.NewOrderUseCase(orderStore{s}, vendorOrderStore{s}, s, sideEffectStore{s}, recorder, audit.NopPublisher{})
}

func passerCommande(t *testing.T, s *memStore) string {
	t.Helper()
	uc := newCheckoutFixture(s)
	resp, err := uc.Checkout(context.Background(), clientID, clientEmail, checkoutRequest(), clientIP)
	require.NoError(t, err)
	return resp.ID
}

// Le client annule sa commande en_attente ; les lignes vendeur suivent.
func TestCancel_PropageAuxLignesVendeur(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 1, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	uc := newOrderFixture(s)

	require.NoError(t, uc.Cancel(context.Background(), orderID, clientID, entity.RoleClient, clientEmail, clientIP))

	assert.Equal(t, domorder.StatutAnnulee, s.orders[orderID].Statut)
	for _, vo := range s.vendorOrders {
		assert.Equal(t, domorder.StatutAnnulee, vo.Statut)
	}
}

// Une commande expédiée ne s'annule plus.
func TestCancel_RefuseApresExpedition(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 1, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	s.orders[orderID].Statut = domorder.StatutExpediee
	uc := newOrderFixture(s)

	err := uc.Cancel(context.Background(), orderID, clientID, entity.RoleClient, clientEmail, clientIP)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Un client ne voit ni n'annule la commande d'un autre.
func TestCancel_CommandeDUnAutreClient(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 1, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	uc := newOrderFixture(s)

	err := uc.Cancel(context.Background(), orderID, "autre-client", entity.RoleClient, "x@test.fr", clientIP)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// L'avancement admin suit la chaîne en_attente → en_cours → expediee → livree ;
// les sauts et retours sont rejetés.
func TestUpdateStatus_ChaineDesTransitions(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 1, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	uc := newOrderFixture(s)
	ctx := context.Background()

	err := uc.UpdateStatus(ctx, orderID, domorder.StatutLivree, "admin-1", "admin@test.fr", clientIP)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "en_attente → livree saute deux étapes")

	for _, next := range []string{domorder.StatutEnCours, domorder.StatutExpediee, domorder.StatutLivree} {
		require.NoError(t, uc.UpdateStatus(ctx, orderID, next, "admin-1", "admin@test.fr", clientIP))
	}
	assert.Equal(t, domorder.StatutLivree, s.orders[orderID].Statut)

	err = uc.UpdateStatus(ctx, orderID, domorder.StatutEnCours, "admin-1", "admin@test.fr", clientIP)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "une commande livrée est terminale")
}

// ── Restitution du stock ─────────────────────────────────────────────────────

// L'annulation rend au produit le stock et les ventes consommés au checkout :
// 2 exemplaires pris sur un stock de 5 doivent revenir à 5, ventes à zéro.
func TestCancel_RestitueStockEtVentes(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	require.Equal(t, 3, s.products["p1"].Stock)
	require.Equal(t, 2, s.products["p1"].VentesTotal)
	uc := newOrderFixture(s)

	require.NoError(t, uc.Cancel(context.Background(), orderID, clientID, entity.RoleClient, clientEmail, clientIP))

	assert.Equal(t, 5, s.products["p1"].Stock)
	assert.Equal(t, 0, s.products["p1"].VentesTotal)
}

// La suppression d'une commande en_attente restitue le stock de chaque ligne.
func TestDelete_RestitueLeStock(t *testing.T) {
	s := newMemStore(
		enLigne("p1", vendeurA, "10.00", 5),
		enLigne("p2", vendeurB, "2.50", 8),
	)
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	s.addCartLine("l2", "p2", 4, mustPrix("2.50"))
	orderID := passerCommande(t, s)
	uc := newOrderFixture(s)

	require.NoError(t, uc.Delete(context.Background(), orderID, clientID, entity.RoleClient))

	assert.Nil(t, s.orders[orderID])
	assert.Empty(t, s.vendorOrders)
	assert.Equal(t, 5, s.products["p1"].Stock)
	assert.Equal(t, 8, s.products["p2"].Stock)
	assert.Equal(t, 0, s.products["p1"].VentesTotal)
	assert.Equal(t, 0, s.products["p2"].VentesTotal)
}

// L'annulation admin passe par la même restitution que celle du client.
func TestUpdateStatus_AnnulationRestitueLeStock(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	uc := newOrderFixture(s)

	require.NoError(t, uc.UpdateStatus(context.Background(), orderID, domorder.StatutAnnulee, "admin-1", "admin@test.fr", clientIP))

	assert.Equal(t, 5, s.products["p1"].Stock)
	assert.Equal(t, 0, s.products["p1"].VentesTotal)
	for _, vo := range s.vendorOrders {
		assert.Equal(t, domorder.StatutAnnulee, vo.Statut)
	}
}

// Le vendeur qui annule sa propre ligne ne restitue que son produit, pas ceux
// des autres vendeurs de la commande.
func TestUpdateVendorStatus_AnnulationRestitueSaLigne(t *testing.T) {
	s := newMemStore(
		enLigne("p1", vendeurA, "10.00", 5),
		enLigne("p2", vendeurB, "2.50", 8),
	)
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	s.addCartLine("l2", "p2", 4, mustPrix("2.50"))
	passerCommande(t, s)
	uc := newOrderFixture(s)

	var ligneA string
	for id, vo := range s.vendorOrders {
		if vo.VendeurID == vendeurA {
			ligneA = id
		}
	}
	require.NotEmpty(t, ligneA)

	require.NoError(t, uc.UpdateVendorStatus(context.Background(), ligneA, domorder.StatutAnnulee, vendeurA, "a@test.fr", clientIP))

	assert.Equal(t, 5, s.products["p1"].Stock)
	assert.Equal(t, 0, s.products["p1"].VentesTotal)
	assert.Equal(t, 4, s.products["p2"].Stock, "la ligne de l'autre vendeur reste consommée")
	assert.Equal(t, 4, s.products["p2"].VentesTotal)
}

// Une ligne déjà annulée par son vendeur n'est pas restituée une seconde fois
// quand le client annule la commande entière.
func TestCancel_PasDeDoubleRestitution(t *testing.T) {
	s := newMemStore(enLigne("p1", vendeurA, "10.00", 5))
	s.addCartLine("l1", "p1", 2, mustPrix("10.00"))
	orderID := passerCommande(t, s)
	uc := newOrderFixture(s)
	ctx := context.Background()

	var ligne string
	for id := range s.vendorOrders {
		ligne = id
	}
	require.NoError(t, uc.UpdateVendorStatus(ctx, ligne, domorder.StatutAnnulee, vendeurA, "a@test.fr", clientIP))
	require.Equal(t, 5, s.products["p1"].Stock)

	require.NoError(t, uc.Cancel(ctx, orderID, clientID, entity.RoleClient, clientEmail, clientIP))

	assert.Equal(t, 5, s.products["p1"].Stock)
	assert.Equal(t, 0, s.products["p1"].VentesTotal)
}
