package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests du panier : totaux, fusion des quantités, bornes de stock.
// ──────────────────────────────────────────────────────────────────────────────

const (
	cartClientID = "00000000-0000-0000-0000-00000000c001"
	cartAutreID  = "00000000-0000-0000-0000-00000000c002"
)

func produitEnLigne(id, nom, p string, stock int) *entity.Product {
	return &entity.Product{
		ID:        id,
		VendeurID: "00000000-0000-0000-0000-00000000v001",
		Nom:       nom,
		Prix:      prix(p),
		Stock:     stock,
		Statut:    entity.ProduitEnLigne,
		Slug:      nom,
		CreatedAt: time.Now(),
	}
}

func newCartFixture(products ...*entity.Product) (*usecase.CartUseCase, *fakeCartRepo, *fakeProductRepo) {
	productRepo := newFakeProductRepo(products...)
	cartRepo := newFakeCartRepo(productRepo)
	return usecase.NewCartUseCase(cartRepo, productRepo), cartRepo, productRepo
}

// Ajout d'un produit : une ligne est créée et les totaux reflètent prix × quantité.
func TestCartAdd_CalculeLesTotaux(t *testing.T) {
	uc, _, _ := newCartFixture(
		produitEnLigne("p1", "montre-or", "10.00", 50),
		produitEnLigne("p2", "bracelet", "2.50", 50),
	)
	ctx := context.Background()

	_, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 2})
	require.NoError(t, err)
	resp, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p2", Quantite: 4})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2, "une ligne par produit distinct")
	assert.Equal(t, 6, resp.ItemCount, "item_count = somme des quantités")
	assert.True(t, prix("30.00").Equal(resp.Total),
		"total = 2x10.00 + 4x2.50 = 30.00, obtenu %s", resp.Total)
}

// Ré-ajouter le même produit fusionne les quantités sur la ligne existante.
func TestCartAdd_FusionneLesQuantites(t *testing.T) {
	uc, _, _ := newCartFixture(produitEnLigne("p1", "montre-or", "10.00", 50))
	ctx := context.Background()

	_, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 2})
	require.NoError(t, err)
	resp, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "pas de seconde ligne pour le même produit")
	assert.Equal(t, 5, resp.Items[0].Quantite)
	assert.True(t, prix("50.00").Equal(resp.Total))
}

// La quantité cumulée ne peut pas dépasser le stock du produit.
func TestCartAdd_RefuseAuDelaDuStock(t *testing.T) {
	uc, _, _ := newCartFixture(produitEnLigne("p1", "montre-or", "10.00", 5))
	ctx := context.Background()

	_, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 3})
	require.NoError(t, err)

	_, err = uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"3 + 3 > stock de 5, l'ajout doit être refusé")

	// La première ligne reste intacte.
	resp, err := uc.Get(ctx, cartClientID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantite)
}

// Un produit hors ligne (brouillon ou suspendu) n'est pas ajoutable.
func TestCartAdd_RefuseProduitHorsLigne(t *testing.T) {
	p := produitEnLigne("p1", "montre-or", "10.00", 5)
	p.Statut = entity.ProduitBrouillon
	uc, _, _ := newCartFixture(p)

	_, err := uc.Add(context.Background(), cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Une quantité <= 0 supprime la ligne au lieu de la mettre à jour.
func TestCartUpdateQuantity_ZeroSupprimeLaLigne(t *testing.T) {
	uc, _, _ := newCartFixture(produitEnLigne("p1", "montre-or", "10.00", 50))
	ctx := context.Background()

	resp, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 2})
	require.NoError(t, err)
	lineID := resp.Items[0].ID

	resp, err = uc.UpdateQuantity(ctx, cartClientID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items, "quantité 0 = suppression de la ligne")
	assert.True(t, resp.Total.IsZero())
}

// Une quantité au-delà du stock est rejetée sans toucher à la ligne.
func TestCartUpdateQuantity_RefuseAuDelaDuStock(t *testing.T) {
	uc, _, _ := newCartFixture(produitEnLigne("p1", "montre-or", "10.00", 5))
	ctx := context.Background()

	resp, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 2})
	require.NoError(t, err)

	_, err = uc.UpdateQuantity(ctx, cartClientID, resp.Items[0].ID, 8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Un client ne peut pas modifier la ligne d'un autre client.
func TestCartUpdateQuantity_LigneDUnAutreClient(t *testing.T) {
	uc, _, _ := newCartFixture(produitEnLigne("p1", "montre-or", "10.00", 50))
	ctx := context.Background()

	resp, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 2})
	require.NoError(t, err)

	_, err = uc.UpdateQuantity(ctx, cartAutreID, resp.Items[0].ID, 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Clear vide le panier du client, et seulement le sien.
func TestCartClear_ViderLePanier(t *testing.T) {
	uc, _, _ := newCartFixture(produitEnLigne("p1", "montre-or", "10.00", 50))
	ctx := context.Background()

	_, err := uc.Add(ctx, cartClientID, dto.AddCartRequest{ProduitID: "p1", Quantite: 2})
	require.NoError(t, err)
	_, err = uc.Add(ctx, cartAutreID, dto.AddCartRequest{ProduitID: "p1", Quantite: 1})
	require.NoError(t, err)

	resp, err := uc.Clear(ctx, cartClientID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	autre, err := uc.Get(ctx, cartAutreID)
	require.NoError(t, err)
	assert.Len(t, autre.Items, 1, "le panier de l'autre client est préservé")
}
