package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests du carrousel de produits vedettes : plafond, doublons, positions.
// ──────────────────────────────────────────────────────────────────────────────

// fakeBannerRepo double minimal de BannerRepository, inutilisé par ces tests.
type fakeBannerRepo struct{}

func (fakeBannerRepo) List(context.Context) ([]entity.Banner, error)          { return nil, nil }
func (fakeBannerRepo) GetByID(context.Context, string) (*entity.Banner, error) { return nil, nil }
func (fakeBannerRepo) Count(context.Context) (int, error)                     { return 0, nil }
func (fakeBannerRepo) Insert(context.Context, *entity.Banner) error           { return nil }
func (fakeBannerRepo) Update(context.Context, *entity.Banner) error           { return nil }
func (fakeBannerRepo) Delete(context.Context, string) error                   { return nil }

func newPromoFixture(products ...*entity.Product) (*usecase.PromoUseCase, *fakeFeaturedRepo) {
	productRepo := newFakeProductRepo(products...)
	featured := newFakeFeaturedRepo()
	uc := usecase.NewPromoUseCase(featured, fakeBannerRepo{}, productRepo, &fakeImageStore{}, audit.NopPublisher{})
	return uc, featured
}

func catalogueDe(n int) []*entity.Product {
	out := make([]*entity.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, produitEnLigne(fmt.Sprintf("p%d", i), fmt.Sprintf("produit-%d", i), "10.00", 5))
	}
	return out
}

// Les ajouts successifs prennent les positions 1, 2, 3, ...
func TestAddFeatured_PositionsCroissantes(t *testing.T) {
	products := catalogueDe(3)
	uc, _ := newPromoFixture(products...)
	ctx := context.Background()

	for i, p := range products {
		resp, err := uc.AddFeatured(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, resp.Position)
	}
}

// Un produit déjà en vedette ne peut pas y figurer deux fois.
func TestAddFeatured_RefuseLeDoublon(t *testing.T) {
	uc, _ := newPromoFixture(catalogueDe(1)...)
	ctx := context.Background()

	_, err := uc.AddFeatured(ctx, "p0")
	require.NoError(t, err)

	_, err = uc.AddFeatured(ctx, "p0")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Le carrousel est plafonné : au-delà, l'ajout est refusé.
func TestAddFeatured_RefuseAuDelaDuPlafond(t *testing.T) {
	products := catalogueDe(entity.PromoLimit + 1)
	uc, _ := newPromoFixture(products...)
	ctx := context.Background()

	for i := 0; i < entity.PromoLimit; i++ {
		_, err := uc.AddFeatured(ctx, products[i].ID)
		require.NoError(t, err)
	}

	_, err := uc.AddFeatured(ctx, products[entity.PromoLimit].ID)
	assert.ErrorIs(t, err, domain.ErrFeaturedLimit)
}

// Un produit inconnu n'est pas mis en vedette.
func TestAddFeatured_ProduitInconnu(t *testing.T) {
	uc, _ := newPromoFixture()

	_, err := uc.AddFeatured(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Le retrait resserre les positions suivantes d'un cran : 1,2,3 moins le 2e
// donne 1,2.
func TestRemoveFeatured_ResserreLesPositions(t *testing.T) {
	products := catalogueDe(3)
	uc, _ := newPromoFixture(products...)
	ctx := context.Background()

	var ids []string
	for _, p := range products {
		resp, err := uc.AddFeatured(ctx, p.ID)
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	require.NoError(t, uc.RemoveFeatured(ctx, ids[1]))

	list, err := uc.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Position)
	assert.Equal(t, 2, list[1].Position)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)
}

// Déplacer vers le haut échange avec le voisin précédent ; en butée, no-op.
func TestMoveFeatured_EchangeAvecLeVoisin(t *testing.T) {
	products := catalogueDe(2)
	uc, _ := newPromoFixture(products...)
	ctx := context.Background()

	first, err := uc.AddFeatured(ctx, products[0].ID)
	require.NoError(t, err)
	second, err := uc.AddFeatured(ctx, products[1].ID)
	require.NoError(t, err)

	require.NoError(t, uc.MoveFeatured(ctx, second.ID, "up"))

	list, err := uc.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "le second est passé en tête")
	assert.Equal(t, first.ID, list[1].ID)

	// En tête, "up" ne change rien.
	require.NoError(t, uc.MoveFeatured(ctx, second.ID, "up"))
	list, err = uc.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, list[0].ID)
}
