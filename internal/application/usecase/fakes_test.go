package usecase_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles en mémoire des ports de persistance. Sans mutex : les tests sont
// séquentiels.
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo double en mémoire de ProductRepository. createErrs permet de
// programmer une file d'erreurs retournées par Create, dans l'ordre.
type fakeProductRepo struct {
	products   map[string]*entity.Product
	createErrs []error
	created    []*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range r.products {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStatut(_ context.Context, id, statut string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Statut = statut
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListByVendeur(_ context.Context, vendeurID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.VendeurID == vendeurID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListOnline(_ context.Context, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Statut == entity.ProduitEnLigne {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategorie(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Search(context.Context, string, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(context.Context) (int, error) { return len(r.products), nil }

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, quantite int) error {
	p, ok := r.products[id]
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

func (r *fakeProductRepo) RestoreStock(_ context.Context, id string, quantite int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += quantite
	if p.VentesTotal -= quantite; p.VentesTotal < 0 {
		p.VentesTotal = 0
	}
	return nil
}

// fakeCartRepo double en mémoire de CartRepository. Les produits joints sont
// résolus via le fakeProductRepo associé, comme la jointure SQL le ferait.
type fakeCartRepo struct {
	lines    map[string]*entity.CartLine
	products *fakeProductRepo
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[string]*entity.CartLine), products: products}
}

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID string) ([]entity.CartLine, error) {
	var out []entity.CartLine
	for _, l := range r.lines {
		if l.UtilisateurID != userID {
			continue
		}
		cp := *l
		cp.Produit, _ = r.products.GetByID(ctx, l.ProduitID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCartRepo) GetLine(_ context.Context, lineID string) (*entity.CartLine, error) {
	l, ok := r.lines[lineID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeCartRepo) FindLine(_ context.Context, userID, produitID string) (*entity.CartLine, error) {
	for _, l := range r.lines {
		if l.UtilisateurID == userID && l.ProduitID == produitID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) Insert(_ context.Context, line *entity.CartLine) error {
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeCartRepo) UpdateQuantite(_ context.Context, lineID string, quantite int) error {
	l, ok := r.lines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	l.Quantite = quantite
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, lineID string) error {
	delete(r.lines, lineID)
	return nil
}

func (r *fakeCartRepo) ClearUser(_ context.Context, userID string) error {
	for id, l := range r.lines {
		if l.UtilisateurID == userID {
			delete(r.lines, id)
		}
	}
	return nil
}

// fakeFeaturedRepo double en mémoire de FeaturedRepository.
type fakeFeaturedRepo struct {
	entries map[string]*entity.FeaturedProduct
}

func newFakeFeaturedRepo() *fakeFeaturedRepo {
	return &fakeFeaturedRepo{entries: make(map[string]*entity.FeaturedProduct)}
}

func (r *fakeFeaturedRepo) List(context.Context) ([]entity.FeaturedProduct, error) {
	var out []entity.FeaturedProduct
	for _, fp := range r.entries {
		out = append(out, *fp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeFeaturedRepo) Count(context.Context) (int, error) { return len(r.entries), nil }

func (r *fakeFeaturedRepo) FindByProduit(_ context.Context, produitID string) (*entity.FeaturedProduct, error) {
	for _, fp := range r.entries {
		if fp.ProduitID == produitID {
			cp := *fp
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFeaturedRepo) Insert(_ context.Context, fp *entity.FeaturedProduct) error {
	cp := *fp
	r.entries[fp.ID] = &cp
	return nil
}

func (r *fakeFeaturedRepo) Delete(_ context.Context, id string) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeFeaturedRepo) UpdatePosition(_ context.Context, id string, position int) error {
	fp, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	fp.Position = position
	return nil
}

// fakeImageStore double du stockage objet : mémorise les suppressions.
type fakeImageStore struct {
	uploaded []string
	deleted  []string
}

func (s *fakeImageStore) Upload(_ context.Context, ownerID string, _ []byte, filename, _ string) (string, error) {
	url := "https://images.test/" + ownerID + "/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicURL string) error {
	s.deleted = append(s.deleted, publicURL)
	return nil
}

// prix construit un decimal depuis une chaîne, pour des montants exacts dans
// les tests.
func prix(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)
var _ repository.CartRepository = (*fakeCartRepo)(nil)
var _ repository.FeaturedRepository = (*fakeFeaturedRepo)(nil)
