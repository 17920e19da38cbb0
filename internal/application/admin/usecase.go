package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danmaket/marketplace-api/internal/application/audit"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/domain"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
	"github.com/danmaket/marketplace-api/internal/infrastructure/mailer"
)

// AdminUseCase outillage d'administration : modération des comptes et des
// produits, validation des vendeurs, recherche transverse, statistiques,
// journal d'activité et emails transactionnels.
type AdminUseCase struct {
	users         repository.UserRepository
	roles         repository.RoleRepository
	products      repository.ProductRepository
	orders        repository.OrderRepository
	logs          repository.ActivityLogRepository
	notifications repository.NotificationRepository
	mail          mailer.Mailer
	recorder      *audit.Recorder
	feed          audit.Publisher
}

// NewAdminUseCase construit le cas d'usage.
func NewAdminUseCase(
	users repository.UserRepository,
	roles repository.RoleRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	logs repository.ActivityLogRepository,
	notifications repository.NotificationRepository,
	mail mailer.Mailer,
	recorder *audit.Recorder,
	feed audit.Publisher,
) *AdminUseCase {
	return &AdminUseCase{
		users:         users,
		roles:         roles,
		products:      products,
		orders:        orders,
		logs:          logs,
		notifications: notifications,
		mail:          mail,
		recorder:      recorder,
		feed:          feed,
	}
}

// ── Modération des comptes ───────────────────────────────────────────────────

// ListUsers liste paginée des utilisateurs.
func (uc *AdminUseCase) ListUsers(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.users.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// SetUserStatus modère un compte : actif, suspendu ou supprime (suppression
// logique, le profil et son historique restent en base).
func (uc *AdminUseCase) SetUserStatus(ctx context.Context, userID, statut, adminID, adminEmail, ip string) error {
	switch statut {
	case entity.StatutActif, entity.StatutSuspendu, entity.StatutSupprime:
	default:
		return domain.ErrInvalidInput
	}

	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.users.UpdateStatut(ctx, userID, statut); err != nil {
		return err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      adminID,
		UserEmail:   adminEmail,
		ActionType:  entity.ActionValidation,
		Description: fmt.Sprintf("utilisateur %s : %s -> %s", u.Email, u.Statut, statut),
		IPAddress:   ip,
	})
	uc.feed.Publish(ctx, "profiles", "UPDATE", userID)
	return nil
}

// ── Validation des vendeurs ──────────────────────────────────────────────────

// PendingSellers retourne les attributions vendeur en attente de validation.
func (uc *AdminUseCase) PendingSellers(ctx context.Context) ([]dto.PendingSellerResponse, error) {
	assignments, err := uc.roles.ListByRoleAndStatut(ctx, entity.RoleVendeur, entity.StatutEnAttente)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PendingSellerResponse, 0, len(assignments))
	for _, a := range assignments {
		resp := dto.PendingSellerResponse{
			AssignmentID: a.ID,
			UserID:       a.UserID,
			CreatedAt:    a.CreatedAt,
		}
		if u, err := uc.users.GetByID(ctx, a.UserID); err == nil && u != nil {
			resp.Email = u.Email
			resp.Nom = u.Nom
		}
		out = append(out, resp)
	}
	return out, nil
}

// ValidateSeller active (ou rejette) une attribution vendeur en attente.
// L'utilisateur est notifié dans les deux cas.
func (uc *AdminUseCase) ValidateSeller(ctx context.Context, assignmentID string, approve bool, adminID, adminEmail, ip string) error {
	assignments, err := uc.roles.ListByRoleAndStatut(ctx, entity.RoleVendeur, entity.StatutEnAttente)
	if err != nil {
		return err
	}
	var target *entity.RoleAssignment
	for i := range assignments {
		if assignments[i].ID == assignmentID {
			target = &assignments[i]
			break
		}
	}
	if target == nil {
		return domain.ErrNotFound
	}

	statut := entity.StatutActif
	message := "Votre compte vendeur a été validé, vous pouvez publier vos produits."
	if !approve {
		statut = entity.StatutSuspendu
		message = "Votre demande de compte vendeur a été refusée."
	}
	if err := uc.roles.UpdateStatut(ctx, assignmentID, statut); err != nil {
		return err
	}

	uc.notify(ctx, target.UserID, message)
	uc.recorder.Record(ctx, audit.Entry{
		UserID:      adminID,
		UserEmail:   adminEmail,
		ActionType:  entity.ActionValidation,
		Description: fmt.Sprintf("vendeur %s : %s", target.UserID, statut),
		IPAddress:   ip,
	})
	uc.feed.Publish(ctx, "user_roles", "UPDATE", assignmentID)
	return nil
}

// ── Modération des produits ──────────────────────────────────────────────────

// SetProductStatus suspend ou remet en ligne un produit.
func (uc *AdminUseCase) SetProductStatus(ctx context.Context, produitID, statut, adminID, adminEmail, ip string) error {
	switch statut {
	case entity.ProduitEnLigne, entity.ProduitSuspendu:
	default:
		return domain.ErrInvalidInput
	}

	p, err := uc.products.GetByID(ctx, produitID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.UpdateStatut(ctx, produitID, statut); err != nil {
		return err
	}

	if statut == entity.ProduitSuspendu {
		uc.notify(ctx, p.VendeurID, fmt.Sprintf("Votre produit « %s » a été suspendu par la modération.", p.Nom))
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:      adminID,
		UserEmail:   adminEmail,
		ActionType:  entity.ActionValidation,
		Description: fmt.Sprintf("produit %s : %s -> %s", p.Slug, p.Statut, statut),
		IPAddress:   ip,
	})
	uc.feed.Publish(ctx, "produits", "UPDATE", produitID)
	return nil
}

// ── Recherche, commandes, statistiques ───────────────────────────────────────

// Search recherche transverse sur utilisateurs, produits et commandes.
func (uc *AdminUseCase) Search(ctx context.Context, term string, limit int) (*dto.AdminSearchResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	resp := &dto.AdminSearchResponse{
		Users:    []dto.UserResponse{},
		Products: []dto.ProductResponse{},
		Orders:   []dto.OrderResponse{},
	}

	users, err := uc.users.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}

	products, err := uc.products.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}

	orders, err := uc.orders.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}

	return resp, nil
}

// ListOrders liste paginée de toutes les commandes.
func (uc *AdminUseCase) ListOrders(ctx context.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Stats compteurs globaux ; le chiffre d'affaires ne compte que les commandes
// livrées.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	users, err := uc.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.orders.PlatformRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PlatformStatsResponse{
		Users:    users,
		Products: products,
		Orders:   orders,
		Revenue:  revenue,
	}, nil
}

// ── Journal d'activité et email ──────────────────────────────────────────────

// ActivityLogs retourne le journal filtré.
func (uc *AdminUseCase) ActivityLogs(ctx context.Context, actionType, search string, limit int) ([]dto.ActivityLogResponse, error) {
	logs, err := uc.logs.List(ctx, repository.ActivityLogFilter{
		ActionType: actionType,
		Search:     search,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ActivityLogResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			UserEmail:   l.UserEmail,
			ActionType:  l.ActionType,
			Description: l.Description,
			IPAddress:   l.IPAddress,
			Metadata:    l.Metadata,
			CreatedAt:   l.CreatedAt,
		})
	}
	return out, nil
}

// SendEmail envoie un email transactionnel à un utilisateur. Le corps est du
// texte brut, échappé et mis en forme par le mailer.
func (uc *AdminUseCase) SendEmail(ctx context.Context, in dto.SendEmailRequest, adminID, adminEmail, ip string) error {
	if in.To == "" || !strings.Contains(in.To, "@") {
		return domain.ErrInvalidInput
	}
	if in.Subject == "" || len(in.Subject) > 200 || in.Message == "" || len(in.Message) > 10000 {
		return domain.ErrInvalidInput
	}

	if err := uc.mail.Send(ctx, in.To, in.Subject, in.Message); err != nil {
		return err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:      adminID,
		UserEmail:   adminEmail,
		ActionType:  entity.ActionValidation,
		Description: "email envoyé à " + in.To,
		IPAddress:   ip,
		Metadata:    map[string]any{"subject": in.Subject},
	})
	return nil
}

func (uc *AdminUseCase) notify(ctx context.Context, userID, message string) {
	n := &entity.Notification{
		ID:            uuid.New().String(),
		UtilisateurID: userID,
		Message:       message,
		Type:          "systeme",
		CreatedAt:     time.Now(),
	}
	_ = uc.notifications.Create(ctx, n)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nom:       u.Nom,
		Telephone: u.Telephone,
		Adresse:   u.Adresse,
		Statut:    u.Statut,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		VendeurID:   p.VendeurID,
		CategorieID: p.CategorieID,
		Nom:         p.Nom,
		Description: p.Description,
		Prix:        p.Prix,
		Stock:       p.Stock,
		Images:      p.Images,
		Statut:      p.Statut,
		Slug:        p.Slug,
		VentesTotal: p.VentesTotal,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
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
