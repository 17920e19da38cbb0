package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/admin"
	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
)

// AdminHandler requêtes HTTP d'administration (protégé, rôle admin).
type AdminHandler struct {
	uc    *admin.AdminUseCase
	promo *usecase.PromoUseCase
}

// NewAdminHandler construit le handler.
func NewAdminHandler(uc *admin.AdminUseCase, promo *usecase.PromoUseCase) *AdminHandler {
	return &AdminHandler{uc: uc, promo: promo}
}

// ── Utilisateurs et vendeurs ─────────────────────────────────────────────────

// ListUsers godoc
// @Summary      Lister les utilisateurs
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/admin/utilisateurs [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListUsers(c.Context(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetUserStatus godoc
// @Summary      Modérer un compte (actif, suspendu, supprime)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de l'utilisateur"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Statut cible"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/utilisateurs/{id}/statut [put]
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.uc.SetUserStatus(c.Context(), c.Params("id"), in.Statut, GetUserID(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "statut mis à jour"})
}

// PendingSellers godoc
// @Summary      Vendeurs en attente de validation
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PendingSellerResponse
// @Router       /api/admin/vendeurs/en-attente [get]
func (h *AdminHandler) PendingSellers(c *fiber.Ctx) error {
	out, err := h.uc.PendingSellers(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ValidateSeller godoc
// @Summary      Valider ou rejeter un vendeur en attente
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID de l'attribution de rôle"
// @Param        approve  query  bool    false  "true pour valider"  default(true)
// @Success      200      {object}  dto.MessageResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/admin/vendeurs/{id}/valider [post]
func (h *AdminHandler) ValidateSeller(c *fiber.Ctx) error {
	approve := c.QueryBool("approve", true)
	if err := h.uc.ValidateSeller(c.Context(), c.Params("id"), approve, GetUserID(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "vendeur traité"})
}

// ── Produits, commandes, recherche ───────────────────────────────────────────

// SetProductStatus godoc
// @Summary      Suspendre ou remettre en ligne un produit
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID du produit"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Statut cible"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/produits/{id}/statut [put]
func (h *AdminHandler) SetProductStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.uc.SetProductStatus(c.Context(), c.Params("id"), in.Statut, GetUserID(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "statut mis à jour"})
}

// ListOrders godoc
// @Summary      Toutes les commandes
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/admin/commandes [get]
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListOrders(c.Context(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Recherche transverse (utilisateurs, produits, commandes)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Terme de recherche"
// @Param        limit  query  int     false  "Limite par collection"  default(10)
// @Success      200    {object}  dto.AdminSearchResponse
// @Router       /api/admin/recherche [get]
func (h *AdminHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Statistiques de la plateforme
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PlatformStatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ── Journal et email ─────────────────────────────────────────────────────────

// ActivityLogs godoc
// @Summary      Journal d'activité
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        action  query  string  false  "Type d'action"
// @Param        q       query  string  false  "Recherche email/description"
// @Param        limit   query  int     false  "Limite"  default(50)
// @Success      200     {array}  dto.ActivityLogResponse
// @Router       /api/admin/journal [get]
func (h *AdminHandler) ActivityLogs(c *fiber.Ctx) error {
	out, err := h.uc.ActivityLogs(c.Context(), c.Query("action"), c.Query("q"), c.QueryInt("limit", 50))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SendEmail godoc
// @Summary      Envoyer un email transactionnel à un utilisateur
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "Destinataire, sujet, message"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/emails [post]
func (h *AdminHandler) SendEmail(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.uc.SendEmail(c.Context(), in, GetUserID(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "email envoyé"})
}

// ── Vedettes et bannières ────────────────────────────────────────────────────

// AddFeatured godoc
// @Summary      Mettre un produit en vedette
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddFeaturedRequest  true  "Produit à mettre en vedette"
// @Success      201   {object}  dto.FeaturedResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/vedettes [post]
func (h *AdminHandler) AddFeatured(c *fiber.Ctx) error {
	var in dto.AddFeaturedRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if in.ProduitID == "" {
		return badRequest(c, "VALIDATION", "produit_id est requis")
	}
	out, err := h.promo.AddFeatured(c.Context(), in.ProduitID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveFeatured godoc
// @Summary      Retirer un produit vedette (resserre les positions)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de l'entrée vedette"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/vedettes/{id} [delete]
func (h *AdminHandler) RemoveFeatured(c *fiber.Ctx) error {
	if err := h.promo.RemoveFeatured(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "produit retiré des vedettes"})
}

// MoveFeatured godoc
// @Summary      Déplacer un produit vedette (up/down)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de l'entrée vedette"
// @Param        body  body  dto.MoveFeaturedRequest  true  "Direction"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/vedettes/{id}/deplacer [post]
func (h *AdminHandler) MoveFeatured(c *fiber.Ctx) error {
	var in dto.MoveFeaturedRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.promo.MoveFeatured(c.Context(), c.Params("id"), in.Direction); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "position mise à jour"})
}

// ListBanners godoc
// @Summary      Toutes les bannières (expirées incluses)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BannerResponse
// @Router       /api/admin/banners [get]
func (h *AdminHandler) ListBanners(c *fiber.Ctx) error {
	out, err := h.promo.ListBanners(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateBanner godoc
// @Summary      Créer une bannière (multipart : image, sous_images, champs texte)
// @Tags         admin
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file    true  "Image principale"
// @Param        titre  formData  string  true  "Titre"
// @Success      201    {object}  dto.BannerResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/admin/banners [post]
func (h *AdminHandler) CreateBanner(c *fiber.Ctx) error {
	var in dto.CreateBannerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "formulaire invalide")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "champ multipart image requis")
	}
	if fh.Size > maxImageSize {
		return badRequest(c, "FILE_TOO_LARGE", "image limitée à 10 Mo")
	}
	image, err := readMultipartFile(fh.Open())
	if err != nil {
		return fail(c, err)
	}

	var subImages [][]byte
	if form, err := c.MultipartForm(); err == nil {
		for _, sub := range form.File["sous_images"] {
			if sub.Size > maxImageSize {
				return badRequest(c, "FILE_TOO_LARGE", "sous-image limitée à 10 Mo")
			}
			data, err := readMultipartFile(sub.Open())
			if err != nil {
				return fail(c, err)
			}
			subImages = append(subImages, data)
		}
	}

	out, err := h.promo.CreateBanner(c.Context(), GetUserID(c), in, image, fh.Filename, subImages)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteBanner godoc
// @Summary      Supprimer une bannière et ses objets stockés
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bannière"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/banners/{id} [delete]
func (h *AdminHandler) DeleteBanner(c *fiber.Ctx) error {
	if err := h.promo.DeleteBanner(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "bannière supprimée"})
}

func readMultipartFile(f io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
