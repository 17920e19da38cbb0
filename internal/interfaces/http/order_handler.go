package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	apporder "github.com/danmaket/marketplace-api/internal/application/order"
)

// OrderHandler requêtes HTTP des commandes : passage de commande, suivi
// client, traitement vendeur.
type OrderHandler struct {
	checkout *apporder.CheckoutUseCase
	orders   *apporder.OrderUseCase
	receipt  *apporder.ReceiptUseCase
}

// NewOrderHandler construit le handler.
func NewOrderHandler(checkout *apporder.CheckoutUseCase, orders *apporder.OrderUseCase, receipt *apporder.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, receipt: receipt}
}

// Checkout godoc
// @Summary      Passer commande sur le contenu du panier
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Livraison et paiement"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commandes [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if in.AdresseLivraison == "" || in.MethodePaiement == "" {
		return badRequest(c, "VALIDATION", "adresse_livraison et methode_paiement sont requis")
	}
	out, err := h.checkout.Checkout(c.Context(), GetUserID(c), GetEmail(c), in, c.IP())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Commandes de l'utilisateur connecté
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/commandes [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.orders.ListByClient(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Détail d'une commande
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commandes/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Annuler une commande (en_attente ou en_cours uniquement)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/commandes/{id}/annuler [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.orders.Cancel(c.Context(), c.Params("id"), GetUserID(c), GetRole(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "commande annulée"})
}

// Delete godoc
// @Summary      Supprimer une commande (en_attente uniquement)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/commandes/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.Context(), c.Params("id"), GetUserID(c), GetRole(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "commande supprimée"})
}

// Receipt godoc
// @Summary      Reçu PDF d'une commande
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/commandes/{id}/recu [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	data, err := h.receipt.Receipt(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recu.pdf"`)
	return c.Send(data)
}

// VendorList godoc
// @Summary      Commandes du vendeur connecté
// @Tags         vendor-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VendorOrderResponse
// @Router       /api/vendeur/commandes [get]
func (h *OrderHandler) VendorList(c *fiber.Ctx) error {
	out, err := h.orders.ListVendorOrders(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// VendorUpdateStatus godoc
// @Summary      Faire avancer une commande vendeur
// @Tags         vendor-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la commande vendeur"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Statut cible"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendeur/commandes/{id}/statut [put]
func (h *OrderHandler) VendorUpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.orders.UpdateVendorStatus(c.Context(), c.Params("id"), in.Statut, GetUserID(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "statut mis à jour"})
}

// VendorDelete godoc
// @Summary      Supprimer une commande vendeur (en_attente uniquement)
// @Tags         vendor-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la commande vendeur"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vendeur/commandes/{id} [delete]
func (h *OrderHandler) VendorDelete(c *fiber.Ctx) error {
	if err := h.orders.DeleteVendorOrder(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "commande vendeur supprimée"})
}

// VendorRevenue godoc
// @Summary      Chiffre d'affaires du vendeur (lignes livrées)
// @Tags         vendor-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RevenueResponse
// @Router       /api/vendeur/revenus [get]
func (h *OrderHandler) VendorRevenue(c *fiber.Ctx) error {
	revenue, err := h.orders.VendorRevenue(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.RevenueResponse{Revenue: revenue})
}

// AdminUpdateStatus godoc
// @Summary      Changer le statut d'une commande (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la commande"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Statut cible"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/commandes/{id}/statut [put]
func (h *OrderHandler) AdminUpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.orders.UpdateStatus(c.Context(), c.Params("id"), in.Statut, GetUserID(c), GetEmail(c), c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "statut mis à jour"})
}
