package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
)

// CartHandler requêtes HTTP du panier (protégé).
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construit le handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Panier de l'utilisateur connecté
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/panier [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Ajouter un produit au panier
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartRequest  true  "Produit et quantité"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/panier [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if in.ProduitID == "" || in.Quantite < 1 {
		return badRequest(c, "VALIDATION", "produit_id et quantite >= 1 sont requis")
	}
	out, err := h.uc.Add(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Changer la quantité d'une ligne (<= 0 supprime)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la ligne"
// @Param        body  body  dto.UpdateCartRequest  true  "Nouvelle quantité"
// @Success      200   {object}  dto.CartResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/panier/{id} [put]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetUserID(c), c.Params("id"), in.Quantite)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Retirer une ligne du panier
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ligne"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panier/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vider le panier
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/panier [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
