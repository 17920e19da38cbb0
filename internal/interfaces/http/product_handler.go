package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
)

// Taille maximale d'une image uploadée (10 Mo).
const maxImageSize = 10 << 20

// ProductHandler requêtes HTTP des produits côté vendeur (protégé, rôle
// vendeur).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construit le handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Publish godoc
// @Summary      Publier un produit (repli en brouillon si refus d'accès)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Données du produit"
// @Success      201   {object}  dto.PublishProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendeur/produits [post]
func (h *ProductHandler) Publish(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if in.Nom == "" {
		return badRequest(c, "VALIDATION", "nom est requis")
	}
	out, err := h.uc.Publish(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Produits du vendeur connecté (tous statuts)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/vendeur/produits [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByVendeur(c.Context(), GetUserID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Mettre à jour un produit
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID du produit"
// @Param        body  body  dto.UpdateProductRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ProductResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vendeur/produits/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Basculer un produit entre brouillon et en_ligne
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID du produit"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Statut cible"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/vendeur/produits/{id}/statut [put]
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.uc.SetStatus(c.Context(), c.Params("id"), GetUserID(c), in.Statut); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "statut mis à jour"})
}

// Delete godoc
// @Summary      Supprimer un produit et ses images
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/vendeur/produits/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "produit supprimé"})
}

// UploadImage godoc
// @Summary      Uploader une image produit (multipart, champ "image")
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Fichier image"
// @Success      201    {object}  dto.UploadImageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/vendeur/produits/images [post]
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "champ multipart image requis")
	}
	if fh.Size > maxImageSize {
		return badRequest(c, "FILE_TOO_LARGE", "image limitée à 10 Mo")
	}

	f, err := fh.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, err)
	}

	url, err := h.uc.UploadImage(c.Context(), GetUserID(c), data, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadImageResponse{URL: url})
}
