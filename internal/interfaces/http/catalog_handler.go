package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
)

// CatalogHandler lectures publiques de la vitrine.
type CatalogHandler struct {
	catalog *usecase.CatalogUseCase
	promo   *usecase.PromoUseCase
	reviews *usecase.ReviewUseCase
}

// NewCatalogHandler construit le handler.
func NewCatalogHandler(catalog *usecase.CatalogUseCase, promo *usecase.PromoUseCase, reviews *usecase.ReviewUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, promo: promo, reviews: reviews}
}

// Categories godoc
// @Summary      Lister les catégories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.catalog.Categories(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Lister les produits en ligne
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Limite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/produits [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.catalog.Products(c.Context(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ProductsByCategory godoc
// @Summary      Produits d'une catégorie
// @Tags         catalog
// @Produce      json
// @Param        slug    path   string  true   "Slug de la catégorie"
// @Param        limit   query  int     false  "Limite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/categories/{slug}/produits [get]
func (h *CatalogHandler) ProductsByCategory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.catalog.ProductsByCategory(c.Context(), c.Params("slug"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ProductBySlug godoc
// @Summary      Fiche produit publique
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Slug du produit"
// @Success      200   {object}  dto.ProductDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produits/{slug} [get]
func (h *CatalogHandler) ProductBySlug(c *fiber.Ctx) error {
	out, err := h.catalog.ProductBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Recherche de produits
// @Tags         catalog
// @Produce      json
// @Param        q      query  string  true   "Terme de recherche"
// @Param        limit  query  int     false  "Limite"  default(20)
// @Success      200    {array}  dto.ProductResponse
// @Router       /api/produits/recherche [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	out, err := h.catalog.Search(c.Context(), c.Query("q"), c.QueryInt("limit", 20))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Featured godoc
// @Summary      Carrousel des produits vedettes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.FeaturedResponse
// @Router       /api/vedettes [get]
func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	out, err := h.promo.ListFeatured(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Banners godoc
// @Summary      Bannières actives
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.BannerResponse
// @Router       /api/banners [get]
func (h *CatalogHandler) Banners(c *fiber.Ctx) error {
	out, err := h.promo.ActiveBanners(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ProductReviews godoc
// @Summary      Avis d'un produit
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {array}  dto.ReviewResponse
// @Router       /api/produits/{id}/avis [get]
func (h *CatalogHandler) ProductReviews(c *fiber.Ctx) error {
	out, err := h.reviews.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateReview godoc
// @Summary      Déposer un avis
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID du produit"
// @Param        body  body  dto.CreateReviewRequest  true  "Note et commentaire"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produits/{id}/avis [post]
func (h *CatalogHandler) CreateReview(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	out, err := h.reviews.Create(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
