package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/auth"
	"github.com/danmaket/marketplace-api/internal/application/dto"
)

// AuthHandler requêtes HTTP d'authentification et de profil.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construit le handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Inscription (client ou vendeur)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Données d'inscription"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if in.Email == "" || in.Password == "" || in.Nom == "" || in.Role == "" {
		return badRequest(c, "VALIDATION", "email, password, nom et role sont requis")
	}
	if len(in.Password) < 8 {
		return badRequest(c, "VALIDATION", "mot de passe : 8 caractères minimum")
	}
	out, err := h.uc.Register(c.Context(), in, c.IP())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Connexion
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Identifiants"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email et password sont requis")
	}
	out, err := h.uc.Login(c.Context(), in, c.IP())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Profil de l'utilisateur connecté
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Mise à jour du profil
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	out, err := h.uc.UpdateProfile(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Changement de mot de passe
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "Ancien et nouveau mot de passe"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/profile/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := h.uc.ChangePassword(c.Context(), GetUserID(c), in.OldPassword, in.NewPassword, c.IP()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "mot de passe modifié"})
}
