package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/dto"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
)

// NotificationHandler requêtes HTTP des notifications (protégé).
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construit le handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notifications de l'utilisateur connecté
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(50)
// @Success      200    {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c), c.QueryInt("limit", 50))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marquer une notification comme lue
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la notification"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/notifications/{id}/lu [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notification lue"})
}
