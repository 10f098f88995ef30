package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinginvite/internal/config"
	"weddinginvite/internal/models"
)

type InvitationHandler struct {
	invitation models.Invitation
}

func NewInvitationHandler(w config.WeddingConfig) *InvitationHandler {
	return &InvitationHandler{invitation: models.NewInvitation(w)}
}

// @Summary      Datos de la invitación
// @Tags         Invitation
// @Produce      json
// @Success      200  {object}  models.Invitation
// @Router       /api/invitation [get]
func (h *InvitationHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.invitation)
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
