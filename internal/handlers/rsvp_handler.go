package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinginvite/internal/models"
	"weddinginvite/internal/rsvp"
	"weddinginvite/internal/services"
)

const msgInFlight = "Ya estamos confirmando este código. Espera un momento."

type RSVPHandler struct {
	svc *services.RSVPService
}

func NewRSVPHandler(svc *services.RSVPService) *RSVPHandler { return &RSVPHandler{svc: svc} }

// @Summary      Confirmar asistencia
// @Description  Confirma un código de invitación contra la hoja de invitados
// @Tags         RSVP
// @Accept       json
// @Produce      json
// @Param        request  body      models.ConfirmRequest  true  "Código de la invitación"
// @Success      200      {object}  services.ConfirmResult
// @Failure      400      {object}  services.ConfirmResult
// @Failure      404      {object}  services.ConfirmResult
// @Failure      409      {object}  models.ErrorResponse
// @Failure      410      {object}  services.ConfirmResult
// @Failure      502      {object}  services.ConfirmResult
// @Router       /api/rsvp/confirm [post]
func (h *RSVPHandler) Confirm(c *gin.Context) {
	var req models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	res, err := h.svc.Confirm(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, rsvp.ErrSubmissionInFlight):
			abortWithError(c, http.StatusConflict, "IN_FLIGHT", msgInFlight)
		default:
			_ = c.Error(err)
			abortWithError(c, http.StatusInternalServerError, "INTERNAL", "confirmation failed")
		}
		return
	}

	c.JSON(statusForOutcome(res.Outcome), res)
}
