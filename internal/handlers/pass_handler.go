package handlers

import (
	"bytes"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinginvite/internal/config"
	"weddinginvite/internal/pdf"
	"weddinginvite/internal/services"
)

type PassHandler struct {
	passes  *services.PassService
	gen     pdf.Generator
	wedding config.WeddingConfig
}

func NewPassHandler(passes *services.PassService, gen pdf.Generator, w config.WeddingConfig) *PassHandler {
	return &PassHandler{passes: passes, gen: gen, wedding: w}
}

// @Summary      Pase imprimible
// @Description  Genera el PDF del pase a partir del enlace firmado
// @Tags         Passes
// @Produce      application/pdf
// @Param        token  path  string  true  "Token del pase"
// @Success      200
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/passes/{token} [get]
func (h *PassHandler) Download(c *gin.Context) {
	claims, err := h.passes.Verify(c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPassesDisabled):
			abortWithError(c, http.StatusNotFound, "PASSES_DISABLED", "")
		default:
			abortWithError(c, http.StatusUnauthorized, "INVALID_PASS", "El enlace del pase no es válido o ya expiró.")
		}
		return
	}

	var buf bytes.Buffer
	err = h.gen.GeneratePass(&buf, pdf.PassData{
		Couple:    h.wedding.Couple,
		DateLabel: h.wedding.Date,
		Venue:     h.wedding.Venue,
		Address:   h.wedding.Address,
		Ceremony:  h.wedding.Ceremony,
		Reception: h.wedding.Reception,
		GuestName: claims.Name,
		Pases:     claims.Pases,
		Code:      claims.Code,
	})
	if err != nil {
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "INTERNAL", "pass generation failed")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": "pase-" + claims.Code + ".pdf"}))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
