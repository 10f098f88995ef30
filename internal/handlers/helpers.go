package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weddinginvite/internal/models"
	"weddinginvite/internal/rsvp"
)

// statusForOutcome maps a submission outcome to the response status.
func statusForOutcome(out rsvp.Outcome) int {
	switch out.State {
	case rsvp.StateSuccess:
		return http.StatusOK
	case rsvp.StateDomainError:
		switch out.ErrorCode {
		case rsvp.CodeNotFound:
			return http.StatusNotFound
		case rsvp.CodeInactiveCode:
			return http.StatusGone
		default:
			return http.StatusBadRequest
		}
	case rsvp.StateTransportError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: code, Message: message})
}
