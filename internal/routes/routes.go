package routes

import (
	"github.com/gin-gonic/gin"

	"weddinginvite/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	countdownHandler *handlers.CountdownHandler,
	rsvpHandler *handlers.RSVPHandler,
	invitationHandler *handlers.InvitationHandler,
	passHandler *handlers.PassHandler,
) *gin.Engine {

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		api.GET("/invitation", invitationHandler.Get)

		api.GET("/countdown", countdownHandler.Get)
		api.GET("/countdown/stream", countdownHandler.Stream)

		api.POST("/rsvp/confirm", rsvpHandler.Confirm)

		api.GET("/passes/:token", passHandler.Download)
	}

	return r
}
