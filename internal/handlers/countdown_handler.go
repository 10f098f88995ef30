package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"weddinginvite/internal/countdown"
	"weddinginvite/internal/models"
)

type CountdownHandler struct {
	engine *countdown.Engine
}

func NewCountdownHandler(engine *countdown.Engine) *CountdownHandler {
	return &CountdownHandler{engine: engine}
}

func (h *CountdownHandler) target() string {
	return h.engine.Target().Format(time.RFC3339)
}

// @Summary      Cuenta regresiva
// @Description  Tiempo restante hasta la ceremonia
// @Tags         Countdown
// @Produce      json
// @Success      200  {object}  models.CountdownResponse
// @Router       /api/countdown [get]
func (h *CountdownHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewCountdownResponse(h.target(), h.engine.Snapshot()))
}

// @Summary      Cuenta regresiva en vivo
// @Description  Server-Sent Events; un evento "tick" por intervalo hasta llegar a cero
// @Tags         Countdown
// @Produce      text/event-stream
// @Success      200  {object}  models.CountdownResponse
// @Router       /api/countdown/stream [get]
func (h *CountdownHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	ticks := h.engine.Stream(ctx)
	target := h.target()
	for s := range ticks {
		c.SSEvent("tick", models.NewCountdownResponse(target, s))
		c.Writer.Flush()
		if s.Done {
			break
		}
	}

	// wait for the engine to stop its ticker
	cancel()
	for range ticks {
	}
}
