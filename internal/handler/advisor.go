package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type advisorRequest struct {
	ChatID  int64  `json:"chat_id"`
	Message string `json:"message" binding:"required"`
}

// AskAdvisor godoc
// @Summary      Ask the market advisor
// @Description  Answers a free-form question using live analyses as context
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Param        request  body  advisorRequest  true  "Question payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/advisor [post]
func (h *Handler) AskAdvisor(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.ask-advisor")
	defer span.End()

	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor is not configured"})
		return
	}

	var req advisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	span.SetAttributes(attribute.Int64("chat_id", req.ChatID))

	reply, err := h.advisor.Ask(ctx, req.ChatID, req.Message)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
