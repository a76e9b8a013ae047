package handlers

import (
	"errors"
	"net/http"

	"github.com/adliharahap/OffmodeStore-sub001/internal/ai"
	"github.com/gin-gonic/gin"
)

// ChatInput defines the structure of the JSON request body.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// ChatAI answers a back-office question with the same AI pipeline the
// Telegram bot uses: live business snapshot plus the question, one
// Gemini call. Admin-gated like every other back-office surface.
// POST /v1/admin/ai/chat
func (h *Handlers) ChatAI(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.AIService.Answer(c.Request.Context(), input.Message)
	if err != nil {
		if errors.Is(err, ai.ErrQuotaExceeded) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "The assistant is busy, try again shortly"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Service unavailable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}
