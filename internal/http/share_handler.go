package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"researchbot/internal/domain"
	"researchbot/internal/service"
)

// ShareHandler mantiene dependencias para compartir conversaciones.
type ShareHandler struct {
	logger *zap.Logger
	store  service.ShareStore
}

func NewShareHandler(logger *zap.Logger, store service.ShareStore) *ShareHandler {
	return &ShareHandler{logger: logger, store: store}
}

// Share maneja POST /api/share.
func (h *ShareHandler) Share(c *gin.Context) {
	var req struct {
		Conversation *domain.Conversation `json:"conversation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Conversation == nil {
		h.logger.Warn("invalid share request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation is required"})
		return
	}

	id, err := h.store.Save(c.Request.Context(), *req.Conversation)
	if err != nil {
		h.logger.Error("save shared conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// GetShared maneja GET /api/share.
func (h *ShareHandler) GetShared(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	conv, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrConversationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	if err != nil {
		h.logger.Error("load shared conversation failed", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conv})
}
