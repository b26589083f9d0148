package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"researchbot/internal/domain"
)

// previewChars limita el contenido de cada fuente en la respuesta del chat.
const previewChars = 200

// SourceCollector abstrae la recolección de fuentes para el handler.
type SourceCollector interface {
	Collect(ctx context.Context, urls []string) []domain.Source
}

// AnswerGenerator abstrae la generación de respuestas fundamentadas.
type AnswerGenerator interface {
	Answer(ctx context.Context, query string, sources []domain.Source) (string, []domain.Source, error)
}

// ChatHandler mantiene dependencias para el endpoint de chat.
type ChatHandler struct {
	logger    *zap.Logger
	collector SourceCollector
	answers   AnswerGenerator
}

func NewChatHandler(logger *zap.Logger, collector SourceCollector, answers AnswerGenerator) *ChatHandler {
	return &ChatHandler{logger: logger, collector: collector, answers: answers}
}

// Chat maneja POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Query string   `json:"query" binding:"required"`
		URLs  []string `json:"urls" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "query and urls are required"})
		return
	}

	sources := h.collector.Collect(c.Request.Context(), req.URLs)
	if len(sources) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "could not extract content from any of the provided urls"})
		return
	}

	answer, used, err := h.answers.Answer(c.Request.Context(), req.Query, sources)
	if err != nil {
		// Los detalles del error quedan solo en el log del servidor.
		h.logger.Error("answer generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate an answer"})
		return
	}

	previews := make([]domain.Source, 0, len(used))
	for _, src := range used {
		previews = append(previews, src.Preview(previewChars))
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer, "sources": previews})
}
