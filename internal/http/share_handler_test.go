package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"researchbot/internal/domain"
	"researchbot/internal/service"
)

func setupShareRouter(store service.ShareStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewShareHandler(zap.NewNop(), store)
	r.POST("/api/share", h.Share)
	r.GET("/api/share", h.GetShared)
	return r
}

func TestShareHandler_MissingConversation(t *testing.T) {
	r := setupShareRouter(service.NewMemoryShareStore(time.Hour))

	rec := performRequest(r, http.MethodPost, "/api/share", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestShareHandler_RoundTrip(t *testing.T) {
	r := setupShareRouter(service.NewMemoryShareStore(time.Hour))
	conv := domain.Conversation{
		ID:   "conv42",
		URLs: "https://a.example",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "pregunta"},
			{Role: domain.RoleAI, Content: "respuesta", Sources: []domain.Source{
				{URL: "https://a.example", Content: "extracto"},
			}},
		},
	}

	rec := performRequest(r, http.MethodPost, "/api/share", map[string]any{"conversation": conv})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var posted struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &posted); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !posted.Success || posted.ID != "conv42" {
		t.Fatalf("unexpected share response: %+v", posted)
	}

	rec = performRequest(r, http.MethodGet, "/api/share?id="+posted.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var fetched struct {
		Conversation domain.Conversation `json:"conversation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	got := fetched.Conversation
	if got.ID != conv.ID || got.URLs != conv.URLs || len(got.Messages) != 2 {
		t.Fatalf("conversation not preserved: %+v", got)
	}
	if got.Messages[0].Role != domain.RoleUser || got.Messages[0].Content != "pregunta" {
		t.Fatalf("user message not preserved: %+v", got.Messages[0])
	}
	if got.Messages[1].Role != domain.RoleAI || len(got.Messages[1].Sources) != 1 {
		t.Fatalf("ai message not preserved: %+v", got.Messages[1])
	}
}

func TestShareHandler_GetMissingID(t *testing.T) {
	r := setupShareRouter(service.NewMemoryShareStore(time.Hour))

	rec := performRequest(r, http.MethodGet, "/api/share", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestShareHandler_GetUnknownID(t *testing.T) {
	r := setupShareRouter(service.NewMemoryShareStore(time.Hour))

	rec := performRequest(r, http.MethodGet, "/api/share?id=nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
