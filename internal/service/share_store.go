package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"researchbot/internal/domain"
)

// ErrConversationNotFound indica que no existe conversación para el id pedido.
var ErrConversationNotFound = errors.New("conversation not found")

// ShareStore persiste conversaciones compartidas con expiración fija.
type ShareStore interface {
	Save(ctx context.Context, conv domain.Conversation) (string, error)
	Get(ctx context.Context, id string) (domain.Conversation, error)
}

type memoryShareEntry struct {
	conv      domain.Conversation
	expiresAt time.Time
}

type memoryShareStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryShareEntry
}

func NewMemoryShareStore(ttl time.Duration) ShareStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &memoryShareStore{
		ttl:   ttl,
		items: make(map[string]memoryShareEntry),
	}
}

func (s *memoryShareStore) Save(_ context.Context, conv domain.Conversation) (string, error) {
	conv.ID = normalizeShareID(conv.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[conv.ID] = memoryShareEntry{
		conv:      conv,
		expiresAt: time.Now().UTC().Add(s.ttl),
	}
	return conv.ID, nil
}

func (s *memoryShareStore) Get(_ context.Context, id string) (domain.Conversation, error) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[id]
	if !ok {
		return domain.Conversation{}, ErrConversationNotFound
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, id)
		return domain.Conversation{}, ErrConversationNotFound
	}
	return entry.conv, nil
}

type redisShareStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisShareStore crea un store respaldado en redis con TTL fijo.
func NewRedisShareStore(client *redis.Client, ttl time.Duration) ShareStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &redisShareStore{
		client: client,
		ttl:    ttl,
		prefix: "share:conv:",
	}
}

func (s *redisShareStore) Save(ctx context.Context, conv domain.Conversation) (string, error) {
	conv.ID = normalizeShareID(conv.ID)
	payload, err := json.Marshal(conv)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.prefix+conv.ID, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return conv.ID, nil
}

func (s *redisShareStore) Get(ctx context.Context, id string) (domain.Conversation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Conversation{}, ErrConversationNotFound
	}
	payload, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Conversation{}, ErrConversationNotFound
	}
	if err != nil {
		return domain.Conversation{}, err
	}
	var conv domain.Conversation
	if err := json.Unmarshal(payload, &conv); err != nil {
		return domain.Conversation{}, err
	}
	return conv, nil
}

// normalizeShareID conserva ids del cliente y genera uno cuando falta.
// No hay chequeo de colisiones ni ownership: el último write gana.
func normalizeShareID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.NewString()
	}
	return id
}
