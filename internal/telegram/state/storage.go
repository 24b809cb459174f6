package state

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// TelegramSession maps a telegram user to a wizard interview session plus
// the chat-specific UI state.
type TelegramSession struct {
	UserID    int64     `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LastMessageID is the last question message, kept for editing.
	LastMessageID int `json:"last_message_id,omitempty"`

	// PendingConfirmation guards destructive actions ("restart", "cancel").
	PendingConfirmation string `json:"pending_confirmation,omitempty"`
}

// Storage defines the interface for telegram session persistence
type Storage interface {
	Get(ctx context.Context, userID int64) (*TelegramSession, error)
	Set(ctx context.Context, session *TelegramSession) error
	Delete(ctx context.Context, userID int64) error
}

// CacheStorage keeps telegram sessions in an in-process TTL cache. Chat
// state shares the lifetime of the wizard sessions it points to.
type CacheStorage struct {
	cache *cache.Cache
}

func NewCacheStorage(ttl, cleanupInterval time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (s *CacheStorage) Get(ctx context.Context, userID int64) (*TelegramSession, error) {
	value, found := s.cache.Get(storageKey(userID))
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	session, ok := value.(*TelegramSession)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	return session, nil
}

func (s *CacheStorage) Set(ctx context.Context, session *TelegramSession) error {
	s.cache.Set(storageKey(session.UserID), session, cache.DefaultExpiration)
	return nil
}

func (s *CacheStorage) Delete(ctx context.Context, userID int64) error {
	s.cache.Delete(storageKey(userID))
	return nil
}

func storageKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
