// Package repository holds the ephemeral stores. Nothing here survives a
// process restart: sessions and blueprints live in TTL caches, mirroring the
// one-tab, local-storage lifetime of the wizard they back.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/entity"
)

// SessionRepository stores interview sessions by ID.
type SessionRepository interface {
	Save(ctx context.Context, iv *entity.Interview) error
	Get(ctx context.Context, id string) (*entity.Interview, error)
	Delete(ctx context.Context, id string) error
}

// SessionStore is the in-memory SessionRepository. Sessions are stored as
// serialized JSON, so every Get hands out an independent snapshot: readers
// never observe a writer mid-transition, and stale snapshots are rejected at
// the next transition instead of corrupting the stored history.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore(cfg config.StoreConfig) *SessionStore {
	return &SessionStore{
		cache: cache.New(cfg.SessionTTL, cfg.CleanupInterval),
	}
}

func (s *SessionStore) Save(_ context.Context, iv *entity.Interview) error {
	iv.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	s.cache.Set(iv.ID, data, cache.DefaultExpiration)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*entity.Interview, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	data, ok := v.([]byte)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	var iv entity.Interview
	if err := json.Unmarshal(data, &iv); err != nil {
		return nil, entity.ErrSessionNotFound
	}

	return &iv, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
