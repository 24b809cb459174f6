package repository

import (
	"context"
	"encoding/json"
	"fmt"

	cache "github.com/patrickmn/go-cache"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/entity"
)

// BlueprintRepository is the hand-off slot between interview completion and
// the results view: one serialized blueprint per session, written once and
// overwritten by the next completed interview, no versioning.
type BlueprintRepository interface {
	Save(ctx context.Context, sessionID string, bp *entity.BusinessBlueprint) error
	Get(ctx context.Context, sessionID string) (*entity.BusinessBlueprint, error)
	Delete(ctx context.Context, sessionID string) error
}

// BlueprintStore keeps blueprints as serialized JSON, the same shape the
// browser's local-storage entry held. Storing bytes rather than pointers
// keeps reads immutable: the results view can never mutate a stored plan.
type BlueprintStore struct {
	cache *cache.Cache
}

func NewBlueprintStore(cfg config.StoreConfig) *BlueprintStore {
	return &BlueprintStore{
		cache: cache.New(cfg.BlueprintTTL, cfg.CleanupInterval),
	}
}

func (s *BlueprintStore) Save(_ context.Context, sessionID string, bp *entity.BusinessBlueprint) error {
	data, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}

	s.cache.Set(sessionID, data, cache.DefaultExpiration)
	return nil
}

func (s *BlueprintStore) Get(_ context.Context, sessionID string) (*entity.BusinessBlueprint, error) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, entity.ErrBlueprintNotFound
	}

	data, ok := v.([]byte)
	if !ok {
		return nil, entity.ErrBlueprintNotFound
	}

	var bp entity.BusinessBlueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		// Corrupted entry: treat as absent, the caller renders the
		// "no blueprint found" state instead of crashing.
		return nil, entity.ErrBlueprintNotFound
	}

	return &bp, nil
}

func (s *BlueprintStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
