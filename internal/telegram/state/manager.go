package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// Manager manages telegram chat sessions
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// GetSession retrieves the telegram session from storage
func (m *Manager) GetSession(ctx context.Context, userID int64) (*TelegramSession, error) {
	session, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	return session, nil
}

// SetSession saves the telegram session to storage
func (m *Manager) SetSession(ctx context.Context, session *TelegramSession) error {
	session.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}

	return nil
}

// DeleteSession removes the telegram session from storage
func (m *Manager) DeleteSession(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}

// CreateOrUpdateSession links a telegram user to a wizard session,
// creating the mapping if the user is new.
func (m *Manager) CreateOrUpdateSession(ctx context.Context, userID int64, sessionID string) error {
	session, err := m.GetSession(ctx, userID)
	if err != nil {
		if !errors.Is(err, entity.ErrSessionNotFound) {
			return err
		}
		session = &TelegramSession{
			UserID:    userID,
			SessionID: sessionID,
			CreatedAt: time.Now(),
		}
	} else if sessionID != "" {
		session.SessionID = sessionID
	}

	return m.SetSession(ctx, session)
}

// SetPendingConfirmation stores the confirmation flag for a destructive
// action, or clears it when action is empty.
func (m *Manager) SetPendingConfirmation(ctx context.Context, userID int64, action string) error {
	session, err := m.GetSession(ctx, userID)
	if err != nil {
		return err
	}

	session.PendingConfirmation = action
	return m.SetSession(ctx, session)
}
