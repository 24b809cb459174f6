package handlers

import (
	"context"
)

// Handler state constants
const (
	HandlerStateCallback = "CALLBACK"
	HandlerStateAskStory = "ASK_STORY"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for state-specific handlers
type Handler interface {
	// Handle processes a message for this state
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the state this handler manages
	GetState() string
}

// validStates defines all valid handler states
var validStates = map[string]bool{
	HandlerStateCallback: true,
	HandlerStateAskStory: true,
}

// IsValidState checks if a state is valid for handler registration
func IsValidState(state string) bool {
	return validStates[state]
}
