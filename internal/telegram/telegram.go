package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/telegram/bot"
	"github.com/nicheroot/wizard-backend/internal/telegram/handlers"
	"github.com/nicheroot/wizard-backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	interviewUC handlers.InterviewUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, interviewUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	api := b.GetAPI()
	stateManager := b.GetStateManager()
	interviewUC := b.GetInterviewUsecase()
	kb := b.GetKeyboard()

	// Callback handler covers every inline button click.
	callbackHandler := handlers.NewCallbackHandler(api, stateManager, interviewUC, kb, logger)
	b.RegisterHandler(callbackHandler)

	// Story handler collects the free-form user input.
	storyHandler := handlers.NewStoryHandler(api, stateManager, interviewUC, kb, logger)
	b.RegisterHandler(storyHandler)

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
