package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/entity"
	"github.com/nicheroot/wizard-backend/internal/telegram/handlers"
	"github.com/nicheroot/wizard-backend/internal/telegram/keyboard"
	"github.com/nicheroot/wizard-backend/internal/telegram/middleware"
	"github.com/nicheroot/wizard-backend/internal/telegram/render"
	"github.com/nicheroot/wizard-backend/internal/telegram/state"
)

// Bot represents the Telegram bot
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	handlers     map[string]handlers.Handler
	interviewUC  handlers.InterviewUsecase
	keyboard     *keyboard.Builder
	logger       *zap.Logger
	loggingMW    *middleware.LoggingMiddleware
	recoveryMW   *middleware.RecoveryMiddleware
	rateLimitMW  *middleware.RateLimiterMiddleware
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	interviewUC handlers.InterviewUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		interviewUC:  interviewUC,
		keyboard:     keyboard.NewBuilder(),
		logger:       logger,
		handlers:     make(map[string]handlers.Handler),
		stopChan:     make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	// Free text only matters when we are collecting the user's story:
	// everything else in the wizard goes through the inline buttons.
	session, err := b.stateManager.GetSession(ctx, userID)
	if err == nil && session.SessionID != "" {
		iv, ivErr := b.interviewUC.GetInterview(ctx, session.SessionID)
		if ivErr == nil {
			switch iv.State {
			case entity.StateFinalizing:
				b.sendMessage(chatID, render.MsgFinalizingBusy, nil)
			case entity.StateComplete:
				b.sendMessage(chatID, render.MsgBlueprintReady, b.keyboard.ResultKeyboard())
			default:
				b.sendMessage(chatID, render.MsgUseButtons, nil)
			}
			return
		}
	}

	handler, exists := b.handlers[handlers.HandlerStateAskStory]
	if !exists {
		ctxzap.Warn(ctx, "story handler not registered")
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	msg := &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendError(chatID, render.ErrGeneric)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.handleStartCommand(ctx, message)
	case "help":
		b.handleHelpCommand(ctx, message)
	case "restart":
		b.handleConfirmableCommand(ctx, message, "restart", render.MsgRestartConfirm)
	case "cancel":
		b.handleConfirmableCommand(ctx, message, "cancel", render.MsgCancelConfirm)
	default:
		b.sendError(message.Chat.ID, "❌ Unknown command. Send /start")
	}
}

// handleStartCommand handles /start command
func (b *Bot) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, err := b.sendMessage(chatID, render.MsgWelcome, b.keyboard.StartKeyboard()); err != nil {
		ctxzap.Error(ctx, "failed to send welcome message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// handleHelpCommand handles /help command
func (b *Bot) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) {
	if _, err := b.sendMessage(message.Chat.ID, render.MsgHelp, nil); err != nil {
		ctxzap.Error(ctx, "failed to send help message", zap.Error(err))
	}
}

// handleConfirmableCommand handles /restart and /cancel, both of which
// require an explicit confirmation before anything is lost.
func (b *Bot) handleConfirmableCommand(ctx context.Context, message *tgbotapi.Message, action, confirmText string) {
	userID := message.From.ID
	chatID := message.Chat.ID

	session, err := b.stateManager.GetSession(ctx, userID)
	if err != nil || session.SessionID == "" {
		b.sendMessage(chatID, render.MsgNoSession, nil)
		return
	}

	if err := b.stateManager.SetPendingConfirmation(ctx, userID, action); err != nil {
		ctxzap.Error(ctx, "failed to set pending confirmation", zap.Error(err))
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	b.sendMessage(chatID, confirmText, b.keyboard.ConfirmKeyboard(action))
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := keyboard.ParseCallback(query.Data); err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Invalid request")
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	msg := &handlers.Message{
		ChatID:       chatID,
		UserID:       userID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.answerCallback(query.ID, "❌ Handler not found")
		return
	}

	// Answer immediately so Telegram does not consider the query stale;
	// the heavy work (model calls) runs asynchronously.
	b.answerCallback(query.ID, "⏳ Working on it...")

	b.wg.Add(1)
	go func(ctx context.Context, m *handlers.Message, cid int64) {
		defer b.wg.Done()
		if err := handler.Handle(ctx, m); err != nil {
			ctxzap.Error(ctx, "callback handler error",
				zap.Error(err),
				zap.Int64("user_id", m.UserID),
			)
			b.sendError(cid, render.ErrGeneric)
		}
	}(ctx, msg, chatID)
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	return b.api.Send(msg)
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	if _, err := b.sendMessage(chatID, text, nil); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	st := handler.GetState()

	if !handlers.IsValidState(st) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", st),
		)
	}

	b.handlers[st] = handler
	b.logger.Info("handler registered",
		zap.String("state", st),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetStateManager returns the state manager (for handlers)
func (b *Bot) GetStateManager() *state.Manager {
	return b.stateManager
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}

// GetInterviewUsecase returns the interview usecase (for handlers)
func (b *Bot) GetInterviewUsecase() handlers.InterviewUsecase {
	return b.interviewUC
}
