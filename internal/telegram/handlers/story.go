package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/telegram/keyboard"
	"github.com/nicheroot/wizard-backend/internal/telegram/render"
	"github.com/nicheroot/wizard-backend/internal/telegram/state"
)

// StoryHandler handles the ASK_STORY state: the user's free-form text
// becomes the interview input and the first question is requested.
type StoryHandler struct {
	api          *tgbotapi.BotAPI
	stateManager *state.Manager
	usecase      InterviewUsecase
	keyboard     *keyboard.Builder
	sender       *MessageSender
	logger       *zap.Logger
}

func NewStoryHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	usecase InterviewUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *StoryHandler {
	return &StoryHandler{
		api:          api,
		stateManager: stateManager,
		usecase:      usecase,
		keyboard:     kb,
		sender:       NewMessageSender(api, logger),
		logger:       logger,
	}
}

func (h *StoryHandler) GetState() string {
	return HandlerStateAskStory
}

func (h *StoryHandler) Handle(ctx context.Context, msg *Message) error {
	story := strings.TrimSpace(msg.Text)
	if story == "" {
		return h.sender.Send(msg.ChatID, render.MsgAskStory, nil)
	}

	h.sender.Send(msg.ChatID, render.MsgGenerating, nil)

	iv, err := h.usecase.StartInterview(ctx, story)
	if err != nil {
		ctxzap.Error(ctx, "failed to start interview",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)

		if iv != nil {
			// Keep the mapping so the user can retry the failed step.
			h.stateManager.CreateOrUpdateSession(ctx, msg.UserID, iv.ID)
		}
		return h.sender.Send(msg.ChatID, render.ErrGeneration, h.keyboard.RetryKeyboard())
	}

	if err := h.stateManager.CreateOrUpdateSession(ctx, msg.UserID, iv.ID); err != nil {
		ctxzap.Error(ctx, "failed to save telegram session",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}

	ctxzap.Info(ctx, "interview started from telegram",
		zap.Int64("user_id", msg.UserID),
		zap.String("session_id", iv.ID),
	)

	return sendCriticalMessage(h.api, msg.ChatID, render.Question(iv.Question), h.keyboard.QuestionKeyboard(iv.Question), h.logger)
}
