package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/entity"
	"github.com/nicheroot/wizard-backend/internal/pkg/formatter"
	"github.com/nicheroot/wizard-backend/internal/telegram/keyboard"
	"github.com/nicheroot/wizard-backend/internal/telegram/render"
	"github.com/nicheroot/wizard-backend/internal/telegram/state"
)

// CallbackHandler handles all inline button clicks.
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	stateManager *state.Manager
	usecase      InterviewUsecase
	keyboard     *keyboard.Builder
	sender       *MessageSender
	logger       *zap.Logger
}

func NewCallbackHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	usecase InterviewUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		stateManager: stateManager,
		usecase:      usecase,
		keyboard:     kb,
		sender:       NewMessageSender(api, logger),
		logger:       logger,
	}
}

func (h *CallbackHandler) GetState() string {
	return HandlerStateCallback
}

func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return err
	}

	switch data.Action {
	case keyboard.ActionStart:
		return h.handleAction(ctx, msg, data.Value)
	case keyboard.ActionChoice:
		return h.handleChoice(ctx, msg, data.Value)
	case keyboard.ActionDetails:
		return h.handleDetails(ctx, msg, data.Value)
	case keyboard.ActionConfirm:
		return h.handleConfirm(ctx, msg, data.Value)
	case keyboard.ActionExport:
		return h.handleExport(ctx, msg, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action",
			zap.String("action", data.Action),
			zap.Int64("user_id", msg.UserID),
		)
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

// handleAction handles action:start, action:retry and action:restart.
func (h *CallbackHandler) handleAction(ctx context.Context, msg *Message, value string) error {
	switch value {
	case "start":
		if err := h.stateManager.CreateOrUpdateSession(ctx, msg.UserID, ""); err != nil {
			return err
		}
		return h.sender.Send(msg.ChatID, render.MsgAskStory, nil)

	case "retry":
		sessionID, err := h.sessionID(ctx, msg)
		if err != nil {
			return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
		}

		h.sender.Send(msg.ChatID, render.MsgGenerating, nil)

		iv, err := h.usecase.RetryStep(ctx, sessionID)
		return h.presentOutcome(ctx, msg, iv, err)

	case "restart":
		if err := h.stateManager.SetPendingConfirmation(ctx, msg.UserID, "restart"); err != nil {
			return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
		}
		return h.sender.Send(msg.ChatID, render.MsgRestartConfirm, h.keyboard.ConfirmKeyboard("restart"))

	default:
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

// handleChoice commits an A/B answer and presents what follows.
func (h *CallbackHandler) handleChoice(ctx context.Context, msg *Message, key string) error {
	sessionID, err := h.sessionID(ctx, msg)
	if err != nil {
		return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
	}

	iv, err := h.usecase.GetInterview(ctx, sessionID)
	if err != nil {
		return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
	}

	if iv.CurrentStep >= entity.MaxSteps {
		h.sender.Send(msg.ChatID, render.MsgFinalizing, nil)
	} else {
		h.sender.Send(msg.ChatID, render.MsgGenerating, nil)
	}

	iv, err = h.usecase.CommitChoice(ctx, sessionID, key)
	return h.presentOutcome(ctx, msg, iv, err)
}

// handleDetails expands one option of the current question.
func (h *CallbackHandler) handleDetails(ctx context.Context, msg *Message, key string) error {
	sessionID, err := h.sessionID(ctx, msg)
	if err != nil {
		return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
	}

	iv, err := h.usecase.GetInterview(ctx, sessionID)
	if err != nil || iv.Question == nil {
		return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
	}

	opt := iv.Question.OptionByKey(key)
	if opt == nil {
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}

	return h.sender.Send(msg.ChatID, render.OptionDetails(opt), h.keyboard.QuestionKeyboard(iv.Question))
}

// handleConfirm resolves a pending destructive action.
func (h *CallbackHandler) handleConfirm(ctx context.Context, msg *Message, value string) error {
	if value == "keep" {
		h.stateManager.SetPendingConfirmation(ctx, msg.UserID, "")
		return h.sender.Send(msg.ChatID, "👍 Carrying on.", nil)
	}

	session, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil {
		return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
	}

	if session.SessionID != "" {
		if err := h.usecase.CancelInterview(ctx, session.SessionID); err != nil {
			if errors.Is(err, entity.ErrFinalizing) {
				return h.sender.Send(msg.ChatID, render.MsgFinalizingBusy, nil)
			}
			ctxzap.Warn(ctx, "failed to cancel interview",
				zap.Error(err),
				zap.String("session_id", session.SessionID),
			)
		}
	}

	switch value {
	case "restart":
		// Drop the old interview and collect a fresh story.
		session.SessionID = ""
		session.PendingConfirmation = ""
		if err := h.stateManager.SetSession(ctx, session); err != nil {
			return err
		}
		return h.sender.Send(msg.ChatID, render.MsgAskStory, nil)

	case "cancel":
		h.stateManager.DeleteSession(ctx, msg.UserID)
		return h.sender.Send(msg.ChatID, render.MsgSessionFinished, nil)

	default:
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

// handleExport renders the blueprint in the requested format and sends
// it as a document.
func (h *CallbackHandler) handleExport(ctx context.Context, msg *Message, formatValue string) error {
	sessionID, err := h.sessionID(ctx, msg)
	if err != nil {
		return h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
	}

	format := entity.ResultFormat(formatValue)
	if err := format.Validate(); err != nil {
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}

	bp, err := h.usecase.GetBlueprint(ctx, sessionID)
	if err != nil {
		ctxzap.Error(ctx, "failed to get blueprint",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}

	fmtr, err := formatter.NewFactory().Create(format)
	if err != nil {
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}

	data, err := fmtr.Format(bp)
	if err != nil {
		ctxzap.Error(ctx, "failed to format blueprint",
			zap.Error(err),
			zap.String("format", string(format)),
		)
		return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}

	return h.sender.SendDocument(msg.ChatID, "blueprint-"+sessionID+fmtr.FileExtension(), data)
}

// presentOutcome sends whatever the interview moved to: the next
// question, the finished blueprint or a retry prompt.
func (h *CallbackHandler) presentOutcome(ctx context.Context, msg *Message, iv *entity.Interview, opErr error) error {
	if opErr != nil {
		ctxzap.Error(ctx, "interview operation failed",
			zap.Error(opErr),
			zap.Int64("user_id", msg.UserID),
		)
		return h.sender.Send(msg.ChatID, render.ErrGeneration, h.keyboard.RetryKeyboard())
	}

	switch iv.State {
	case entity.StatePresentingQuestion:
		return sendCriticalMessage(h.api, msg.ChatID, render.Question(iv.Question), h.keyboard.QuestionKeyboard(iv.Question), h.logger)

	case entity.StateComplete:
		bp, err := h.usecase.GetBlueprint(ctx, iv.ID)
		if err != nil {
			ctxzap.Error(ctx, "blueprint missing for completed interview",
				zap.Error(err),
				zap.String("session_id", iv.ID),
			)
			return h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
		}

		h.sender.Send(msg.ChatID, render.BlueprintSummary(bp), nil)
		return sendCriticalMessage(h.api, msg.ChatID, render.MsgBlueprintReady, h.keyboard.ResultKeyboard(), h.logger)

	default:
		return h.sender.Send(msg.ChatID, render.ErrGeneration, h.keyboard.RetryKeyboard())
	}
}

func (h *CallbackHandler) sessionID(ctx context.Context, msg *Message) (string, error) {
	session, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil {
		return "", err
	}
	if session.SessionID == "" {
		return "", entity.ErrSessionNotFound
	}
	return session.SessionID, nil
}
