package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/entity"
	"github.com/nicheroot/wizard-backend/internal/pkg/formatter"
	"github.com/nicheroot/wizard-backend/internal/pkg/logger"
	"github.com/nicheroot/wizard-backend/internal/pkg/response"
	"github.com/nicheroot/wizard-backend/internal/pkg/validator"
)

// Handler serves the stateful interview sessions: history and state live on
// the server, the client only sends choices.
type Handler struct {
	usecase   InterviewUsecase
	validator *validator.Validator
}

func NewHandler(usecase InterviewUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartInterview handles POST /api/interview - Start a new interview session
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	var req entity.StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStartInterview(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	iv, err := h.usecase.StartInterview(ctx, req.UserInput)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "interview session started", zap.String("session_id", iv.ID))

	response.Created(w, toInterviewDTO(iv))
}

// GetInterview handles GET /api/interview/{id} - Get session state
func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "GetInterview")

	iv, err := h.usecase.GetInterview(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toInterviewDTO(iv))
}

// SelectOption handles POST /api/interview/{id}/select - Highlight an option
func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "SelectOption")

	var req entity.SelectOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateChoiceKey(req.Key); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	iv, err := h.usecase.SelectOption(ctx, sessionID, req.Key)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toInterviewDTO(iv))
}

// CommitChoice handles POST /api/interview/{id}/commit - Commit the choice
func (h *Handler) CommitChoice(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "CommitChoice")

	var req entity.CommitChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Key is optional here: an empty key commits the previously
	// selected option.
	if req.Key != "" {
		if err := h.validator.ValidateChoiceKey(req.Key); err != nil {
			ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	iv, err := h.usecase.CommitChoice(ctx, sessionID, req.Key)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "choice committed",
		zap.String("state", string(iv.State)),
		zap.Int("step", iv.CurrentStep),
	)

	response.Success(w, toInterviewDTO(iv))
}

// RetryStep handles POST /api/interview/{id}/retry - Retry after a failure
func (h *Handler) RetryStep(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "RetryStep")

	iv, err := h.usecase.RetryStep(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toInterviewDTO(iv))
}

// RestartInterview handles POST /api/interview/{id}/restart - Start over
func (h *Handler) RestartInterview(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "RestartInterview")

	iv, err := h.usecase.RestartInterview(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toInterviewDTO(iv))
}

// CancelInterview handles DELETE /api/interview/{id} - Drop the session
func (h *Handler) CancelInterview(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "CancelInterview")

	if err := h.usecase.CancelInterview(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "interview session cancelled")

	response.NoContent(w)
}

// GetBlueprint handles GET /api/interview/{id}/blueprint - Get the result
func (h *Handler) GetBlueprint(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "GetBlueprint")

	bp, err := h.usecase.GetBlueprint(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.GenerateBlueprintResponse{Success: true, Blueprint: bp})
}

// ExportBlueprint handles GET /api/interview/{id}/blueprint/export - Download
// the blueprint as a file. Format is chosen by the ?format= query parameter.
func (h *Handler) ExportBlueprint(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionCtx(r, "ExportBlueprint")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format := entity.ResultFormat(formatParam)
	if err := format.Validate(); err != nil {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	bp, err := h.usecase.GetBlueprint(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		response.Error(w, http.StatusNotImplemented, "format not implemented")
		return
	}

	data, err := fmtr.Format(bp)
	if err != nil {
		ctxzap.Error(ctx, "failed to format blueprint", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format blueprint")
		return
	}

	ctxzap.Info(ctx, "blueprint exported", zap.String("format", string(format)))

	response.File(w, fmtr.ContentType(), "blueprint-"+sessionID+fmtr.FileExtension(), data)
}

// sessionCtx pulls the session ID from the URL and tags the request logger.
func (h *Handler) sessionCtx(r *http.Request, action string) (context.Context, string) {
	sessionID := chi.URLParam(r, "id")

	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)

	return ctx, sessionID
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "interview usecase failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrBlueprintNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrInvalidChoice) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidState) || errors.Is(err, entity.ErrFinalizing) ||
		errors.Is(err, entity.ErrNoOptionSelected) || errors.Is(err, entity.ErrInterviewComplete):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
