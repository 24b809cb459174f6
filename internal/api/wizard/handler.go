package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/entity"
	"github.com/nicheroot/wizard-backend/internal/pkg/logger"
	"github.com/nicheroot/wizard-backend/internal/pkg/response"
	"github.com/nicheroot/wizard-backend/internal/pkg/validator"
)

// Handler serves the stateless wizard endpoints: the client keeps the
// interview history and sends it with every call.
type Handler struct {
	usecase   WizardUsecase
	validator *validator.Validator
}

func NewHandler(usecase WizardUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// NextQuestion handles POST /api/next-question - generate the question for a step
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "NextQuestion")

	var req entity.NextQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateNextQuestion(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctxzap.Info(ctx, "generating question",
		zap.Int("step", req.Step),
		zap.Int("history_len", len(req.History)),
	)

	question, done, err := h.usecase.NextQuestion(ctx, req.Step, req.UserInput, req.History)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "Failed to get question")
		return
	}

	if done {
		response.Success(w, entity.NextQuestionResponse{Success: true, Done: true})
		return
	}

	response.Success(w, entity.NextQuestionResponse{Success: true, Question: question})
}

// GenerateBlueprint handles POST /api/generate-blueprint - build the final blueprint
func (h *Handler) GenerateBlueprint(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateBlueprint")

	var req entity.GenerateBlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateGenerateBlueprint(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctxzap.Info(ctx, "generating blueprint", zap.Int("history_len", len(req.History)))

	blueprint, err := h.usecase.GenerateBlueprint(ctx, req.UserInput, req.History)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "Failed to generate blueprint")
		return
	}

	response.Success(w, entity.GenerateBlueprintResponse{Success: true, Blueprint: blueprint})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	ctxzap.Error(ctx, "wizard usecase failed", zap.Error(err))

	if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// Gateway and schema faults surface as a generic failure so the
	// client can offer a retry.
	response.Error(w, http.StatusInternalServerError, message)
}
