// Package wizard implements the stateless generation pipeline: prompt
// builder -> model gateway -> response normalizer. The interview use case
// and the public next-question/generate-blueprint endpoints both sit on it.
package wizard

import (
	"context"
	"fmt"

	"github.com/nicheroot/wizard-backend/internal/entity"
	"github.com/nicheroot/wizard-backend/internal/normalize"
	"github.com/nicheroot/wizard-backend/internal/prompt"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// WizardUsecase generates questions and blueprints for one step at a time.
type WizardUsecase struct {
	gateway    ModelGateway
	dimensions []entity.Dimension
	logger     *zap.Logger
}

func NewUsecase(
	gateway ModelGateway,
	dimensions []entity.Dimension,
	logger *zap.Logger,
) *WizardUsecase {
	return &WizardUsecase{
		gateway:    gateway,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Dimensions exposes the immutable catalog in interview order.
func (uc *WizardUsecase) Dimensions() []entity.Dimension {
	return uc.dimensions
}

// NextQuestion generates the question for the given step. When step is past
// the catalog it reports done instead of calling the model. The returned
// question always has exactly two options keyed "A" and "B".
func (uc *WizardUsecase) NextQuestion(ctx context.Context, step int, userInput string, history []entity.HistoryItem) (*entity.Question, bool, error) {
	if step < 1 {
		return nil, false, fmt.Errorf("%w: step %d", entity.ErrInvalidParameter, step)
	}
	if step > len(uc.dimensions) {
		ctxzap.Info(ctx, "interview complete, no further questions", zap.Int("step", step))
		return nil, true, nil
	}

	dimension := uc.dimensions[step-1]

	ctxzap.Info(ctx, "generating question",
		zap.Int("step", step),
		zap.String("dimension", dimension.ID),
		zap.Int("history_len", len(history)),
	)

	p := prompt.BuildQuestionPrompt(step, dimension.Label, userInput, history)

	raw, err := uc.gateway.CompleteQuestion(ctx, prompt.SystemQuestion, p)
	if err != nil {
		return nil, false, fmt.Errorf("generate question for step %d: %w", step, err)
	}

	q, err := normalize.NormalizeQuestion(normalize.ExtractJSON(raw), step)
	if err != nil {
		ctxzap.Error(ctx, "model returned an unrenderable question",
			zap.Error(err),
			zap.Int("step", step),
		)
		return nil, false, err
	}

	ctxzap.Info(ctx, "question generated",
		zap.Int("step", q.Step),
		zap.Int("question_length", len(q.Question)),
	)

	return q, false, nil
}

// GenerateBlueprint synthesizes the final blueprint from the free text and
// the full history. Content-shape faults are absorbed by the normalizer:
// given any completion text at all, this returns a well-formed blueprint.
func (uc *WizardUsecase) GenerateBlueprint(ctx context.Context, userInput string, history []entity.HistoryItem) (*entity.BusinessBlueprint, error) {
	ctxzap.Info(ctx, "generating blueprint", zap.Int("history_len", len(history)))

	p := prompt.BuildBlueprintPrompt(userInput, history)

	raw, err := uc.gateway.CompleteBlueprint(ctx, prompt.SystemBlueprint, p)
	if err != nil {
		return nil, fmt.Errorf("generate blueprint: %w", err)
	}

	bp := normalize.NormalizeBlueprint(normalize.ExtractJSON(raw))

	ctxzap.Info(ctx, "blueprint generated", zap.String("title", bp.Title))

	return bp, nil
}
