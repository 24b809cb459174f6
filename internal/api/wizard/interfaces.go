package wizard

import (
	"context"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

type WizardUsecase interface {
	NextQuestion(ctx context.Context, step int, userInput string, history []entity.HistoryItem) (*entity.Question, bool, error)
	GenerateBlueprint(ctx context.Context, userInput string, history []entity.HistoryItem) (*entity.BusinessBlueprint, error)
}
