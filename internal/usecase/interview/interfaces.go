package interview

import (
	"context"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// Generator is the question/blueprint pipeline the session flow drives.
// Implemented by the wizard use case.
type Generator interface {
	NextQuestion(ctx context.Context, step int, userInput string, history []entity.HistoryItem) (*entity.Question, bool, error)
	GenerateBlueprint(ctx context.Context, userInput string, history []entity.HistoryItem) (*entity.BusinessBlueprint, error)
}
