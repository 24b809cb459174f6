package handlers

import (
	"context"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// InterviewUsecase defines the interview operations used by the Telegram
// bot to drive the wizard flow.
type InterviewUsecase interface {
	StartInterview(ctx context.Context, userInput string) (*entity.Interview, error)
	GetInterview(ctx context.Context, sessionID string) (*entity.Interview, error)
	CommitChoice(ctx context.Context, sessionID, key string) (*entity.Interview, error)
	RetryStep(ctx context.Context, sessionID string) (*entity.Interview, error)
	CancelInterview(ctx context.Context, sessionID string) error
	GetBlueprint(ctx context.Context, sessionID string) (*entity.BusinessBlueprint, error)
}
