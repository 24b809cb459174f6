// Package interview drives server-side wizard sessions: it owns the state
// machine transitions, calls the generation pipeline between them and
// persists sessions and finished blueprints in the ephemeral stores.
package interview

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/entity"
	machine "github.com/nicheroot/wizard-backend/internal/interview"
	"github.com/nicheroot/wizard-backend/internal/repository"
)

// sessionLockCount sizes the striped lock table. Collisions only cost
// unrelated sessions a shared queue, never correctness.
const sessionLockCount = 64

// InterviewUsecase implements the session-facing interview operations.
// Mutating operations hold a per-session lock across the whole
// load-transition-save cycle, so two concurrent taps on the same keyboard
// cannot both commit the same step.
type InterviewUsecase struct {
	sessionRepo   repository.SessionRepository
	blueprintRepo repository.BlueprintRepository
	generator     Generator
	logger        *zap.Logger
	locks         [sessionLockCount]sync.Mutex
}

func NewUsecase(
	sessionRepo repository.SessionRepository,
	blueprintRepo repository.BlueprintRepository,
	generator Generator,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		sessionRepo:   sessionRepo,
		blueprintRepo: blueprintRepo,
		generator:     generator,
		logger:        logger,
	}
}

// StartInterview creates a session, fixes the free-text input and fetches the
// first question. On a generation fault the session is saved in Failed so the
// client can retry.
func (uc *InterviewUsecase) StartInterview(ctx context.Context, userInput string) (*entity.Interview, error) {
	iv := machine.New(uuid.New().String())
	if err := machine.Start(iv, userInput); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "interview started", zap.String("session_id", iv.ID))

	if err := uc.requestQuestion(ctx, iv); err != nil {
		return iv, err
	}

	return iv, uc.sessionRepo.Save(ctx, iv)
}

// GetInterview returns the session by ID.
func (uc *InterviewUsecase) GetInterview(ctx context.Context, sessionID string) (*entity.Interview, error) {
	return uc.sessionRepo.Get(ctx, sessionID)
}

// sessionLock returns the stripe guarding the given session. Every mutating
// operation locks it before loading the session and releases it after the
// final save, which serializes double-taps on one session.
func (uc *InterviewUsecase) sessionLock(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &uc.locks[h.Sum32()%sessionLockCount]
}

// SelectOption records the highlighted option without committing it.
func (uc *InterviewUsecase) SelectOption(ctx context.Context, sessionID, key string) (*entity.Interview, error) {
	mu := uc.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	iv, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := machine.Select(iv, key); err != nil {
		return nil, err
	}

	return iv, uc.sessionRepo.Save(ctx, iv)
}

// CommitChoice commits the selected option. A non-empty key selects and
// commits in one call. Below step 6 the next question is requested; at step
// 6 the blueprint is generated and stored, and the session completes.
func (uc *InterviewUsecase) CommitChoice(ctx context.Context, sessionID, key string) (*entity.Interview, error) {
	mu := uc.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	iv, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := machine.Select(iv, key); err != nil {
			return nil, err
		}
	}

	finalize, err := machine.Commit(iv)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "choice committed",
		zap.String("session_id", iv.ID),
		zap.Int("history_len", len(iv.History)),
		zap.Bool("finalize", finalize),
	)

	if finalize {
		err = uc.finalize(ctx, iv)
	} else {
		err = uc.requestQuestion(ctx, iv)
	}
	if err != nil {
		return iv, err
	}

	return iv, uc.sessionRepo.Save(ctx, iv)
}

// RetryStep re-runs the request that failed (question or blueprint).
func (uc *InterviewUsecase) RetryStep(ctx context.Context, sessionID string) (*entity.Interview, error) {
	mu := uc.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	iv, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	finalize, err := machine.Retry(iv)
	if err != nil {
		return nil, err
	}

	if finalize {
		err = uc.finalize(ctx, iv)
	} else {
		err = uc.requestQuestion(ctx, iv)
	}
	if err != nil {
		return iv, err
	}

	return iv, uc.sessionRepo.Save(ctx, iv)
}

// RestartInterview returns the session to NotStarted with an empty history.
// Forbidden while Finalizing: an in-flight blueprint is never abandoned.
func (uc *InterviewUsecase) RestartInterview(ctx context.Context, sessionID string) (*entity.Interview, error) {
	mu := uc.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	iv, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := machine.Restart(iv); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "interview restarted", zap.String("session_id", iv.ID))

	return iv, uc.sessionRepo.Save(ctx, iv)
}

// CancelInterview deletes the session entirely.
func (uc *InterviewUsecase) CancelInterview(ctx context.Context, sessionID string) error {
	mu := uc.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	iv, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if iv.State == entity.StateFinalizing {
		return entity.ErrFinalizing
	}

	return uc.sessionRepo.Delete(ctx, sessionID)
}

// GetBlueprint reads the stored blueprint for a completed session.
func (uc *InterviewUsecase) GetBlueprint(ctx context.Context, sessionID string) (*entity.BusinessBlueprint, error) {
	return uc.blueprintRepo.Get(ctx, sessionID)
}

// requestQuestion fetches the question for the current step and installs it.
// Faults move the machine to Failed and are returned to the caller.
func (uc *InterviewUsecase) requestQuestion(ctx context.Context, iv *entity.Interview) error {
	q, done, err := uc.generator.NextQuestion(ctx, iv.CurrentStep, iv.UserInput, iv.History)
	if err != nil {
		uc.fail(ctx, iv, err)
		return err
	}
	if done {
		// Step ran past the catalog with a full history: go straight to
		// the blueprint instead of failing the session.
		if err := machine.BeginFinalize(iv); err != nil {
			return err
		}
		return uc.finalize(ctx, iv)
	}

	return machine.QuestionReady(iv, q)
}

// finalize generates and stores the blueprint, then completes the session.
func (uc *InterviewUsecase) finalize(ctx context.Context, iv *entity.Interview) error {
	bp, err := uc.generator.GenerateBlueprint(ctx, iv.UserInput, iv.History)
	if err != nil {
		uc.fail(ctx, iv, err)
		return err
	}

	if err := uc.blueprintRepo.Save(ctx, iv.ID, bp); err != nil {
		uc.fail(ctx, iv, err)
		return fmt.Errorf("store blueprint: %w", err)
	}

	ctxzap.Info(ctx, "interview complete",
		zap.String("session_id", iv.ID),
		zap.String("blueprint_title", bp.Title),
	)

	return machine.Complete(iv)
}

func (uc *InterviewUsecase) fail(ctx context.Context, iv *entity.Interview, cause error) {
	if ferr := machine.Fail(iv, cause.Error()); ferr != nil {
		ctxzap.Warn(ctx, "could not mark session failed",
			zap.Error(ferr),
			zap.String("session_id", iv.ID),
		)
		return
	}

	if serr := uc.sessionRepo.Save(ctx, iv); serr != nil {
		ctxzap.Error(ctx, "could not save failed session",
			zap.Error(serr),
			zap.String("session_id", iv.ID),
		)
	}
}
