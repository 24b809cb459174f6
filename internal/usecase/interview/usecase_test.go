package interview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/config"
	"github.com/nicheroot/wizard-backend/internal/entity"
	"github.com/nicheroot/wizard-backend/internal/repository"
)

// fakeGenerator produces deterministic questions and a fixed blueprint.
type fakeGenerator struct {
	questionErr  error
	blueprintErr error
	maxStep      int
}

func (g *fakeGenerator) NextQuestion(ctx context.Context, step int, userInput string, history []entity.HistoryItem) (*entity.Question, bool, error) {
	if g.questionErr != nil {
		return nil, false, g.questionErr
	}
	if step > g.maxStep {
		return nil, true, nil
	}
	return &entity.Question{
		Step:     step,
		Question: fmt.Sprintf("question %d", step),
		Options: []entity.Option{
			{Key: entity.OptionKeyA, Label: fmt.Sprintf("label A%d", step)},
			{Key: entity.OptionKeyB, Label: fmt.Sprintf("label B%d", step)},
		},
	}, false, nil
}

func (g *fakeGenerator) GenerateBlueprint(ctx context.Context, userInput string, history []entity.HistoryItem) (*entity.BusinessBlueprint, error) {
	if g.blueprintErr != nil {
		return nil, g.blueprintErr
	}
	return &entity.BusinessBlueprint{
		Title:         "Test Blueprint",
		DayOneActions: []string{"do the thing"},
	}, nil
}

func storeConfig() config.StoreConfig {
	return config.StoreConfig{
		SessionTTL:      time.Hour,
		BlueprintTTL:    time.Hour,
		CleanupInterval: time.Hour,
	}
}

func newTestUsecase(gen Generator) *InterviewUsecase {
	return NewUsecase(
		repository.NewSessionStore(storeConfig()),
		repository.NewBlueprintStore(storeConfig()),
		gen,
		zap.NewNop(),
	)
}

func TestFullInterviewFlow(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	iv, err := uc.StartInterview(ctx, "I am a nurse with savings")
	if err != nil {
		t.Fatalf("StartInterview() error = %v", err)
	}
	if iv.State != entity.StatePresentingQuestion {
		t.Fatalf("state = %s, want PRESENTING_QUESTION", iv.State)
	}
	if iv.Question == nil || iv.Question.Step != 1 {
		t.Fatalf("first question = %+v", iv.Question)
	}

	choices := []string{"A", "B", "A", "B", "A", "B"}
	for i, choice := range choices {
		iv, err = uc.CommitChoice(ctx, iv.ID, choice)
		if err != nil {
			t.Fatalf("CommitChoice(%d) error = %v", i+1, err)
		}
	}

	if iv.State != entity.StateComplete {
		t.Fatalf("state after six commits = %s, want COMPLETE", iv.State)
	}

	if len(iv.History) != entity.MaxSteps {
		t.Fatalf("history length = %d, want %d", len(iv.History), entity.MaxSteps)
	}
	for i, h := range iv.History {
		if h.Step != i+1 {
			t.Errorf("history[%d].Step = %d, want %d", i, h.Step, i+1)
		}
		if h.Choice != choices[i] {
			t.Errorf("history[%d].Choice = %q, want %q", i, h.Choice, choices[i])
		}
	}

	bp, err := uc.GetBlueprint(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetBlueprint() error = %v", err)
	}
	if bp.Title != "Test Blueprint" {
		t.Errorf("Title = %q", bp.Title)
	}
}

func TestSelectThenCommitWithoutKey(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	iv, err := uc.StartInterview(ctx, "story")
	if err != nil {
		t.Fatalf("StartInterview() error = %v", err)
	}

	if _, err := uc.SelectOption(ctx, iv.ID, "B"); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}

	iv, err = uc.CommitChoice(ctx, iv.ID, "")
	if err != nil {
		t.Fatalf("CommitChoice() error = %v", err)
	}
	if iv.History[0].Choice != "B" {
		t.Errorf("committed choice = %q, want B", iv.History[0].Choice)
	}
}

func TestCommitWithoutSelection(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	iv, _ := uc.StartInterview(ctx, "story")

	_, err := uc.CommitChoice(ctx, iv.ID, "")
	if !errors.Is(err, entity.ErrNoOptionSelected) {
		t.Errorf("CommitChoice() error = %v, want ErrNoOptionSelected", err)
	}
}

func TestStartFailureLeavesRetryableSession(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{maxStep: entity.MaxSteps, questionErr: &entity.GatewayError{Err: errors.New("down")}}
	uc := newTestUsecase(gen)

	iv, err := uc.StartInterview(ctx, "story")
	if err == nil {
		t.Fatal("StartInterview() succeeded with a failing gateway")
	}
	if iv == nil {
		t.Fatal("failed start did not return the session")
	}

	stored, err := uc.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterview() error = %v", err)
	}
	if stored.State != entity.StateFailed {
		t.Fatalf("state = %s, want FAILED", stored.State)
	}

	// Clear the fault and retry the step.
	gen.questionErr = nil
	stored, err = uc.RetryStep(ctx, iv.ID)
	if err != nil {
		t.Fatalf("RetryStep() error = %v", err)
	}
	if stored.State != entity.StatePresentingQuestion {
		t.Errorf("state after retry = %s, want PRESENTING_QUESTION", stored.State)
	}
}

func TestBlueprintFailureAndRetry(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{maxStep: entity.MaxSteps}
	uc := newTestUsecase(gen)

	iv, _ := uc.StartInterview(ctx, "story")
	for i := 0; i < entity.MaxSteps-1; i++ {
		if iv, _ = uc.CommitChoice(ctx, iv.ID, "A"); iv == nil {
			t.Fatal("commit returned nil session")
		}
	}

	// The last commit triggers blueprint generation, which fails.
	gen.blueprintErr = &entity.GatewayError{Err: errors.New("down")}
	iv, err := uc.CommitChoice(ctx, iv.ID, "A")
	if err == nil {
		t.Fatal("final CommitChoice() succeeded with a failing gateway")
	}

	stored, _ := uc.GetInterview(ctx, iv.ID)
	if stored.State != entity.StateFailed {
		t.Fatalf("state = %s, want FAILED", stored.State)
	}

	gen.blueprintErr = nil
	stored, err = uc.RetryStep(ctx, iv.ID)
	if err != nil {
		t.Fatalf("RetryStep() error = %v", err)
	}
	if stored.State != entity.StateComplete {
		t.Errorf("state after retry = %s, want COMPLETE", stored.State)
	}

	if _, err := uc.GetBlueprint(ctx, iv.ID); err != nil {
		t.Errorf("GetBlueprint() after retry error = %v", err)
	}
}

func TestRestartClearsHistory(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	iv, _ := uc.StartInterview(ctx, "story")
	iv, _ = uc.CommitChoice(ctx, iv.ID, "A")

	iv, err := uc.RestartInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("RestartInterview() error = %v", err)
	}
	if iv.State != entity.StateNotStarted {
		t.Errorf("state = %s, want NOT_STARTED", iv.State)
	}
	if len(iv.History) != 0 {
		t.Errorf("history length = %d, want 0", len(iv.History))
	}
}

func TestCancelInterview(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	iv, _ := uc.StartInterview(ctx, "story")

	if err := uc.CancelInterview(ctx, iv.ID); err != nil {
		t.Fatalf("CancelInterview() error = %v", err)
	}

	if _, err := uc.GetInterview(ctx, iv.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("GetInterview() after cancel error = %v, want ErrSessionNotFound", err)
	}
}

func TestConcurrentCommitsStaySequential(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	iv, err := uc.StartInterview(ctx, "story")
	if err != nil {
		t.Fatalf("StartInterview() error = %v", err)
	}

	// Two rapid taps on the same keyboard arrive as concurrent commits.
	// They must serialize: one commit per presented question, never two
	// history items for the same step.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc.CommitChoice(ctx, iv.ID, "A")
		}()
	}
	wg.Wait()

	stored, err := uc.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterview() error = %v", err)
	}

	if len(stored.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(stored.History))
	}
	for i, h := range stored.History {
		if h.Step != i+1 {
			t.Errorf("history[%d].Step = %d, want %d", i, h.Step, i+1)
		}
	}
	if stored.CurrentStep != 3 {
		t.Errorf("current step = %d, want 3", stored.CurrentStep)
	}
	if stored.State != entity.StatePresentingQuestion {
		t.Errorf("state = %s, want PRESENTING_QUESTION", stored.State)
	}
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(&fakeGenerator{maxStep: entity.MaxSteps})

	if _, err := uc.GetInterview(ctx, "missing"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("GetInterview() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := uc.CommitChoice(ctx, "missing", "A"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("CommitChoice() error = %v, want ErrSessionNotFound", err)
	}
}
