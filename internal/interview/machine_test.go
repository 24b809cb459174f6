package interview

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

func testQuestion(step int) *entity.Question {
	return &entity.Question{
		Step:     step,
		Question: fmt.Sprintf("question %d", step),
		Options: []entity.Option{
			{Key: entity.OptionKeyA, Label: fmt.Sprintf("option A%d", step)},
			{Key: entity.OptionKeyB, Label: fmt.Sprintf("option B%d", step)},
		},
	}
}

func TestFullSixStepRun(t *testing.T) {
	iv := New("s1")

	if err := Start(iv, "my story"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if iv.State != entity.StateAwaitingQuestion || iv.CurrentStep != 1 {
		t.Fatalf("after Start: state = %s, step = %d", iv.State, iv.CurrentStep)
	}

	choices := []string{"A", "B", "A", "B", "A", "B"}
	for step := 1; step <= entity.MaxSteps; step++ {
		if err := QuestionReady(iv, testQuestion(step)); err != nil {
			t.Fatalf("QuestionReady(step %d) error = %v", step, err)
		}
		if err := Select(iv, choices[step-1]); err != nil {
			t.Fatalf("Select(step %d) error = %v", step, err)
		}

		finalize, err := Commit(iv)
		if err != nil {
			t.Fatalf("Commit(step %d) error = %v", step, err)
		}

		wantFinalize := step == entity.MaxSteps
		if finalize != wantFinalize {
			t.Fatalf("Commit(step %d) finalize = %v, want %v", step, finalize, wantFinalize)
		}
	}

	if iv.State != entity.StateFinalizing {
		t.Errorf("state = %s, want FINALIZING", iv.State)
	}
	if iv.CurrentStep != entity.MaxSteps+1 {
		t.Errorf("CurrentStep = %d, want %d", iv.CurrentStep, entity.MaxSteps+1)
	}

	// History must hold exactly six monotonically increasing steps with
	// the committed choices.
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

	if err := Complete(iv); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if iv.State != entity.StateComplete {
		t.Errorf("state = %s, want COMPLETE", iv.State)
	}
}

func TestQuestionReadyResyncsStep(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")

	// Model answered with a different step than the machine expected.
	if err := QuestionReady(iv, testQuestion(3)); err != nil {
		t.Fatalf("QuestionReady() error = %v", err)
	}

	if iv.CurrentStep != 3 {
		t.Errorf("CurrentStep = %d, want re-synced to 3", iv.CurrentStep)
	}
}

func TestSelectValidation(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")
	QuestionReady(iv, testQuestion(1))

	if err := Select(iv, "C"); !errors.Is(err, entity.ErrInvalidChoice) {
		t.Errorf("Select(C) error = %v, want ErrInvalidChoice", err)
	}

	// Toggling before commit is allowed.
	if err := Select(iv, "A"); err != nil {
		t.Fatalf("Select(A) error = %v", err)
	}
	if err := Select(iv, "B"); err != nil {
		t.Fatalf("Select(B) error = %v", err)
	}
	if iv.Selected != "B" {
		t.Errorf("Selected = %q, want B", iv.Selected)
	}
}

func TestCommitRequiresSelection(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")
	QuestionReady(iv, testQuestion(1))

	if _, err := Commit(iv); !errors.Is(err, entity.ErrNoOptionSelected) {
		t.Errorf("Commit() error = %v, want ErrNoOptionSelected", err)
	}
}

func TestCommitOutsidePresenting(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")

	if _, err := Commit(iv); !errors.Is(err, entity.ErrInvalidState) {
		t.Errorf("Commit() in AWAITING_QUESTION error = %v, want ErrInvalidState", err)
	}
}

func TestFailAndRetryMidInterview(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")

	if err := Fail(iv, "gateway down"); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}
	if iv.State != entity.StateFailed || iv.FailReason != "gateway down" {
		t.Fatalf("after Fail: state = %s, reason = %q", iv.State, iv.FailReason)
	}

	finalize, err := Retry(iv)
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if finalize {
		t.Error("Retry() finalize = true with incomplete history")
	}
	if iv.State != entity.StateAwaitingQuestion {
		t.Errorf("state = %s, want AWAITING_QUESTION", iv.State)
	}
	if iv.FailReason != "" {
		t.Errorf("FailReason = %q, want cleared", iv.FailReason)
	}
}

func TestRetryAfterFinalizingFailure(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")

	for step := 1; step <= entity.MaxSteps; step++ {
		QuestionReady(iv, testQuestion(step))
		Select(iv, "A")
		Commit(iv)
	}

	Fail(iv, "blueprint generation failed")

	finalize, err := Retry(iv)
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if !finalize {
		t.Error("Retry() finalize = false with full history")
	}
	if iv.State != entity.StateFinalizing {
		t.Errorf("state = %s, want FINALIZING", iv.State)
	}
}

func TestFailOnlyDuringGeneration(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")
	QuestionReady(iv, testQuestion(1))

	if err := Fail(iv, "oops"); !errors.Is(err, entity.ErrInvalidState) {
		t.Errorf("Fail() in PRESENTING_QUESTION error = %v, want ErrInvalidState", err)
	}
}

func TestRestart(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")
	QuestionReady(iv, testQuestion(1))
	Select(iv, "A")
	Commit(iv)

	if err := Restart(iv); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if iv.State != entity.StateNotStarted {
		t.Errorf("state = %s, want NOT_STARTED", iv.State)
	}
	if len(iv.History) != 0 {
		t.Errorf("history length = %d, want 0", len(iv.History))
	}
	if iv.CurrentStep != 1 {
		t.Errorf("CurrentStep = %d, want 1", iv.CurrentStep)
	}

	// Restarting twice is harmless.
	if err := Restart(iv); err != nil {
		t.Errorf("second Restart() error = %v", err)
	}
}

func TestFinalizingIsNonCancelable(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")

	for step := 1; step <= entity.MaxSteps; step++ {
		QuestionReady(iv, testQuestion(step))
		Select(iv, "B")
		Commit(iv)
	}

	if iv.State != entity.StateFinalizing {
		t.Fatalf("state = %s, want FINALIZING", iv.State)
	}

	if err := Restart(iv); !errors.Is(err, entity.ErrFinalizing) {
		t.Errorf("Restart() error = %v, want ErrFinalizing", err)
	}
	if err := Start(iv, "new story"); !errors.Is(err, entity.ErrFinalizing) {
		t.Errorf("Start() error = %v, want ErrFinalizing", err)
	}
}

func TestBeginFinalize(t *testing.T) {
	iv := New("s1")
	Start(iv, "story")

	if err := BeginFinalize(iv); err != nil {
		t.Fatalf("BeginFinalize() error = %v", err)
	}
	if iv.State != entity.StateFinalizing {
		t.Fatalf("state = %s, want FINALIZING", iv.State)
	}

	iv2 := New("s2")
	Start(iv2, "story")
	QuestionReady(iv2, testQuestion(1))

	if err := BeginFinalize(iv2); !errors.Is(err, entity.ErrInvalidState) {
		t.Errorf("BeginFinalize() from PRESENTING_QUESTION error = %v, want ErrInvalidState", err)
	}
}
