// Package interview implements the six-step wizard state machine. All
// transition functions are synchronous and side-effect free: they mutate the
// aggregate in place and return a domain error when the transition is not
// allowed from the current state. Network work happens in the use case layer
// between transitions.
package interview

import (
	"fmt"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// New creates a fresh interview session in NotStarted.
func New(id string) *entity.Interview {
	return &entity.Interview{
		ID:          id,
		State:       entity.StateNotStarted,
		CurrentStep: 1,
		History:     []entity.HistoryItem{},
	}
}

// Start begins the interview: clears any prior history and moves to
// AwaitingQuestion(1). The free-text input is fixed for the whole run.
func Start(iv *entity.Interview, userInput string) error {
	if iv.State == entity.StateFinalizing {
		return entity.ErrFinalizing
	}

	iv.State = entity.StateAwaitingQuestion
	iv.CurrentStep = 1
	iv.UserInput = userInput
	iv.History = []entity.HistoryItem{}
	iv.Question = nil
	iv.Selected = ""
	iv.FailReason = ""
	return nil
}

// QuestionReady installs a generated question and moves to
// PresentingQuestion. When the returned step disagrees with the machine's
// counter, the machine trusts the returned value and re-synchronizes
// (tolerance for model drift).
func QuestionReady(iv *entity.Interview, q *entity.Question) error {
	if iv.State != entity.StateAwaitingQuestion {
		return fmt.Errorf("%w: question ready in state %s", entity.ErrInvalidState, iv.State)
	}

	if q.Step != iv.CurrentStep {
		iv.CurrentStep = q.Step
	}

	iv.State = entity.StatePresentingQuestion
	iv.Question = q
	iv.Selected = ""
	return nil
}

// Select records the highlighted option without committing it. This is the
// self-loop on PresentingQuestion: the user may toggle freely until commit.
func Select(iv *entity.Interview, key string) error {
	if iv.State != entity.StatePresentingQuestion {
		return fmt.Errorf("%w: select in state %s", entity.ErrInvalidState, iv.State)
	}
	if key != entity.OptionKeyA && key != entity.OptionKeyB {
		return entity.ErrInvalidChoice
	}

	iv.Selected = key
	return nil
}

// Commit freezes the selected option into a HistoryItem and advances: to
// AwaitingQuestion(n+1) below the final step, to Finalizing at step 6.
// Commit is gated on a selected option.
func Commit(iv *entity.Interview) (finalize bool, err error) {
	if iv.State != entity.StatePresentingQuestion {
		return false, fmt.Errorf("%w: commit in state %s", entity.ErrInvalidState, iv.State)
	}
	if iv.Selected == "" {
		return false, entity.ErrNoOptionSelected
	}

	opt := iv.Question.OptionByKey(iv.Selected)
	if opt == nil {
		return false, entity.ErrInvalidChoice
	}

	iv.History = append(iv.History, entity.HistoryItem{
		Step:        iv.Question.Step,
		Question:    iv.Question.Question,
		Choice:      iv.Selected,
		OptionLabel: opt.Label,
	})
	iv.Question = nil
	iv.Selected = ""

	if iv.CurrentStep >= entity.MaxSteps {
		iv.State = entity.StateFinalizing
		iv.CurrentStep = entity.MaxSteps + 1
		return true, nil
	}

	iv.CurrentStep++
	iv.State = entity.StateAwaitingQuestion
	return false, nil
}

// BeginFinalize enters the blueprint critical section without a commit. This
// covers the tolerance path where a question request runs past the catalog
// with the full history already collected.
func BeginFinalize(iv *entity.Interview) error {
	if iv.State != entity.StateAwaitingQuestion {
		return fmt.Errorf("%w: finalize in state %s", entity.ErrInvalidState, iv.State)
	}

	iv.State = entity.StateFinalizing
	return nil
}

// Complete marks the blueprint as delivered. The blueprint itself lives in
// the blueprint store, keyed by session ID.
func Complete(iv *entity.Interview) error {
	if iv.State != entity.StateFinalizing {
		return fmt.Errorf("%w: complete in state %s", entity.ErrInvalidState, iv.State)
	}

	iv.State = entity.StateComplete
	return nil
}

// Fail records a gateway or schema fault. The machine does not auto-retry;
// the caller surfaces the reason once and waits for Retry or Restart.
func Fail(iv *entity.Interview, reason string) error {
	if iv.State != entity.StateAwaitingQuestion && iv.State != entity.StateFinalizing {
		return fmt.Errorf("%w: fail in state %s", entity.ErrInvalidState, iv.State)
	}

	iv.State = entity.StateFailed
	iv.FailReason = reason
	return nil
}

// Retry re-enters the request that failed: back to Finalizing when the full
// history is already collected, otherwise back to AwaitingQuestion for the
// current step.
func Retry(iv *entity.Interview) (finalize bool, err error) {
	if iv.State != entity.StateFailed {
		return false, fmt.Errorf("%w: retry in state %s", entity.ErrInvalidState, iv.State)
	}

	iv.FailReason = ""
	if len(iv.History) >= entity.MaxSteps {
		iv.State = entity.StateFinalizing
		return true, nil
	}

	iv.State = entity.StateAwaitingQuestion
	return false, nil
}

// Restart returns to NotStarted from any state except Finalizing, which is a
// non-cancelable critical section. History is cleared, never edited.
func Restart(iv *entity.Interview) error {
	if iv.State == entity.StateFinalizing {
		return entity.ErrFinalizing
	}

	iv.State = entity.StateNotStarted
	iv.CurrentStep = 1
	iv.History = []entity.HistoryItem{}
	iv.Question = nil
	iv.Selected = ""
	iv.FailReason = ""
	return nil
}
