package validator

import (
	"fmt"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// Validator checks request DTOs before they reach the use cases.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateNextQuestion validates NextQuestionRequest
func (v *Validator) ValidateNextQuestion(req *entity.NextQuestionRequest) error {
	if req.Step < 1 {
		return fmt.Errorf("%w: step must be >= 1, got %d", entity.ErrInvalidParameter, req.Step)
	}

	if req.UserInput == "" {
		return fmt.Errorf("%w: userInput", entity.ErrMissingField)
	}

	return v.validateHistory(req.History)
}

// ValidateGenerateBlueprint validates GenerateBlueprintRequest
func (v *Validator) ValidateGenerateBlueprint(req *entity.GenerateBlueprintRequest) error {
	return v.validateHistory(req.History)
}

// ValidateStartInterview validates StartInterviewRequest
func (v *Validator) ValidateStartInterview(req *entity.StartInterviewRequest) error {
	if req.UserInput == "" {
		return fmt.Errorf("%w: userInput", entity.ErrMissingField)
	}

	return nil
}

// ValidateChoiceKey validates an option key where one is required.
func (v *Validator) ValidateChoiceKey(key string) error {
	if key != entity.OptionKeyA && key != entity.OptionKeyB {
		return fmt.Errorf("%w: got %q", entity.ErrInvalidChoice, key)
	}

	return nil
}

func (v *Validator) validateHistory(history []entity.HistoryItem) error {
	for i, h := range history {
		if h.Choice != entity.OptionKeyA && h.Choice != entity.OptionKeyB {
			return fmt.Errorf("%w: history[%d].choice %q", entity.ErrInvalidChoice, i, h.Choice)
		}
	}

	return nil
}
