package validator

import (
	"errors"
	"testing"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

func TestValidateNextQuestion(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     entity.NextQuestionRequest
		wantErr error
	}{
		{
			name: "valid",
			req: entity.NextQuestionRequest{
				Step:      1,
				UserInput: "story",
				History:   []entity.HistoryItem{{Step: 1, Choice: "A"}},
			},
		},
		{
			name:    "step zero",
			req:     entity.NextQuestionRequest{Step: 0, UserInput: "story"},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name:    "empty user input",
			req:     entity.NextQuestionRequest{Step: 1},
			wantErr: entity.ErrMissingField,
		},
		{
			name: "history with bad choice",
			req: entity.NextQuestionRequest{
				Step:      2,
				UserInput: "story",
				History:   []entity.HistoryItem{{Step: 1, Choice: "yes"}},
			},
			wantErr: entity.ErrInvalidChoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateNextQuestion(&tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateNextQuestion() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateNextQuestion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChoiceKey(t *testing.T) {
	v := New()

	for _, key := range []string{"A", "B"} {
		if err := v.ValidateChoiceKey(key); err != nil {
			t.Errorf("ValidateChoiceKey(%q) error = %v", key, err)
		}
	}

	for _, key := range []string{"", "a", "C", "AB"} {
		if err := v.ValidateChoiceKey(key); !errors.Is(err, entity.ErrInvalidChoice) {
			t.Errorf("ValidateChoiceKey(%q) error = %v, want ErrInvalidChoice", key, err)
		}
	}
}

func TestValidateStartInterview(t *testing.T) {
	v := New()

	if err := v.ValidateStartInterview(&entity.StartInterviewRequest{UserInput: "story"}); err != nil {
		t.Errorf("ValidateStartInterview() error = %v", err)
	}

	err := v.ValidateStartInterview(&entity.StartInterviewRequest{})
	if !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("ValidateStartInterview() error = %v, want ErrMissingField", err)
	}
}
