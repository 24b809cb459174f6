package openai

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is the canned stand-in for the model backend, selected with
// ENABLE_MOCKS. It returns fixed but schema-correct JSON so the whole
// pipeline (normalizer included) runs without network access. The question
// payload carries no "step" field on purpose: the normalizer must fill it
// from the requested step.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

const mockQuestionJSON = `{
  "question": "Would you rather build a calm business around your current schedule, or push hard for fast growth even if it eats your evenings?",
  "options": [
    {
      "key": "A",
      "label": "Calm and steady",
      "summary": "A business shaped around the life you already have",
      "details": {
        "description": "Grow slowly on the hours you can spare without touching your routine.",
        "pros": ["Low stress", "No lifestyle sacrifice"],
        "cons": ["Slower income growth", "Longer time to traction"],
        "example": "A weekend consulting practice that stays at two clients.",
        "whyThisFits": "You mentioned limited hours, so a fixed-pace setup protects them."
      }
    },
    {
      "key": "B",
      "label": "Fast and demanding",
      "summary": "Aggressive growth that reshapes your week",
      "details": {
        "description": "Commit most free time now in exchange for faster results.",
        "pros": ["Quicker revenue", "Momentum compounds"],
        "cons": ["High stress", "Evenings are gone"],
        "example": "Launching a productized service and pitching daily for 90 days.",
        "whyThisFits": "Your budget gives you runway to sprint before committing long-term."
      }
    }
  ]
}`

const mockBlueprintJSON = `{
  "title": "Your Focused Side Business",
  "subtitle": "A plan built from your six choices",
  "situationSummary": "You have limited weekly hours and a small starting budget.",
  "recommendedDirection": "A lean digital service you can run solo at a steady pace.",
  "businessModelSummary": "Sell a narrow productized service with fixed pricing.",
  "exampleOffers": ["Starter package", "Monthly retainer"],
  "monetization": ["Fixed-price projects", "Recurring retainers"],
  "howToFindCustomers": ["Warm network outreach", "Niche communities"],
  "stepByStepGuide": ["Define the offer", "Set up a one-page site", "Pitch ten prospects"],
  "dayOneActions": ["Write the offer in one paragraph", "List twenty potential clients"],
  "first30Days": ["Close the first paying client", "Collect one testimonial"],
  "keyRisks": ["Too little time in busy weeks", "Underpricing"],
  "howToDeRisk": ["Cap active clients", "Raise prices after the third client"],
  "growthLevers": ["Referrals", "Publishing results publicly"]
}`

// CompleteQuestion returns a canned A/B question.
func (m *MockConnector) CompleteQuestion(ctx context.Context, system, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] question completion")
	return mockQuestionJSON, nil
}

// CompleteBlueprint returns a canned blueprint.
func (m *MockConnector) CompleteBlueprint(ctx context.Context, system, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] blueprint completion")
	return mockBlueprintJSON, nil
}
