package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

var testDimensions = []entity.Dimension{
	{ID: "lifestyle_pace", Label: "Calm lifestyle vs. intense growth"},
	{ID: "skills_vs_capital", Label: "Using skills vs. investing capital"},
	{ID: "involvement_level", Label: "Hands-on work vs. delegating"},
	{ID: "digital_vs_physical", Label: "Digital business vs. physical"},
	{ID: "risk_profile", Label: "Low risk vs. high risk"},
	{ID: "solo_vs_social", Label: "Working alone vs. with people"},
}

// fakeGateway returns canned completions and records the prompts it saw.
type fakeGateway struct {
	questionReply  string
	blueprintReply string
	err            error
	lastPrompt     string
}

func (g *fakeGateway) CompleteQuestion(ctx context.Context, system, prompt string) (string, error) {
	g.lastPrompt = prompt
	return g.questionReply, g.err
}

func (g *fakeGateway) CompleteBlueprint(ctx context.Context, system, prompt string) (string, error) {
	g.lastPrompt = prompt
	return g.blueprintReply, g.err
}

const validQuestionReply = `{
	"step": 2,
	"question": "Would you rather build on your skills or invest your savings?",
	"options": [
		{"label": "Use my skills", "summary": "Service work from day one"},
		{"label": "Invest capital", "summary": "Buy into an existing model"}
	]
}`

func TestNextQuestion(t *testing.T) {
	gw := &fakeGateway{questionReply: validQuestionReply}
	uc := NewUsecase(gw, testDimensions, zap.NewNop())

	q, done, err := uc.NextQuestion(context.Background(), 2, "I am a teacher", nil)
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if done {
		t.Fatal("done = true for an in-range step")
	}

	if q.Step != 2 {
		t.Errorf("Step = %d, want 2", q.Step)
	}
	if len(q.Options) != 2 {
		t.Fatalf("option count = %d, want 2", len(q.Options))
	}
	if q.Options[0].Key != "A" || q.Options[1].Key != "B" {
		t.Errorf("keys = %q, %q, want A, B", q.Options[0].Key, q.Options[1].Key)
	}

	// The prompt must target the step's dimension and carry the story.
	if !strings.Contains(gw.lastPrompt, testDimensions[1].Label) {
		t.Error("prompt does not mention the step's dimension")
	}
	if !strings.Contains(gw.lastPrompt, "I am a teacher") {
		t.Error("prompt does not carry the user story")
	}
}

func TestNextQuestionDonePastCatalog(t *testing.T) {
	gw := &fakeGateway{}
	uc := NewUsecase(gw, testDimensions, zap.NewNop())

	q, done, err := uc.NextQuestion(context.Background(), len(testDimensions)+1, "story", nil)
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if !done {
		t.Error("done = false for a step past the catalog")
	}
	if q != nil {
		t.Error("question returned for a step past the catalog")
	}
	if gw.lastPrompt != "" {
		t.Error("model was called for a step past the catalog")
	}
}

func TestNextQuestionInvalidStep(t *testing.T) {
	uc := NewUsecase(&fakeGateway{}, testDimensions, zap.NewNop())

	_, _, err := uc.NextQuestion(context.Background(), 0, "story", nil)
	if !errors.Is(err, entity.ErrInvalidParameter) {
		t.Errorf("NextQuestion(0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestNextQuestionGatewayError(t *testing.T) {
	gatewayErr := &entity.GatewayError{Err: errors.New("connection refused")}
	uc := NewUsecase(&fakeGateway{err: gatewayErr}, testDimensions, zap.NewNop())

	_, _, err := uc.NextQuestion(context.Background(), 1, "story", nil)
	if !entity.IsGatewayError(err) {
		t.Errorf("NextQuestion() error = %v, want wrapped GatewayError", err)
	}
}

func TestNextQuestionUnrenderableReply(t *testing.T) {
	// One option only: the normalizer must reject it.
	uc := NewUsecase(&fakeGateway{
		questionReply: `{"question": "?", "options": [{"label": "only one"}]}`,
	}, testDimensions, zap.NewNop())

	_, _, err := uc.NextQuestion(context.Background(), 1, "story", nil)
	if !errors.Is(err, entity.ErrOptionCount) {
		t.Errorf("NextQuestion() error = %v, want ErrOptionCount", err)
	}
}

func TestGenerateBlueprint(t *testing.T) {
	gw := &fakeGateway{blueprintReply: "```json\n" + `{
		"title": "Calm Consulting",
		"dayOneActions": ["write offer page", "call two contacts"]
	}` + "\n```"}
	uc := NewUsecase(gw, testDimensions, zap.NewNop())

	history := []entity.HistoryItem{
		{Step: 1, Question: "q1", Choice: "A", OptionLabel: "Calm lifestyle"},
	}

	bp, err := uc.GenerateBlueprint(context.Background(), "I am a teacher", history)
	if err != nil {
		t.Fatalf("GenerateBlueprint() error = %v", err)
	}

	if bp.Title != "Calm Consulting" {
		t.Errorf("Title = %q", bp.Title)
	}
	if len(bp.DayOneActions) != 2 {
		t.Errorf("DayOneActions = %v", bp.DayOneActions)
	}
	if !strings.Contains(gw.lastPrompt, "Calm lifestyle") {
		t.Error("prompt does not carry the history")
	}
}

func TestGenerateBlueprintAbsorbsShapeFaults(t *testing.T) {
	// Valid JSON with wrong field types still yields a usable blueprint.
	uc := NewUsecase(&fakeGateway{
		blueprintReply: `{"title": 42, "monetization": "sell stuff"}`,
	}, testDimensions, zap.NewNop())

	bp, err := uc.GenerateBlueprint(context.Background(), "story", nil)
	if err != nil {
		t.Fatalf("GenerateBlueprint() error = %v", err)
	}
	if bp.Title != "" || bp.Monetization == nil {
		t.Errorf("blueprint not defaulted: title=%q monetization=%v", bp.Title, bp.Monetization)
	}
}
