package normalize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "plain object",
			raw:  `{"step": 1}`,
			want: map[string]any{"step": float64(1)},
		},
		{
			name: "code fence",
			raw:  "```json\n{\"a\": \"b\"}\n```",
			want: map[string]any{"a": "b"},
		},
		{
			name: "prose around object",
			raw:  `Sure! Here is the JSON you asked for: {"ok": true} Hope that helps.`,
			want: map[string]any{"ok": true},
		},
		{
			name: "no braces",
			raw:  "I cannot answer that.",
			want: map[string]any{},
		},
		{
			name: "malformed json",
			raw:  `{"step": }`,
			want: map[string]any{},
		},
		{
			name: "empty input",
			raw:  "",
			want: map[string]any{},
		},
		{
			name: "null literal",
			raw:  "null",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.raw)
			if got == nil {
				t.Fatal("ExtractJSON returned nil, want non-nil map")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeQuestionOptionCount(t *testing.T) {
	tests := []struct {
		name    string
		options any
		wantMsg string
	}{
		{name: "missing options", options: nil, wantMsg: "options missing"},
		{name: "wrong type", options: "A or B", wantMsg: "not an array"},
		{name: "one option", options: []any{map[string]any{"label": "only"}}, wantMsg: "got 1"},
		{name: "three options", options: []any{
			map[string]any{}, map[string]any{}, map[string]any{},
		}, wantMsg: "got 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := map[string]any{"question": "pick one"}
			if tt.options != nil {
				obj["options"] = tt.options
			}

			_, err := NormalizeQuestion(obj, 1)
			if !errors.Is(err, entity.ErrOptionCount) {
				t.Fatalf("NormalizeQuestion() error = %v, want ErrOptionCount", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNormalizeQuestionForcesKeys(t *testing.T) {
	obj := map[string]any{
		"step":     float64(3),
		"question": "Which pace fits you?",
		"options": []any{
			map[string]any{"key": "X", "label": "Slow and steady"},
			map[string]any{"key": "Y", "label": "Fast sprints"},
		},
	}

	q, err := NormalizeQuestion(obj, 1)
	if err != nil {
		t.Fatalf("NormalizeQuestion() error = %v", err)
	}

	if q.Step != 3 {
		t.Errorf("Step = %d, want 3", q.Step)
	}
	if q.Options[0].Key != entity.OptionKeyA || q.Options[1].Key != entity.OptionKeyB {
		t.Errorf("keys = %q, %q, want A, B", q.Options[0].Key, q.Options[1].Key)
	}
	if q.Options[0].Label != "Slow and steady" {
		t.Errorf("Options[0].Label = %q", q.Options[0].Label)
	}
}

func TestNormalizeQuestionStepFallback(t *testing.T) {
	tests := []struct {
		name string
		step any
		want int
	}{
		{name: "missing", step: nil, want: 4},
		{name: "string", step: "2", want: 4},
		{name: "zero", step: float64(0), want: 4},
		{name: "negative", step: float64(-1), want: 4},
		{name: "valid", step: float64(2), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := map[string]any{
				"options": []any{map[string]any{}, map[string]any{}},
			}
			if tt.step != nil {
				obj["step"] = tt.step
			}

			q, err := NormalizeQuestion(obj, 4)
			if err != nil {
				t.Fatalf("NormalizeQuestion() error = %v", err)
			}
			if q.Step != tt.want {
				t.Errorf("Step = %d, want %d", q.Step, tt.want)
			}
		})
	}
}

func TestNormalizeQuestionWhyThisFitsAlias(t *testing.T) {
	obj := map[string]any{
		"options": []any{
			map[string]any{
				"details": map[string]any{"whyThisFits": "camel"},
			},
			map[string]any{
				"details": map[string]any{"why_this_fits": "snake"},
			},
		},
	}

	q, err := NormalizeQuestion(obj, 1)
	if err != nil {
		t.Fatalf("NormalizeQuestion() error = %v", err)
	}

	if q.Options[0].Details.WhyThisFits != "camel" {
		t.Errorf("Options[0].WhyThisFits = %q, want camel", q.Options[0].Details.WhyThisFits)
	}
	if q.Options[1].Details.WhyThisFits != "snake" {
		t.Errorf("Options[1].WhyThisFits = %q, want snake", q.Options[1].Details.WhyThisFits)
	}
}

func TestNormalizeBlueprintTotality(t *testing.T) {
	// Wrong types everywhere must still produce a usable blueprint.
	obj := map[string]any{
		"title":        float64(42),
		"monetization": "sell stuff",
		"keyRisks":     []any{"competition", float64(7), "burnout"},
	}

	bp := NormalizeBlueprint(obj)

	if bp.Title != "" {
		t.Errorf("Title = %q, want empty string", bp.Title)
	}
	if bp.Monetization == nil || len(bp.Monetization) != 0 {
		t.Errorf("Monetization = %v, want empty non-nil slice", bp.Monetization)
	}
	if !reflect.DeepEqual(bp.KeyRisks, []string{"competition", "burnout"}) {
		t.Errorf("KeyRisks = %v, want non-string elements dropped", bp.KeyRisks)
	}
}

func TestNormalizeBlueprintEmptyInput(t *testing.T) {
	bp := NormalizeBlueprint(map[string]any{})

	if bp == nil {
		t.Fatal("NormalizeBlueprint returned nil")
	}
	for name, list := range map[string][]string{
		"ExampleOffers":      bp.ExampleOffers,
		"StepByStepGuide":    bp.StepByStepGuide,
		"DayOneActions":      bp.DayOneActions,
		"First30Days":        bp.First30Days,
		"HowToFindCustomers": bp.HowToFindCustomers,
		"HowToDeRisk":        bp.HowToDeRisk,
		"GrowthLevers":       bp.GrowthLevers,
	} {
		if list == nil {
			t.Errorf("%s is nil, want empty slice", name)
		}
	}
}

func TestNormalizeBlueprintFullObject(t *testing.T) {
	obj := map[string]any{
		"title":                "Calm Consulting",
		"subtitle":             "A quiet path to independence",
		"situationSummary":     "Experienced engineer, limited time.",
		"recommendedDirection": "Productized consulting.",
		"businessModelSummary": "Fixed-scope packages.",
		"exampleOffers":        []any{"audit", "roadmap"},
		"dayOneActions":        []any{"write offer page"},
	}

	bp := NormalizeBlueprint(obj)

	if bp.Title != "Calm Consulting" {
		t.Errorf("Title = %q", bp.Title)
	}
	if !reflect.DeepEqual(bp.ExampleOffers, []string{"audit", "roadmap"}) {
		t.Errorf("ExampleOffers = %v", bp.ExampleOffers)
	}
	if !reflect.DeepEqual(bp.DayOneActions, []string{"write offer page"}) {
		t.Errorf("DayOneActions = %v", bp.DayOneActions)
	}
}
