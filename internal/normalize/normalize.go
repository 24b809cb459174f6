// Package normalize is the defensive boundary between raw model output and
// the rest of the system. ExtractJSON and NormalizeBlueprint are total; the
// only fatal condition anywhere is a question without exactly two options,
// because an A/B choice cannot be rendered from anything else.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// ExtractJSON locates the first balanced-looking {...} span in raw model text
// (first "{" to last "}") and parses it. Model replies are often wrapped in
// prose or code fences; everything outside the braces is ignored. On any
// parse failure an empty object is returned instead of an error.
func ExtractJSON(raw string) map[string]any {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return map[string]any{}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return map[string]any{}
	}
	if obj == nil {
		return map[string]any{}
	}
	return obj
}

// NormalizeQuestion coerces a raw object into a Question. The step defaults
// to fallbackStep when missing or mistyped; every text field defaults to "".
// Exactly two options are required - anything else is ErrOptionCount. The
// two options are force-keyed "A" and "B" positionally regardless of what
// the model used.
func NormalizeQuestion(obj map[string]any, fallbackStep int) (*entity.Question, error) {
	rawOptions, ok := obj["options"].([]any)
	if !ok {
		if _, present := obj["options"]; present {
			return nil, fmt.Errorf("%w: options is not an array", entity.ErrOptionCount)
		}
		return nil, fmt.Errorf("%w: options missing", entity.ErrOptionCount)
	}
	if len(rawOptions) != 2 {
		return nil, fmt.Errorf("%w: got %d", entity.ErrOptionCount, len(rawOptions))
	}

	q := &entity.Question{
		Step:     intField(obj, "step", fallbackStep),
		Question: stringField(obj, "question"),
		Options:  make([]entity.Option, 0, 2),
	}

	keys := []string{entity.OptionKeyA, entity.OptionKeyB}
	for i, rawOpt := range rawOptions {
		optObj, _ := rawOpt.(map[string]any)
		opt := normalizeOption(optObj)
		opt.Key = keys[i]
		q.Options = append(q.Options, opt)
	}

	return q, nil
}

func normalizeOption(obj map[string]any) entity.Option {
	opt := entity.Option{
		Label:   stringField(obj, "label"),
		Summary: stringField(obj, "summary"),
	}

	details, _ := obj["details"].(map[string]any)
	opt.Details = entity.OptionDetails{
		Description: stringField(details, "description"),
		Pros:        stringList(details, "pros"),
		Cons:        stringList(details, "cons"),
		Example:     stringField(details, "example"),
		// historical snapshots used snake_case here; accept both
		WhyThisFits: firstStringField(details, "whyThisFits", "why_this_fits"),
	}

	return opt
}

// NormalizeBlueprint coerces a raw object into a BusinessBlueprint. Every
// text field becomes "" when missing or non-string, every list field becomes
// [] when missing or not an array, and list elements that are not strings
// are dropped. This function never fails.
func NormalizeBlueprint(obj map[string]any) *entity.BusinessBlueprint {
	return &entity.BusinessBlueprint{
		Title:    stringField(obj, "title"),
		Subtitle: stringField(obj, "subtitle"),

		SituationSummary:     stringField(obj, "situationSummary"),
		RecommendedDirection: stringField(obj, "recommendedDirection"),
		BusinessModelSummary: stringField(obj, "businessModelSummary"),

		ExampleOffers:      stringList(obj, "exampleOffers"),
		Monetization:       stringList(obj, "monetization"),
		HowToFindCustomers: stringList(obj, "howToFindCustomers"),
		StepByStepGuide:    stringList(obj, "stepByStepGuide"),
		DayOneActions:      stringList(obj, "dayOneActions"),
		First30Days:        stringList(obj, "first30Days"),
		KeyRisks:           stringList(obj, "keyRisks"),
		HowToDeRisk:        stringList(obj, "howToDeRisk"),
		GrowthLevers:       stringList(obj, "growthLevers"),
	}
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func firstStringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringField(obj, key); s != "" {
			return s
		}
	}
	return ""
}

func intField(obj map[string]any, key string, fallback int) int {
	if obj == nil {
		return fallback
	}
	// encoding/json decodes numbers into float64
	if f, ok := obj[key].(float64); ok && f > 0 {
		return int(f)
	}
	return fallback
}

func stringList(obj map[string]any, key string) []string {
	if obj == nil {
		return []string{}
	}
	raw, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}

	items := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}
	return items
}
