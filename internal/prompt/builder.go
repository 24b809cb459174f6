// Package prompt builds the instruction strings sent to the model backend.
// Both builders are pure: no network access, no randomness, deterministic
// output for identical inputs.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

// SystemQuestion is the system role message for question generation.
const SystemQuestion = "Return valid JSON only."

// SystemBlueprint is the system role message for blueprint generation.
const SystemBlueprint = "You are an AI that generates a structured business blueprint. Return valid JSON only."

// historyView is the serialized shape of a prior answer inside a prompt.
type historyView struct {
	Step     int    `json:"step"`
	Question string `json:"question"`
	Choice   string `json:"choice"`
	Option   string `json:"option"`
}

func formatHistory(history []entity.HistoryItem) string {
	views := make([]historyView, 0, len(history))
	for _, h := range history {
		views = append(views, historyView{
			Step:     h.Step,
			Question: h.Question,
			Choice:   h.Choice,
			Option:   h.OptionLabel,
		})
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		// historyView contains only strings and ints, marshal cannot fail
		return "[]"
	}
	return string(data)
}

// questionSchema is the exact output shape the normalizer expects for one
// option. Embedded verbatim so the model and the normalizer agree on field
// names and nesting.
const questionOptionSchema = `{
  "key": "A",
  "label": "short label",
  "summary": "one-line summary",
  "details": {
    "description": "1-2 sentences",
    "pros": ["pro1", "pro2"],
    "cons": ["con1", "con2"],
    "example": "one short real example",
    "whyThisFits": "personalized explanation for THIS user"
  }
}`

// BuildQuestionPrompt assembles the prompt for one interview step. It embeds
// the single target dimension, the full free-text user description, the
// serialized prior answers and the strict output schema.
func BuildQuestionPrompt(step int, dimensionLabel, userInput string, history []entity.HistoryItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are NicheRoot, an elite business decision engine.\n")
	fmt.Fprintf(&b, "Your job: generate ONE unique, personalized A/B question about THIS dimension:\n\n")
	fmt.Fprintf(&b, "%q\n\n", dimensionLabel)

	b.WriteString("USER STORY (USE HEAVILY)\n")
	b.WriteString(userInput)
	b.WriteString("\n\nPREVIOUS ANSWERS\n")
	b.WriteString(formatHistory(history))
	b.WriteString("\n\nSTRICT RULES\n\n")

	b.WriteString("1. The question MUST be about the current dimension ONLY.\n")
	b.WriteString("2. It MUST feel personal and specific to the user's life.\n")
	b.WriteString("3. It MUST NOT repeat any previous question structure.\n")
	b.WriteString("4. Each option MUST represent a STRONG opposite trade-off, never a near-duplicate.\n")
	b.WriteString("5. Each option MUST match this shape:\n\n")
	b.WriteString(questionOptionSchema)
	b.WriteString("\n\n6. Return ONLY this JSON:\n\n")

	fmt.Fprintf(&b, "{\n  \"step\": %d,\n  \"question\": \"Your personalized question...\",\n  \"options\": [OPTION_A_OBJECT, OPTION_B_OBJECT]\n}\n", step)

	return b.String()
}

// blueprintSchema is the exact BusinessBlueprint field set, embedded verbatim
// in the blueprint prompt.
const blueprintSchema = `{
  "title": "...",
  "subtitle": "...",
  "situationSummary": "...",
  "recommendedDirection": "...",
  "businessModelSummary": "...",
  "exampleOffers": ["...", "..."],
  "monetization": ["...", "..."],
  "howToFindCustomers": ["...", "..."],
  "stepByStepGuide": ["...", "..."],
  "dayOneActions": ["...", "..."],
  "first30Days": ["...", "..."],
  "keyRisks": ["...", "..."],
  "howToDeRisk": ["...", "..."],
  "growthLevers": ["...", "..."]
}`

// BuildBlueprintPrompt assembles the final synthesis prompt from the user's
// free text and the full six-answer history.
func BuildBlueprintPrompt(userInput string, history []entity.HistoryItem) string {
	var b strings.Builder

	b.WriteString("You are an AI that generates a structured business blueprint.\n\n")
	b.WriteString("Return ONLY valid JSON in the following format:\n\n")
	b.WriteString(blueprintSchema)
	b.WriteString("\n\nUser input:\n")
	b.WriteString(userInput)
	b.WriteString("\n\nChoices history:\n")
	b.WriteString(formatHistory(history))
	b.WriteString("\n")

	return b.String()
}
