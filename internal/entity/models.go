package entity

import (
	"fmt"
	"time"
)

// MaxSteps is the fixed length of the interview. The dimension catalog,
// the state machine and the prompt builder all agree on this value.
const MaxSteps = 6

// OptionKeyA and OptionKeyB are the only valid option keys. The normalizer
// force-assigns them positionally, so downstream code can branch on the
// literals without checking what the model actually returned.
const (
	OptionKeyA = "A"
	OptionKeyB = "B"
)

// Dimension is one of the six fixed trade-off axes the interview walks
// through. The catalog is immutable after process start and indexed 1..6.
type Dimension struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionDetails carries the expanded description of a single trade-off side.
type OptionDetails struct {
	Description string   `json:"description"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	Example     string   `json:"example"`
	WhyThisFits string   `json:"whyThisFits"`
}

// Option is one side of an A/B question.
type Option struct {
	Key     string        `json:"key"`
	Label   string        `json:"label"`
	Summary string        `json:"summary"`
	Details OptionDetails `json:"details"`
}

// Question is a single generated interview step. Invariant: exactly two
// options, keyed "A" and "B" in order.
type Question struct {
	Step     int      `json:"step"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// OptionByKey returns the option with the given key, or nil.
func (q *Question) OptionByKey(key string) *Option {
	for i := range q.Options {
		if q.Options[i].Key == key {
			return &q.Options[i]
		}
	}
	return nil
}

// HistoryItem is the frozen record of one completed step. Items are appended
// to the interview history in step order and never mutated; a restart clears
// the whole sequence instead of editing it.
type HistoryItem struct {
	Step        int    `json:"step"`
	Question    string `json:"question"`
	Choice      string `json:"choice"`
	OptionLabel string `json:"optionLabel"`
}

type InterviewState string

// Interview state represents where the wizard currently is in the six-step flow
const (
	StateNotStarted         InterviewState = "NOT_STARTED"         // Session created, waiting for start
	StateAwaitingQuestion   InterviewState = "AWAITING_QUESTION"   // Question generation in flight
	StatePresentingQuestion InterviewState = "PRESENTING_QUESTION" // Question shown, waiting for a choice
	StateFinalizing         InterviewState = "FINALIZING"          // Blueprint generation in flight (non-cancelable)
	StateComplete           InterviewState = "COMPLETE"            // Blueprint ready
	StateFailed             InterviewState = "FAILED"              // Gateway or schema fault, retry or restart
)

// Interview is the aggregate for one wizard run: the step counter, the
// append-only history and the free-text user input, owned by a single client.
type Interview struct {
	ID          string         `json:"session_id"`
	State       InterviewState `json:"state"`
	CurrentStep int            `json:"current_step"`
	UserInput   string         `json:"user_input"`
	History     []HistoryItem  `json:"history"`
	Question    *Question      `json:"question,omitempty"`
	Selected    string         `json:"selected,omitempty"`
	FailReason  string         `json:"fail_reason,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (rf ResultFormat) Validate() error {
	switch rf {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("unknown result format: %s", rf)
	}
}
