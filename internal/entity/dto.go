package entity

// NextQuestionRequest is the body of POST /api/next-question.
type NextQuestionRequest struct {
	Step      int           `json:"step"`
	History   []HistoryItem `json:"history"`
	UserInput string        `json:"userInput"`
}

// NextQuestionResponse is the reply of POST /api/next-question. When the
// requested step is past the catalog, Done is set and Question is omitted.
type NextQuestionResponse struct {
	Success  bool      `json:"success"`
	Done     bool      `json:"done,omitempty"`
	Question *Question `json:"question,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// GenerateBlueprintRequest is the body of POST /api/generate-blueprint.
type GenerateBlueprintRequest struct {
	UserInput string        `json:"userInput"`
	History   []HistoryItem `json:"history"`
}

// GenerateBlueprintResponse is the reply of POST /api/generate-blueprint.
type GenerateBlueprintResponse struct {
	Success   bool               `json:"success"`
	Blueprint *BusinessBlueprint `json:"blueprint,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// StartInterviewRequest starts a server-side interview session.
type StartInterviewRequest struct {
	UserInput string `json:"userInput"`
}

// SelectOptionRequest records the highlighted (not yet committed) option.
type SelectOptionRequest struct {
	Key string `json:"key"`
}

// CommitChoiceRequest commits the selected option for the current step.
// Key is optional; when present it selects and commits in one call.
type CommitChoiceRequest struct {
	Key string `json:"key,omitempty"`
}

// InterviewDTO is the API projection of an interview session.
type InterviewDTO struct {
	ID          string         `json:"session_id"`
	State       InterviewState `json:"state"`
	CurrentStep int            `json:"current_step"`
	History     []HistoryItem  `json:"history"`
	Question    *Question      `json:"question,omitempty"`
	Selected    string         `json:"selected,omitempty"`
	FailReason  string         `json:"error,omitempty"`
}
