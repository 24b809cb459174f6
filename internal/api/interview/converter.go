package interview

import "github.com/nicheroot/wizard-backend/internal/entity"

// toInterviewDTO converts an Interview entity to its API projection
func toInterviewDTO(iv *entity.Interview) *entity.InterviewDTO {
	return &entity.InterviewDTO{
		ID:          iv.ID,
		State:       iv.State,
		CurrentStep: iv.CurrentStep,
		History:     iv.History,
		Question:    iv.Question,
		Selected:    iv.Selected,
		FailReason:  iv.FailReason,
	}
}
