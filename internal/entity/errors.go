package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Interview errors
	ErrSessionNotFound   = errors.New("interview session not found")
	ErrBlueprintNotFound = errors.New("blueprint not found")
	ErrNoOptionSelected  = errors.New("no option selected")
	ErrInvalidChoice     = errors.New("choice must be A or B")
	ErrInvalidState      = errors.New("action not allowed in current state")
	ErrFinalizing        = errors.New("blueprint generation in progress, cannot restart")
	ErrInterviewComplete = errors.New("interview is already complete")

	// Normalizer errors
	ErrOptionCount = errors.New("question must have exactly two options")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// GatewayError wraps any model-backend failure: network error, non-2xx
// response or an empty completion. The gateway never retries; callers surface
// this as a generic server error.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("model gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGatewayError reports whether err wraps a GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
