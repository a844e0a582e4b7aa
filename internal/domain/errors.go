package domain

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSessionNotFound  = errors.New("no active onboarding session")
	ErrCannotDecideSelf = errors.New("cannot decide on own profile")
	ErrMatchNotFound    = errors.New("match not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidToken     = errors.New("invalid token")
)

// ValidationError is a recoverable onboarding input failure: the flow
// stays in the same state and the prompt tells the user what to fix.
type ValidationError struct {
	Prompt string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Prompt
}

// IsValidation reports whether err is a re-promptable input failure.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
