package domain

import "errors"

var (
	// ErrNotFound is returned when GitHub reports that a user, repository or ref does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLLMUnavailable is returned when no language model is configured.
	ErrLLMUnavailable = errors.New("language model is not configured")
	// ErrAnalysisParse is returned when the model reply holds no decodable JSON object.
	ErrAnalysisParse = errors.New("failed to parse analysis result")
)

// ValidationError reports bad user input. Its message is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
