package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the job API could not be reached.
	ErrUnavailable = errors.New("job api unavailable")

	// ErrTimeout indicates a request exceeded its configured timeout.
	ErrTimeout = errors.New("job api request timed out")

	// ErrRejected indicates the job API answered with a failure.
	ErrRejected = errors.New("job api rejected request")

	// ErrInvalidResponse indicates a response body could not be decoded.
	ErrInvalidResponse = errors.New("invalid job api response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("job api retry attempts exhausted")
)

// defaultRejectMessage is shown when a failure response carries no error text.
const defaultRejectMessage = "API request failed"

// APIError is a failure reported by the job API itself. Its message is
// meant for the operator and is shown verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return defaultRejectMessage
	}
	return e.Message
}

func (e *APIError) Is(target error) bool { return target == ErrRejected }

func (e *APIError) retryable() bool { return e.Status >= 500 }

func rejected(status int, msg string) error {
	return &APIError{Status: status, Message: msg}
}

func invalidResponse(op Operation, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, op, err)
}
