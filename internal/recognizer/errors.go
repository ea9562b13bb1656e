package recognizer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult means the provider responded without any candidate text.
	ErrEmptyResult = errors.New("no text detected")

	// ErrMalformedResponse means the provider response had an unexpected shape.
	ErrMalformedResponse = errors.New("unexpected provider response shape")

	// ErrAttemptTimeout means a single attempt hit its deadline. The losing
	// network call is abandoned, not cancelled.
	ErrAttemptTimeout = errors.New("recognition request timed out; try a smaller region")
)

// ProviderError indicates a non-2xx HTTP response from the OCR provider.
// Status 400 is non-retryable: the request itself is malformed.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// RecognitionFailedError wraps the last error seen after the retry budget is
// exhausted.
type RecognitionFailedError struct {
	Attempts int
	Err      error
}

func (e *RecognitionFailedError) Error() string {
	return fmt.Sprintf("recognition failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RecognitionFailedError) Unwrap() error {
	return e.Err
}
