package core

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the chat and voice flows. The API layer maps these
// onto HTTP status codes; callers test with errors.Is.
var (
	// ErrConversationNotFound means the client supplied an unknown
	// conversation id.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrCompletionFailed means the external chat-completion call failed.
	// The user message stays persisted; no assistant message is created.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrNothingToRetry means RetryLastTurn was called on a conversation
	// whose last message is not an unanswered user message.
	ErrNothingToRetry = errors.New("no unanswered user message to retry")

	// ErrMissingCredential means the voice API key is not configured. It is
	// detected before any network call.
	ErrMissingCredential = errors.New("voice API credential is not configured")

	// ErrSynthesisFailed means the voice API rejected the request.
	ErrSynthesisFailed = errors.New("voice synthesis failed")
)

// SynthesisError carries the voice API's status code and response body for
// diagnostics. It unwraps to ErrSynthesisFailed.
type SynthesisError struct {
	StatusCode int
	Body       string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("voice synthesis failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *SynthesisError) Unwrap() error {
	return ErrSynthesisFailed
}
