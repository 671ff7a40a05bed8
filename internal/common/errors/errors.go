// Package errors provides standardized error handling for the matching path.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMalformedEnvelope  ErrorCode = "MALFORMED_ENVELOPE"
	ErrCodeInvalidCriteria    ErrorCode = "INVALID_CRITERIA"
	ErrCodeNoMatchFound       ErrorCode = "NO_MATCH_FOUND"
	ErrCodeStoreQueryFailed   ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreTimeout       ErrorCode = "STORE_TIMEOUT"
	ErrCodeReplyPublishFailed ErrorCode = "REPLY_PUBLISH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Wrap creates a StandardError that keeps the underlying error as detail.
// The detail never crosses the bus boundary; only the message does.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	e := New(code, message)
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}
