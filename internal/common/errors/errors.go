// Package errors provides the structured error type shared by the chatbot
// pipeline stages.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeIntentParsingFailed ErrorCode = "INTENT_PARSING_FAILED"
	ErrCodeIntentAPITimeout    ErrorCode = "INTENT_API_TIMEOUT"
	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMSynthesisFailed  ErrorCode = "LLM_SYNTHESIS_FAILED"

	ErrCodeSynonymTableInvalid  ErrorCode = "SYNONYM_TABLE_INVALID"
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata sets one metadata key and returns the receiver.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err, true)
}

// NewQueryExecutionFailedError wraps a driver error raised while running a
// voucher query.
func NewQueryExecutionFailedError(queryKind string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error", err, true).
		WithMetadata("queryKind", queryKind)
}

// NewQueryTimeoutError creates a query timeout error.
func NewQueryTimeoutError(queryKind string, err error) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", err, true).
		WithMetadata("queryKind", queryKind)
}

func NewIntentParsingFailedError(err error) *StandardError {
	return newError(ErrCodeIntentParsingFailed, "Sentence annotation error", err, true)
}

func NewIntentAPITimeoutError(err error) *StandardError {
	return newError(ErrCodeIntentAPITimeout, "Sentence annotation timeout", err, true)
}

// NewLLMTimeoutError creates an LLM timeout error.
func NewLLMTimeoutError(err error) *StandardError {
	return newError(ErrCodeLLMTimeout, "LLM request timeout", err, true)
}

// NewLLMSynthesisFailedError creates an LLM request error.
func NewLLMSynthesisFailedError(err error) *StandardError {
	return newError(ErrCodeLLMSynthesisFailed, "LLM request error", err, true)
}

// NewSynonymTableInvalidError reports a synonym file that failed to load or
// validate.
func NewSynonymTableInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSynonymTableInvalid,
		Message:   "Synonym table is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidConfigurationError(err error) *StandardError {
	return newError(ErrCodeInvalidConfiguration, "Invalid configuration", err, false)
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// CodeOf returns the error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

// Details returns the message that is shown to chat users: the underlying
// cause when one is attached, otherwise the error text.
func Details(err error) string {
	if err == nil {
		return ""
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		if stdErr.Details != "" {
			return stdErr.Details
		}
		return stdErr.Message
	}
	return err.Error()
}

// IsRetryableErrorCode reports whether an operation failing with code may be
// attempted again. Only startup connection code retries; request handling never does.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeQueryTimeout,
		ErrCodeIntentParsingFailed,
		ErrCodeIntentAPITimeout,
		ErrCodeLLMTimeout,
		ErrCodeLLMSynthesisFailed:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "SYNONYM") || strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	default:
		return "UNKNOWN"
	}
}
