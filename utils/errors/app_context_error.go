// ABOUTME: Structured error type carrying component and operation context
// ABOUTME: Provides the engine's error taxonomy: input, processing, configuration
package errors

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Error codes used across the analysis engine.
const (
	CodeInput         = "VALIDATION_ERROR"
	CodeProcessing    = "PROCESSING_ERROR"
	CodeConfiguration = "CONFIG_ERROR"
)

// AppContextError represents an error with rich context information.
// Input errors (empty/malformed text) are handled locally by components
// and never escape as failures; processing errors are caught at the
// orchestrator boundary and replaced with a degraded result;
// configuration errors are fatal at engine construction.
type AppContextError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	Operation string                 `json:"operation,omitempty"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	ErrorID   string                 `json:"-"` // Unique ID for log correlation
}

// Error implements the error interface.
func (e *AppContextError) Error() string {
	var prefix string
	if e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s] ", e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping.
func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// generateErrorID generates a short unique error ID for log correlation.
func generateErrorID() string {
	b := make([]byte, 4) // 4 bytes = 8 hex characters
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}

// NewAppContextError creates a new AppContextError with full context.
func NewAppContextError(code, message, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
		ErrorID:   generateErrorID(),
	}
}

// NewInputError creates an input validation error. Components handle
// these locally with documented fallbacks.
func NewInputError(message, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeInput, message, component, operation, nil, context)
}

// NewProcessingError creates an unexpected internal failure error.
func NewProcessingError(message, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeProcessing, message, component, operation, cause, context)
}

// NewConfigurationError creates a construction-time configuration error.
func NewConfigurationError(message, component string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeConfiguration, message, component, "construct", nil, context)
}
