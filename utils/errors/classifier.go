// ABOUTME: Unified error classifier for the engine's containment policy
// ABOUTME: Decides which errors degrade a result versus abort construction
package errors

import (
	"context"
	"errors"
	"fmt"
)

// IsInput reports whether err is an input validation error. These are
// handled locally with neutral fallbacks and never abort processing.
func IsInput(err error) bool {
	return hasCode(err, CodeInput)
}

// IsProcessing reports whether err is an unexpected internal failure.
// The orchestrator replaces these with degraded results.
func IsProcessing(err error) bool {
	if hasCode(err, CodeProcessing) {
		return true
	}
	// Cancellation surfaces as a processing failure at the item level:
	// the item is reported degraded, the batch carries on or stops at
	// the next chunk boundary.
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsConfiguration reports whether err is a construction-time
// configuration error. These are fatal and never occur mid-batch.
func IsConfiguration(err error) bool {
	return hasCode(err, CodeConfiguration)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromPanic converts a recovered panic value into a processing error so
// the orchestrator's containment boundary can treat panics and returned
// errors uniformly.
func FromPanic(recovered interface{}, component, operation string, context map[string]interface{}) *AppContextError {
	var cause error
	if err, ok := recovered.(error); ok {
		cause = err
	} else {
		cause = fmt.Errorf("panic: %v", recovered)
	}
	return NewProcessingError("unexpected panic during analysis", component, operation, cause, context)
}
