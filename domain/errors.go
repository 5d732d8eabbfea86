// ABOUTME: Domain-level sentinel errors for the analysis engine
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// ErrNoArticles indicates the input contained no articles to analyze.
var ErrNoArticles = errors.New("no articles to analyze")
