package extractor

import (
	"errors"
)

// Common sentinel errors for extraction operations.
// These errors support error wrapping and can be checked using errors.Is().
var (
	// ErrParse indicates the document bytes could not be parsed as JSON.
	// It is data-dependent and recoverable at the row level: callers
	// evaluating many documents should treat it as "no result for this
	// document" rather than aborting the batch.
	ErrParse = errors.New("extractor: malformed document")

	// ErrNotFound indicates a query selected no node at all.
	// Use IsNotFound() for convenient checking.
	ErrNotFound = errors.New("extractor: not found")

	// ErrStop is returned by a Consumer to end the walk early.
	// Extract treats it as success; matches already delivered stand.
	ErrStop = errors.New("extractor: stop walk")
)

// IsNotFound checks if an error indicates that no node matched the query.
// Returns true for ErrNotFound and any error that wraps it.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
