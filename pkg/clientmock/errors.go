package clientmock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/clientmock/internal/matching"
	"github.com/getmockd/clientmock/pkg/request"
)

// Sentinel errors returned by the collection. Use errors.Is to test for them.
var (
	// ErrNoExpectations is returned when a call arrives at an empty collection.
	ErrNoExpectations = errors.New("no expectations given")

	// ErrNoMatch is returned when no expectation scores above zero.
	ErrNoMatch = errors.New("no matching expectation")

	// ErrInvalidExpectation marks an expectation with a configuration error.
	ErrInvalidExpectation = errors.New("invalid expectation")
)

// NoExpectationsError is returned for a call to an empty collection.
type NoExpectationsError struct {
	Request *request.Request
}

func (e *NoExpectationsError) Error() string {
	return fmt.Sprintf("No mock request builders given for:\n%s\n", e.Request)
}

func (e *NoExpectationsError) Unwrap() error { return ErrNoExpectations }

// NoMatchError is returned when every expectation failed to match. Its
// message lists each expectation with the outcome of every matcher.
type NoMatchError struct {
	Request *request.Request
	Results []Result
}

func (e *NoMatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "No matching mock request builder found for:\n%s\n", e.Request)
	b.WriteString("\nMock request builders:\n")
	for i, r := range e.Results {
		matching.WriteBreakdown(&b, i+1, r)
	}
	return b.String()
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// NoResponseError decorates an exhausted or empty response queue with the
// expectation that was resolved.
type NoResponseError struct {
	Err         error
	Expectation string
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("%s for:\n%s\n", e.Err, e.Expectation)
}

func (e *NoResponseError) Unwrap() error { return e.Err }

// AddResponseError decorates a response mode conflict with the expectation
// it was configured on.
type AddResponseError struct {
	Err         error
	Expectation string
}

func (e *AddResponseError) Error() string {
	return fmt.Sprintf("%s for:\n%s\n", e.Err, e.Expectation)
}

func (e *AddResponseError) Unwrap() error { return e.Err }

// isEngineError reports whether err was produced by the mock itself rather
// than by a user assertion or a configured WillThrow error.
func isEngineError(err error) bool {
	var noResponse *NoResponseError
	return errors.Is(err, ErrNoExpectations) ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrInvalidExpectation) ||
		errors.Is(err, request.ErrUnprocessableBody) ||
		errors.Is(err, request.ErrMalformedHeader) ||
		errors.As(err, &noResponse)
}
