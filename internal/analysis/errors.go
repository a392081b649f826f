// Package analysis implements the career-insights analysis engine: nine pure,
// stateless computations over a single survey snapshot, producing composite
// scoring, trend forecasts, income projections, risk grading, education ROI,
// competitiveness ranking, and quadrant placement.
package analysis

import "fmt"

// InsufficientDataError reports a failed minimum-data precondition, such as a
// time series that is too short or a missing snapshot section.
type InsufficientDataError struct {
	Message string
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// DomainError reports an input value outside the valid domain of an analysis,
// such as a non-positive income anchor for the logarithmic projection.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func insufficientData(format string, args ...any) error {
	return &InsufficientDataError{Message: fmt.Sprintf(format, args...)}
}
