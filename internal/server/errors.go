// Package server provides the HTTP REST API for the career insights engine.
package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnknownAnalysis indicates a requested analysis name does not exist
type ErrUnknownAnalysis struct {
	Name string
}

func (e *ErrUnknownAnalysis) Error() string {
	return fmt.Sprintf("unknown analysis: %s", e.Name)
}

// ErrSnapshotUnavailable indicates the upstream statistics service could not
// produce a snapshot
type ErrSnapshotUnavailable struct {
	Cause error
}

func (e *ErrSnapshotUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot unavailable: %v", e.Cause)
	}
	return "snapshot unavailable"
}

func (e *ErrSnapshotUnavailable) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *ErrUnknownAnalysis:
		return http.StatusBadRequest
	case *ErrSnapshotUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
