// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/store"
)

// ErrJobNotFound indicates no job has the requested ID
type ErrJobNotFound struct {
	ID string
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidApplication carries the per-field errors of a rejected application form
type ErrInvalidApplication struct {
	Fields apply.FieldErrors
}

func (e *ErrInvalidApplication) Error() string {
	return fmt.Sprintf("invalid application: %d field error(s)", len(e.Fields))
}

// ErrCatalogUnavailable indicates the job collection could not be loaded
type ErrCatalogUnavailable struct {
	Message string
}

func (e *ErrCatalogUnavailable) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrJobNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrInvalidApplication:
		return http.StatusUnprocessableEntity
	case *ErrCatalogUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the user-facing message for err.
func publicMessage(err error) string {
	switch e := err.(type) {
	case *ErrJobNotFound:
		return store.NotFoundMessage
	case *ErrValidation:
		return e.Error()
	case *ErrInvalidApplication:
		return "Please correct the highlighted fields"
	case *ErrCatalogUnavailable:
		return e.Message
	default:
		return "Internal server error"
	}
}
