package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-scorer/internal/extract"
	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/pipeline"
)

// ValidationError indicates request validation failure
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// validationError converts validator field errors into a ValidationError naming the first field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag()), Cause: err}
	}
	return &ValidationError{Field: "request", Message: err.Error(), Cause: err}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ValidationError
		unsupportedErr *extract.UnsupportedFormatError
		missingErr     *pipeline.MissingInputError
		tooLargeErr    *http.MaxBytesError
		jobFetchErr    *pipeline.JobFetchError
		fetchErr       *fetch.Error
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unsupportedErr), errors.As(err, &missingErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &jobFetchErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
