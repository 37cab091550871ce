package errors

import (
	"errors"
	"net/http"

	"catalog/internal/validation"
)

var (
	// ErrCategoryNotFound is returned when a category id does not resolve.
	ErrCategoryNotFound = errors.New("Category Not Found")
	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("Product Not Found")
	// ErrEmailNotFound is returned at login when no user has the given email.
	ErrEmailNotFound = errors.New("Email not found")
	// ErrIncorrectPassword is returned at login when the password hash does not match.
	ErrIncorrectPassword = errors.New("Incorrect password")
	// ErrInvalidID is returned when an id path segment is not a digit string.
	ErrInvalidID = errors.New("ID must be an integer")
	// ErrCategoryInUse is returned when deleting a category that products still reference.
	ErrCategoryInUse = errors.New("Category is still referenced by products")
)

// ValidationError carries the per-field violations of a rejected input.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + e.Fields.Summary()
}

// NewValidationError wraps field violations in a ValidationError.
func NewValidationError(fields validation.FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Status: true, Message: message, Data: data}
}

// Fail builds a failure envelope with just a message.
func Fail(message string) Response {
	return Response{Status: false, Message: message}
}

// MapToHTTP classifies a workflow error into an HTTP status and envelope.
func MapToHTTP(err error) (int, Response) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, Response{
			Status:  false,
			Message: verr.Error(),
			Errors:  verr.Fields,
		}
	}

	switch {
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, Fail(err.Error())
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest, Fail(err.Error())
	case errors.Is(err, ErrEmailNotFound), errors.Is(err, ErrIncorrectPassword):
		return http.StatusBadRequest, Fail(err.Error())
	case errors.Is(err, ErrCategoryInUse):
		return http.StatusUnprocessableEntity, Fail(err.Error())
	default:
		return http.StatusInternalServerError, Response{
			Status:  false,
			Message: "An unexpected error occurred: " + err.Error(),
			Errors:  err.Error(),
		}
	}
}
