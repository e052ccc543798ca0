package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// errMalformedRequest marks request bodies that are not valid JSON.
var errMalformedRequest = errors.New("malformed request")

// mapErrorToStatusCode maps handler errors to HTTP status codes.
func mapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrUnexpectedAction):
		return http.StatusConflict
	case errors.Is(err, errMalformedRequest), errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// safeErrorMessage returns a message that can be shown to the page without
// leaking internal details.
func safeErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, ErrUnexpectedAction):
		return "The drill is not waiting for this action"
	case errors.Is(err, errMalformedRequest):
		return "Invalid request format"
	case errors.As(err, &verrs):
		return sanitizeValidationError(verrs)
	default:
		return "An unexpected error occurred"
	}
}

// sanitizeValidationError reports the first failing field by its JSON-ish
// name without echoing the submitted value.
func sanitizeValidationError(verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
