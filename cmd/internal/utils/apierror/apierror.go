package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the JSON error envelope returned by every route.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *simpleError) Error() string {
	return e.Message
}

func (e *simpleError) Code() int {
	return e.Status
}

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{Status: code, Message: message}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError         = NewSimple(http.StatusNotFound, "Appointment not found")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")
)

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter %q", name))
}

// FromValidationError maps validator field errors onto a 400 listing
// the offending fields.
func FromValidationError(err error) ErrorResponse {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	return NewSimple(http.StatusBadRequest, "Validation failed: "+strings.Join(fields, ", "))
}
