// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"

	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any           `json:"data,omitempty"`
	Meta  *pagepkg.Meta `json:"meta,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Page wraps a listing together with its page meta.
func Page(data any, meta pagepkg.Meta) Response {
	return Response{Data: data, Meta: &meta}
}

// BindError converts a request binding error into a response.
//
// Validation failures are reported for the first failed field only.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return Response{Error: ve[0].Field() + GetErrorMsg(ve[0])}
	}

	return Error(err)
}

// GetErrorMsg returns human readable suffix for the failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "email":
		return " must be a valid email"
	case "min":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "category_type":
		return " must be INCOME or EXPENSE"
	}

	return " is invalid"
}
