package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	errInternalServer = "Internal server error"
	errTaskNotFound   = "Task not found"
	errInvalidTaskID  = "Invalid task ID"
	errDuplicateUser  = "User already exists"
	errBadCredentials = "Invalid credentials"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindingErrors flattens a gin binding failure into per-field messages.
// Validator failures report every violated field at once rather than
// stopping at the first.
func bindingErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return out
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return []fieldError{{Field: ute.Field, Message: "must be of type " + ute.Type.String()}}
	}

	// Unparseable body, wrong content type, bad timestamp literal, etc.
	return []fieldError{{Field: "body", Message: "must be valid JSON"}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters long"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters long"
		}
		return "must be at most " + fe.Param()
	default:
		return "failed validation on " + strings.ToLower(fe.Tag())
	}
}
