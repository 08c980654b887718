package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/go-playground/validator/v10"
)

// ErrorEnvelope is the wire format for every failed request:
// {"error": {"code": ..., "message": ..., "details"?: ...}}.
type ErrorEnvelope struct {
	Error *ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	WriteJson(w, statusCode, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var body *ErrorBody

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		body = &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			body.Details = []string{appErr.Detail}
		}

	} else {

		// Never leak internal detail; the cause is logged server-side.
		statusCode = http.StatusInternalServerError
		body = &ErrorBody{
			Code:    errors.ErrCodeServerError,
			Message: "An unexpected error occurred",
		}

	}

	WriteJson(w, statusCode, ErrorEnvelope{Error: body})
}

// ValidationError renders the per-field message list for validator failures.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	var errMsgs []string

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s characters", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "strongpassword":
			message = fmt.Sprintf("Field %s must be at least 8 characters with upper, lower, digit and symbol", err.Field())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)

	}

	WriteJson(w, http.StatusBadRequest, ErrorEnvelope{Error: &ErrorBody{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: errMsgs,
	}})
}
