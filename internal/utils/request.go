package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"unicode"

	appErrors "github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

func DecodeJSONBody(r *http.Request, dest any) error {

	body, err := io.ReadAll(r.Body)

	if err != nil {
		slog.Error("Failed to read request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		slog.Warn("Empty request body", slog.String("endpoint", r.URL.Path))
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Warn("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ParseAndValidate decodes the body into dest and runs struct validation,
// writing the error response itself. Returns false when the request was
// already answered.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.ValidationError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := validate.Struct(dest); err != nil {

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			slog.Warn("Validation failed", slog.String("error", validationErrs.Error()))
			response.ValidationError(w, validationErrs)
			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.Error(w, appErrors.InternalError("Unexpected validation error").WithError(err))
		return false
	}

	return true
}

// ParseInt64Path reads an integer path parameter.
func ParseInt64Path(r *http.Request, name string) (int64, error) {

	raw := r.PathValue(name)
	if raw == "" {
		return 0, appErrors.ValidationError(fmt.Sprintf("Missing path parameter '%s'", name))
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.ValidationError(fmt.Sprintf("Invalid '%s': must be a positive integer", name))
	}

	return id, nil
}

// NewValidator builds the shared validator with the strongpassword rule:
// at least 8 characters including upper, lower, digit and symbol.
func NewValidator() *validator.Validate {

	validate := validator.New()

	_ = validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()

		if len(password) < 8 {
			return false
		}

		var hasUpper, hasLower, hasDigit, hasSymbol bool

		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				hasSymbol = true
			}
		}

		return hasUpper && hasLower && hasDigit && hasSymbol
	})

	return validate
}
