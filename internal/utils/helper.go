package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// NewValidator returns a validator with the storefront's custom tags registered
// and field names reported by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}

	return v
}

// PlainText strips markup from s with policy and returns the remaining text
// unescaped and trimmed. The result is plain text, not HTML.
func PlainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// ValidPhone reports whether s only has digits, '+', '-', spaces and parentheses.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func DecodeJSONBody(r *http.Request, dest any) error {

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))

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

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			slog.Warn("User input validation failed",
				slog.String("error", validationErrs.Error()),
			)
			return fmt.Errorf("validation error: %w", validationErrs)
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		return fmt.Errorf("unexpected validation error: %w", err)
	}
	return nil
}

// FieldErrors flattens validator errors into json field name -> message.
func FieldErrors(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))

	for _, err := range errs {
		name := err.Field()

		switch err.Tag() {
		case "required":
			fields[name] = fmt.Sprintf("%s is required", name)
		case "email":
			fields[name] = fmt.Sprintf("%s must be a valid email address", name)
		case "phone":
			fields[name] = fmt.Sprintf("%s may only contain digits, +, -, spaces and parentheses", name)
		case "min":
			fields[name] = fmt.Sprintf("%s must be at least %s", name, err.Param())
		case "max":
			fields[name] = fmt.Sprintf("%s must be at most %s", name, err.Param())
		case "gt":
			fields[name] = fmt.Sprintf("%s must be greater than %s", name, err.Param())
		case "gte":
			fields[name] = fmt.Sprintf("%s must be at least %s", name, err.Param())
		case "oneof":
			fields[name] = fmt.Sprintf("%s must be one of [%s]", name, err.Param())
		case "datetime":
			fields[name] = fmt.Sprintf("%s must use the %s format", name, err.Param())
		default:
			fields[name] = fmt.Sprintf("%s is invalid", name)
		}
	}

	return fields
}
