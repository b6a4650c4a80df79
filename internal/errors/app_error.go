package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
	// Fields maps an input field to a user-facing message.
	Fields map[string]string
	// Meta carries a structured payload for the client, e.g. stock adjustments.
	Meta any
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithFields(fields map[string]string) *AppError {
	e.Fields = fields

	return e
}

func (e *AppError) WithMeta(meta any) *AppError {
	e.Meta = meta

	return e
}

const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeThirdPartyError     = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeStockChanged        = "STOCK_CHANGED"
	ErrCodeLocationUnavailable = "LOCATION_UNAVAILABLE"
	ErrCodePersistenceFailed   = "PERSISTENCE_FAILED"
	ErrCodeRemoteUnavailable   = "REMOTE_UNAVAILABLE"
	ErrCodeOutOfStock          = "OUT_OF_STOCK"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

// ValidationFailed reports every invalid field at once; nothing was submitted.
func ValidationFailed(fields map[string]string) *AppError {
	return NewAppError(ErrCodeValidationFailed, "Validation failed", http.StatusBadRequest).WithFields(fields)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

// StockChanged is returned when selected quantities exceeded live stock at
// submit time. The cart has already been corrected; meta holds the adjustments.
func StockChanged(adjustments any) *AppError {
	return NewAppError(ErrCodeStockChanged, "Stock changed, please review your cart and submit again", http.StatusConflict).WithMeta(adjustments)
}

func LocationUnavailable(message string) *AppError {
	return NewAppError(ErrCodeLocationUnavailable, message, http.StatusUnprocessableEntity)
}

func PersistenceFailed(message string) *AppError {
	return NewAppError(ErrCodePersistenceFailed, message, http.StatusInternalServerError)
}

func RemoteUnavailable(message string) *AppError {
	return NewAppError(ErrCodeRemoteUnavailable, message, http.StatusServiceUnavailable)
}

func OutOfStockError(message string) *AppError {
	return NewAppError(ErrCodeOutOfStock, message, http.StatusConflict)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
