// Package errors defines the AppError returned by handlers and rendered by
// middleware.ErrorHandler.
package errors

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
)

type ErrorType string

const (
	ValidationError         ErrorType = "VALIDATION_ERROR"
	NotFoundError           ErrorType = "NOT_FOUND"
	DatabaseError           ErrorType = "DATABASE_ERROR"
	ServerError             ErrorType = "SERVER_ERROR"
	RateLimitError          ErrorType = "RATE_LIMIT_EXCEEDED"
	GenerationFailedError   ErrorType = "GENERATION_FAILED"
	ServiceUnavailableError ErrorType = "SERVICE_UNAVAILABLE"
)

// Unlisted types answer 500.
var statusByType = map[ErrorType]int{
	ValidationError:         http.StatusBadRequest,
	NotFoundError:           http.StatusNotFound,
	RateLimitError:          http.StatusTooManyRequests,
	GenerationFailedError:   http.StatusBadGateway,
	ServiceUnavailableError: http.StatusServiceUnavailable,
}

// AppError is an error with everything needed to answer an HTTP request.
// Code is type specific: RATE_LIMIT_EXCEEDED carries the retry delay there.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error { return e.Raw }

// GetHTTPStatus returns the status to answer with, defaulting by type.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return statusFor(e.Type)
}

func statusFor(t ErrorType) int {
	if s, ok := statusByType[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: statusFor(errType),
	}
}

// Wrap keeps err as the cause and its text as the detail. A nil err stays nil.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	e := New(errType, message, err.Error())
	e.Raw = err
	return e
}

func NotFound(entity string, id interface{}) *AppError {
	return New(NotFoundError, entity+" not found", fmt.Sprintf("ID: %v", id))
}

func ValidationFailed(message string, details string) *AppError {
	return New(ValidationError, message, details)
}

// NewDatabaseError logs the driver error and hides it from the client.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	e := New(DatabaseError, "Database operation failed", "Please try again later")
	e.Raw = err
	return e
}

func InternalServerError(message string) *AppError {
	return New(ServerError, message, "")
}

func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	e := New(RateLimitError, message, "")
	e.Code = strconv.Itoa(retryAfterSeconds)
	return e
}

// GenerationFailed reports a failed itinerary generation. Model output varies
// between attempts, so the message invites a retry.
func GenerationFailed(err error) *AppError {
	return Wrap(err, GenerationFailedError, "Itinerary generation failed, please try again")
}

func ServiceUnavailable(message string, detail string) *AppError {
	return New(ServiceUnavailableError, message, detail)
}
