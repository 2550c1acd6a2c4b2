package models

import (
	"errors"
	"fmt"
)

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

// Predefined error codes for failures surfaced by the client.
const (
	// Local validation, detected before any request is sent
	ErrorCodeInvalidParameters ErrorCode = "invalid_parameters"
	ErrorCodeMissingParameters ErrorCode = "missing_parameters"

	// Remote failures
	ErrorCodeBadResponse ErrorCode = "bad_response" // 4xx, or malformed body on a 2xx
	ErrorCodeServerError ErrorCode = "server_error" // 5xx
	ErrorCodeTransport   ErrorCode = "transport_error"

	// Session state
	ErrorCodeNotAuthenticated ErrorCode = "not_authenticated"
)

// APIError carries enough context (status code, endpoint, raw body) for the
// caller to log the failure and decide whether to retry. The library itself
// never retries.
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Endpoint   string    `json:"endpoint,omitempty"`
	StatusCode int       `json:"-"`
	Body       string    `json:"-"`
}

// Error makes APIError implement the error interface.
func (e APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %s (status %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAPIError is a constructor for APIError.
func NewAPIError(code ErrorCode, message string, statusCode int) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
