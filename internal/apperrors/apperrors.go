package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error codes. HTTP-shaped codes are used where they map directly;
// economy-specific conditions start at 1000.
const (
	CodeInvalidRequest   = 400
	CodeUnauthorized     = 401
	CodeNotFound         = 404
	CodeInternal         = 500
	CodeStoreUnavailable = 503

	CodeInvalidWager        = 1001
	CodeRateLimited         = 1002
	CodeInsufficientFunds   = 1003
	CodeBonusAlreadyClaimed = 1004
	CodeUnknownGame         = 1005
)

// AppError carries a domain code alongside the message so handlers can map
// outcomes to transport status without string matching.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code int, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// GetCode extracts the domain code from an error chain, defaulting to
// CodeInternal for foreign errors.
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsCode(err error, code int) bool {
	return GetCode(err) == code
}

func IsInsufficientFunds(err error) bool { return IsCode(err, CodeInsufficientFunds) }
func IsRateLimited(err error) bool       { return IsCode(err, CodeRateLimited) }
func IsStoreUnavailable(err error) bool  { return IsCode(err, CodeStoreUnavailable) }

// HTTPStatus maps a domain code to an HTTP status for the gin handlers.
func HTTPStatus(code int) int {
	switch code {
	case CodeInvalidRequest, CodeInvalidWager, CodeInsufficientFunds:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound, CodeUnknownGame:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeBonusAlreadyClaimed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
