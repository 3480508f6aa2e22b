package apperror

import "fmt"

type AppError struct {
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // User-friendly message
	HTTPStatus int    // HTTP status code
	Err        error  // Wrapped original error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithReason copies a sentinel and replaces its message with reason.
// errors.Is(result, sentinel) still holds.
func WithReason(sentinel *AppError, reason string) *AppError {
	if reason == "" {
		return sentinel
	}
	return &AppError{
		Code:       sentinel.Code,
		Message:    reason,
		HTTPStatus: sentinel.HTTPStatus,
		Err:        sentinel,
	}
}
