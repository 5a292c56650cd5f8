package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Per-document failure taxonomy. Everything here is caught at the document
// boundary; none of these may abort a batch.
var (
	ErrExtractionEmpty    = errors.New("no text obtainable after ocr fallback")
	ErrCapability         = errors.New("capability call failed")
	ErrMalformedReply     = errors.New("reply is not valid json")
	ErrSchemaCoercion     = errors.New("field cannot be coerced to schema type")
	ErrClassificationSkip = errors.New("filename matches no dataset keyword")

	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
