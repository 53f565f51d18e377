package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"

	// Assessment specific errors
	ErrAssessmentNotFound ErrorCode = "ASSESSMENT_NOT_FOUND"
	ErrResultNotFound     ErrorCode = "RESULT_NOT_FOUND"
	ErrInvalidAnswers     ErrorCode = "INVALID_ANSWERS"

	// User specific errors
	ErrUserNotFound  ErrorCode = "USER_NOT_FOUND"
	ErrEmailInUse    ErrorCode = "EMAIL_IN_USE"
	ErrUsernameTaken ErrorCode = "USERNAME_TAKEN"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(ErrForbidden, message, nil)
}

func NewAssessmentNotFoundError(assessmentType string) *DomainError {
	return NewError(ErrAssessmentNotFound, fmt.Sprintf("Assessment not found: %s", assessmentType), nil)
}

func NewResultNotFoundError(resultID string) *DomainError {
	return NewError(ErrResultNotFound, fmt.Sprintf("Result not found with ID: %s", resultID), nil)
}

func NewInvalidAnswersError(message string) *DomainError {
	return NewError(ErrInvalidAnswers, message, nil)
}

func NewUserNotFoundError(userID string) *DomainError {
	return NewError(ErrUserNotFound, fmt.Sprintf("User not found: %s", userID), nil)
}
