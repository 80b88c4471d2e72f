package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidFeedName = NewDomainError(ErrCodeValidation, "invalid feed name")
	ErrBlankQuestion   = NewDomainError(ErrCodeValidation, "missing question")
)

// Not found errors
var (
	ErrFeedNotFound = NewDomainError(ErrCodeNotFound, "no document found for feed")
)

// Authorization errors
var (
	ErrInvalidAdminToken = NewDomainError(ErrCodeUnauthorized, "invalid admin token")
	ErrNoAdminToken      = NewDomainError(ErrCodeUnauthorized, "admin token not configured")
)

// Upstream errors
var (
	ErrGenerativeUnavailable = NewDomainError(ErrCodeUpstream, "generative backend unavailable")
	ErrSocialUnavailable     = NewDomainError(ErrCodeUpstream, "social media API unavailable")
)
