package shared

import (
	"errors"
	"fmt"
)

// Error codes used across bounded contexts
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConflict          = "CONFLICT"
	CodeInvalidState      = "INVALID_STATE"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Cause is the underlying storage or transport failure, never exposed to clients
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code,
// so errors.Is(err, ErrNotFound) matches any not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidation        = NewDomainError(CodeValidation, "Validation failed")
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrInsufficientStock = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrConflict          = NewDomainError(CodeConflict, "Resource was modified by another process")
	ErrInvalidState      = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInternal          = NewDomainError(CodeInternal, "Internal error")
)

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports that an entity referenced by ref does not exist
func NewNotFoundError(entity string, ref any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found: %v", entity, ref))
}

// InsufficientStockError carries the product that could not cover a requested quantity
type InsufficientStockError struct {
	ProductID   uint64
	ProductName string
	Available   int64
	Requested   int64
}

// NewInsufficientStockError creates an INSUFFICIENT_STOCK domain error naming the product
func NewInsufficientStockError(productID uint64, productName string, available, requested int64) *DomainError {
	detail := &InsufficientStockError{
		ProductID:   productID,
		ProductName: productName,
		Available:   available,
		Requested:   requested,
	}
	return &DomainError{
		Code: CodeInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for product %q: available %d, requested %d",
			productName, available, requested),
		Cause: detail,
	}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d (%s): available %d, requested %d", e.ProductID, e.ProductName, e.Available, e.Requested)
}

// NewConflictError creates a CONFLICT domain error
func NewConflictError(message string, cause error) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message, Cause: cause}
}

// NewInvalidStateError creates an INVALID_STATE domain error
func NewInvalidStateError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidState, fmt.Sprintf(format, args...))
}

// NewInternalError wraps a storage or transport failure
func NewInternalError(message string, cause error) *DomainError {
	return &DomainError{Code: CodeInternal, Message: message, Cause: cause}
}

// AsDomainError returns err as a DomainError, wrapping unknown errors as INTERNAL_ERROR
func AsDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return NewInternalError("Internal error", err)
}
