package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ErrorKind classifies a domain error for the caller.
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindValidation  ErrorKind = "validation"
	KindTransaction ErrorKind = "transaction"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeGuestNotFound      = "GUEST_NOT_FOUND"
	ErrCodeTableNotFound      = "TABLE_NOT_FOUND"
	ErrCodeDishNotFound       = "DISH_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeNoTable            = "NO_TABLE"
	ErrCodeTableHidden        = "TABLE_HIDDEN"
	ErrCodeDishUnavailable    = "DISH_UNAVAILABLE"
	ErrCodeDishHidden         = "DISH_HIDDEN"
	ErrCodeNothingToPay       = "NOTHING_TO_PAY"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidTransition  = "INVALID_STATUS_TRANSITION"
	ErrCodeOrderFinalized     = "ORDER_FINALIZED"
	ErrCodeInvalidSort        = "INVALID_SORT"
	ErrCodeInvalidDateRange   = "INVALID_DATE_RANGE"
	ErrCodeInvalidFilter      = "INVALID_FILTER"
	ErrCodeTransactionAborted = "TRANSACTION_ABORTED"
)

// DomainError is a business error carrying the kind and code surfaced to
// callers.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code, so errors built with a
// specific message still compare equal to the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with the given code.
func NewValidationError(code, format string, args ...any) *DomainError {
	return NewDomainError(KindValidation, code, fmt.Sprintf(format, args...))
}

// NewTransactionError wraps a store failure that aborted a transaction.
func NewTransactionError(cause error) *DomainError {
	return &DomainError{
		Kind:    KindTransaction,
		Code:    ErrCodeTransactionAborted,
		Message: "transaction aborted",
		Cause:   cause,
	}
}

// Common domain errors
var (
	ErrGuestNotFound     = NewDomainError(KindNotFound, ErrCodeGuestNotFound, "Guest not found")
	ErrTableNotFound     = NewDomainError(KindNotFound, ErrCodeTableNotFound, "Table not found")
	ErrDishNotFound      = NewDomainError(KindNotFound, ErrCodeDishNotFound, "Dish not found")
	ErrOrderNotFound     = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrNoTable           = NewDomainError(KindValidation, ErrCodeNoTable, "This guest does not have a table")
	ErrTableHidden       = NewDomainError(KindValidation, ErrCodeTableHidden, "This table is hidden")
	ErrDishUnavailable   = NewDomainError(KindValidation, ErrCodeDishUnavailable, "This dish is unavailable")
	ErrDishHidden        = NewDomainError(KindValidation, ErrCodeDishHidden, "This dish is hidden")
	ErrNothingToPay      = NewDomainError(KindValidation, ErrCodeNothingToPay, "There are no orders to pay")
	ErrInvalidQuantity   = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidStatus     = NewDomainError(KindValidation, ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidTransition = NewDomainError(KindValidation, ErrCodeInvalidTransition, "Order status transition is not allowed")
	ErrOrderFinalized    = NewDomainError(KindValidation, ErrCodeOrderFinalized, "Order is already paid or rejected")
	ErrInvalidSort       = NewDomainError(KindValidation, ErrCodeInvalidSort, "Unsupported sort key or order")
	ErrInvalidDateRange  = NewDomainError(KindValidation, ErrCodeInvalidDateRange, "fromDate must not be after toDate")
)

// DishNotOrderableError names the dish that blocks an order.
func DishNotOrderableError(dish *Dish) *DomainError {
	if dish.Status == DishStatusHidden {
		return NewValidationError(ErrCodeDishHidden, "Dish %q (id %d) is hidden", dish.Name, dish.ID)
	}
	return NewValidationError(ErrCodeDishUnavailable, "Dish %q (id %d) is unavailable", dish.Name, dish.ID)
}
