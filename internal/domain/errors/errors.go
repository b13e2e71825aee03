package errors

import (
	"fmt"
	"net/http"

	"polystore/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors carrying the same business code, so WithDetails copies still
// compare equal to the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// ErrUserNotFound is the "fail" marker for NotFound and NoEffect outcomes on users.
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"fail",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"fail",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"account not found",
		"",
	)

	ErrInsufficientBalance = NewBaseError(
		http.StatusUnprocessableEntity,
		"INSUFFICIENT_BALANCE",
		"insufficient balance",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"invalid input",
		"",
	)

	ErrUnsupportedOperation = NewBaseError(
		http.StatusNotImplemented,
		"UNSUPPORTED_OPERATION",
		"operation not supported by the configured backend",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError is a StorageFailure: connectivity, constraint or statement errors
// raised by a backend. It is never downgraded to a not-found or zero-rows outcome.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// IsStorageFailure reports whether err carries a DatabaseExecuteError.
func IsStorageFailure(err error) bool {
	var dbErr *DatabaseExecuteError

	return errors.As(err, &dbErr)
}

// TransactionFaultError reports that a transaction scope was aborted and rolled back.
// Cause is either the error returned inside the scope or the recovered panic value.
type TransactionFaultError struct {
	cause any
	state string
}

// NewTransactionFaultError records the fault that aborted a transaction and the state
// the transaction ended in.
func NewTransactionFaultError(cause any, state string) *TransactionFaultError {
	return &TransactionFaultError{cause: cause, state: state}
}

// Error implements the error interface
func (e *TransactionFaultError) Error() string {
	return fmt.Sprintf("transaction %s: %v", e.state, e.cause)
}

// Unwrap exposes the cause when it is an error.
func (e *TransactionFaultError) Unwrap() error {
	if err, ok := e.cause.(error); ok {
		return err
	}

	return nil
}

// Cause returns the recovered panic value or the failing error.
func (e *TransactionFaultError) Cause() any {
	return e.cause
}

// State returns the terminal transaction state.
func (e *TransactionFaultError) State() string {
	return e.state
}

// HTTPCode returns the HTTP status code
func (e *TransactionFaultError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *TransactionFaultError) ErrorCode() string {
	return "TRANSACTION_FAULT"
}

// Message returns the user-friendly error message
func (e *TransactionFaultError) Message() string {
	return "transaction rolled back"
}

// Details returns detailed error information
func (e *TransactionFaultError) Details() string {
	return fmt.Sprint(e.cause)
}
