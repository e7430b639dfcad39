package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrUnauthenticated        = errors.New("user not authenticated")
	ErrNotFoundOrUnauthorized = errors.New("transaction not found or unauthorized")
	ErrDataFetch              = errors.New("data fetch failed")

	ErrCategoryNotFound     = NewValidationError("category not found")
	ErrInvalidAmount        = NewValidationError("Amount must be a number greater than zero")
	ErrInvalidType          = NewValidationError("Type must be 'income' or 'expense'")
	ErrDescriptionTooLong   = NewValidationError("Description must be at most 120 characters")
	ErrInvalidDate          = NewValidationError("Transaction date must be in YYYY-MM-DD format")
	ErrMissingCategory      = NewValidationError("Category must be provided")
	ErrMissingTransactionID = NewValidationError("Transaction ID is required")
)

// StorageError marks a failure of the underlying store. It matches
// ErrDataFetch under errors.Is and keeps the driver error for logging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataFetch.Error(), e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrDataFetch, e.Err}
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrDataFetch)
}

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

// Messages returns the individual messages, for response bodies.
func (ve *ValidationErrors) Messages() []string {
	msgs := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		msgs[i] = err.Error()
	}
	return msgs
}

// ErrOrNil returns nil when nothing was collected.
func (ve *ValidationErrors) ErrOrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	ok := errors.As(err, &validationErrors)
	return ok
}
