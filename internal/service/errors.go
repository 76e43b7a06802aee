package service

import (
	"errors"
	"fmt"

	"github.com/selector-project/selector-manager/internal/store"
	"github.com/selector-project/selector-manager/internal/store/model"
	"gorm.io/gorm"
)

// ErrorType represents the type of service error
type ErrorType string

const (
	ErrorTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeAlreadyExists   ErrorType = "ALREADY_EXISTS"
	ErrorTypeInternal        ErrorType = "INTERNAL"
)

// ServiceError represents a structured error from the service layer
type ServiceError struct {
	Type    ErrorType
	Message string
	Detail  string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func processSelectorStoreError(err error, dbSelector model.Selector, operation string) *ServiceError {
	// Check for duplicate ID error first
	if errors.Is(err, store.ErrSelectorIDTaken) {
		return NewSelectorAlreadyExistsError(dbSelector.ID)
	}
	if errors.Is(err, store.ErrDisplayNameTaken) {
		return NewSelectorDisplayNameTakenError(dbSelector.DisplayName)
	}
	if errors.Is(err, store.ErrSelectorNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return NewSelectorNotFoundError(dbSelector.ID)
	}
	return NewInternalError(fmt.Sprintf("Failed to %s selector", operation), err.Error(), err)
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message, detail string) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeInvalidArgument,
		Message: message,
		Detail:  detail,
	}
}

// NewInvalidSelectorError wraps an engine parse or validation failure.
// The engine error text carries the offending token and position.
func NewInvalidSelectorError(field string, err error) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf("Invalid %s", field),
		Detail:  err.Error(),
		Err:     err,
	}
}

func NewSelectorNotFoundError(selectorID string) *ServiceError {
	return NewNotFoundError("Selector not found", fmt.Sprintf("Selector with ID '%s' does not exist", selectorID))
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message, detail string) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Detail:  detail,
	}
}

func NewSelectorAlreadyExistsError(selectorID string) *ServiceError {
	return NewAlreadyExistsError("Selector already exists", fmt.Sprintf("A selector with ID '%s' already exists", selectorID))
}

func NewSelectorDisplayNameTakenError(displayName string) *ServiceError {
	return NewAlreadyExistsError(
		"Selector display name already exists",
		fmt.Sprintf("A selector with display name '%s' already exists", displayName),
	)
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(message, detail string) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeAlreadyExists,
		Message: message,
		Detail:  detail,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message, detail string, err error) *ServiceError {
	return &ServiceError{
		Type:    ErrorTypeInternal,
		Message: message,
		Detail:  detail,
		Err:     err,
	}
}
