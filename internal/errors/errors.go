package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewIndexError creates an error for a position outside the bounds of a task list.
// It usually means the caller held on to an index across a re-sort.
func NewIndexError(list string, index int, length int) *AppError {
	return &AppError{
		Type:    ErrorTypeIndex,
		Message: fmt.Sprintf("index %d out of range for %s list of %d tasks", index, list, length),
		Code:    "INDEX_OUT_OF_RANGE",
		Context: map[string]interface{}{
			"list":   list,
			"index":  index,
			"length": length,
		},
	}
}

// NewPersistenceReadError creates an error for a save file that could not be read or decoded
func NewPersistenceReadError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistenceRead,
		Message: fmt.Sprintf("could not read saved tasks from %s", path),
		Code:    "PERSISTENCE_READ_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewPersistenceWriteError creates an error for a save that did not reach disk
func NewPersistenceWriteError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistenceWrite,
		Message: fmt.Sprintf("could not save tasks to %s", path),
		Code:    "PERSISTENCE_WRITE_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewImportError creates an error for an import source that could not be opened or read
func NewImportError(source string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeImport,
		Message: fmt.Sprintf("could not import %s", source),
		Code:    "IMPORT_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"source": source,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeIndex:
			return "That task is no longer at the selected position. Please refresh and try again."
		case ErrorTypePersistenceRead:
			return appErr.Message + "; starting with an empty task list"
		case ErrorTypePersistenceWrite:
			return appErr.Message + "; your latest change is not saved to disk yet"
		case ErrorTypeImport:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
