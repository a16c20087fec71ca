package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad        ErrorType = "LOAD"
	ErrTypeSchema      ErrorType = "SCHEMA"
	ErrTypeCoercion    ErrorType = "COERCION"
	ErrTypeMerge       ErrorType = "MERGE"
	ErrTypeCleaning    ErrorType = "CLEANING"
	ErrTypeAggregation ErrorType = "AGGREGATION"
	ErrTypeRender      ErrorType = "RENDER"
	ErrTypeExport      ErrorType = "EXPORT"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeConfig      ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewLoadError reports a spreadsheet that could not be fetched or read.
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause)
}

// NewSchemaError reports a table whose layout does not match expectations.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewCoercionError reports a cell that could not be converted, naming the
// column and the zero-based data row.
func NewCoercionError(column string, row int, cause error) *AppError {
	return NewAppError(ErrTypeCoercion,
		fmt.Sprintf("cannot convert column %q row %d to integer", column, row), cause).
		WithContext("column", column).
		WithContext("row", row)
}

// NewMergeError creates a merge error
func NewMergeError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMerge, message, cause)
}

// NewCleaningError creates a cleaning error
func NewCleaningError(message string, cause error) *AppError {
	return NewAppError(ErrTypeCleaning, message, cause)
}

// NewAggregationError creates an aggregation error
func NewAggregationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeAggregation, message, cause)
}

// NewRenderError reports a chart that could not be drawn or written.
func NewRenderError(chart string, cause error) *AppError {
	return NewAppError(ErrTypeRender, fmt.Sprintf("failed to render %s", chart), cause).
		WithContext("chart", chart)
}

// NewExportError creates an export error
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or
// the empty string.
func TypeOf(err error) ErrorType {
	for err != nil {
		if app, ok := err.(*AppError); ok {
			return app.Type
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
