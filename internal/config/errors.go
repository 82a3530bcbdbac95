package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownOption indicates the option name doesn't exist.
	ErrUnknownOption = errors.New("unknown option")

	// ErrTypeMismatch indicates the value type doesn't match the option type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrClosed indicates the configuration was closed.
	ErrClosed = errors.New("config closed")
)

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeUnknownOption indicates an unrecognized option name.
	ErrCodeUnknownOption ValidationErrorCode = iota
	// ErrCodeTypeMismatch indicates the value type is wrong.
	ErrCodeTypeMismatch
	// ErrCodeInvalidEnum indicates the value is not in the allowed set.
	ErrCodeInvalidEnum
)

// String returns a human-readable name for the error code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeUnknownOption:
		return "unknown_option"
	case ErrCodeTypeMismatch:
		return "type_mismatch"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	default:
		return "unknown"
	}
}

// ValidationError describes a validation failure for an option.
type ValidationError struct {
	// Name is the option that failed validation.
	Name string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Code categorizes the validation error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("option %s: %s (value: %v)", e.Name, e.Message, e.Value)
}

// Is matches ErrValidationFailed and the sentinel of the error code.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidationFailed:
		return true
	case ErrUnknownOption:
		return e.Code == ErrCodeUnknownOption
	case ErrTypeMismatch:
		return e.Code == ErrCodeTypeMismatch
	}
	return false
}
