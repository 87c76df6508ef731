package common

import (
	"fmt"
	"strings"
)

// Stable error category strings returned in API responses. Callers branch
// on these, so they must never change.
const (
	CategoryConfiguration = "configuration error"
	CategoryDelivery      = "delivery error"
)

// CodeUnknown is used when a transport failure carries no provider code.
const CodeUnknown = "unknown"

// ValidationError indicates a payload missing one or more required fields.
// MissingFields always lists every missing field, not just the first.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "incomplete payload: missing " + strings.Join(e.MissingFields, ", ")
}

// NewValidationError creates a new ValidationError.
func NewValidationError(missingFields []string) *ValidationError {
	return &ValidationError{MissingFields: missingFields}
}

// UnauthorizedError indicates missing or invalid caller credentials.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// NewUnauthorizedError creates a new UnauthorizedError.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// ConfigError indicates the transport could not be resolved or verified:
// absent credentials, unreachable host, failed AUTH, misconfigured TLS.
// Operator-actionable; retrying without a configuration change cannot succeed.
type ConfigError struct {
	Code   string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s (code %s): %s", CategoryConfiguration, e.Code, e.Detail)
}

// NewConfigError creates a new ConfigError. An empty code becomes CodeUnknown.
func NewConfigError(code, detail string) *ConfigError {
	if code == "" {
		code = CodeUnknown
	}
	return &ConfigError{Code: code, Detail: detail}
}

// DeliveryError indicates the transport verified but message submission
// failed. Potentially transient; safe for the caller to retry the dispatch.
type DeliveryError struct {
	Code   string
	Detail string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s (code %s): %s", CategoryDelivery, e.Code, e.Detail)
}

// NewDeliveryError creates a new DeliveryError. An empty code becomes CodeUnknown.
func NewDeliveryError(code, detail string) *DeliveryError {
	if code == "" {
		code = CodeUnknown
	}
	return &DeliveryError{Code: code, Detail: detail}
}
