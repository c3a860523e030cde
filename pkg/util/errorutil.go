package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidRequest(message string) error {
	return NewDomainError("INVALID_REQUEST", message, http.StatusBadRequest, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, nil)
}

func NewPayloadTooLarge(message string) error {
	return NewDomainError("PAYLOAD_TOO_LARGE", message, http.StatusRequestEntityTooLarge, nil)
}

func NewTooManyRequests(message string) error {
	return NewDomainError("TOO_MANY_REQUESTS", message, http.StatusTooManyRequests, nil)
}

// NewConfigurationError reports absent server-side settings. The missing key
// names are exposed to callers; values never are.
func NewConfigurationError(missing []string) error {
	return NewDomainError("CONFIGURATION_ERROR", "Server configuration error",
		http.StatusInternalServerError, map[string]any{"missing": missing})
}

// NewUpstreamError maps a backing-service failure onto the gateway contract.
// Upstream 5xx is always normalized to 502; other statuses pass through with
// the original status recorded in the details.
func NewUpstreamError(upstreamStatus int) error {
	status := upstreamStatus
	if upstreamStatus >= 500 {
		status = http.StatusBadGateway
	}
	return NewDomainError("UPSTREAM_ERROR", "Upstream error", status,
		map[string]any{"status": upstreamStatus})
}

// NewUpstreamUnreachable covers transport-level failures (DNS, refused
// connection, timeout) where no upstream status exists.
func NewUpstreamUnreachable(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_ERROR",
		Message:    "Upstream error",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
