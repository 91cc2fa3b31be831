package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Error kinds surfaced by the REST and gRPC clients. Every typed error below
// unwraps to exactly one of these, so callers can branch with errors.Is.
var (
	// ErrConfig is returned when the client is constructed with invalid or
	// ambiguous connection parameters. It is never retryable.
	ErrConfig = errors.New("qdrant: invalid client configuration")

	// ErrTimeout is returned when the client's own timeout cancelled a call.
	ErrTimeout = errors.New("qdrant: request timed out")

	// ErrUnexpectedResponse is returned when the server answered with a
	// status the client does not accept as success.
	ErrUnexpectedResponse = errors.New("qdrant: unexpected response")

	// ErrResourceExhausted is returned when the server rate limited the call.
	ErrResourceExhausted = errors.New("qdrant: resource exhausted")

	// ErrNotImplemented is returned by methods the client does not implement.
	ErrNotImplemented = errors.New("qdrant: not implemented")

	// ErrEmptyResult is returned when a successful call carried no result
	// although the operation guarantees one.
	ErrEmptyResult = errors.New("qdrant: unexpectedly empty result")

	// ErrProtocolMismatch is returned when a server response cannot be
	// interpreted, e.g. a non-numeric retry-after value.
	ErrProtocolMismatch = errors.New("qdrant: protocol mismatch")
)

// maxBodyExcerpt is the maximum rendered length of a response body attached
// to an UnexpectedResponseError, ellipsis included.
const maxBodyExcerpt = 200

const ellipsis = "..."

// ConfigError describes why the connection parameters were rejected.
type ConfigError struct {
	Reason string
}

func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return ErrConfig.Error() + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// TimeoutError is returned when the configured client timeout fired before the
// call completed. Err holds the transport level error produced by the
// cancellation.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %s: %v", ErrTimeout.Error(), e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTimeout}
	}
	return []error{ErrTimeout, e.Err}
}

// UnexpectedResponseError carries the status, reason phrase and a truncated
// rendering of the body of a response that did not pass validation.
type UnexpectedResponseError struct {
	StatusCode int
	Reason     string
	Body       string
}

// NewUnexpectedResponseError builds an UnexpectedResponseError. JSON bodies are
// compacted before rendering and the result is cut to at most 200 characters.
func NewUnexpectedResponseError(statusCode int, reason string, body []byte) *UnexpectedResponseError {
	return &UnexpectedResponseError{
		StatusCode: statusCode,
		Reason:     reason,
		Body:       renderBody(body),
	}
}

func (e *UnexpectedResponseError) Error() string {
	msg := fmt.Sprintf("%s: %d (%s)", ErrUnexpectedResponse.Error(), e.StatusCode, e.Reason)
	if e.Body != "" {
		msg += "\nraw response content:\n" + e.Body
	}
	return msg
}

func (e *UnexpectedResponseError) Unwrap() error { return ErrUnexpectedResponse }

// ResourceExhaustedError is returned when the server rate limited a call.
// RetryAfter is the server's hint; the client never retries on its own.
type ResourceExhaustedError struct {
	Message    string
	RetryAfter time.Duration
}

// NewResourceExhaustedError parses the server supplied retry-after value
// (seconds). A non-numeric value is a protocol violation and is reported as an
// error wrapping ErrProtocolMismatch instead of a ResourceExhaustedError.
func NewResourceExhaustedError(message, retryAfter string) (*ResourceExhaustedError, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(retryAfter), 64)
	if err != nil || seconds < 0 {
		return nil, fmt.Errorf("%w: retry-after value %q is not a valid number of seconds", ErrProtocolMismatch, retryAfter)
	}
	return &ResourceExhaustedError{
		Message:    message,
		RetryAfter: time.Duration(seconds * float64(time.Second)),
	}, nil
}

func (e *ResourceExhaustedError) Error() string {
	msg := fmt.Sprintf("%s, retry after %s", ErrResourceExhausted.Error(), e.RetryAfter)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ResourceExhaustedError) Unwrap() error { return ErrResourceExhausted }

// NotImplementedError is returned by client methods that exist in the surface
// but are not implemented.
type NotImplementedError struct {
	Method string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotImplemented.Error(), e.Method)
}

func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }

// EmptyResultError signals a library bug or a server/client mismatch: the call
// succeeded but the result the operation guarantees was missing.
type EmptyResultError struct {
	Operation string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s for operation %q", ErrEmptyResult.Error(), e.Operation)
}

func (e *EmptyResultError) Unwrap() error { return ErrEmptyResult }

// IsConfigError checks if the error is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsTimeoutError checks if the error was caused by the client timeout.
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsUnexpectedResponseError checks if the error is a rejected server response.
func IsUnexpectedResponseError(err error) bool {
	return errors.Is(err, ErrUnexpectedResponse)
}

// IsResourceExhaustedError checks if the server rate limited the call.
func IsResourceExhaustedError(err error) bool {
	return errors.Is(err, ErrResourceExhausted)
}

// IsNotImplementedError checks if the called method is not implemented.
func IsNotImplementedError(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsEmptyResultError checks if a call returned an unexpectedly empty result.
func IsEmptyResultError(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// renderBody turns a response body into a short single-string excerpt.
func renderBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	text := string(body)
	var compacted bytes.Buffer
	if json.Valid(body) && json.Compact(&compacted, body) == nil {
		text = compacted.String()
	}

	if utf8.RuneCountInString(text) <= maxBodyExcerpt {
		return text
	}

	runes := []rune(text)
	return string(runes[:maxBodyExcerpt-len(ellipsis)]) + ellipsis
}
