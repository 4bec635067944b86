package errors

import (
	"fmt"
)

// ParseError represents a failure to decode a document such as a SOAP reply,
// an env file or a requests file.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures run option validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ServerError reports an HTTP status >= 400 returned by a status service.
type ServerError struct {
	RequestID  string
	StatusCode int
}

// NewServerError constructs a ServerError.
func NewServerError(requestID string, statusCode int) error {
	return &ServerError{RequestID: requestID, StatusCode: statusCode}
}

func (e *ServerError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("server error for request %s: status %d", e.RequestID, e.StatusCode)
}

// TransportError represents a network or body read failure for one request.
type TransportError struct {
	RequestID string
	Op        string
	Err       error
}

// NewTransportError constructs a TransportError for the given operation.
func NewTransportError(requestID, op string, err error) error {
	return &TransportError{RequestID: requestID, Op: op, Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.RequestID != "" {
		return fmt.Sprintf("transport error on request %s: %s: %v", e.RequestID, e.Op, e.Err)
	}
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DownloadAbortError explains why a report download was skipped.
type DownloadAbortError struct {
	RequestID string
	Reason    string
}

// NewDownloadAbortError constructs a DownloadAbortError.
func NewDownloadAbortError(requestID, reason string) error {
	return &DownloadAbortError{RequestID: requestID, Reason: reason}
}

func (e *DownloadAbortError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("Download aborted for requestId %s: %s", e.RequestID, e.Reason)
}
