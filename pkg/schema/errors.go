package schema

import "fmt"

// Error codes for structured error reporting.
const (
	ErrCodeMarkerSyntax       = "MARKER_SYNTAX"
	ErrCodeUnknownDirective   = "UNKNOWN_DIRECTIVE"
	ErrCodeUnboundVariable    = "UNBOUND_VARIABLE"
	ErrCodeFunctionNotFound   = "FUNCTION_NOT_FOUND"
	ErrCodeArgumentArity      = "ARGUMENT_ARITY"
	ErrCodeTypeCoercion       = "TYPE_COERCION"
	ErrCodeInvalidRepeatCount = "INVALID_REPEAT_COUNT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeLoad               = "LOAD_ERROR"
	ErrCodeQuery              = "QUERY_ERROR"
)

// MintError is the structured error type for all jsonmint operations.
// Path holds the key/index path from the document root to the offending
// node, in JSON-pointer style ("/items/2/color").
type MintError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *MintError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] at %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *MintError) Unwrap() error {
	return e.Cause
}

// NewError creates a new MintError.
func NewError(code, message string) *MintError {
	return &MintError{Code: code, Message: message}
}

// NewErrorf creates a new MintError with a formatted message.
func NewErrorf(code, format string, args ...any) *MintError {
	return &MintError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithPath attaches the node path to the error. The first non-empty path
// wins, so errors raised deep in the tree keep their precise location.
func (e *MintError) WithPath(path string) *MintError {
	if e.Path == "" {
		e.Path = path
	}
	return e
}

// WithCause attaches an underlying cause.
func (e *MintError) WithCause(err error) *MintError {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *MintError) WithDetails(details map[string]any) *MintError {
	e.Details = details
	return e
}
