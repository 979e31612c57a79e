package propedit

import (
	"errors"
	"fmt"
	"strings"
)

// Core error definitions - one sentinel per failure kind in the taxonomy
var (
	ErrInvalidPath  = errors.New("invalid path format")
	ErrNotFound     = errors.New("field not found")
	ErrOutOfRange   = errors.New("index out of range")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrUnsupported  = errors.New("unsupported operation")
)

// PropError represents an engine failure with path and operation context
type PropError struct {
	Op      string // Operation that failed (parse, resolve, read, write, apply, describe)
	Path    string // Property path where the error occurred
	Message string // Human-readable error message
	Err     error  // Sentinel error identifying the failure kind
	Hints   []string
}

func (e *PropError) Error() string {
	var msg string
	if e.Path != "" {
		msg = fmt.Sprintf("property %s failed at path '%s': %s", e.Op, e.Path, e.Message)
	} else {
		msg = fmt.Sprintf("property %s failed: %s", e.Op, e.Message)
	}
	if len(e.Hints) > 0 {
		msg += " (available: " + strings.Join(e.Hints, ", ") + ")"
	}
	return msg
}

// Unwrap returns the underlying sentinel for error chain support
func (e *PropError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is
func (e *PropError) Is(target error) bool {
	if target == nil {
		return false
	}
	if te, ok := target.(*PropError); ok {
		return e.Op == te.Op && errors.Is(e.Err, te.Err)
	}
	return errors.Is(e.Err, target)
}

// WithHints attaches an enumeration of valid alternatives to the error.
// Only attached when the alternatives are cheaply known at the failure site.
func (e *PropError) WithHints(hints ...string) *PropError {
	e.Hints = append(e.Hints, hints...)
	return e
}

// newPathError creates a PropError for malformed path text
func newPathError(path, message string) *PropError {
	return &PropError{Op: "parse", Path: path, Message: message, Err: ErrInvalidPath}
}

// newNotFoundError creates a PropError for a failed field lookup
func newNotFoundError(op, path, message string) *PropError {
	return &PropError{Op: op, Path: path, Message: message, Err: ErrNotFound}
}

// newRangeError creates a PropError for an out-of-bounds index or missing key
func newRangeError(op, path, message string) *PropError {
	return &PropError{Op: op, Path: path, Message: message, Err: ErrOutOfRange}
}

// newMismatchError creates a PropError for a value that cannot be coerced
func newMismatchError(op, path, message string) *PropError {
	return &PropError{Op: op, Path: path, Message: message, Err: ErrTypeMismatch}
}

// newUnsupportedError creates a PropError for an operation the target cannot perform
func newUnsupportedError(op, path, message string) *PropError {
	return &PropError{Op: op, Path: path, Message: message, Err: ErrUnsupported}
}
