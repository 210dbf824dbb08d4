package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a descriptor syntax failure with optional line metadata.
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

// MalformedDescriptorError reports a bad or missing required descriptor field.
// It is fatal and aborts the configuration phase.
type MalformedDescriptorError struct {
	Path    string
	Field   string
	Message string
	Err     error
}

// NewMalformedDescriptorError constructs a MalformedDescriptorError.
func NewMalformedDescriptorError(field, message string, err error) error {
	return &MalformedDescriptorError{Field: field, Message: message, Err: err}
}

func (e *MalformedDescriptorError) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("malformed descriptor")
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap exposes the underlying error.
func (e *MalformedDescriptorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NoSourceAvailableError is returned when a dependency must be resolved but the
// descriptor declares no repository sources.
type NoSourceAvailableError struct {
	Plugin string
}

// NewNoSourceAvailableError constructs a NoSourceAvailableError for the given plugin.
func NewNoSourceAvailableError(plugin string) error {
	return &NoSourceAvailableError{Plugin: plugin}
}

func (e *NoSourceAvailableError) Error() string {
	if e == nil {
		return ""
	}
	if e.Plugin != "" {
		return fmt.Sprintf("no repository source available to resolve %s", e.Plugin)
	}
	return "no repository source available"
}

// DuplicateTaskWarning is emitted when a task name is registered twice. The
// later registration wins; the warning is informational and never aborts a build.
type DuplicateTaskWarning struct {
	Task string
}

func (w *DuplicateTaskWarning) Error() string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("task %q registered more than once; the later definition replaces the earlier one", w.Task)
}

// DeletionFailedError reports that a path could not be removed. Whatever the
// underlying delete already removed stays removed.
type DeletionFailedError struct {
	Path  string
	Cause error
}

// NewDeletionFailedError constructs a DeletionFailedError.
func NewDeletionFailedError(path string, cause error) error {
	return &DeletionFailedError{Path: path, Cause: cause}
}

func (e *DeletionFailedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return fmt.Sprintf("delete %s failed", e.Path)
	}
	return fmt.Sprintf("delete %s failed: %v", e.Path, e.Cause)
}

// Unwrap exposes the cause.
func (e *DeletionFailedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// TaskError represents a runtime failure while executing a task.
type TaskError struct {
	Task string
	Err  error
}

// NewTaskError constructs a TaskError.
func NewTaskError(task string, err error) error {
	return &TaskError{Task: task, Err: err}
}

func (e *TaskError) Error() string {
	if e == nil {
		return ""
	}
	if e.Task != "" {
		return fmt.Sprintf("task %s failed: %v", e.Task, e.Err)
	}
	return fmt.Sprintf("task failed: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *TaskError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
