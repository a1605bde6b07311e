package pto

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports an unknown employee or PTO type id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateCode reports a PTO type code uniqueness violation.
	ErrDuplicateCode = errors.New("pto type code already exists")
	// ErrTypeInUse blocks hard deletion of a PTO type with recorded usage
	// or entries. Callers should deactivate instead.
	ErrTypeInUse = errors.New("pto type is in use")
	// ErrForbidden reports an operation invoked without the required role.
	ErrForbidden = errors.New("operation requires admin role")
	// ErrInsufficientHours reports a balance increment that lost the race
	// against a concurrent entry and would overdraw the balance.
	ErrInsufficientHours = errors.New("not enough pto hours remaining")
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every problem with a command so the caller can
// report them together instead of one at a time.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	reasons := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			reasons = append(reasons, issue.Field+": "+issue.Reason)
			continue
		}
		reasons = append(reasons, issue.Reason)
	}
	return "validation failed: " + strings.Join(reasons, "; ")
}

func (e *ValidationError) Add(field, reason string) {
	e.Issues = append(e.Issues, Issue{Field: field, Reason: reason})
}

func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// OrNil returns nil when no issues were collected, so callers can
// `return v.OrNil()` directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}
