package entities

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/profilekit/internal/domain/values"
)

// DocumentNotFoundError indicates a referenced profile has no backing document.
type DocumentNotFoundError struct {
	Cause    error
	Ref      values.ProfileRef
	Location string
}

func (e *DocumentNotFoundError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("profile not found: %s (%s)", e.Ref.String(), e.Location)
	}
	return fmt.Sprintf("profile not found: %s", e.Ref.String())
}

func (e *DocumentNotFoundError) Unwrap() error {
	return e.Cause
}

// InheritanceConflictError indicates more than one un-expanded ancestor
// survived a merge step. Picking one would silently drop inheritance.
type InheritanceConflictError struct {
	Ref       values.ProfileRef
	Survivors []string
}

func (e *InheritanceConflictError) Error() string {
	return fmt.Sprintf("profile %s: ambiguous inheritance, %d unresolved ancestors survive: %s",
		e.Ref.String(), len(e.Survivors), strings.Join(e.Survivors, ", "))
}

// InheritanceCycleError indicates a profile inherits from itself, directly or transitively.
type InheritanceCycleError struct {
	Cycle []values.ProfileRef
}

func (e *InheritanceCycleError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, ref := range e.Cycle {
		names[i] = ref.String()
	}
	return fmt.Sprintf("inheritance cycle detected: %s", strings.Join(names, " -> "))
}

// UnknownCategoryError indicates a category outside machine, filament and process.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %q", e.Category)
}

// InvalidDocumentError indicates a reserved key holds a value of the wrong shape.
type InvalidDocumentError struct {
	Key    string
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document: key %q %s", e.Key, e.Reason)
}
