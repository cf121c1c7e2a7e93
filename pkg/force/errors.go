package force

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnitNotFound   = errors.New("unit not found")
	ErrDuplicateUnit  = errors.New("duplicate unit id")
	ErrForceNotFound  = errors.New("force not found")
	ErrInvalidRecord  = errors.New("invalid network record")
	ErrCorruptSave    = errors.New("corrupt save file")
)

// ForceError provides structured error information for force operations.
type ForceError struct {
	Op     string // Operation that failed (e.g., "AddUnit", "LoadForce")
	Entity string // Entity type (e.g., "unit", "force", "network")
	ID     string // Entity id (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *ForceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ForceError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ForceError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func opErr(op, entity, id string, cause error) error {
	return &ForceError{Op: op, Entity: entity, ID: id, Cause: cause}
}
