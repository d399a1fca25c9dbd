// Package errs defines the error taxonomy shared by the persistence core.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConstraint = errors.New("constraint violated")
)

// ConfigurationError indicates a broken static configuration, e.g. a record
// collection with no shard binding. Raised at startup, never at call time.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Detail
}

// NotFoundError reports the absence of a specific record.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Collection, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError rejects an input before any mutation is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MigrationError identifies a failed schema change on one shard. Sibling
// shards are unaffected.
type MigrationError struct {
	Shard   string
	Version uint
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %d on shard %s: %v", e.Version, e.Shard, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// ConstraintError wraps a storage uniqueness violation. The seed loader
// treats it as "already seeded"; every other caller surfaces it.
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	return "constraint: " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() error { return e.Err }

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }
