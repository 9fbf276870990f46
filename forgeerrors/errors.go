package forgeerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrEncode matches any EncodeError.
	ErrEncode = errors.New("encode error")
	// ErrUnsupportedVersion matches an EncodeError for a target version
	// outside the supported encoding families.
	ErrUnsupportedVersion = errors.New("unsupported target version")
	// ErrCollision matches any CollisionError.
	ErrCollision = errors.New("canonicalization key collision")
	// ErrFragment matches any FragmentError.
	ErrFragment = errors.New("fragment conflict")
	// ErrConfig matches any ConfigError.
	ErrConfig = errors.New("configuration error")
)

// EncodeError represents a failure to serialize a schema tree for a target
// version. An unsupported target version is the only fatal condition the
// core raises; everything structural is absorbed into a best-effort node.
type EncodeError struct {
	// Version is the string form of the rejected target version
	Version string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *EncodeError) Error() string {
	msg := "encode error"
	if e.Version != "" {
		msg += " for version " + e.Version
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type. Matches ErrEncode,
// and ErrUnsupportedVersion when a version is recorded.
func (e *EncodeError) Is(target error) bool {
	if target == ErrEncode {
		return true
	}
	return target == ErrUnsupportedVersion && e.Version != ""
}

// NewUnsupportedVersion returns an EncodeError for a version outside the two
// supported encoding families.
func NewUnsupportedVersion(version string) *EncodeError {
	return &EncodeError{
		Version: version,
		Message: "no supported nullable encoding; supported families are 3.0.x and 3.1+",
	}
}

// CollisionError records two different canonicalization keys or builders
// colliding on one registry name. Collisions are surfaced as warnings, never
// raised: a present-but-imperfect schema is preferred over aborting document
// generation. The error type exists so warning collectors can classify them.
type CollisionError struct {
	// Key is the canonicalization key of the losing registration
	Key string
	// ExistingKey is the key that already owns the name
	ExistingKey string
	// Name is the derived component name both keys mapped to
	Name string
}

// Error returns a human-readable error message.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("canonicalization key collision: key %q and key %q both derive component name %q",
		e.Key, e.ExistingKey, e.Name)
}

// Is reports whether target matches this error type.
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// FragmentError records contradictory scalar attributes asserted at the same
// precedence tier for one field. The resolver keeps the earliest-seen value
// and records the conflict; a build never aborts over one field.
type FragmentError struct {
	// Attribute is the conflicting attribute name (e.g. "type")
	Attribute string
	// Kept is the value that won (earliest in iteration order)
	Kept any
	// Dropped is the conflicting value that was discarded
	Dropped any
	// Source identifies the analyzer whose value was dropped, if known
	Source string
}

// Error returns a human-readable error message.
func (e *FragmentError) Error() string {
	msg := fmt.Sprintf("fragment conflict on %q: kept %v, dropped %v", e.Attribute, e.Kept, e.Dropped)
	if e.Source != "" {
		msg += " from " + e.Source
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *FragmentError) Is(target error) bool {
	return target == ErrFragment
}

// ConfigError represents invalid configuration or input options.
type ConfigError struct {
	// Option is the offending option or flag name
	Option string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " in " + e.Option
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
