package forgeerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeError_Is(t *testing.T) {
	err := NewUnsupportedVersion("2.0")
	assert.ErrorIs(t, err, ErrEncode)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "2.0")

	// Without a recorded version only the generic sentinel matches.
	generic := &EncodeError{Message: "boom"}
	assert.ErrorIs(t, generic, ErrEncode)
	assert.NotErrorIs(t, generic, ErrUnsupportedVersion)
}

func TestEncodeError_Unwrap(t *testing.T) {
	cause := errors.New("io failure")
	err := &EncodeError{Message: "write failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "io failure")
}

func TestEncodeError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("building document: %w", NewUnsupportedVersion("2.0"))
	assert.ErrorIs(t, wrapped, ErrUnsupportedVersion)
}

func TestCollisionError(t *testing.T) {
	err := &CollisionError{Key: "api.User", ExistingKey: "models.User", Name: "User"}
	assert.ErrorIs(t, err, ErrCollision)
	assert.Contains(t, err.Error(), "api.User")
	assert.Contains(t, err.Error(), "models.User")
}

func TestFragmentError(t *testing.T) {
	err := &FragmentError{Attribute: "type", Kept: "string", Dropped: "integer", Source: "rules"}
	assert.ErrorIs(t, err, ErrFragment)
	assert.Contains(t, err.Error(), `"type"`)
	assert.Contains(t, err.Error(), "rules")
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad template")
	err := &ConfigError{Option: "naming", Message: "invalid", Cause: cause}
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "naming")
}
