package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrClosed is returned by operations on a closed Atlas.
	ErrClosed = errors.New("atlas: closed")

	// ErrNilDevice is returned by New when no device is given.
	ErrNilDevice = errors.New("atlas: nil device")

	// ErrNilBuilder is returned by GetOrInsertWith when build is nil.
	ErrNilBuilder = errors.New("atlas: nil build function")

	// ErrNilEncoder is returned by BeforeFrame when enc is nil.
	ErrNilEncoder = errors.New("atlas: nil encoder")

	// ErrInvalidContent is returned when built content has a non-positive
	// size or a byte length that does not match its size and kind.
	ErrInvalidContent = errors.New("atlas: invalid tile content")

	// ErrInvalidKind is returned for keys with an unknown Kind.
	ErrInvalidKind = errors.New("atlas: invalid tile kind")
)

// BuildError wraps a failure reported by a BuildFunc. The atlas state is
// unchanged when it is returned.
type BuildError struct {
	Key Key
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("atlas: build %v: %v", e.Key, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// AllocationError is returned when a tile cannot fit in any backing
// texture because it exceeds the maximum texture dimension.
type AllocationError struct {
	Kind Kind
	Size Size
	Max  int32
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("atlas: %v tile %v exceeds maximum texture size %d", e.Kind, e.Size, e.Max)
}

// ConfigError reports an invalid option value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("atlas: invalid config %s: %s", e.Field, e.Reason)
}
