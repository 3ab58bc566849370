//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/newtongo/internal/bindings"
)

// Common errors
var (
	// ErrNotLoaded indicates the Newton library is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates the Newton library could not be located.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	// ErrDestroyed indicates the world or object has already been torn down.
	// Distinct from ErrWouldBlock so callers can tell "gone" from "busy".
	ErrDestroyed = errors.New("newtongo: object has been destroyed")

	// ErrWouldBlock indicates a lock could not be acquired without blocking.
	ErrWouldBlock = errors.New("newtongo: operation would block")

	// ErrNotFound indicates a handle no longer resolves to a live object.
	// This is an expected steady-state condition, not a fault.
	ErrNotFound = errors.New("newtongo: handle not found")

	// ErrDoublePrecision indicates the loaded Newton build uses double
	// precision floats, which this wrapper does not support.
	ErrDoublePrecision = errors.New("newtongo: Newton library built with double precision")

	// ErrUnsupportedVersion indicates the loaded Newton version is outside
	// the supported 3.x range.
	ErrUnsupportedVersion = errors.New("newtongo: unsupported Newton version")

	// ErrBuilderClosed indicates a shape builder was used after End/Close.
	ErrBuilderClosed = errors.New("newtongo: shape builder already ended")
)

// ContentionError reports a failed lock acquisition together with the
// identity of whoever currently holds the world. Deadlocks in a physics loop
// are miserable to diagnose from a bare "would block", so the holder name and
// reader count ride along.
type ContentionError struct {
	// Op is the operation that failed to acquire the lock.
	Op string

	// Holder names the current exclusive holder, or "" if the lock is held
	// by readers only.
	Holder string

	// Readers is the number of outstanding shared holders.
	Readers int
}

func (e *ContentionError) Error() string {
	if e.Holder != "" {
		return fmt.Sprintf("newtongo: %s: world exclusively locked by %s", e.Op, e.Holder)
	}
	return fmt.Sprintf("newtongo: %s: world locked by %d reader(s)", e.Op, e.Readers)
}

// Unwrap makes errors.Is(err, ErrWouldBlock) match.
func (e *ContentionError) Unwrap() error {
	return ErrWouldBlock
}

// CallbackPanicError reports a panic recovered at a callback trampoline
// boundary. The panic is never allowed to unwind through Newton's frames;
// instead it is recorded on the world and returned from the surrounding Step.
type CallbackPanicError struct {
	// Callback names the callback slot that panicked.
	Callback string

	// Value is the recovered panic value.
	Value any
}

func (e *CallbackPanicError) Error() string {
	return fmt.Sprintf("newtongo: panic in %s callback: %v", e.Callback, e.Value)
}

// IsBusy reports whether err is a lock-contention error. The caller may
// retry or fall back to a deferred path.
func IsBusy(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}

// IsDestroyed reports whether err means the target no longer exists.
// Retrying cannot help.
func IsDestroyed(err error) bool {
	return errors.Is(err, ErrDestroyed)
}

// IsNotFound reports whether err is a stale-handle lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
