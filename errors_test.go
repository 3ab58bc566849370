//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestContentionErrorUnwrapsToWouldBlock(t *testing.T) {
	err := error(&ContentionError{Op: "World.Body", Holder: "world.Step"})
	if !errors.Is(err, ErrWouldBlock) {
		t.Error("ContentionError should match ErrWouldBlock")
	}
	if !IsBusy(err) {
		t.Error("IsBusy should report true for a ContentionError")
	}
	if IsDestroyed(err) {
		t.Error("IsDestroyed should not match a ContentionError")
	}
}

func TestContentionErrorMessage(t *testing.T) {
	writer := &ContentionError{Op: "World.Body", Holder: "world.Step"}
	if msg := writer.Error(); !strings.Contains(msg, "world.Step") {
		t.Errorf("writer contention message %q should name the holder", msg)
	}

	readers := &ContentionError{Op: "World.Step", Readers: 3}
	if msg := readers.Error(); !strings.Contains(msg, "3 reader") {
		t.Errorf("reader contention message %q should give the reader count", msg)
	}
}

func TestContentionErrorWrapped(t *testing.T) {
	err := fmt.Errorf("stepping: %w", &ContentionError{Op: "World.Step", Holder: "other"})
	if !IsBusy(err) {
		t.Error("IsBusy should see through wrapping")
	}
	var ce *ContentionError
	if !errors.As(err, &ce) || ce.Holder != "other" {
		t.Error("errors.As should recover the ContentionError")
	}
}

func TestIsDestroyed(t *testing.T) {
	if !IsDestroyed(ErrDestroyed) {
		t.Error("IsDestroyed(ErrDestroyed) = false")
	}
	if !IsDestroyed(fmt.Errorf("closing: %w", ErrDestroyed)) {
		t.Error("IsDestroyed should see through wrapping")
	}
	if IsDestroyed(ErrWouldBlock) {
		t.Error("busy and destroyed must stay distinguishable")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrNotFound) {
		t.Error("IsNotFound(ErrNotFound) = false")
	}
	if IsNotFound(ErrDestroyed) {
		t.Error("IsNotFound should not match ErrDestroyed")
	}
}

func TestCallbackPanicError(t *testing.T) {
	err := &CallbackPanicError{Callback: "force-and-torque", Value: "boom"}
	msg := err.Error()
	if !strings.Contains(msg, "force-and-torque") || !strings.Contains(msg, "boom") {
		t.Errorf("message %q should name the callback and the panic value", msg)
	}
}
