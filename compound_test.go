//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"testing"
)

// The bracket guard is pure wrapper state; these tests run against fabricated
// shapes, no engine required.

func TestCompoundBuilderClosed(t *testing.T) {
	w := newTestWorld()
	c := newTestCollision(w)
	child := newTestCollision(w)

	b := &CompoundBuilder{compound: c}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := b.Add(child); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("Add after Close = %v, want ErrBuilderClosed", err)
	}
	if err := b.Remove(HandleFromPointer(1)); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("Remove after Close = %v, want ErrBuilderClosed", err)
	}
	if err := b.RemoveByIndex(HandleFromIndex(0)); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("RemoveByIndex after Close = %v, want ErrBuilderClosed", err)
	}

	// Close stays idempotent.
	if err := b.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestSceneBuilderClosed(t *testing.T) {
	w := newTestWorld()
	s := newTestCollision(w)
	child := newTestCollision(w)

	b := &SceneBuilder{scene: s}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := b.Add(child); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("Add after Close = %v, want ErrBuilderClosed", err)
	}
	if err := b.Remove(HandleFromPointer(1)); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("Remove after Close = %v, want ErrBuilderClosed", err)
	}
	if err := b.RemoveByIndex(HandleFromIndex(0)); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("RemoveByIndex after Close = %v, want ErrBuilderClosed", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestBuilderRejectsNilChild(t *testing.T) {
	w := newTestWorld()
	b := &CompoundBuilder{compound: newTestCollision(w)}
	if _, err := b.Add(nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Add(nil) = %v, want ErrNotFound", err)
	}
	s := &SceneBuilder{scene: newTestCollision(w)}
	if _, err := s.Add(nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("scene Add(nil) = %v, want ErrNotFound", err)
	}
}
