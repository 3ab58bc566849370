//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"testing"
	"unsafe"
)

// Registry semantics are pure Go bookkeeping; these tests run against a bare
// world shell with fabricated wrappers, no engine required.

func newTestWorld() *World {
	return newWorldShell(defaultConfig())
}

func newTestBody(w *World) *Body {
	extra := &bodyExtra{world: w}
	b := &Body{world: w, raw: unsafe.Pointer(new(byte)), extra: extra, owned: true}
	extra.body = b
	return b
}

func newTestCollision(w *World) *Collision {
	extra := &collisionExtra{world: w}
	c := &Collision{world: w, raw: unsafe.Pointer(new(byte)), extra: extra, owned: true}
	extra.collision = c
	return c
}

func newTestJoint(w *World) *Joint {
	extra := &jointExtra{world: w}
	j := &Joint{world: w, raw: unsafe.Pointer(new(byte)), extra: extra, owned: true}
	extra.joint = j
	return j
}

func TestRegistryMoveAndLookup(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	b := newTestBody(w)

	h := r.MoveBody(b)
	if h.IsNull() {
		t.Fatal("MoveBody returned a null handle")
	}
	if b.Owned() {
		t.Error("moved body should no longer be owned by the caller")
	}

	got, ok := r.Body(h)
	if !ok || got != b {
		t.Fatalf("Body(%v) = %v, %v; want the moved body", h, got, ok)
	}

	if _, ok := r.Body(HandleFromPointer(0x1)); ok {
		t.Error("stale handle should not resolve")
	}
}

func TestRegistryTakeRestoresOwnership(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	b := newTestBody(w)

	h := r.MoveBody(b)
	got, ok := r.TakeBody(h)
	if !ok || got != b {
		t.Fatalf("TakeBody failed: %v, %v", got, ok)
	}
	if !got.Owned() {
		t.Error("taken body should be owned again")
	}

	// The handle is spent.
	if _, ok := r.Body(h); ok {
		t.Error("handle should be stale after TakeBody")
	}
	if _, ok := r.TakeBody(h); ok {
		t.Error("second TakeBody should fail")
	}
}

func TestRegistryMoveNullHandle(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	b := &Body{world: w} // raw is nil

	if h := r.MoveBody(b); !h.IsNull() {
		t.Errorf("moving a dead wrapper returned %v, want null handle", h)
	}
	if bodies, _, _ := r.Counts(); bodies != 0 {
		t.Errorf("registry has %d bodies after a null move", bodies)
	}
}

func TestRegistryCounts(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()

	r.MoveBody(newTestBody(w))
	r.MoveBody(newTestBody(w))
	r.MoveCollision(newTestCollision(w))
	jh := r.MoveJoint(newTestJoint(w))

	bodies, collisions, joints := r.Counts()
	if bodies != 2 || collisions != 1 || joints != 1 {
		t.Errorf("Counts() = %d, %d, %d; want 2, 1, 1", bodies, collisions, joints)
	}

	r.TakeJoint(jh)
	if _, _, joints := r.Counts(); joints != 0 {
		t.Errorf("joint count = %d after take, want 0", joints)
	}
}

func TestRegistryEachBodyEarlyStop(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	for i := 0; i < 5; i++ {
		r.MoveBody(newTestBody(w))
	}

	visited := 0
	r.EachBody(func(Handle, *Body) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("visited %d bodies, want iteration to stop at 2", visited)
	}
}

func TestRegistryEachBodyAllowsRemoval(t *testing.T) {
	r := NewRegistry()
	w := newTestWorld()
	for i := 0; i < 4; i++ {
		r.MoveBody(newTestBody(w))
	}

	// Removing during the visit must not break the iteration; this is the
	// teardown pattern.
	visited := 0
	r.EachBody(func(h Handle, _ *Body) bool {
		visited++
		r.TakeBody(h)
		return true
	})
	if visited != 4 {
		t.Errorf("visited %d bodies, want 4", visited)
	}
	if bodies, _, _ := r.Counts(); bodies != 0 {
		t.Errorf("%d bodies left after removal during iteration", bodies)
	}
}

func TestWorldRegistryAccessors(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)

	h, err := w.MoveBody(b)
	if err != nil {
		t.Fatalf("MoveBody failed: %v", err)
	}

	view, err := w.Body(h)
	if err != nil {
		t.Fatalf("Body failed: %v", err)
	}
	if view != b {
		t.Error("Body returned a different wrapper")
	}

	if _, err := w.Body(HandleFromPointer(0x2)); !IsNotFound(err) {
		t.Errorf("stale lookup: err = %v, want ErrNotFound", err)
	}

	taken, err := w.TakeBody(h)
	if err != nil {
		t.Fatalf("TakeBody failed: %v", err)
	}
	if !taken.Owned() {
		t.Error("taken body should be owned")
	}
	if _, err := w.TakeBody(h); !IsNotFound(err) {
		t.Errorf("second take: err = %v, want ErrNotFound", err)
	}
}

func TestWorldRegistryBusy(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)

	release, err := w.lock.tryWrite("holding")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}
	defer release()

	if _, err := w.MoveBody(b); !IsBusy(err) {
		t.Errorf("MoveBody while locked: err = %v, want busy", err)
	}
	if _, err := w.Body(HandleFromPointer(1)); !IsBusy(err) {
		t.Errorf("Body while locked: err = %v, want busy", err)
	}
}
