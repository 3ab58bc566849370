//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"testing"
)

// Lifecycle bookkeeping tests run on a bare world shell; the engine calls
// under them are no-ops when the library is absent.

func TestBodyCloseDestructorRunsOnce(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)

	fired := 0
	b.extra.destructor = func(*Body) { fired++ }

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if fired != 1 {
		t.Errorf("destructor fired %d times, want exactly 1", fired)
	}
}

func TestBodyCloseRemovesFromRegistry(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)

	h, err := w.MoveBody(b)
	if err != nil {
		t.Fatalf("MoveBody failed: %v", err)
	}
	// A registry-held body is a view; closing the caller's wrapper is a
	// no-op until ownership comes back.
	if err := b.Close(); err != nil {
		t.Fatalf("Close of non-owning wrapper failed: %v", err)
	}
	if _, err := w.Body(h); err != nil {
		t.Fatalf("registry entry vanished after view close: %v", err)
	}

	taken, err := w.TakeBody(h)
	if err != nil {
		t.Fatalf("TakeBody failed: %v", err)
	}
	if err := taken.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := w.Body(h); !IsNotFound(err) {
		t.Errorf("lookup after destroy: err = %v, want ErrNotFound", err)
	}
}

func TestBodyCloseDefersWhileWorldBusy(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)

	fired := 0
	b.extra.destructor = func(*Body) { fired++ }

	release, err := w.lock.tryWrite("step")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}

	// Close can't take the lock, so the destroy must queue, not fail and
	// not block.
	if err := b.Close(); err != nil {
		t.Fatalf("Close while busy failed: %v", err)
	}
	if n := w.pendingDestroyCount(); n != 1 {
		t.Fatalf("pending destroys = %d, want 1", n)
	}
	if fired != 0 {
		t.Fatal("destructor ran before the deferred destroy was flushed")
	}

	// Closing again while queued stays a no-op.
	if err := b.Close(); err != nil {
		t.Fatalf("repeat Close failed: %v", err)
	}
	if n := w.pendingDestroyCount(); n != 1 {
		t.Errorf("pending destroys = %d after repeat Close, want 1", n)
	}

	w.flushPendingLocked()
	release()

	if n := w.pendingDestroyCount(); n != 0 {
		t.Errorf("pending destroys = %d after flush, want 0", n)
	}
	if fired != 1 {
		t.Errorf("destructor fired %d times after flush, want 1", fired)
	}
}

func TestFlushDrainsCommandsQueuedMidFlush(t *testing.T) {
	w := newTestWorld()

	ran := []string{}
	w.queueDestroy("outer", func(w *World) {
		ran = append(ran, "outer")
		// A destructor closing another object mid-flush queues again;
		// the same flush must pick it up.
		w.queueDestroy("inner", func(*World) {
			ran = append(ran, "inner")
		})
	})

	release, err := w.lock.tryWrite("flush")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}
	w.flushPendingLocked()
	release()

	if len(ran) != 2 || ran[0] != "outer" || ran[1] != "inner" {
		t.Errorf("flush order = %v, want [outer inner]", ran)
	}
	if n := w.pendingDestroyCount(); n != 0 {
		t.Errorf("pending destroys = %d after flush, want 0", n)
	}
}

func TestRecordCallbackPanic(t *testing.T) {
	w := newTestWorld()

	func() {
		defer w.recordCallbackPanic("test callback")
		panic("boom")
	}()

	err := w.takeCallbackPanic()
	var cpe *CallbackPanicError
	if !errors.As(err, &cpe) {
		t.Fatalf("takeCallbackPanic = %v, want *CallbackPanicError", err)
	}
	if cpe.Callback != "test callback" || cpe.Value != "boom" {
		t.Errorf("recovered %q/%v, want test callback/boom", cpe.Callback, cpe.Value)
	}

	// One-shot: the next take is clean.
	if err := w.takeCallbackPanic(); err != nil {
		t.Errorf("second take = %v, want nil", err)
	}
}

func TestRecordCallbackPanicKeepsFirst(t *testing.T) {
	w := newTestWorld()

	for _, name := range []string{"first", "second"} {
		func() {
			defer w.recordCallbackPanic(name)
			panic(name)
		}()
	}

	var cpe *CallbackPanicError
	if err := w.takeCallbackPanic(); !errors.As(err, &cpe) || cpe.Callback != "first" {
		t.Errorf("takeCallbackPanic = %v, want the first recorded panic", err)
	}
}

func TestWorldCloseIdempotent(t *testing.T) {
	w := newTestWorld()
	w.registry.MoveBody(newTestBody(w))

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if bodies, collisions, joints := w.registry.Counts(); bodies+collisions+joints != 0 {
		t.Errorf("registry not empty after Close: %d/%d/%d", bodies, collisions, joints)
	}
	if err := w.Step(0); !IsDestroyed(err) {
		t.Errorf("Step after Close: err = %v, want ErrDestroyed", err)
	}
	if _, err := w.TryRead(); !IsDestroyed(err) {
		t.Errorf("TryRead after Close: err = %v, want ErrDestroyed", err)
	}
}

func TestWorldCloseFlushesQueue(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)

	release, err := w.lock.tryWrite("step")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	release()

	if err := w.Close(); err != nil {
		t.Fatalf("world Close failed: %v", err)
	}
	if n := w.pendingDestroyCount(); n != 0 {
		t.Errorf("pending destroys = %d after world Close, want 0", n)
	}
}

func TestWorldName(t *testing.T) {
	w := newWorldShell(Config{Name: "arena"})
	if w.Name() != "arena" {
		t.Errorf("Name() = %q, want arena", w.Name())
	}

	// Contention diagnostics carry the name.
	release, err := w.lock.tryWrite("arena.Step")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}
	defer release()
	_, err = w.TryWrite("editor")
	var ce *ContentionError
	if !errors.As(err, &ce) || ce.Holder != "arena.Step" {
		t.Errorf("contention holder = %v, want arena.Step", err)
	}
}

func TestBorrowedViewHonorsWorldLock(t *testing.T) {
	w := newTestWorld()
	b := newTestBody(w)
	view := w.borrowBody(b.raw, false)

	// While an exclusive holder is active, mutation through the view must
	// report contention instead of touching the body.
	release, err := w.lock.tryWrite("World.Step")
	if err != nil {
		t.Fatalf("tryWrite failed: %v", err)
	}
	err = view.SetVelocity(Vector3{1, 2, 3})
	if !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("SetVelocity under exclusive lock = %v, want ErrWouldBlock", err)
	}
	var ce *ContentionError
	if !errors.As(err, &ce) || ce.Holder != "World.Step" {
		t.Errorf("contention holder = %v, want World.Step", err)
	}
	release()

	// Under a shared holder, reads proceed and writes still report busy.
	release, err = w.lock.tryRead("World.ForEachBody")
	if err != nil {
		t.Fatalf("tryRead failed: %v", err)
	}
	if _, err := view.Velocity(); err != nil {
		t.Errorf("Velocity under shared lock = %v, want nil", err)
	}
	if err := view.SetVelocity(Vector3{1, 2, 3}); !errors.Is(err, ErrWouldBlock) {
		t.Errorf("SetVelocity under shared lock = %v, want ErrWouldBlock", err)
	}
	release()

	// With no lock outstanding the view acquires and releases on its own.
	if err := view.SetVelocity(Vector3{1, 2, 3}); err != nil {
		t.Errorf("SetVelocity = %v, want nil", err)
	}
}
