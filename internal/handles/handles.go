// Package handles maps Go objects to integer handles that can be stored in
// Newton's opaque user-data slots.
//
// Newton keeps one void* per world, body, joint, and material pair, and hands
// it back to us inside callbacks (force-and-torque, contact processing, joint
// destructors). The Go runtime forbids storing Go pointers in C-owned memory,
// so the wrapper registers its per-object state here and stores only the
// returned uintptr on the Newton side. A destroyed object's handle is
// unregistered, which is what makes later lookups fail cleanly instead of
// dereferencing freed memory.
package handles

import (
	"sync"
)

var (
	mu      sync.RWMutex
	objects = make(map[uintptr]any)
	nextID  uintptr = 1
)

// Register stores a Go object and returns a handle ID. The ID is never zero,
// so a zero user-data slot on the Newton side always means "no wrapper state".
// The object stays reachable until Unregister is called.
//
// Thread-safe.
func Register(v any) uintptr {
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	objects[id] = v
	return id
}

// Lookup retrieves a Go object by its handle ID.
// Returns nil for unregistered or already-released handles.
//
// Thread-safe.
func Lookup(id uintptr) any {
	mu.RLock()
	defer mu.RUnlock()
	return objects[id]
}

// LookupAs retrieves a handle and type-asserts it in one step. The boolean is
// false when the handle is stale or holds a different type. Callback
// trampolines use this so a handle raced with teardown degrades to a no-op.
func LookupAs[T any](id uintptr) (T, bool) {
	mu.RLock()
	v, ok := objects[id]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Unregister removes a handle and allows the Go object to be garbage
// collected. Called when the Newton object owning the slot is destroyed.
//
// Thread-safe.
func Unregister(id uintptr) {
	mu.Lock()
	defer mu.Unlock()
	delete(objects, id)
}

// Count returns the number of currently registered handles.
// Useful for leak checks in tests: after a world closes, every handle it
// registered must be gone.
//
// Thread-safe.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(objects)
}
