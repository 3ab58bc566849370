//go:build !ios && !android && (amd64 || arm64)

package newtongo

import "sync"

// Registry is the world-scoped table of objects whose lifetime the world
// manages. Moving an object in transfers destruction responsibility to the
// world: the caller's wrapper becomes a non-owning view and the world
// destroys the object during teardown unless it is taken back first.
//
// The registry, not the raw pointer, is the single source of truth for
// liveness. Lookups with a stale handle report "not found"; they never
// dereference.
//
// A custom implementation can be supplied via WithRegistry. Implementations
// must be safe for concurrent use; the default is.
type Registry interface {
	// MoveBody inserts a body and clears its owned flag. The returned
	// handle retrieves it later.
	MoveBody(b *Body) Handle

	// Body returns a non-owning view of a registered body. Closing the
	// view does not destroy the body.
	Body(h Handle) (*Body, bool)

	// TakeBody removes a body and returns it as an owning wrapper,
	// transferring destruction responsibility back to the caller.
	TakeBody(h Handle) (*Body, bool)

	// EachBody visits registered bodies until fn returns false.
	EachBody(fn func(Handle, *Body) bool)

	// MoveCollision, Collision, TakeCollision, and EachCollision mirror
	// the body operations for collision shapes.
	MoveCollision(c *Collision) Handle
	Collision(h Handle) (*Collision, bool)
	TakeCollision(h Handle) (*Collision, bool)
	EachCollision(fn func(Handle, *Collision) bool)

	// MoveJoint, Joint, TakeJoint, and EachJoint mirror the body
	// operations for joints.
	MoveJoint(j *Joint) Handle
	Joint(h Handle) (*Joint, bool)
	TakeJoint(h Handle) (*Joint, bool)
	EachJoint(fn func(Handle, *Joint) bool)

	// Counts returns the number of registered bodies, collisions, and
	// joints.
	Counts() (bodies, collisions, joints int)
}

// mapRegistry is the default Registry, one map per object kind.
type mapRegistry struct {
	mu         sync.Mutex
	bodies     map[Handle]*Body
	collisions map[Handle]*Collision
	joints     map[Handle]*Joint
}

// NewRegistry returns the default map-backed registry.
func NewRegistry() Registry {
	return &mapRegistry{
		bodies:     make(map[Handle]*Body),
		collisions: make(map[Handle]*Collision),
		joints:     make(map[Handle]*Joint),
	}
}

func (r *mapRegistry) MoveBody(b *Body) Handle {
	h := b.Handle()
	if h.IsNull() {
		return h
	}
	r.mu.Lock()
	b.owned = false
	r.bodies[h] = b
	r.mu.Unlock()
	return h
}

func (r *mapRegistry) Body(h Handle) (*Body, bool) {
	r.mu.Lock()
	b, ok := r.bodies[h]
	r.mu.Unlock()
	return b, ok
}

func (r *mapRegistry) TakeBody(h Handle) (*Body, bool) {
	r.mu.Lock()
	b, ok := r.bodies[h]
	if ok {
		delete(r.bodies, h)
		b.owned = true
	}
	r.mu.Unlock()
	return b, ok
}

func (r *mapRegistry) EachBody(fn func(Handle, *Body) bool) {
	for h, b := range r.snapshotBodies() {
		if !fn(h, b) {
			return
		}
	}
}

func (r *mapRegistry) MoveCollision(c *Collision) Handle {
	h := c.Handle()
	if h.IsNull() {
		return h
	}
	r.mu.Lock()
	c.owned = false
	r.collisions[h] = c
	r.mu.Unlock()
	return h
}

func (r *mapRegistry) Collision(h Handle) (*Collision, bool) {
	r.mu.Lock()
	c, ok := r.collisions[h]
	r.mu.Unlock()
	return c, ok
}

func (r *mapRegistry) TakeCollision(h Handle) (*Collision, bool) {
	r.mu.Lock()
	c, ok := r.collisions[h]
	if ok {
		delete(r.collisions, h)
		c.owned = true
	}
	r.mu.Unlock()
	return c, ok
}

func (r *mapRegistry) EachCollision(fn func(Handle, *Collision) bool) {
	r.mu.Lock()
	snapshot := make(map[Handle]*Collision, len(r.collisions))
	for h, c := range r.collisions {
		snapshot[h] = c
	}
	r.mu.Unlock()
	for h, c := range snapshot {
		if !fn(h, c) {
			return
		}
	}
}

func (r *mapRegistry) MoveJoint(j *Joint) Handle {
	h := j.Handle()
	if h.IsNull() {
		return h
	}
	r.mu.Lock()
	j.owned = false
	r.joints[h] = j
	r.mu.Unlock()
	return h
}

func (r *mapRegistry) Joint(h Handle) (*Joint, bool) {
	r.mu.Lock()
	j, ok := r.joints[h]
	r.mu.Unlock()
	return j, ok
}

func (r *mapRegistry) TakeJoint(h Handle) (*Joint, bool) {
	r.mu.Lock()
	j, ok := r.joints[h]
	if ok {
		delete(r.joints, h)
		j.owned = true
	}
	r.mu.Unlock()
	return j, ok
}

func (r *mapRegistry) EachJoint(fn func(Handle, *Joint) bool) {
	r.mu.Lock()
	snapshot := make(map[Handle]*Joint, len(r.joints))
	for h, j := range r.joints {
		snapshot[h] = j
	}
	r.mu.Unlock()
	for h, j := range snapshot {
		if !fn(h, j) {
			return
		}
	}
}

func (r *mapRegistry) Counts() (bodies, collisions, joints int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bodies), len(r.collisions), len(r.joints)
}

// snapshotBodies copies the body map so destruction triggered by a visit
// cannot invalidate the iteration.
func (r *mapRegistry) snapshotBodies() map[Handle]*Body {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make(map[Handle]*Body, len(r.bodies))
	for h, b := range r.bodies {
		snapshot[h] = b
	}
	return snapshot
}
