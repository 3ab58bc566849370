//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"sync"
	"time"

	"github.com/obinnaokechukwu/newtongo/capi"
	"github.com/obinnaokechukwu/newtongo/internal/handles"
)

// World is the root simulation object. Every body, collision shape, joint,
// and material group is created from a world and becomes invalid when it
// closes. The world owns the registry of objects moved into its keeping and
// the lock coordinator that serializes access to the engine.
//
// A World must be closed with Close when no longer needed; closing destroys
// every object still registered, in dependency order.
type World struct {
	lock     lockCoordinator
	raw      capi.World
	config   Config
	registry Registry
	handleID uintptr

	// Destroy requests that arrived while the world was exclusively
	// locked, typically from wrapper Close calls inside step callbacks.
	// Flushed in order before the next step.
	pendingMu sync.Mutex
	pending   []destroyCommand

	panicMu  sync.Mutex
	panicErr error

	pairsMu sync.Mutex
	pairs   map[pairKey]*materialPair
}

type destroyCommand struct {
	kind string
	run  func(*World)
}

// newWorldShell builds the Go-side structure without touching the engine.
// NewWorld attaches the engine context afterwards; tests exercise registry,
// queue, and lock behavior on a bare shell.
func newWorldShell(cfg Config) *World {
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Name == "" {
		cfg.Name = "world"
	}
	return &World{
		config:   cfg,
		registry: cfg.Registry,
		pairs:    make(map[pairKey]*materialPair),
	}
}

// NewWorld creates a simulation world. The Newton library must be loadable;
// construction fails fast on a missing or incompatible engine rather than
// erroring mid-simulation.
func NewWorld(opts ...Option) (*World, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w := newWorldShell(cfg)
	w.raw = capi.Create()
	if w.raw == nil {
		return nil, ErrNotLoaded
	}

	if cfg.Threads > 0 {
		capi.SetThreadsCount(w.raw, int32(cfg.Threads))
	}
	capi.SetSolverModel(w.raw, int32(cfg.SolverSteps))
	capi.SelectBroadphaseAlgorithm(w.raw, int32(cfg.Broadphase))

	w.handleID = handles.Register(w)
	capi.WorldSetUserData(w.raw, w.handleID)

	return w, nil
}

// worldFromRaw recovers the wrapper for a raw Newton world pointer via the
// world's user-data slot. Returns nil for foreign worlds or after teardown.
func worldFromRaw(raw capi.World) *World {
	if raw == nil {
		return nil
	}
	w, _ := handles.LookupAs[*World](capi.WorldGetUserData(raw))
	return w
}

// Name returns the world's diagnostic label.
func (w *World) Name() string {
	return w.config.Name
}

// Step advances the simulation synchronously by dt and blocks until the
// engine finishes the integration. Queued destroy requests are flushed, in
// order, before the engine steps. If a user callback panicked during the
// step, the recovered panic is returned as a *CallbackPanicError.
func (w *World) Step(dt time.Duration) error {
	release, err := w.lock.tryWrite(w.config.Name + ".Step")
	if err != nil {
		return err
	}
	defer release()

	w.flushPendingLocked()
	capi.Update(w.raw, durationToSeconds(dt))
	return w.takeCallbackPanic()
}

// InvalidateContactCache flushes the engine's contact and island caches.
// Call after teleporting bodies or bulk-editing the scene.
func (w *World) InvalidateContactCache() error {
	release, err := w.lock.tryWrite(w.config.Name + ".InvalidateContactCache")
	if err != nil {
		return err
	}
	defer release()
	capi.InvalidateCache(w.raw)
	return nil
}

// BodyCount returns the number of bodies in the world, registered or not.
func (w *World) BodyCount() (int, error) {
	release, err := w.lock.tryRead("World.BodyCount")
	if err != nil {
		return 0, err
	}
	defer release()
	return int(capi.WorldGetBodyCount(w.raw)), nil
}

// ConstraintCount returns the number of joints in the world.
func (w *World) ConstraintCount() (int, error) {
	release, err := w.lock.tryRead("World.ConstraintCount")
	if err != nil {
		return 0, err
	}
	defer release()
	return int(capi.WorldGetConstraintCount(w.raw)), nil
}

// ThreadCount returns the engine's worker thread count.
func (w *World) ThreadCount() (int, error) {
	release, err := w.lock.tryRead("World.ThreadCount")
	if err != nil {
		return 0, err
	}
	defer release()
	return int(capi.GetThreadsCount(w.raw)), nil
}

// ForEachBody visits every body in the world through the engine's body list,
// stopping early when fn returns false. The views passed to fn are
// non-owning.
func (w *World) ForEachBody(fn func(*Body) bool) error {
	release, err := w.lock.tryRead("World.ForEachBody")
	if err != nil {
		return err
	}
	defer release()

	for raw := capi.WorldGetFirstBody(w.raw); raw != nil; raw = capi.WorldGetNextBody(w.raw, raw) {
		if !fn(w.borrowBody(raw, false)) {
			break
		}
	}
	return nil
}

// Bodies returns non-owning views of every body currently in the world,
// snapshotted under a shared lock.
func (w *World) Bodies() ([]*Body, error) {
	var out []*Body
	err := w.ForEachBody(func(b *Body) bool {
		out = append(out, b)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Read acquires shared access to the world, blocking until available. The
// returned release function must be called exactly once.
func (w *World) Read() (func(), error) {
	return w.lock.read("World.Read")
}

// TryRead acquires shared access without blocking.
func (w *World) TryRead() (func(), error) {
	return w.lock.tryRead("World.TryRead")
}

// Write acquires exclusive access to the world, blocking until available.
func (w *World) Write(holder string) (func(), error) {
	if holder == "" {
		holder = "World.Write"
	}
	return w.lock.write(holder)
}

// TryWrite acquires exclusive access without blocking. On contention the
// returned error names the current holder.
func (w *World) TryWrite(holder string) (func(), error) {
	if holder == "" {
		holder = "World.TryWrite"
	}
	return w.lock.tryWrite(holder)
}

// MoveBody transfers ownership of a body into the world's registry. The
// wrapper becomes a non-owning view; the world destroys the body at teardown
// unless TakeBody reclaims it first.
func (w *World) MoveBody(b *Body) (Handle, error) {
	release, err := w.lock.tryWrite("World.MoveBody")
	if err != nil {
		return Handle{}, err
	}
	defer release()
	return w.registry.MoveBody(b), nil
}

// Body returns a non-owning view of a registry-held body, or ErrNotFound if
// the handle is stale.
func (w *World) Body(h Handle) (*Body, error) {
	release, err := w.lock.tryRead("World.Body")
	if err != nil {
		return nil, err
	}
	defer release()
	b, ok := w.registry.Body(h)
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// TakeBody removes a body from the registry and returns it as an owning
// wrapper, or ErrNotFound if the handle is stale.
func (w *World) TakeBody(h Handle) (*Body, error) {
	release, err := w.lock.tryWrite("World.TakeBody")
	if err != nil {
		return nil, err
	}
	defer release()
	b, ok := w.registry.TakeBody(h)
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// MoveCollision transfers ownership of a collision shape into the registry.
func (w *World) MoveCollision(c *Collision) (Handle, error) {
	release, err := w.lock.tryWrite("World.MoveCollision")
	if err != nil {
		return Handle{}, err
	}
	defer release()
	return w.registry.MoveCollision(c), nil
}

// CollisionByHandle returns a non-owning view of a registry-held shape.
func (w *World) CollisionByHandle(h Handle) (*Collision, error) {
	release, err := w.lock.tryRead("World.CollisionByHandle")
	if err != nil {
		return nil, err
	}
	defer release()
	c, ok := w.registry.Collision(h)
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// TakeCollision removes a shape from the registry and returns it owned.
func (w *World) TakeCollision(h Handle) (*Collision, error) {
	release, err := w.lock.tryWrite("World.TakeCollision")
	if err != nil {
		return nil, err
	}
	defer release()
	c, ok := w.registry.TakeCollision(h)
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// MoveJoint transfers ownership of a joint into the registry.
func (w *World) MoveJoint(j *Joint) (Handle, error) {
	release, err := w.lock.tryWrite("World.MoveJoint")
	if err != nil {
		return Handle{}, err
	}
	defer release()
	return w.registry.MoveJoint(j), nil
}

// JointByHandle returns a non-owning view of a registry-held joint.
func (w *World) JointByHandle(h Handle) (*Joint, error) {
	release, err := w.lock.tryRead("World.JointByHandle")
	if err != nil {
		return nil, err
	}
	defer release()
	j, ok := w.registry.Joint(h)
	if !ok {
		return nil, ErrNotFound
	}
	return j, nil
}

// TakeJoint removes a joint from the registry and returns it owned.
func (w *World) TakeJoint(h Handle) (*Joint, error) {
	release, err := w.lock.tryWrite("World.TakeJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, ok := w.registry.TakeJoint(h)
	if !ok {
		return nil, ErrNotFound
	}
	return j, nil
}

// Registry returns the world's registry.
func (w *World) Registry() Registry {
	return w.registry
}

// Close tears down the world and everything still registered in it, in
// dependency order: joints, then bodies, then collision shapes, then
// material groups, then the engine context itself. It blocks until any
// in-flight synchronous step finishes and is idempotent. An unfinished
// AsyncUpdate holds the world's exclusive lock until its Finish is called,
// so finish outstanding async updates before closing.
func (w *World) Close() error {
	release, err := w.lock.write(w.config.Name + ".Close")
	if err != nil {
		if IsDestroyed(err) {
			return nil
		}
		return err
	}

	capi.WaitForUpdateToFinish(w.raw)
	w.flushPendingLocked()

	bodies, collisions, joints := w.registry.Counts()
	if bodies+collisions+joints > 0 {
		logf(LogInfo, "newtongo: %s closing with %d bodies, %d collisions, %d joints still registered",
			w.config.Name, bodies, collisions, joints)
	}

	w.registry.EachJoint(func(_ Handle, j *Joint) bool {
		w.destroyJointNow(j.raw, j.extra)
		return true
	})

	// Engine-side destruction fires body destructors, which unregister
	// their extras and drop registry entries.
	capi.DestroyAllBodies(w.raw)
	w.registry.EachBody(func(_ Handle, b *Body) bool {
		w.destroyBodyNow(b.raw, b.extra)
		return true
	})

	w.registry.EachCollision(func(_ Handle, c *Collision) bool {
		w.destroyCollisionNow(c.raw, c.extra)
		return true
	})

	w.pairsMu.Lock()
	w.pairs = make(map[pairKey]*materialPair)
	w.pairsMu.Unlock()
	capi.MaterialDestroyAllGroupID(w.raw)

	if w.handleID != 0 {
		capi.WorldSetUserData(w.raw, 0)
		handles.Unregister(w.handleID)
		w.handleID = 0
	}
	capi.Destroy(w.raw)
	w.raw = nil

	w.lock.markDestroyed()
	release()
	return nil
}

// queueDestroy records a destroy command for the next flush. Used when an
// object's Close could not take the world's exclusive lock, which is the
// expected state inside step callbacks.
func (w *World) queueDestroy(kind string, run func(*World)) {
	w.pendingMu.Lock()
	w.pending = append(w.pending, destroyCommand{kind: kind, run: run})
	n := len(w.pending)
	w.pendingMu.Unlock()
	logf(LogDebug, "newtongo: %s busy, queued %s destroy (%d pending)", w.config.Name, kind, n)
}

// flushPendingLocked runs queued destroy commands in enqueue order. Caller
// must hold the exclusive lock. Commands queued while flushing (from
// destructor callbacks) are picked up in the same flush.
func (w *World) flushPendingLocked() {
	for {
		w.pendingMu.Lock()
		pending := w.pending
		w.pending = nil
		w.pendingMu.Unlock()
		if len(pending) == 0 {
			return
		}
		for _, cmd := range pending {
			cmd.run(w)
		}
	}
}

// pendingDestroyCount returns the number of queued destroy commands.
func (w *World) pendingDestroyCount() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return len(w.pending)
}

// recordCallbackPanic converts a recovered panic into an error returned by
// the surrounding Step. Call via defer at every trampoline boundary; the
// panic must never unwind into engine frames.
func (w *World) recordCallbackPanic(callback string) {
	r := recover()
	if r == nil {
		return
	}
	err := &CallbackPanicError{Callback: callback, Value: r}
	logf(LogError, "%v", err)
	if w == nil {
		return
	}
	w.panicMu.Lock()
	if w.panicErr == nil {
		w.panicErr = err
	}
	w.panicMu.Unlock()
}

func (w *World) takeCallbackPanic() error {
	w.panicMu.Lock()
	defer w.panicMu.Unlock()
	err := w.panicErr
	w.panicErr = nil
	return err
}
