//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/newtongo/capi"
	"github.com/obinnaokechukwu/newtongo/internal/handles"
)

// BodyType distinguishes dynamic from kinematic bodies.
type BodyType int32

const (
	// BodyDynamic bodies are integrated by the solver.
	BodyDynamic BodyType = capi.DynamicBody

	// BodyKinematic bodies are moved by the application and affect
	// dynamic bodies without being affected themselves.
	BodyKinematic BodyType = capi.KinematicBody
)

// ForceAndTorqueCallback is invoked by the engine once per step for each
// active dynamic body, and is where forces for the step must be applied.
type ForceAndTorqueCallback func(body *Body, dt time.Duration, threadIndex int)

// TransformCallback is invoked when the engine moves a body.
type TransformCallback func(body *Body, matrix Matrix4, threadIndex int)

// BodyDestructorCallback is invoked exactly once when a body is destroyed,
// before its memory is released.
type BodyDestructorCallback func(body *Body)

// bodyExtra is the per-body extension record. One allocation per body; its
// handle id is what crosses the C boundary as the body's user data, never a
// Go pointer.
type bodyExtra struct {
	world *World
	body  *Body
	id    uintptr

	// closed is set when a destroy has been initiated (immediately or
	// queued); finalized when wrapper-side cleanup ran. The two flags are
	// what make double destroys impossible regardless of interleaving.
	closed    atomic.Bool
	finalized atomic.Bool

	forceAndTorque ForceAndTorqueCallback
	transform      TransformCallback
	destructor     BodyDestructorCallback
	name           string
	userData       any
}

// view returns a non-owning copy of the canonical wrapper. Callback
// trampolines hand out unlocked views: the step already holds the world
// exclusively, so accessors must not try to lock again.
func (e *bodyExtra) view(unlocked bool) *Body {
	v := *e.body
	v.owned = false
	v.unlocked = unlocked
	return &v
}

// Body is a guard around one Newton rigid body. A body belongs to exactly
// one world and references one collision shape, swappable at runtime.
//
// Closing an owning Body destroys the engine object; closing a borrowed view
// is a no-op. If Close is called while the world is exclusively locked, for
// example from inside a force-and-torque callback during Step, the destroy
// is queued and runs before the next step.
type Body struct {
	world    *World
	raw      capi.Body
	extra    *bodyExtra
	owned    bool
	unlocked bool
}

var (
	bodyCallbacksOnce sync.Once
	forceAndTorquePtr uintptr
	bodyTransformPtr  uintptr
	bodyDestructorPtr uintptr
)

func initBodyCallbacks() {
	bodyCallbacksOnce.Do(func() {
		// NewtonApplyForceAndTorque:
		// void (*)(const NewtonBody* body, dFloat timestep, int threadIndex)
		forceAndTorquePtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer, timestep float32, threadIndex int32) {
			extra, ok := handles.LookupAs[*bodyExtra](capi.BodyGetUserData(raw))
			if !ok || extra.forceAndTorque == nil {
				return
			}
			defer extra.world.recordCallbackPanic("force-and-torque")
			extra.forceAndTorque(extra.view(true), secondsToDuration(timestep), int(threadIndex))
		})

		// NewtonSetTransform:
		// void (*)(const NewtonBody* body, const dFloat* matrix, int threadIndex)
		bodyTransformPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer, matrix *float32, threadIndex int32) {
			extra, ok := handles.LookupAs[*bodyExtra](capi.BodyGetUserData(raw))
			if !ok || extra.transform == nil {
				return
			}
			defer extra.world.recordCallbackPanic("transform")
			var m Matrix4
			copy(m[:], unsafe.Slice(matrix, 16))
			extra.transform(extra.view(true), m, int(threadIndex))
		})

		// NewtonBodyDestructor: void (*)(const NewtonBody* body)
		bodyDestructorPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer) {
			extra, ok := handles.LookupAs[*bodyExtra](capi.BodyGetUserData(raw))
			if !ok {
				return
			}
			extra.world.finalizeBody(raw, extra)
		})
	})
}

// CreateDynamicBody creates a solver-integrated body from a collision shape
// and an initial transform. Give it mass with SetMassProperties; a zero-mass
// dynamic body is static.
func (w *World) CreateDynamicBody(shape *Collision, matrix Matrix4) (*Body, error) {
	return w.createBody(BodyDynamic, shape, matrix)
}

// CreateKinematicBody creates an application-driven body from a collision
// shape and an initial transform.
func (w *World) CreateKinematicBody(shape *Collision, matrix Matrix4) (*Body, error) {
	return w.createBody(BodyKinematic, shape, matrix)
}

func (w *World) createBody(t BodyType, shape *Collision, matrix Matrix4) (*Body, error) {
	if shape == nil || shape.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateBody")
	if err != nil {
		return nil, err
	}
	defer release()

	var raw capi.Body
	switch t {
	case BodyKinematic:
		raw = capi.CreateKinematicBody(w.raw, shape.raw, &matrix[0])
	default:
		raw = capi.CreateDynamicBody(w.raw, shape.raw, &matrix[0])
	}
	if raw == nil {
		return nil, ErrNotLoaded
	}

	initBodyCallbacks()
	extra := &bodyExtra{world: w}
	b := &Body{world: w, raw: raw, extra: extra, owned: true}
	extra.body = b
	extra.id = handles.Register(extra)
	capi.BodySetUserData(raw, extra.id)
	capi.BodySetDestructorCallback(raw, bodyDestructorPtr)

	return b, nil
}

// borrowBody reconstructs a non-owning wrapper view for a raw body pointer,
// preferring the canonical wrapper stored in the body's extension record.
func (w *World) borrowBody(raw capi.Body, unlocked bool) *Body {
	if raw == nil {
		return nil
	}
	if extra, ok := handles.LookupAs[*bodyExtra](capi.BodyGetUserData(raw)); ok {
		return extra.view(unlocked)
	}
	return &Body{world: w, raw: raw, unlocked: unlocked}
}

// destroyBodyNow destroys the engine body and runs wrapper cleanup. Caller
// must hold the world's exclusive lock.
func (w *World) destroyBodyNow(raw capi.Body, extra *bodyExtra) {
	if raw == nil {
		return
	}
	capi.DestroyBody(raw)
	// The engine destructor already finalized when the library is live;
	// this is the fallback path.
	w.finalizeBody(raw, extra)
}

// finalizeBody runs once per body: fires the user destructor, drops the
// registry entry, and releases the extension record.
func (w *World) finalizeBody(raw capi.Body, extra *bodyExtra) {
	if extra == nil || !extra.finalized.CompareAndSwap(false, true) {
		return
	}
	extra.closed.Store(true)
	if extra.destructor != nil {
		func() {
			defer w.recordCallbackPanic("body destructor")
			extra.destructor(extra.view(true))
		}()
	}
	w.registry.TakeBody(HandleFromPointer(uintptr(raw)))
	if extra.id != 0 {
		handles.Unregister(extra.id)
		extra.id = 0
	}
}

// Close destroys the body if this wrapper owns it. When the world is busy,
// typically because Close was called from inside a step callback, the
// destroy is queued and completes before the next Step returns. Closing a
// non-owning view is a no-op. Idempotent.
func (b *Body) Close() error {
	if b == nil || b.raw == nil || !b.owned {
		return nil
	}
	if b.extra != nil && !b.extra.closed.CompareAndSwap(false, true) {
		return nil
	}

	release, err := b.world.lock.tryWrite("Body.Close")
	if err != nil {
		if IsDestroyed(err) {
			return nil
		}
		raw, extra := b.raw, b.extra
		b.world.queueDestroy("body", func(w *World) {
			w.destroyBodyNow(raw, extra)
		})
		return nil
	}
	defer release()
	b.world.destroyBodyNow(b.raw, b.extra)
	return nil
}

// Handle returns the body's pointer-identity handle.
func (b *Body) Handle() Handle {
	return HandleFromPointer(uintptr(b.raw))
}

// World returns the owning world.
func (b *Body) World() *World {
	return b.world
}

// Owned reports whether closing this wrapper destroys the body.
func (b *Body) Owned() bool {
	return b.owned
}

func noopRelease() {}

func (b *Body) acquireRead(op string) (func(), error) {
	if b == nil || b.raw == nil {
		return nil, ErrDestroyed
	}
	if b.extra != nil && b.extra.closed.Load() {
		return nil, ErrDestroyed
	}
	if b.unlocked {
		return noopRelease, nil
	}
	return b.world.lock.tryRead(op)
}

func (b *Body) acquireWrite(op string) (func(), error) {
	if b == nil || b.raw == nil {
		return nil, ErrDestroyed
	}
	if b.extra != nil && b.extra.closed.Load() {
		return nil, ErrDestroyed
	}
	if b.unlocked {
		return noopRelease, nil
	}
	return b.world.lock.tryWrite(op)
}

// Type returns BodyDynamic or BodyKinematic.
func (b *Body) Type() (BodyType, error) {
	release, err := b.acquireRead("Body.Type")
	if err != nil {
		return 0, err
	}
	defer release()
	return BodyType(capi.BodyGetType(b.raw)), nil
}

// Matrix returns the body's transform. The value read back is bit-identical
// to the last SetMatrix; no conversion happens at the boundary.
func (b *Body) Matrix() (Matrix4, error) {
	release, err := b.acquireRead("Body.Matrix")
	if err != nil {
		return Matrix4{}, err
	}
	defer release()
	var m Matrix4
	capi.BodyGetMatrix(b.raw, &m[0])
	return m, nil
}

// SetMatrix sets the body's transform.
func (b *Body) SetMatrix(m Matrix4) error {
	release, err := b.acquireWrite("Body.SetMatrix")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetMatrix(b.raw, &m[0])
	return nil
}

// Position returns the body's world-space position.
func (b *Body) Position() (Vector3, error) {
	release, err := b.acquireRead("Body.Position")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var p [4]float32
	capi.BodyGetPosition(b.raw, &p[0])
	return Vector3{p[0], p[1], p[2]}, nil
}

// Rotation returns the body's orientation.
func (b *Body) Rotation() (Quaternion, error) {
	release, err := b.acquireRead("Body.Rotation")
	if err != nil {
		return Quaternion{}, err
	}
	defer release()
	var q [4]float32
	capi.BodyGetRotation(b.raw, &q[0])
	return Quaternion{W: q[0], V: Vector3{q[1], q[2], q[3]}}, nil
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() (Vector3, error) {
	release, err := b.acquireRead("Body.Velocity")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BodyGetVelocity(b.raw, &v[0])
	return v, nil
}

// SetVelocity sets the body's linear velocity.
func (b *Body) SetVelocity(v Vector3) error {
	release, err := b.acquireWrite("Body.SetVelocity")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetVelocity(b.raw, &v[0])
	return nil
}

// Omega returns the body's angular velocity.
func (b *Body) Omega() (Vector3, error) {
	release, err := b.acquireRead("Body.Omega")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BodyGetOmega(b.raw, &v[0])
	return v, nil
}

// SetOmega sets the body's angular velocity.
func (b *Body) SetOmega(v Vector3) error {
	release, err := b.acquireWrite("Body.SetOmega")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetOmega(b.raw, &v[0])
	return nil
}

// Force returns the net force accumulated for the current step.
func (b *Body) Force() (Vector3, error) {
	release, err := b.acquireRead("Body.Force")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BodyGetForce(b.raw, &v[0])
	return v, nil
}

// SetForce sets the net force for the current step. Only meaningful inside a
// force-and-torque callback.
func (b *Body) SetForce(v Vector3) error {
	release, err := b.acquireWrite("Body.SetForce")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetForce(b.raw, &v[0])
	return nil
}

// AddForce accumulates force for the current step. Only meaningful inside a
// force-and-torque callback.
func (b *Body) AddForce(v Vector3) error {
	release, err := b.acquireWrite("Body.AddForce")
	if err != nil {
		return err
	}
	defer release()
	capi.BodyAddForce(b.raw, &v[0])
	return nil
}

// Torque returns the net torque accumulated for the current step.
func (b *Body) Torque() (Vector3, error) {
	release, err := b.acquireRead("Body.Torque")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BodyGetTorque(b.raw, &v[0])
	return v, nil
}

// SetTorque sets the net torque for the current step. Only meaningful inside
// a force-and-torque callback.
func (b *Body) SetTorque(v Vector3) error {
	release, err := b.acquireWrite("Body.SetTorque")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetTorque(b.raw, &v[0])
	return nil
}

// AddTorque accumulates torque for the current step.
func (b *Body) AddTorque(v Vector3) error {
	release, err := b.acquireWrite("Body.AddTorque")
	if err != nil {
		return err
	}
	defer release()
	capi.BodyAddTorque(b.raw, &v[0])
	return nil
}

// AddImpulse applies an instantaneous velocity change at a world-space
// point.
func (b *Body) AddImpulse(deltaVelocity, point Vector3, dt time.Duration) error {
	release, err := b.acquireWrite("Body.AddImpulse")
	if err != nil {
		return err
	}
	defer release()
	capi.BodyAddImpulse(b.raw, &deltaVelocity[0], &point[0], durationToSeconds(dt))
	return nil
}

// SetMassMatrix sets the body's mass and principal moments of inertia.
func (b *Body) SetMassMatrix(mass float32, inertia Vector3) error {
	release, err := b.acquireWrite("Body.SetMassMatrix")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetMassMatrix(b.raw, mass, inertia[0], inertia[1], inertia[2])
	return nil
}

// SetMassProperties sets the body's mass and computes inertia from the given
// collision shape's geometry.
func (b *Body) SetMassProperties(mass float32, shape *Collision) error {
	if shape == nil || shape.raw == nil {
		return ErrNotFound
	}
	release, err := b.acquireWrite("Body.SetMassProperties")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetMassProperties(b.raw, mass, shape.raw)
	return nil
}

// Mass returns the body's mass and principal moments of inertia.
func (b *Body) Mass() (mass float32, inertia Vector3, err error) {
	release, err := b.acquireRead("Body.Mass")
	if err != nil {
		return 0, Vector3{}, err
	}
	defer release()
	capi.BodyGetMass(b.raw, &mass, &inertia[0], &inertia[1], &inertia[2])
	return mass, inertia, nil
}

// InvMass returns the body's inverse mass and inverse principal inertia.
func (b *Body) InvMass() (invMass float32, invInertia Vector3, err error) {
	release, err := b.acquireRead("Body.InvMass")
	if err != nil {
		return 0, Vector3{}, err
	}
	defer release()
	capi.BodyGetInvMass(b.raw, &invMass, &invInertia[0], &invInertia[1], &invInertia[2])
	return invMass, invInertia, nil
}

// LinearDamping returns the body's linear damping coefficient.
func (b *Body) LinearDamping() (float32, error) {
	release, err := b.acquireRead("Body.LinearDamping")
	if err != nil {
		return 0, err
	}
	defer release()
	return capi.BodyGetLinearDamping(b.raw), nil
}

// SetLinearDamping sets the body's linear damping coefficient.
func (b *Body) SetLinearDamping(damping float32) error {
	release, err := b.acquireWrite("Body.SetLinearDamping")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetLinearDamping(b.raw, damping)
	return nil
}

// AngularDamping returns the per-axis angular damping.
func (b *Body) AngularDamping() (Vector3, error) {
	release, err := b.acquireRead("Body.AngularDamping")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BodyGetAngularDamping(b.raw, &v[0])
	return v, nil
}

// SetAngularDamping sets the per-axis angular damping.
func (b *Body) SetAngularDamping(v Vector3) error {
	release, err := b.acquireWrite("Body.SetAngularDamping")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetAngularDamping(b.raw, &v[0])
	return nil
}

// Sleeping reports whether the body is asleep.
func (b *Body) Sleeping() (bool, error) {
	release, err := b.acquireRead("Body.Sleeping")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.BodyGetSleepState(b.raw) == capi.BodySleeping, nil
}

// SetSleeping puts the body to sleep or wakes it.
func (b *Body) SetSleeping(sleeping bool) error {
	release, err := b.acquireWrite("Body.SetSleeping")
	if err != nil {
		return err
	}
	defer release()
	state := int32(capi.BodyAwake)
	if sleeping {
		state = capi.BodySleeping
	}
	capi.BodySetSleepState(b.raw, state)
	return nil
}

// AutoSleep reports whether the engine may put the body to sleep.
func (b *Body) AutoSleep() (bool, error) {
	release, err := b.acquireRead("Body.AutoSleep")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.BodyGetAutoSleep(b.raw) != 0, nil
}

// SetAutoSleep controls whether the engine may put the body to sleep.
func (b *Body) SetAutoSleep(enabled bool) error {
	release, err := b.acquireWrite("Body.SetAutoSleep")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetAutoSleep(b.raw, boolToInt32(enabled))
	return nil
}

// Frozen reports whether the body is frozen out of the simulation.
func (b *Body) Frozen() (bool, error) {
	release, err := b.acquireRead("Body.Frozen")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.BodyGetFreezeState(b.raw) == capi.BodyFrozen, nil
}

// SetFrozen freezes or thaws the body.
func (b *Body) SetFrozen(frozen bool) error {
	release, err := b.acquireWrite("Body.SetFrozen")
	if err != nil {
		return err
	}
	defer release()
	state := int32(capi.BodyUnfrozen)
	if frozen {
		state = capi.BodyFrozen
	}
	capi.BodySetFreezeState(b.raw, state)
	return nil
}

// ContinuousCollision reports whether swept collision is enabled.
func (b *Body) ContinuousCollision() (bool, error) {
	release, err := b.acquireRead("Body.ContinuousCollision")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.BodyGetContinuousCollisionMode(b.raw) != 0, nil
}

// SetContinuousCollision enables swept collision for fast-moving bodies.
func (b *Body) SetContinuousCollision(enabled bool) error {
	release, err := b.acquireWrite("Body.SetContinuousCollision")
	if err != nil {
		return err
	}
	defer release()
	var state uint32
	if enabled {
		state = 1
	}
	capi.BodySetContinuousCollisionMode(b.raw, state)
	return nil
}

// Collidable reports whether the body collides with others.
func (b *Body) Collidable() (bool, error) {
	release, err := b.acquireRead("Body.Collidable")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.BodyGetCollidable(b.raw) != 0, nil
}

// SetCollidable enables or disables collision for the body.
func (b *Body) SetCollidable(collidable bool) error {
	release, err := b.acquireWrite("Body.SetCollidable")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetCollidable(b.raw, boolToInt32(collidable))
	return nil
}

// MaterialGroup returns the body's material group.
func (b *Body) MaterialGroup() (GroupID, error) {
	release, err := b.acquireRead("Body.MaterialGroup")
	if err != nil {
		return 0, err
	}
	defer release()
	return GroupID(capi.BodyGetMaterialGroupID(b.raw)), nil
}

// SetMaterialGroup assigns the body to a material group.
func (b *Body) SetMaterialGroup(id GroupID) error {
	release, err := b.acquireWrite("Body.SetMaterialGroup")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetMaterialGroupID(b.raw, int32(id))
	return nil
}

// AABB returns the body's world-space bounding box.
func (b *Body) AABB() (min, max Vector3, err error) {
	release, err := b.acquireRead("Body.AABB")
	if err != nil {
		return Vector3{}, Vector3{}, err
	}
	defer release()
	capi.BodyGetAABB(b.raw, &min[0], &max[0])
	return min, max, nil
}

// Collision returns a non-owning view of the body's current shape.
func (b *Body) Collision() (*Collision, error) {
	release, err := b.acquireRead("Body.Collision")
	if err != nil {
		return nil, err
	}
	defer release()
	raw := capi.BodyGetCollision(b.raw)
	if raw == nil {
		return nil, ErrNotFound
	}
	return b.world.borrowCollision(raw), nil
}

// SetCollision swaps the body's collision shape. The body keeps referencing,
// not owning, the shape.
func (b *Body) SetCollision(shape *Collision) error {
	if shape == nil || shape.raw == nil {
		return ErrNotFound
	}
	release, err := b.acquireWrite("Body.SetCollision")
	if err != nil {
		return err
	}
	defer release()
	capi.BodySetCollision(b.raw, shape.raw)
	return nil
}

// SetForceAndTorqueCallback installs the per-step force callback. Pass nil
// to clear it. The closure runs on the engine's stepping thread while the
// world is exclusively held; views it receives are pre-authorized and need
// no locking.
func (b *Body) SetForceAndTorqueCallback(cb ForceAndTorqueCallback) error {
	release, err := b.acquireWrite("Body.SetForceAndTorqueCallback")
	if err != nil {
		return err
	}
	defer release()
	if b.extra == nil {
		return ErrDestroyed
	}
	b.extra.forceAndTorque = cb
	if cb == nil {
		capi.BodySetForceAndTorqueCallback(b.raw, 0)
		return nil
	}
	initBodyCallbacks()
	capi.BodySetForceAndTorqueCallback(b.raw, forceAndTorquePtr)
	return nil
}

// SetTransformCallback installs the transform-changed callback. Pass nil to
// clear it.
func (b *Body) SetTransformCallback(cb TransformCallback) error {
	release, err := b.acquireWrite("Body.SetTransformCallback")
	if err != nil {
		return err
	}
	defer release()
	if b.extra == nil {
		return ErrDestroyed
	}
	b.extra.transform = cb
	if cb == nil {
		capi.BodySetTransformCallback(b.raw, 0)
		return nil
	}
	initBodyCallbacks()
	capi.BodySetTransformCallback(b.raw, bodyTransformPtr)
	return nil
}

// SetDestructorCallback installs a callback fired exactly once when the body
// is destroyed.
func (b *Body) SetDestructorCallback(cb BodyDestructorCallback) error {
	release, err := b.acquireWrite("Body.SetDestructorCallback")
	if err != nil {
		return err
	}
	defer release()
	if b.extra == nil {
		return ErrDestroyed
	}
	b.extra.destructor = cb
	return nil
}

// SetName sets the body's debug name.
func (b *Body) SetName(name string) {
	if b.extra != nil {
		b.extra.name = name
	}
}

// Name returns the body's debug name.
func (b *Body) Name() string {
	if b.extra == nil {
		return ""
	}
	return b.extra.name
}

// SetUserData attaches an arbitrary payload to the body.
func (b *Body) SetUserData(v any) {
	if b.extra != nil {
		b.extra.userData = v
	}
}

// UserData returns the payload attached with SetUserData.
func (b *Body) UserData() any {
	if b.extra == nil {
		return nil
	}
	return b.extra.userData
}

func boolToInt32(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
