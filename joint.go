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

// JointKind identifies a joint's constraint type.
type JointKind int32

const (
	JointBall JointKind = iota
	JointSlider
	JointHinge
	JointCorkscrew
	JointUniversal
	JointUpVector
	JointUser
)

func (k JointKind) String() string {
	switch k {
	case JointBall:
		return "ball"
	case JointSlider:
		return "slider"
	case JointHinge:
		return "hinge"
	case JointCorkscrew:
		return "corkscrew"
	case JointUniversal:
		return "universal"
	case JointUpVector:
		return "up-vector"
	case JointUser:
		return "user"
	default:
		return "unknown"
	}
}

// BallCallback is invoked by the engine once per step for a ball joint that
// has one installed.
type BallCallback func(joint *BallJoint, dt time.Duration)

// SubmitConstraintsCallback builds a user joint's constraint rows each step.
type SubmitConstraintsCallback func(joint *UserJoint, dt time.Duration, threadIndex int)

// JointDestructorCallback is invoked exactly once when a joint is destroyed,
// whether by Close, by the engine cascading a linked body's destruction, or
// by world teardown.
type JointDestructorCallback func(joint *Joint)

type jointExtra struct {
	world *World
	joint *Joint
	id    uintptr
	kind  JointKind

	closed    atomic.Bool
	finalized atomic.Bool

	ball       BallCallback
	submit     SubmitConstraintsCallback
	destructor JointDestructorCallback
	name       string
	userData   any
}

func (e *jointExtra) view(unlocked bool) *Joint {
	v := *e.joint
	v.owned = false
	v.unlocked = unlocked
	return &v
}

// Joint is a guard around one Newton constraint connecting a child body to
// an optional parent body (nil parent anchors against the world). The engine
// destroys a joint automatically when either linked body is destroyed; the
// wrapper observes that through the joint destructor and the Go-side guard
// degrades to a no-op.
type Joint struct {
	world    *World
	raw      capi.Joint
	extra    *jointExtra
	owned    bool
	unlocked bool
}

// Typed joint wrappers. The constraint kind is part of the static type, so
// kind-specific operations cannot be called on the wrong joint.
type (
	// BallJoint is a ball-and-socket constraint.
	BallJoint struct{ *Joint }

	// SliderJoint allows translation along one axis.
	SliderJoint struct{ *Joint }

	// HingeJoint allows rotation around one axis.
	HingeJoint struct{ *Joint }

	// CorkscrewJoint allows translation along and rotation around one
	// axis.
	CorkscrewJoint struct{ *Joint }

	// UniversalJoint allows rotation around two perpendicular axes.
	UniversalJoint struct{ *Joint }

	// UpVectorJoint pins a body's orientation to a world-space direction.
	UpVectorJoint struct{ *Joint }

	// UserJoint is a fully user-defined constraint.
	UserJoint struct{ *Joint }
)

var (
	jointCallbacksOnce sync.Once
	jointDestructorPtr uintptr
	ballCallbackPtr    uintptr
	userJointSubmitPtr uintptr
)

func initJointCallbacks() {
	jointCallbacksOnce.Do(func() {
		// NewtonConstraintDestructor: void (*)(const NewtonJoint* me)
		jointDestructorPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer) {
			extra, ok := handles.LookupAs[*jointExtra](capi.JointGetUserData(raw))
			if !ok {
				return
			}
			extra.world.finalizeJoint(raw, extra)
		})

		// NewtonBallCallback: void (*)(const NewtonJoint* ball, dFloat timestep)
		ballCallbackPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer, timestep float32) {
			extra, ok := handles.LookupAs[*jointExtra](capi.JointGetUserData(raw))
			if !ok || extra.ball == nil {
				return
			}
			defer extra.world.recordCallbackPanic("ball joint")
			extra.ball(&BallJoint{extra.view(true)}, secondsToDuration(timestep))
		})

		// NewtonUserBilateralCallback:
		// void (*)(const NewtonJoint* joint, dFloat timestep, int threadIndex)
		userJointSubmitPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer, timestep float32, threadIndex int32) {
			extra, ok := handles.LookupAs[*jointExtra](capi.JointGetUserData(raw))
			if !ok || extra.submit == nil {
				return
			}
			defer extra.world.recordCallbackPanic("user joint")
			extra.submit(&UserJoint{extra.view(true)}, secondsToDuration(timestep), int(threadIndex))
		})
	})
}

func (w *World) wrapJoint(raw capi.Joint, kind JointKind) (*Joint, error) {
	if raw == nil {
		return nil, ErrNotLoaded
	}
	initJointCallbacks()
	extra := &jointExtra{world: w, kind: kind}
	j := &Joint{world: w, raw: raw, extra: extra, owned: true}
	extra.joint = j
	extra.id = handles.Register(extra)
	capi.JointSetUserData(raw, extra.id)
	capi.JointSetDestructor(raw, jointDestructorPtr)
	return j, nil
}

func rawBody(b *Body) capi.Body {
	if b == nil {
		return nil
	}
	return b.raw
}

// CreateBallJoint creates a ball-and-socket joint at the world-space pivot.
// parent may be nil to anchor child against the world.
func (w *World) CreateBallJoint(pivot Vector3, child, parent *Body) (*BallJoint, error) {
	if child == nil || child.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateBallJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, err := w.wrapJoint(capi.ConstraintCreateBall(w.raw, &pivot[0], child.raw, rawBody(parent)), JointBall)
	if err != nil {
		return nil, err
	}
	return &BallJoint{j}, nil
}

// CreateSliderJoint creates a slider joint translating along pin.
func (w *World) CreateSliderJoint(pivot, pin Vector3, child, parent *Body) (*SliderJoint, error) {
	if child == nil || child.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateSliderJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, err := w.wrapJoint(capi.ConstraintCreateSlider(w.raw, &pivot[0], &pin[0], child.raw, rawBody(parent)), JointSlider)
	if err != nil {
		return nil, err
	}
	return &SliderJoint{j}, nil
}

// CreateHingeJoint creates a hinge joint rotating around pin.
func (w *World) CreateHingeJoint(pivot, pin Vector3, child, parent *Body) (*HingeJoint, error) {
	if child == nil || child.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateHingeJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, err := w.wrapJoint(capi.ConstraintCreateHinge(w.raw, &pivot[0], &pin[0], child.raw, rawBody(parent)), JointHinge)
	if err != nil {
		return nil, err
	}
	return &HingeJoint{j}, nil
}

// CreateCorkscrewJoint creates a corkscrew joint along pin.
func (w *World) CreateCorkscrewJoint(pivot, pin Vector3, child, parent *Body) (*CorkscrewJoint, error) {
	if child == nil || child.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateCorkscrewJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, err := w.wrapJoint(capi.ConstraintCreateCorkscrew(w.raw, &pivot[0], &pin[0], child.raw, rawBody(parent)), JointCorkscrew)
	if err != nil {
		return nil, err
	}
	return &CorkscrewJoint{j}, nil
}

// CreateUniversalJoint creates a universal joint around two perpendicular
// pins.
func (w *World) CreateUniversalJoint(pivot, pin0, pin1 Vector3, child, parent *Body) (*UniversalJoint, error) {
	if child == nil || child.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateUniversalJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, err := w.wrapJoint(capi.ConstraintCreateUniversal(w.raw, &pivot[0], &pin0[0], &pin1[0], child.raw, rawBody(parent)), JointUniversal)
	if err != nil {
		return nil, err
	}
	return &UniversalJoint{j}, nil
}

// CreateUpVectorJoint pins a body's orientation to the world-space direction
// pin.
func (w *World) CreateUpVectorJoint(pin Vector3, body *Body) (*UpVectorJoint, error) {
	if body == nil || body.raw == nil {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateUpVectorJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	j, err := w.wrapJoint(capi.ConstraintCreateUpVector(w.raw, &pin[0], body.raw), JointUpVector)
	if err != nil {
		return nil, err
	}
	return &UpVectorJoint{j}, nil
}

// CreateUserJoint creates a fully user-defined joint with up to maxDOF
// constrained degrees of freedom. submit runs every step to build the
// joint's constraint rows.
func (w *World) CreateUserJoint(maxDOF int, submit SubmitConstraintsCallback, child, parent *Body) (*UserJoint, error) {
	if child == nil || child.raw == nil {
		return nil, ErrNotFound
	}
	if submit == nil || maxDOF <= 0 {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateUserJoint")
	if err != nil {
		return nil, err
	}
	defer release()
	initJointCallbacks()
	j, err := w.wrapJoint(capi.ConstraintCreateUserJoint(w.raw, int32(maxDOF), userJointSubmitPtr, child.raw, rawBody(parent)), JointUser)
	if err != nil {
		return nil, err
	}
	j.extra.submit = submit
	return &UserJoint{j}, nil
}

// destroyJointNow destroys the engine joint and runs cleanup. Caller must
// hold the world's exclusive lock.
func (w *World) destroyJointNow(raw capi.Joint, extra *jointExtra) {
	if raw == nil {
		return
	}
	capi.DestroyJoint(w.raw, raw)
	w.finalizeJoint(raw, extra)
}

// finalizeJoint runs once per joint: fires the user destroy callback, drops
// the registry entry, and releases the extension record.
func (w *World) finalizeJoint(raw capi.Joint, extra *jointExtra) {
	if extra == nil || !extra.finalized.CompareAndSwap(false, true) {
		return
	}
	extra.closed.Store(true)
	if extra.destructor != nil {
		func() {
			defer w.recordCallbackPanic("joint destructor")
			extra.destructor(extra.view(true))
		}()
	}
	w.registry.TakeJoint(HandleFromPointer(uintptr(raw)))
	if extra.id != 0 {
		handles.Unregister(extra.id)
		extra.id = 0
	}
}

// Close destroys the joint if this wrapper owns it, firing the destroy
// callback exactly once. Deferred to the next step when the world is busy.
// Idempotent, and a no-op if the engine already destroyed the joint through
// a linked body's destruction.
func (j *Joint) Close() error {
	if j == nil || j.raw == nil || !j.owned {
		return nil
	}
	if j.extra != nil && !j.extra.closed.CompareAndSwap(false, true) {
		return nil
	}

	release, err := j.world.lock.tryWrite("Joint.Close")
	if err != nil {
		if IsDestroyed(err) {
			return nil
		}
		raw, extra := j.raw, j.extra
		j.world.queueDestroy("joint", func(w *World) {
			w.destroyJointNow(raw, extra)
		})
		return nil
	}
	defer release()
	j.world.destroyJointNow(j.raw, j.extra)
	return nil
}

// Handle returns the joint's pointer-identity handle.
func (j *Joint) Handle() Handle {
	return HandleFromPointer(uintptr(j.raw))
}

// Kind returns the joint's constraint type.
func (j *Joint) Kind() JointKind {
	if j.extra == nil {
		return JointUser
	}
	return j.extra.kind
}

// World returns the owning world.
func (j *Joint) World() *World {
	return j.world
}

// Owned reports whether closing this wrapper destroys the joint.
func (j *Joint) Owned() bool {
	return j.owned
}

func (j *Joint) acquireRead(op string) (func(), error) {
	if j == nil || j.raw == nil {
		return nil, ErrDestroyed
	}
	if j.extra != nil && j.extra.closed.Load() {
		return nil, ErrDestroyed
	}
	if j.unlocked {
		return noopRelease, nil
	}
	return j.world.lock.tryRead(op)
}

func (j *Joint) acquireWrite(op string) (func(), error) {
	if j == nil || j.raw == nil {
		return nil, ErrDestroyed
	}
	if j.extra != nil && j.extra.closed.Load() {
		return nil, ErrDestroyed
	}
	if j.unlocked {
		return noopRelease, nil
	}
	return j.world.lock.tryWrite(op)
}

// Child returns a non-owning view of the joint's child body.
func (j *Joint) Child() (*Body, error) {
	release, err := j.acquireRead("Joint.Child")
	if err != nil {
		return nil, err
	}
	defer release()
	raw := capi.JointGetBody0(j.raw)
	if raw == nil {
		return nil, ErrNotFound
	}
	return j.world.borrowBody(raw, j.unlocked), nil
}

// Parent returns a non-owning view of the joint's parent body, or
// ErrNotFound for world-anchored joints.
func (j *Joint) Parent() (*Body, error) {
	release, err := j.acquireRead("Joint.Parent")
	if err != nil {
		return nil, err
	}
	defer release()
	raw := capi.JointGetBody1(j.raw)
	if raw == nil {
		return nil, ErrNotFound
	}
	return j.world.borrowBody(raw, j.unlocked), nil
}

// Stiffness returns the joint stiffness in [0, 1].
func (j *Joint) Stiffness() (float32, error) {
	release, err := j.acquireRead("Joint.Stiffness")
	if err != nil {
		return 0, err
	}
	defer release()
	return capi.JointGetStiffness(j.raw), nil
}

// SetStiffness sets the joint stiffness in [0, 1].
func (j *Joint) SetStiffness(stiffness float32) error {
	release, err := j.acquireWrite("Joint.SetStiffness")
	if err != nil {
		return err
	}
	defer release()
	capi.JointSetStiffness(j.raw, stiffness)
	return nil
}

// LinkedCollision reports whether the two linked bodies collide with each
// other.
func (j *Joint) LinkedCollision() (bool, error) {
	release, err := j.acquireRead("Joint.LinkedCollision")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.JointGetCollisionState(j.raw) != 0, nil
}

// SetLinkedCollision enables or disables collision between the linked
// bodies.
func (j *Joint) SetLinkedCollision(enabled bool) error {
	release, err := j.acquireWrite("Joint.SetLinkedCollision")
	if err != nil {
		return err
	}
	defer release()
	capi.JointSetCollisionState(j.raw, boolToInt32(enabled))
	return nil
}

// Active reports whether the joint participated in the last step.
func (j *Joint) Active() (bool, error) {
	release, err := j.acquireRead("Joint.Active")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.JointIsActive(j.raw) != 0, nil
}

// SetDestroyCallback installs a callback fired exactly once when the joint
// is destroyed.
func (j *Joint) SetDestroyCallback(cb JointDestructorCallback) error {
	release, err := j.acquireWrite("Joint.SetDestroyCallback")
	if err != nil {
		return err
	}
	defer release()
	if j.extra == nil {
		return ErrDestroyed
	}
	j.extra.destructor = cb
	return nil
}

// SetName sets the joint's debug name.
func (j *Joint) SetName(name string) {
	if j.extra != nil {
		j.extra.name = name
	}
}

// Name returns the joint's debug name.
func (j *Joint) Name() string {
	if j.extra == nil {
		return ""
	}
	return j.extra.name
}

// SetUserData attaches an arbitrary payload to the joint.
func (j *Joint) SetUserData(v any) {
	if j.extra != nil {
		j.extra.userData = v
	}
}

// UserData returns the payload attached with SetUserData.
func (j *Joint) UserData() any {
	if j.extra == nil {
		return nil
	}
	return j.extra.userData
}

// SetCallback installs a per-step callback on the ball joint. Pass nil to
// clear it.
func (j *BallJoint) SetCallback(cb BallCallback) error {
	release, err := j.acquireWrite("BallJoint.SetCallback")
	if err != nil {
		return err
	}
	defer release()
	if j.extra == nil {
		return ErrDestroyed
	}
	j.extra.ball = cb
	if cb == nil {
		capi.BallSetUserCallback(j.raw, 0)
		return nil
	}
	initJointCallbacks()
	capi.BallSetUserCallback(j.raw, ballCallbackPtr)
	return nil
}

// SetConeLimits restricts the ball joint to a cone around pin with the given
// maximum cone and twist angles in radians.
func (j *BallJoint) SetConeLimits(pin Vector3, maxCone, maxTwist float32) error {
	release, err := j.acquireWrite("BallJoint.SetConeLimits")
	if err != nil {
		return err
	}
	defer release()
	capi.BallSetConeLimits(j.raw, &pin[0], maxCone, maxTwist)
	return nil
}

// Angle returns the ball joint's relative Euler angles.
func (j *BallJoint) Angle() (Vector3, error) {
	release, err := j.acquireRead("BallJoint.Angle")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BallGetJointAngle(j.raw, &v[0])
	return v, nil
}

// Omega returns the ball joint's relative angular velocity.
func (j *BallJoint) Omega() (Vector3, error) {
	release, err := j.acquireRead("BallJoint.Omega")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BallGetJointOmega(j.raw, &v[0])
	return v, nil
}

// Force returns the reaction force applied by the ball joint.
func (j *BallJoint) Force() (Vector3, error) {
	release, err := j.acquireRead("BallJoint.Force")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.BallGetJointForce(j.raw, &v[0])
	return v, nil
}

// Pin returns the up-vector joint's pinned direction.
func (j *UpVectorJoint) Pin() (Vector3, error) {
	release, err := j.acquireRead("UpVectorJoint.Pin")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.UpVectorGetPin(j.raw, &v[0])
	return v, nil
}

// SetPin sets the up-vector joint's pinned direction.
func (j *UpVectorJoint) SetPin(pin Vector3) error {
	release, err := j.acquireWrite("UpVectorJoint.SetPin")
	if err != nil {
		return err
	}
	defer release()
	capi.UpVectorSetPin(j.raw, &pin[0])
	return nil
}
