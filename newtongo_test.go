//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"testing"
	"time"
)

// requireEngine skips the test when the Newton shared library is not
// installed. The bookkeeping tests in the other files run without it.
func requireEngine(t *testing.T) {
	t.Helper()
	if err := Init(); err != nil {
		t.Skipf("Newton library not available: %v", err)
	}
}

func newEngineWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	requireEngine(t)
	w, err := NewWorld(opts...)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

const stepDt = time.Second / 60

func TestInit(t *testing.T) {
	requireEngine(t)
	if !Loaded() {
		t.Error("Loaded returned false after Init")
	}
	if v := Version(); v == "" {
		t.Error("Version is empty after Init")
	} else {
		t.Logf("Newton %s, %d bytes in use", v, EngineMemoryUsed())
	}
}

func TestWorldLifecycle(t *testing.T) {
	w := newEngineWorld(t, WithName("lifecycle"), WithThreads(2))

	if n, err := w.BodyCount(); err != nil || n != 0 {
		t.Errorf("BodyCount = %d, %v; want 0, nil", n, err)
	}
	if err := w.Step(stepDt); err != nil {
		t.Errorf("empty Step failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestGravityDrop(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateBox(1, 1, 1, nil)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	defer shape.Close()

	body, err := w.CreateDynamicBody(shape, TranslationMatrix(Vector3{0, 10, 0}))
	if err != nil {
		t.Fatalf("CreateDynamicBody failed: %v", err)
	}
	defer body.Close()

	if err := body.SetMassProperties(1, shape); err != nil {
		t.Fatalf("SetMassProperties failed: %v", err)
	}
	if err := body.SetForceAndTorqueCallback(func(b *Body, dt time.Duration, threadIndex int) {
		b.SetForce(Vector3{0, -9.8, 0})
	}); err != nil {
		t.Fatalf("SetForceAndTorqueCallback failed: %v", err)
	}

	for i := 0; i < 60; i++ {
		if err := w.Step(stepDt); err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}

	pos, err := body.Position()
	if err != nil {
		t.Fatalf("Position failed: %v", err)
	}
	if pos[1] >= 10 {
		t.Errorf("body did not fall: y = %v", pos[1])
	}
	vel, err := body.Velocity()
	if err != nil {
		t.Fatalf("Velocity failed: %v", err)
	}
	if vel[1] >= 0 {
		t.Errorf("body velocity not downward: %v", vel[1])
	}
	t.Logf("after 1s: y=%v vy=%v", pos[1], vel[1])
}

func TestTransformRoundTrip(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateSphere(0.5, nil)
	if err != nil {
		t.Fatalf("CreateSphere failed: %v", err)
	}
	defer shape.Close()

	body, err := w.CreateDynamicBody(shape, Identity())
	if err != nil {
		t.Fatalf("CreateDynamicBody failed: %v", err)
	}
	defer body.Close()

	// Deliberately awkward floats; the matrix must come back bit-exact
	// because nothing converts it at the boundary.
	in := TranslationMatrix(Vector3{0.1, 1.0 / 3.0, -2.7e-3})
	if err := body.SetMatrix(in); err != nil {
		t.Fatalf("SetMatrix failed: %v", err)
	}
	out, err := body.Matrix()
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if out != in {
		t.Errorf("matrix round trip altered values:\n in=%v\nout=%v", in, out)
	}
}

func TestCallbackPanicReturnedFromStep(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateBox(1, 1, 1, nil)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	defer shape.Close()

	body, err := w.CreateDynamicBody(shape, Identity())
	if err != nil {
		t.Fatalf("CreateDynamicBody failed: %v", err)
	}
	defer body.Close()
	if err := body.SetMassProperties(1, shape); err != nil {
		t.Fatalf("SetMassProperties failed: %v", err)
	}
	if err := body.SetForceAndTorqueCallback(func(*Body, time.Duration, int) {
		panic("user bug")
	}); err != nil {
		t.Fatalf("SetForceAndTorqueCallback failed: %v", err)
	}

	err = w.Step(stepDt)
	var cpe *CallbackPanicError
	if !errors.As(err, &cpe) {
		t.Fatalf("Step returned %v, want *CallbackPanicError", err)
	}
	if cpe.Value != "user bug" {
		t.Errorf("panic value = %v", cpe.Value)
	}

	// The panic is consumed; a quiet step succeeds.
	if err := body.SetForceAndTorqueCallback(nil); err != nil {
		t.Fatalf("clearing callback failed: %v", err)
	}
	if err := w.Step(stepDt); err != nil {
		t.Errorf("Step after recovery failed: %v", err)
	}
}

func TestCloseBodyInsideCallback(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateBox(1, 1, 1, nil)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	defer shape.Close()

	body, err := w.CreateDynamicBody(shape, TranslationMatrix(Vector3{0, 5, 0}))
	if err != nil {
		t.Fatalf("CreateDynamicBody failed: %v", err)
	}
	if err := body.SetMassProperties(1, shape); err != nil {
		t.Fatalf("SetMassProperties failed: %v", err)
	}

	destroyed := false
	if err := body.SetDestructorCallback(func(*Body) { destroyed = true }); err != nil {
		t.Fatalf("SetDestructorCallback failed: %v", err)
	}
	// Closing from inside the step must defer, not deadlock.
	if err := body.SetForceAndTorqueCallback(func(b *Body, dt time.Duration, threadIndex int) {
		b.SetForce(Vector3{0, -9.8, 0})
		body.Close()
	}); err != nil {
		t.Fatalf("SetForceAndTorqueCallback failed: %v", err)
	}

	if err := w.Step(stepDt); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if destroyed {
		t.Error("body destroyed during the step it closed itself in")
	}
	if err := w.Step(stepDt); err != nil {
		t.Fatalf("second Step failed: %v", err)
	}
	if !destroyed {
		t.Error("deferred destroy did not run before the next step")
	}
	if n, err := w.BodyCount(); err != nil || n != 0 {
		t.Errorf("BodyCount = %d, %v; want 0, nil", n, err)
	}
}

func TestJointDestroyedWithBody(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateSphere(0.5, nil)
	if err != nil {
		t.Fatalf("CreateSphere failed: %v", err)
	}
	defer shape.Close()

	anchor, err := w.CreateDynamicBody(shape, Identity())
	if err != nil {
		t.Fatalf("anchor body failed: %v", err)
	}
	defer anchor.Close()
	swinging, err := w.CreateDynamicBody(shape, TranslationMatrix(Vector3{0, -2, 0}))
	if err != nil {
		t.Fatalf("swinging body failed: %v", err)
	}
	if err := swinging.SetMassProperties(1, shape); err != nil {
		t.Fatalf("SetMassProperties failed: %v", err)
	}

	joint, err := w.CreateBallJoint(Vector3{0, -1, 0}, swinging, anchor)
	if err != nil {
		t.Fatalf("CreateBallJoint failed: %v", err)
	}

	jointGone := false
	if err := joint.SetDestroyCallback(func(*Joint) { jointGone = true }); err != nil {
		t.Fatalf("SetDestroyCallback failed: %v", err)
	}
	if n, err := w.ConstraintCount(); err != nil || n != 1 {
		t.Fatalf("ConstraintCount = %d, %v; want 1, nil", n, err)
	}

	// Destroying a connected body must take the joint down with it, and
	// the destroy callback must see it exactly once.
	if err := swinging.Close(); err != nil {
		t.Fatalf("body Close failed: %v", err)
	}
	if err := w.Step(stepDt); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !jointGone {
		t.Error("joint destroy callback never fired")
	}
	if n, err := w.ConstraintCount(); err != nil || n != 0 {
		t.Errorf("ConstraintCount = %d, %v; want 0, nil", n, err)
	}
	// The wrapper noticed; a second Close stays a no-op.
	if err := joint.Close(); err != nil {
		t.Errorf("joint Close after engine destroy failed: %v", err)
	}
}

func TestRayCast(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateBox(10, 1, 10, nil)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	defer shape.Close()

	ground, err := w.CreateDynamicBody(shape, Identity())
	if err != nil {
		t.Fatalf("ground body failed: %v", err)
	}
	defer ground.Close()

	hit, err := w.RayCastClosest(Vector3{0, 5, 0}, Vector3{0, -5, 0})
	if err != nil {
		t.Fatalf("RayCastClosest failed: %v", err)
	}
	if hit.Param <= 0 || hit.Param >= 1 {
		t.Errorf("hit param = %v, want inside (0, 1)", hit.Param)
	}
	if hit.Normal[1] <= 0 {
		t.Errorf("hit normal = %v, want upward-facing", hit.Normal)
	}
	if y := hit.Position[1]; y < 0.4 || y > 0.6 {
		t.Errorf("hit y = %v, want the top face near 0.5", y)
	}

	if found, err := w.RayCastAny(Vector3{0, 5, 0}, Vector3{0, -5, 0}); err != nil || !found {
		t.Errorf("RayCastAny = %v, %v; want true, nil", found, err)
	}
	if found, err := w.RayCastAny(Vector3{50, 5, 50}, Vector3{50, 4, 50}); err != nil || found {
		t.Errorf("RayCastAny on empty space = %v, %v; want false, nil", found, err)
	}
	if _, err := w.RayCastClosest(Vector3{50, 5, 50}, Vector3{50, 4, 50}); !IsNotFound(err) {
		t.Errorf("miss: err = %v, want ErrNotFound", err)
	}

	// A prefilter that rejects everything turns the hit into a miss.
	err = w.RayCast(Vector3{0, 5, 0}, Vector3{0, -5, 0}, func(RayHit) float32 {
		t.Error("filter ran for a prefiltered body")
		return 0
	}, func(*Body, *Collision) bool { return false })
	if err != nil {
		t.Fatalf("RayCast with prefilter failed: %v", err)
	}
}

func TestConvexCast(t *testing.T) {
	w := newEngineWorld(t)

	ground, err := w.CreateBox(10, 1, 10, nil)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	defer ground.Close()

	body, err := w.CreateDynamicBody(ground, Identity())
	if err != nil {
		t.Fatalf("ground body failed: %v", err)
	}
	defer body.Close()

	probeShape, err := w.CreateSphere(0.5, nil)
	if err != nil {
		t.Fatalf("CreateSphere failed: %v", err)
	}
	defer probeShape.Close()

	// Sweep the sphere straight down onto the slab. It should stop where
	// the sphere's underside meets the top face, partway along the sweep.
	contacts, param, err := w.ConvexCast(
		TranslationMatrix(Vector3{0, 5, 0}), Vector3{0, -5, 0},
		probeShape, 4, nil)
	if err != nil {
		t.Fatalf("ConvexCast failed: %v", err)
	}
	if param <= 0 || param >= 1 {
		t.Errorf("param = %v, want in (0, 1)", param)
	}
	if len(contacts) == 0 {
		t.Fatal("no contacts reported")
	}
	c := contacts[0]
	if c.Body == nil {
		t.Fatal("contact carries no body view")
	}
	if pos, err := c.Body.Position(); err != nil || pos[1] != 0 {
		t.Errorf("contact body position = %v, %v; want the slab at origin", pos, err)
	}
	if c.Normal[1] <= 0 {
		t.Errorf("contact normal = %v, want upward Y", c.Normal)
	}

	// A prefilter that rejects the slab turns the sweep into a miss.
	contacts, _, err = w.ConvexCast(
		TranslationMatrix(Vector3{0, 5, 0}), Vector3{0, -5, 0},
		probeShape, 4, func(*Body, *Collision) bool { return false })
	if err != nil {
		t.Fatalf("ConvexCast with prefilter failed: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("prefiltered sweep reported %d contacts", len(contacts))
	}
}

func TestStepAsync(t *testing.T) {
	w := newEngineWorld(t)

	update, err := w.StepAsync(stepDt)
	if err != nil {
		t.Fatalf("StepAsync failed: %v", err)
	}

	// The world is exclusively held until Finish.
	if err := w.Step(stepDt); !IsBusy(err) {
		t.Errorf("Step during async update: err = %v, want busy", err)
	}
	if _, err := w.BodyCount(); !IsBusy(err) {
		t.Errorf("BodyCount during async update: err = %v, want busy", err)
	}

	if err := update.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if err := update.Finish(); err != nil {
		t.Fatalf("repeat Finish failed: %v", err)
	}
	if err := w.Step(stepDt); err != nil {
		t.Errorf("Step after Finish failed: %v", err)
	}
}

func TestMaterialContactCallback(t *testing.T) {
	w := newEngineWorld(t)

	groundGroup, err := w.CreateMaterialGroup()
	if err != nil {
		t.Fatalf("CreateMaterialGroup failed: %v", err)
	}
	ballGroup, err := w.CreateMaterialGroup()
	if err != nil {
		t.Fatalf("CreateMaterialGroup failed: %v", err)
	}

	groundShape, err := w.CreateBox(20, 1, 20, nil)
	if err != nil {
		t.Fatalf("CreateBox failed: %v", err)
	}
	defer groundShape.Close()
	ground, err := w.CreateDynamicBody(groundShape, Identity())
	if err != nil {
		t.Fatalf("ground body failed: %v", err)
	}
	defer ground.Close()
	if err := ground.SetMaterialGroup(groundGroup); err != nil {
		t.Fatalf("SetMaterialGroup failed: %v", err)
	}

	ballShape, err := w.CreateSphere(0.5, nil)
	if err != nil {
		t.Fatalf("CreateSphere failed: %v", err)
	}
	defer ballShape.Close()
	ball, err := w.CreateDynamicBody(ballShape, TranslationMatrix(Vector3{0, 2, 0}))
	if err != nil {
		t.Fatalf("ball body failed: %v", err)
	}
	defer ball.Close()
	if err := ball.SetMassProperties(1, ballShape); err != nil {
		t.Fatalf("SetMassProperties failed: %v", err)
	}
	if err := ball.SetMaterialGroup(ballGroup); err != nil {
		t.Fatalf("SetMaterialGroup failed: %v", err)
	}
	if err := ball.SetForceAndTorqueCallback(func(b *Body, dt time.Duration, threadIndex int) {
		b.SetForce(Vector3{0, -9.8, 0})
	}); err != nil {
		t.Fatalf("SetForceAndTorqueCallback failed: %v", err)
	}

	pair := w.MaterialPair(groundGroup, ballGroup)
	if err := pair.SetElasticity(0.1); err != nil {
		t.Fatalf("SetElasticity failed: %v", err)
	}

	overlaps, contacts := 0, 0
	err = pair.SetContactHandler(ContactHandler{
		OnAABBOverlap: func(cj *ContactJoint, dt time.Duration, threadIndex int) bool {
			overlaps++
			return true
		},
		OnContactProcess: func(cj *ContactJoint, dt time.Duration, threadIndex int) {
			cj.ForEachContact(func(c *Contact) bool {
				contacts++
				if c.Penetration() < 0 {
					t.Errorf("negative penetration %v", c.Penetration())
				}
				return true
			})
		},
	})
	if err != nil {
		t.Fatalf("SetContactHandler failed: %v", err)
	}

	// Two seconds is plenty for a half-meter drop.
	for i := 0; i < 120; i++ {
		if err := w.Step(stepDt); err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}
	if overlaps == 0 {
		t.Error("AABB overlap callback never fired")
	}
	if contacts == 0 {
		t.Error("contact process callback never saw a contact")
	}
	t.Logf("%d overlaps, %d contacts", overlaps, contacts)
}

func TestForEachBody(t *testing.T) {
	w := newEngineWorld(t)

	shape, err := w.CreateSphere(0.5, nil)
	if err != nil {
		t.Fatalf("CreateSphere failed: %v", err)
	}
	defer shape.Close()

	for i := 0; i < 3; i++ {
		b, err := w.CreateDynamicBody(shape, TranslationMatrix(Vector3{float32(i) * 2, 0, 0}))
		if err != nil {
			t.Fatalf("body %d failed: %v", i, err)
		}
		if _, err := w.MoveBody(b); err != nil {
			t.Fatalf("MoveBody failed: %v", err)
		}
	}

	seen := 0
	if err := w.ForEachBody(func(*Body) bool {
		seen++
		return true
	}); err != nil {
		t.Fatalf("ForEachBody failed: %v", err)
	}
	if seen != 3 {
		t.Errorf("visited %d bodies, want 3", seen)
	}
}
