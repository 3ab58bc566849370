//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"sync"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/newtongo/capi"
)

// GroupID identifies a material group created from a world. Bodies assigned
// to groups interact through the pairwise settings of MaterialPair.
type GroupID int32

// CreateMaterialGroup allocates a new material group.
func (w *World) CreateMaterialGroup() (GroupID, error) {
	release, err := w.lock.tryWrite("World.CreateMaterialGroup")
	if err != nil {
		return 0, err
	}
	defer release()
	return GroupID(capi.MaterialCreateGroupID(w.raw)), nil
}

// DefaultMaterialGroup returns the group every body starts in.
func (w *World) DefaultMaterialGroup() (GroupID, error) {
	release, err := w.lock.tryRead("World.DefaultMaterialGroup")
	if err != nil {
		return 0, err
	}
	defer release()
	return GroupID(capi.MaterialGetDefaultGroupID(w.raw)), nil
}

// pairKey is order-normalized so (a, b) and (b, a) address the same channel.
type pairKey struct {
	id0, id1 GroupID
}

func makePairKey(a, b GroupID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{id0: a, id1: b}
}

type materialPair struct {
	world    *World
	id0, id1 GroupID
	handler  ContactHandler
}

// ContactHandler receives contact events for one material pair. Both
// callbacks run on the engine's stepping threads while the world is
// exclusively held; the views they receive are pre-authorized and need no
// locking.
type ContactHandler struct {
	// OnAABBOverlap runs when two bodies' bounding boxes start
	// overlapping, before narrowphase. Return false to suppress contact
	// generation for this pairing.
	OnAABBOverlap func(contact *ContactJoint, dt time.Duration, threadIndex int) bool

	// OnContactProcess runs after narrowphase with the generated
	// contacts, before they reach the solver. Contacts can be tuned or
	// pruned through the ContactJoint.
	OnContactProcess func(contact *ContactJoint, dt time.Duration, threadIndex int)

	// UserData rides along with the pair and is reachable from the
	// ContactJoint inside callbacks.
	UserData any
}

// MaterialPair is the interaction channel between two material groups.
type MaterialPair struct {
	world    *World
	id0, id1 GroupID
}

// MaterialPair returns the interaction channel between two groups.
func (w *World) MaterialPair(id0, id1 GroupID) *MaterialPair {
	return &MaterialPair{world: w, id0: id0, id1: id1}
}

// SetFriction sets the static and kinetic friction coefficients.
func (p *MaterialPair) SetFriction(staticCoef, kineticCoef float32) error {
	release, err := p.world.lock.tryWrite("MaterialPair.SetFriction")
	if err != nil {
		return err
	}
	defer release()
	capi.MaterialSetDefaultFriction(p.world.raw, int32(p.id0), int32(p.id1), staticCoef, kineticCoef)
	return nil
}

// SetElasticity sets the restitution coefficient.
func (p *MaterialPair) SetElasticity(elasticity float32) error {
	release, err := p.world.lock.tryWrite("MaterialPair.SetElasticity")
	if err != nil {
		return err
	}
	defer release()
	capi.MaterialSetDefaultElasticity(p.world.raw, int32(p.id0), int32(p.id1), elasticity)
	return nil
}

// SetSoftness sets the contact softness.
func (p *MaterialPair) SetSoftness(softness float32) error {
	release, err := p.world.lock.tryWrite("MaterialPair.SetSoftness")
	if err != nil {
		return err
	}
	defer release()
	capi.MaterialSetDefaultSoftness(p.world.raw, int32(p.id0), int32(p.id1), softness)
	return nil
}

// SetCollidable enables or disables collision between the two groups.
func (p *MaterialPair) SetCollidable(collidable bool) error {
	release, err := p.world.lock.tryWrite("MaterialPair.SetCollidable")
	if err != nil {
		return err
	}
	defer release()
	capi.MaterialSetDefaultCollidable(p.world.raw, int32(p.id0), int32(p.id1), boolToInt32(collidable))
	return nil
}

// SetSurfaceThickness sets the separation the engine keeps between bodies of
// the two groups.
func (p *MaterialPair) SetSurfaceThickness(thickness float32) error {
	release, err := p.world.lock.tryWrite("MaterialPair.SetSurfaceThickness")
	if err != nil {
		return err
	}
	defer release()
	capi.MaterialSetSurfaceThickness(p.world.raw, int32(p.id0), int32(p.id1), thickness)
	return nil
}

// SetContactHandler installs contact callbacks for the pair. Passing a
// handler with both callbacks nil uninstalls.
func (p *MaterialPair) SetContactHandler(h ContactHandler) error {
	release, err := p.world.lock.tryWrite("MaterialPair.SetContactHandler")
	if err != nil {
		return err
	}
	defer release()

	key := makePairKey(p.id0, p.id1)
	if h.OnAABBOverlap == nil && h.OnContactProcess == nil {
		p.world.pairsMu.Lock()
		delete(p.world.pairs, key)
		p.world.pairsMu.Unlock()
		capi.MaterialSetCollisionCallback(p.world.raw, int32(p.id0), int32(p.id1), 0, 0)
		return nil
	}

	p.world.pairsMu.Lock()
	p.world.pairs[key] = &materialPair{world: p.world, id0: p.id0, id1: p.id1, handler: h}
	p.world.pairsMu.Unlock()

	initMaterialCallbacks()
	var overlap, process uintptr
	if h.OnAABBOverlap != nil {
		overlap = aabbOverlapPtr
	}
	if h.OnContactProcess != nil {
		process = contactProcessPtr
	}
	capi.MaterialSetCollisionCallback(p.world.raw, int32(p.id0), int32(p.id1), overlap, process)
	return nil
}

// lookupPair recovers the pair record for a contact joint's two bodies.
func (w *World) lookupPair(body0, body1 capi.Body) *materialPair {
	key := makePairKey(
		GroupID(capi.BodyGetMaterialGroupID(body0)),
		GroupID(capi.BodyGetMaterialGroupID(body1)),
	)
	w.pairsMu.Lock()
	defer w.pairsMu.Unlock()
	return w.pairs[key]
}

var (
	materialCallbacksOnce sync.Once
	aabbOverlapPtr        uintptr
	contactProcessPtr     uintptr
)

func initMaterialCallbacks() {
	materialCallbacksOnce.Do(func() {
		// NewtonOnAABBOverlap:
		// int (*)(const NewtonJoint* contactJoint, dFloat timestep, int threadIndex)
		aabbOverlapPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer, timestep float32, threadIndex int32) int32 {
			cj, pair := contactJointFromRaw(raw)
			if pair == nil || pair.handler.OnAABBOverlap == nil {
				return 1
			}
			// Panic converts to "keep the contact", the engine's
			// default, never an unwind into engine frames.
			allow := true
			func() {
				defer pair.world.recordCallbackPanic("aabb overlap")
				allow = pair.handler.OnAABBOverlap(cj, secondsToDuration(timestep), int(threadIndex))
			}()
			return boolToInt32(allow)
		})

		// NewtonContactsProcess:
		// void (*)(const NewtonJoint* contactJoint, dFloat timestep, int threadIndex)
		contactProcessPtr = purego.NewCallback(func(_ purego.CDecl, raw unsafe.Pointer, timestep float32, threadIndex int32) {
			cj, pair := contactJointFromRaw(raw)
			if pair == nil || pair.handler.OnContactProcess == nil {
				return
			}
			defer pair.world.recordCallbackPanic("contact process")
			pair.handler.OnContactProcess(cj, secondsToDuration(timestep), int(threadIndex))
		})
	})
}

func contactJointFromRaw(raw capi.Joint) (*ContactJoint, *materialPair) {
	body0 := capi.JointGetBody0(raw)
	body1 := capi.JointGetBody1(raw)
	if body0 == nil || body1 == nil {
		return nil, nil
	}
	w := worldFromRaw(capi.BodyGetWorld(body0))
	if w == nil {
		return nil, nil
	}
	pair := w.lookupPair(body0, body1)
	if pair == nil {
		return nil, nil
	}
	return &ContactJoint{world: w, raw: raw, pair: pair}, pair
}

// ContactJoint is a borrowed view of the contact set between two bodies,
// valid only inside the callback it was passed to.
type ContactJoint struct {
	world *World
	raw   capi.Joint
	pair  *materialPair
}

// Body0 returns a view of the first body in the pairing.
func (cj *ContactJoint) Body0() *Body {
	return cj.world.borrowBody(capi.JointGetBody0(cj.raw), true)
}

// Body1 returns a view of the second body in the pairing.
func (cj *ContactJoint) Body1() *Body {
	return cj.world.borrowBody(capi.JointGetBody1(cj.raw), true)
}

// UserData returns the pair's handler payload.
func (cj *ContactJoint) UserData() any {
	return cj.pair.handler.UserData
}

// ContactCount returns the number of contacts in the joint.
func (cj *ContactJoint) ContactCount() int {
	return int(capi.ContactJointGetContactCount(cj.raw))
}

// ForEachContact visits the joint's contacts, stopping early when fn returns
// false. The current contact may be removed from inside fn.
func (cj *ContactJoint) ForEachContact(fn func(*Contact) bool) {
	for raw := capi.ContactJointGetFirstContact(cj.raw); raw != nil; {
		next := capi.ContactJointGetNextContact(cj.raw, raw)
		c := &Contact{joint: cj, raw: raw, material: capi.ContactGetMaterial(raw)}
		if !fn(c) {
			return
		}
		raw = next
	}
}

// Contact is one contact point inside a ContactJoint, valid only for the
// duration of the visit that produced it.
type Contact struct {
	joint    *ContactJoint
	raw      capi.Contact
	material capi.Material
}

// PositionAndNormal returns the contact's world-space position and normal
// relative to body.
func (c *Contact) PositionAndNormal(body *Body) (position, normal Vector3) {
	var p, n [4]float32
	capi.MaterialGetContactPositionAndNormal(c.material, body.raw, &p[0], &n[0])
	return Vector3{p[0], p[1], p[2]}, Vector3{n[0], n[1], n[2]}
}

// Force returns the force applied at the contact on body. Zero during the
// first step a contact exists.
func (c *Contact) Force(body *Body) Vector3 {
	var f [4]float32
	capi.MaterialGetContactForce(c.material, body.raw, &f[0])
	return Vector3{f[0], f[1], f[2]}
}

// Penetration returns the contact penetration depth.
func (c *Contact) Penetration() float32 {
	return capi.MaterialGetContactPenetration(c.material)
}

// NormalSpeed returns the closing speed along the contact normal.
func (c *Contact) NormalSpeed() float32 {
	return capi.MaterialGetContactNormalSpeed(c.material)
}

// FaceAttribute returns the face tag of the contacted geometry, meaningful
// for tree and height-field shapes.
func (c *Contact) FaceAttribute() uint32 {
	return capi.MaterialGetContactFaceAttribute(c.material)
}

// CollidingShape returns the shape of body involved in the contact.
func (c *Contact) CollidingShape(body *Body) *Collision {
	return c.joint.world.borrowCollision(capi.MaterialGetBodyCollidingShape(c.material, body.raw))
}

// SetFriction overrides the friction coefficients for this contact. index
// selects the friction direction, 0 or 1.
func (c *Contact) SetFriction(staticCoef, kineticCoef float32, index int) {
	capi.MaterialSetContactFrictionCoef(c.material, staticCoef, kineticCoef, int32(index))
}

// SetElasticity overrides the restitution for this contact.
func (c *Contact) SetElasticity(restitution float32) {
	capi.MaterialSetContactElasticity(c.material, restitution)
}

// Remove discards this contact before it reaches the solver.
func (c *Contact) Remove() {
	capi.ContactJointRemoveContact(c.joint.raw, c.raw)
}
