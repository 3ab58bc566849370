//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/newtongo/capi"
	"github.com/obinnaokechukwu/newtongo/internal/handles"
)

// ShapeKind identifies a collision shape's geometry type.
type ShapeKind int32

const (
	ShapeSphere          ShapeKind = capi.ShapeSphere
	ShapeCapsule         ShapeKind = capi.ShapeCapsule
	ShapeCylinder        ShapeKind = capi.ShapeCylinder
	ShapeChamferCylinder ShapeKind = capi.ShapeChamferCylinder
	ShapeBox             ShapeKind = capi.ShapeBox
	ShapeCone            ShapeKind = capi.ShapeCone
	ShapeConvexHull      ShapeKind = capi.ShapeConvexHull
	ShapeNull            ShapeKind = capi.ShapeNull
	ShapeCompound        ShapeKind = capi.ShapeCompound
	ShapeTree            ShapeKind = capi.ShapeTree
	ShapeHeightField     ShapeKind = capi.ShapeHeightField
	ShapeScene           ShapeKind = capi.ShapeScene
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	case ShapeCylinder:
		return "cylinder"
	case ShapeChamferCylinder:
		return "chamfer-cylinder"
	case ShapeBox:
		return "box"
	case ShapeCone:
		return "cone"
	case ShapeConvexHull:
		return "convex-hull"
	case ShapeNull:
		return "null"
	case ShapeCompound:
		return "compound"
	case ShapeTree:
		return "tree"
	case ShapeHeightField:
		return "height-field"
	case ShapeScene:
		return "scene"
	default:
		return "unknown"
	}
}

type collisionExtra struct {
	world     *World
	collision *Collision
	id        uintptr
	closed    atomic.Bool
	finalized atomic.Bool
	name      string
	userData  any
}

// Collision is a guard around one Newton collision shape. Shapes are created
// from a world and become invalid when it closes. A body references, never
// owns, its shape; the engine reference-counts shape geometry internally,
// and the wrapper tracks only its own ownership of the reference it created.
type Collision struct {
	world *World
	raw   capi.Collision
	extra *collisionExtra
	owned bool
}

func (w *World) wrapCollision(raw capi.Collision) (*Collision, error) {
	if raw == nil {
		return nil, ErrNotLoaded
	}
	extra := &collisionExtra{world: w}
	c := &Collision{world: w, raw: raw, extra: extra, owned: true}
	extra.collision = c
	extra.id = handles.Register(extra)
	capi.CollisionSetUserData(raw, extra.id)
	return c, nil
}

// borrowCollision reconstructs a non-owning view for a raw shape pointer.
func (w *World) borrowCollision(raw capi.Collision) *Collision {
	if raw == nil {
		return nil
	}
	if extra, ok := handles.LookupAs[*collisionExtra](capi.CollisionGetUserData(raw)); ok {
		v := *extra.collision
		v.owned = false
		return &v
	}
	return &Collision{world: w, raw: raw}
}

// CreateBox creates a box shape with the given extents. offset may be nil
// for an identity local transform.
func (w *World) CreateBox(dx, dy, dz float32, offset *Matrix4) (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateBox")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateBox(w.raw, dx, dy, dz, 0, offsetPtr(offset)))
}

// CreateSphere creates a sphere shape.
func (w *World) CreateSphere(radius float32, offset *Matrix4) (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateSphere")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateSphere(w.raw, radius, 0, offsetPtr(offset)))
}

// CreateCapsule creates a capsule along the local X axis. The two radii may
// differ for a tapered capsule.
func (w *World) CreateCapsule(radius0, radius1, height float32, offset *Matrix4) (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateCapsule")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateCapsule(w.raw, radius0, radius1, height, 0, offsetPtr(offset)))
}

// CreateCylinder creates a cylinder along the local X axis.
func (w *World) CreateCylinder(radius0, radius1, height float32, offset *Matrix4) (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateCylinder")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateCylinder(w.raw, radius0, radius1, height, 0, offsetPtr(offset)))
}

// CreateChamferCylinder creates a chamfer cylinder (wheel-like) shape.
func (w *World) CreateChamferCylinder(radius, height float32, offset *Matrix4) (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateChamferCylinder")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateChamferCylinder(w.raw, radius, height, 0, offsetPtr(offset)))
}

// CreateCone creates a cone along the local X axis.
func (w *World) CreateCone(radius, height float32, offset *Matrix4) (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateCone")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateCone(w.raw, radius, height, 0, offsetPtr(offset)))
}

// CreateNull creates a shape with no geometry.
func (w *World) CreateNull() (*Collision, error) {
	release, err := w.lock.tryWrite("World.CreateNull")
	if err != nil {
		return nil, err
	}
	defer release()
	return w.wrapCollision(capi.CreateNull(w.raw))
}

// CreateConvexHull creates a convex hull enclosing the given point cloud.
// tolerance merges vertices closer than the given distance; 0 keeps all.
func (w *World) CreateConvexHull(points []Vector3, tolerance float32, offset *Matrix4) (*Collision, error) {
	if len(points) < 4 {
		return nil, ErrNotFound
	}
	release, err := w.lock.tryWrite("World.CreateConvexHull")
	if err != nil {
		return nil, err
	}
	defer release()
	const stride = int32(3 * 4) // 3 float32 per vertex
	return w.wrapCollision(capi.CreateConvexHull(w.raw, int32(len(points)), &points[0][0], stride, tolerance, 0, offsetPtr(offset)))
}

func offsetPtr(m *Matrix4) *float32 {
	if m == nil {
		return nil
	}
	return &m[0]
}

// destroyCollisionNow releases the wrapper's engine reference and runs
// cleanup. Caller must hold the world's exclusive lock.
func (w *World) destroyCollisionNow(raw capi.Collision, extra *collisionExtra) {
	if raw == nil {
		return
	}
	capi.DestroyCollision(raw)
	w.finalizeCollision(raw, extra)
}

func (w *World) finalizeCollision(raw capi.Collision, extra *collisionExtra) {
	if extra == nil || !extra.finalized.CompareAndSwap(false, true) {
		return
	}
	extra.closed.Store(true)
	w.registry.TakeCollision(HandleFromPointer(uintptr(raw)))
	if extra.id != 0 {
		handles.Unregister(extra.id)
		extra.id = 0
	}
}

// Close releases the shape if this wrapper owns it. Deferred to the next
// step when the world is busy; no-op for borrowed views. Idempotent.
func (c *Collision) Close() error {
	if c == nil || c.raw == nil || !c.owned {
		return nil
	}
	if c.extra != nil && !c.extra.closed.CompareAndSwap(false, true) {
		return nil
	}

	release, err := c.world.lock.tryWrite("Collision.Close")
	if err != nil {
		if IsDestroyed(err) {
			return nil
		}
		raw, extra := c.raw, c.extra
		c.world.queueDestroy("collision", func(w *World) {
			w.destroyCollisionNow(raw, extra)
		})
		return nil
	}
	defer release()
	c.world.destroyCollisionNow(c.raw, c.extra)
	return nil
}

// Handle returns the shape's pointer-identity handle.
func (c *Collision) Handle() Handle {
	return HandleFromPointer(uintptr(c.raw))
}

// World returns the owning world.
func (c *Collision) World() *World {
	return c.world
}

// Owned reports whether closing this wrapper releases the shape.
func (c *Collision) Owned() bool {
	return c.owned
}

func (c *Collision) acquireRead(op string) (func(), error) {
	if c == nil || c.raw == nil {
		return nil, ErrDestroyed
	}
	if c.extra != nil && c.extra.closed.Load() {
		return nil, ErrDestroyed
	}
	return c.world.lock.tryRead(op)
}

func (c *Collision) acquireWrite(op string) (func(), error) {
	if c == nil || c.raw == nil {
		return nil, ErrDestroyed
	}
	if c.extra != nil && c.extra.closed.Load() {
		return nil, ErrDestroyed
	}
	return c.world.lock.tryWrite(op)
}

// Kind returns the shape's geometry type.
func (c *Collision) Kind() (ShapeKind, error) {
	release, err := c.acquireRead("Collision.Kind")
	if err != nil {
		return 0, err
	}
	defer release()
	return ShapeKind(capi.CollisionGetType(c.raw)), nil
}

// IsConvex reports whether the shape is convex.
func (c *Collision) IsConvex() (bool, error) {
	release, err := c.acquireRead("Collision.IsConvex")
	if err != nil {
		return false, err
	}
	defer release()
	return capi.CollisionIsConvexShape(c.raw) != 0, nil
}

// Instance creates a new owned reference sharing this shape's geometry.
func (c *Collision) Instance() (*Collision, error) {
	release, err := c.acquireWrite("Collision.Instance")
	if err != nil {
		return nil, err
	}
	defer release()
	return c.world.wrapCollision(capi.CollisionCreateInstance(c.raw))
}

// Matrix returns the shape's local offset transform.
func (c *Collision) Matrix() (Matrix4, error) {
	release, err := c.acquireRead("Collision.Matrix")
	if err != nil {
		return Matrix4{}, err
	}
	defer release()
	var m Matrix4
	capi.CollisionGetMatrix(c.raw, &m[0])
	return m, nil
}

// SetMatrix sets the shape's local offset transform.
func (c *Collision) SetMatrix(m Matrix4) error {
	release, err := c.acquireWrite("Collision.SetMatrix")
	if err != nil {
		return err
	}
	defer release()
	capi.CollisionSetMatrix(c.raw, &m[0])
	return nil
}

// Scale returns the shape's local scale.
func (c *Collision) Scale() (Vector3, error) {
	release, err := c.acquireRead("Collision.Scale")
	if err != nil {
		return Vector3{}, err
	}
	defer release()
	var v Vector3
	capi.CollisionGetScale(c.raw, &v[0], &v[1], &v[2])
	return v, nil
}

// SetScale sets the shape's local scale.
func (c *Collision) SetScale(v Vector3) error {
	release, err := c.acquireWrite("Collision.SetScale")
	if err != nil {
		return err
	}
	defer release()
	capi.CollisionSetScale(c.raw, v[0], v[1], v[2])
	return nil
}

// UserID returns the shape's numeric tag.
func (c *Collision) UserID() (uint32, error) {
	release, err := c.acquireRead("Collision.UserID")
	if err != nil {
		return 0, err
	}
	defer release()
	return capi.CollisionGetUserID(c.raw), nil
}

// SetUserID stores a numeric tag on the shape.
func (c *Collision) SetUserID(id uint32) error {
	release, err := c.acquireWrite("Collision.SetUserID")
	if err != nil {
		return err
	}
	defer release()
	capi.CollisionSetUserID(c.raw, id)
	return nil
}

// CalculateAABB computes the shape's bounding box under the given transform.
func (c *Collision) CalculateAABB(matrix Matrix4) (min, max Vector3, err error) {
	release, err := c.acquireRead("Collision.CalculateAABB")
	if err != nil {
		return Vector3{}, Vector3{}, err
	}
	defer release()
	capi.CollisionCalculateAABB(c.raw, &matrix[0], &min[0], &max[0])
	return min, max, nil
}

// SetName sets the shape's debug name.
func (c *Collision) SetName(name string) {
	if c.extra != nil {
		c.extra.name = name
	}
}

// Name returns the shape's debug name.
func (c *Collision) Name() string {
	if c.extra == nil {
		return ""
	}
	return c.extra.name
}

// SetUserData attaches an arbitrary payload to the shape.
func (c *Collision) SetUserData(v any) {
	if c.extra != nil {
		c.extra.userData = v
	}
}

// UserData returns the payload attached with SetUserData.
func (c *Collision) UserData() any {
	if c.extra == nil {
		return nil
	}
	return c.extra.userData
}

type polygonIteration struct {
	fn func(face []Vector3, faceID int) bool
	// Newton's iterator has no early-exit; once fn returns false the
	// remaining invocations are skipped here.
	stopped bool
}

var polygonIteratorPtr = sync.OnceValue(func() uintptr {
	// NewtonCollisionIterator:
	// void (*)(void* userData, int vertexCount, const dFloat* faceArray, int faceId)
	return purego.NewCallback(func(_ purego.CDecl, userData unsafe.Pointer, vertexCount int32, faceArray *float32, faceID int32) {
		it, ok := handles.LookupAs[*polygonIteration](uintptr(userData))
		if !ok || it.stopped {
			return
		}
		flat := unsafe.Slice(faceArray, int(vertexCount)*3)
		face := make([]Vector3, vertexCount)
		for i := range face {
			face[i] = Vector3{flat[i*3], flat[i*3+1], flat[i*3+2]}
		}
		if !it.fn(face, int(faceID)) {
			it.stopped = true
		}
	})
})

// ForEachPolygon visits the shape's tessellated faces under the given
// transform, stopping early when fn returns false. Intended for debug
// display.
func (c *Collision) ForEachPolygon(matrix Matrix4, fn func(face []Vector3, faceID int) bool) error {
	release, err := c.acquireRead("Collision.ForEachPolygon")
	if err != nil {
		return err
	}
	defer release()

	it := &polygonIteration{fn: fn}
	id := handles.Register(it)
	defer handles.Unregister(id)
	capi.CollisionForEachPolygonDo(c.raw, &matrix[0], polygonIteratorPtr(), id)
	return nil
}
