//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"runtime"
	"unsafe"

	"github.com/obinnaokechukwu/newtongo/capi"
)

// CreateTree creates an empty static triangle-mesh shape and opens it for
// face insertion. Faces are added through the returned builder; End commits
// the mesh. Tree shapes are for static geometry only and cannot be attached
// to dynamic bodies with mass.
func (w *World) CreateTree() (*Collision, *TreeBuilder, error) {
	release, err := w.lock.tryWrite("World.CreateTree")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	c, err := w.wrapCollision(capi.CreateTreeCollision(w.raw, 0))
	if err != nil {
		return nil, nil, err
	}
	capi.TreeCollisionBeginBuild(c.raw)
	return c, &TreeBuilder{tree: c}, nil
}

// TreeBuilder scopes the build bracket of a tree shape. Faces can only be
// added through a live builder; End (or Close) commits the mesh, after which
// every operation fails with ErrBuilderClosed.
type TreeBuilder struct {
	tree *Collision
	done bool
}

// AddFace adds one convex face. faceAttribute tags the face and is reported
// back by contact and ray queries hitting it.
func (b *TreeBuilder) AddFace(vertices []Vector3, faceAttribute int32) error {
	if b.done {
		return ErrBuilderClosed
	}
	if len(vertices) < 3 {
		return ErrNotFound
	}
	release, err := b.tree.acquireWrite("TreeBuilder.AddFace")
	if err != nil {
		return err
	}
	defer release()
	const stride = int32(3 * 4)
	capi.TreeCollisionAddFace(b.tree.raw, int32(len(vertices)), &vertices[0][0], stride, faceAttribute)
	runtime.KeepAlive(vertices)
	return nil
}

// End commits the mesh. optimize lets the engine merge coplanar faces at the
// cost of build time. Idempotent.
func (b *TreeBuilder) End(optimize bool) error {
	if b.done {
		return nil
	}
	b.done = true
	release, err := b.tree.acquireWrite("TreeBuilder.End")
	if err != nil {
		return err
	}
	defer release()
	capi.TreeCollisionEndBuild(b.tree.raw, boolToInt32(optimize))
	return nil
}

// Close commits the mesh with optimization enabled.
func (b *TreeBuilder) Close() error {
	return b.End(true)
}

// HeightFieldParams describes an elevation-grid shape. Exactly one of
// ElevationsF32 and ElevationsU16 must be set, with Width*Height samples.
type HeightFieldParams struct {
	// Width and Height are the sample counts along X and Z.
	Width, Height int

	// GridsDiagonals selects the cell triangulation pattern (0 or 1).
	GridsDiagonals int

	// ElevationsF32 holds float32 elevation samples.
	ElevationsF32 []float32

	// ElevationsU16 holds uint16 elevation samples, scaled by
	// VerticalScale.
	ElevationsU16 []uint16

	// Attributes optionally tags each cell; reported back by contact and
	// ray queries. May be nil.
	Attributes []byte

	// VerticalScale scales elevation samples into world units.
	VerticalScale float32

	// HorizontalScaleX and HorizontalScaleZ are the cell sizes.
	HorizontalScaleX, HorizontalScaleZ float32
}

func (p *HeightFieldParams) validate() error {
	if p.Width < 2 || p.Height < 2 {
		return ErrNotFound
	}
	samples := p.Width * p.Height
	switch {
	case p.ElevationsF32 != nil && p.ElevationsU16 != nil:
		return ErrNotFound
	case p.ElevationsF32 != nil && len(p.ElevationsF32) != samples:
		return ErrNotFound
	case p.ElevationsU16 != nil && len(p.ElevationsU16) != samples:
		return ErrNotFound
	case p.ElevationsF32 == nil && p.ElevationsU16 == nil:
		return ErrNotFound
	}
	if p.Attributes != nil && len(p.Attributes) != samples {
		return ErrNotFound
	}
	return nil
}

// CreateHeightField creates a height-field shape from an elevation grid.
// The engine copies the grid; the slices need not stay alive afterwards.
func (w *World) CreateHeightField(params HeightFieldParams) (*Collision, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	release, err := w.lock.tryWrite("World.CreateHeightField")
	if err != nil {
		return nil, err
	}
	defer release()

	elevationType := int32(capi.HeightFieldFloat32)
	var elevations unsafe.Pointer
	if params.ElevationsU16 != nil {
		elevationType = capi.HeightFieldUint16
		elevations = unsafe.Pointer(&params.ElevationsU16[0])
	} else {
		elevations = unsafe.Pointer(&params.ElevationsF32[0])
	}

	var attributes *byte
	if params.Attributes != nil {
		attributes = &params.Attributes[0]
	}

	raw := capi.CreateHeightFieldCollision(w.raw,
		int32(params.Width), int32(params.Height),
		int32(params.GridsDiagonals), elevationType,
		elevations, attributes,
		params.VerticalScale, params.HorizontalScaleX, params.HorizontalScaleZ, 0)
	runtime.KeepAlive(params.ElevationsF32)
	runtime.KeepAlive(params.ElevationsU16)
	runtime.KeepAlive(params.Attributes)
	return w.wrapCollision(raw)
}
