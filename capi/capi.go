//go:build !ios && !android && (amd64 || arm64)

// Package capi provides low-level bindings to the Newton Game Dynamics 3.14
// C API. Functions map 1:1 onto Newton entry points with the library prefix
// dropped (NewtonBodySetMatrix -> BodySetMatrix); no ownership tracking, no
// locking, no lifetime checks happen at this layer. Use the root newtongo
// package unless you are building your own safety layer.
//
// All pointers are raw Newton object pointers. Passing a destroyed pointer is
// undefined behavior exactly as it is in C.
package capi

import (
	"unsafe"

	"github.com/obinnaokechukwu/newtongo/internal/bindings"
)

// Opaque Newton object pointers.
type (
	// World is an opaque NewtonWorld pointer.
	World = unsafe.Pointer

	// Body is an opaque NewtonBody pointer.
	Body = unsafe.Pointer

	// Collision is an opaque NewtonCollision pointer.
	Collision = unsafe.Pointer

	// Joint is an opaque NewtonJoint pointer. Contact joints passed to
	// material callbacks use the same representation.
	Joint = unsafe.Pointer

	// Material is an opaque NewtonMaterial (contact material) pointer.
	Material = unsafe.Pointer

	// CompoundNode is an opaque node handle inside a compound or scene
	// collision.
	CompoundNode = unsafe.Pointer
)

// Body types accepted by the engine.
const (
	DynamicBody   = 0
	KinematicBody = 1
)

// Solver models. Zero selects the exact solver; a positive value selects the
// iterative solver with that many linear steps.
const SolverExact = 0

// Broadphase algorithms.
const (
	BroadphaseDefault    = 0
	BroadphasePersistent = 1
)

// Collision shape type ids as reported by CollisionGetType.
const (
	ShapeSphere            = 0
	ShapeCapsule           = 1
	ShapeCylinder          = 2
	ShapeChamferCylinder   = 3
	ShapeBox               = 4
	ShapeCone              = 5
	ShapeConvexHull        = 6
	ShapeNull              = 7
	ShapeCompound          = 8
	ShapeTree              = 9
	ShapeHeightField       = 10
	ShapeClothPatch        = 11
	ShapeDeformableSolid   = 12
	ShapeUserMesh          = 13
	ShapeScene             = 14
	ShapeFracturedCompound = 15
)

// Elevation data types for CreateHeightFieldCollision.
const (
	HeightFieldFloat32 = 0
	HeightFieldUint16  = 1
)

// Sleep and freeze states.
const (
	BodyAwake    = 0
	BodySleeping = 1

	BodyUnfrozen = 0
	BodyFrozen   = 1
)

// ConvexCastReturnInfo mirrors NewtonWorldConvexCastReturnInfo. Field order
// and padding must match the C layout; the array passed to WorldConvexCast is
// filled directly by the engine.
type ConvexCastReturnInfo struct {
	Point       [4]float32
	Normal      [4]float32
	ContactID   int64
	HitBody     Body
	Penetration float32
	_           [4]byte
}

var bindingsRegistered bool

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	// Ensure the Newton library is loaded.
	if err := bindings.Load(); err != nil {
		return // Calls will report ErrNotLoaded via the nil guards.
	}

	lib := bindings.Lib()
	if lib == 0 {
		return
	}

	registerWorld(lib)
	registerBody(lib)
	registerCollision(lib)
	registerJoint(lib)
	registerMaterial(lib)

	bindingsRegistered = true
}

// Load loads the Newton library and registers all bindings. It is safe to
// call multiple times.
func Load() error {
	if err := bindings.Load(); err != nil {
		return err
	}
	registerBindings()
	return nil
}

// Loaded reports whether the bindings are registered and callable.
func Loaded() bool {
	return bindingsRegistered
}

// ErrNotLoaded is returned by fallible wrappers when the Newton library is
// unavailable.
var ErrNotLoaded = bindings.ErrNotLoaded
