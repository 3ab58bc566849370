//go:build !ios && !android && (amd64 || arm64)

package capi

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	newtonCreateNull            func(world World) Collision
	newtonCreateBox             func(world World, dx, dy, dz float32, shapeID int32, offsetMatrix *float32) Collision
	newtonCreateSphere          func(world World, radius float32, shapeID int32, offsetMatrix *float32) Collision
	newtonCreateCapsule         func(world World, radius0, radius1, height float32, shapeID int32, offsetMatrix *float32) Collision
	newtonCreateCylinder        func(world World, radius0, radius1, height float32, shapeID int32, offsetMatrix *float32) Collision
	newtonCreateChamferCylinder func(world World, radius, height float32, shapeID int32, offsetMatrix *float32) Collision
	newtonCreateCone            func(world World, radius, height float32, shapeID int32, offsetMatrix *float32) Collision
	newtonCreateConvexHull      func(world World, count int32, vertexCloud *float32, strideInBytes int32, tolerance float32, shapeID int32, offsetMatrix *float32) Collision

	newtonCreateCompoundCollision              func(world World, shapeID int32) Collision
	newtonCompoundCollisionBeginAddRemove      func(compound Collision)
	newtonCompoundCollisionAddSubCollision     func(compound Collision, convex Collision) CompoundNode
	newtonCompoundCollisionRemoveSubCollision  func(compound Collision, node CompoundNode)
	newtonCompoundCollisionRemoveSubCollisionByIndex func(compound Collision, index int32)
	newtonCompoundCollisionEndAddRemove        func(compound Collision)
	newtonCompoundCollisionGetNodeByIndex      func(compound Collision, index int32) CompoundNode
	newtonCompoundCollisionGetNodeIndex        func(compound Collision, node CompoundNode) int32
	newtonCompoundCollisionGetCollisionFromNode func(compound Collision, node CompoundNode) Collision
	newtonCompoundCollisionGetFirstNode        func(compound Collision) CompoundNode
	newtonCompoundCollisionGetNextNode         func(compound Collision, node CompoundNode) CompoundNode

	newtonCreateSceneCollision             func(world World, shapeID int32) Collision
	newtonSceneCollisionBeginAddRemove     func(scene Collision)
	newtonSceneCollisionAddSubCollision    func(scene Collision, collision Collision) CompoundNode
	newtonSceneCollisionRemoveSubCollision func(scene Collision, node CompoundNode)
	newtonSceneCollisionRemoveSubCollisionByIndex func(scene Collision, index int32)
	newtonSceneCollisionEndAddRemove       func(scene Collision)
	newtonSceneCollisionGetNodeByIndex     func(scene Collision, index int32) CompoundNode

	newtonCreateTreeCollision     func(world World, shapeID int32) Collision
	newtonTreeCollisionBeginBuild func(tree Collision)
	newtonTreeCollisionAddFace    func(tree Collision, vertexCount int32, vertexPtr *float32, strideInBytes int32, faceAttribute int32)
	newtonTreeCollisionEndBuild   func(tree Collision, optimize int32)

	newtonCreateHeightFieldCollision func(world World, width, height, gridsDiagonals, elevationType int32, elevationMap unsafe.Pointer, attributeMap *byte, verticalScale, horizontalScaleX, horizontalScaleZ float32, shapeID int32) Collision

	newtonDestroyCollision         func(collision Collision)
	newtonCollisionCreateInstance  func(collision Collision) Collision
	newtonCollisionGetType         func(collision Collision) int32
	newtonCollisionIsConvexShape   func(collision Collision) int32
	newtonCollisionSetMatrix       func(collision Collision, matrix *float32)
	newtonCollisionGetMatrix       func(collision Collision, matrix *float32)
	newtonCollisionSetScale        func(collision Collision, x, y, z float32)
	newtonCollisionGetScale        func(collision Collision, x, y, z *float32)
	newtonCollisionSetUserData     func(collision Collision, userData uintptr)
	newtonCollisionGetUserData     func(collision Collision) uintptr
	newtonCollisionSetUserID       func(collision Collision, id uint32)
	newtonCollisionGetUserID       func(collision Collision) uint32
	newtonCollisionCalculateAABB   func(collision Collision, matrix, p0, p1 *float32)
	newtonCollisionForEachPolygonDo func(collision Collision, matrix *float32, callback uintptr, userData uintptr)
)

func registerCollision(lib uintptr) {
	purego.RegisterLibFunc(&newtonCreateNull, lib, "NewtonCreateNull")
	purego.RegisterLibFunc(&newtonCreateBox, lib, "NewtonCreateBox")
	purego.RegisterLibFunc(&newtonCreateSphere, lib, "NewtonCreateSphere")
	purego.RegisterLibFunc(&newtonCreateCapsule, lib, "NewtonCreateCapsule")
	purego.RegisterLibFunc(&newtonCreateCylinder, lib, "NewtonCreateCylinder")
	purego.RegisterLibFunc(&newtonCreateChamferCylinder, lib, "NewtonCreateChamferCylinder")
	purego.RegisterLibFunc(&newtonCreateCone, lib, "NewtonCreateCone")
	purego.RegisterLibFunc(&newtonCreateConvexHull, lib, "NewtonCreateConvexHull")

	purego.RegisterLibFunc(&newtonCreateCompoundCollision, lib, "NewtonCreateCompoundCollision")
	purego.RegisterLibFunc(&newtonCompoundCollisionBeginAddRemove, lib, "NewtonCompoundCollisionBeginAddRemove")
	purego.RegisterLibFunc(&newtonCompoundCollisionAddSubCollision, lib, "NewtonCompoundCollisionAddSubCollision")
	purego.RegisterLibFunc(&newtonCompoundCollisionRemoveSubCollision, lib, "NewtonCompoundCollisionRemoveSubCollision")
	purego.RegisterLibFunc(&newtonCompoundCollisionRemoveSubCollisionByIndex, lib, "NewtonCompoundCollisionRemoveSubCollisionByIndex")
	purego.RegisterLibFunc(&newtonCompoundCollisionEndAddRemove, lib, "NewtonCompoundCollisionEndAddRemove")
	purego.RegisterLibFunc(&newtonCompoundCollisionGetNodeByIndex, lib, "NewtonCompoundCollisionGetNodeByIndex")
	purego.RegisterLibFunc(&newtonCompoundCollisionGetNodeIndex, lib, "NewtonCompoundCollisionGetNodeIndex")
	purego.RegisterLibFunc(&newtonCompoundCollisionGetCollisionFromNode, lib, "NewtonCompoundCollisionGetCollisionFromNode")
	purego.RegisterLibFunc(&newtonCompoundCollisionGetFirstNode, lib, "NewtonCompoundCollisionGetFirstNode")
	purego.RegisterLibFunc(&newtonCompoundCollisionGetNextNode, lib, "NewtonCompoundCollisionGetNextNode")

	purego.RegisterLibFunc(&newtonCreateSceneCollision, lib, "NewtonCreateSceneCollision")
	purego.RegisterLibFunc(&newtonSceneCollisionBeginAddRemove, lib, "NewtonSceneCollisionBeginAddRemove")
	purego.RegisterLibFunc(&newtonSceneCollisionAddSubCollision, lib, "NewtonSceneCollisionAddSubCollision")
	purego.RegisterLibFunc(&newtonSceneCollisionRemoveSubCollision, lib, "NewtonSceneCollisionRemoveSubCollision")
	purego.RegisterLibFunc(&newtonSceneCollisionRemoveSubCollisionByIndex, lib, "NewtonSceneCollisionRemoveSubCollisionByIndex")
	purego.RegisterLibFunc(&newtonSceneCollisionEndAddRemove, lib, "NewtonSceneCollisionEndAddRemove")
	purego.RegisterLibFunc(&newtonSceneCollisionGetNodeByIndex, lib, "NewtonSceneCollisionGetNodeByIndex")

	purego.RegisterLibFunc(&newtonCreateTreeCollision, lib, "NewtonCreateTreeCollision")
	purego.RegisterLibFunc(&newtonTreeCollisionBeginBuild, lib, "NewtonTreeCollisionBeginBuild")
	purego.RegisterLibFunc(&newtonTreeCollisionAddFace, lib, "NewtonTreeCollisionAddFace")
	purego.RegisterLibFunc(&newtonTreeCollisionEndBuild, lib, "NewtonTreeCollisionEndBuild")

	purego.RegisterLibFunc(&newtonCreateHeightFieldCollision, lib, "NewtonCreateHeightFieldCollision")

	purego.RegisterLibFunc(&newtonDestroyCollision, lib, "NewtonDestroyCollision")
	purego.RegisterLibFunc(&newtonCollisionCreateInstance, lib, "NewtonCollisionCreateInstance")
	purego.RegisterLibFunc(&newtonCollisionGetType, lib, "NewtonCollisionGetType")
	purego.RegisterLibFunc(&newtonCollisionIsConvexShape, lib, "NewtonCollisionIsConvexShape")
	purego.RegisterLibFunc(&newtonCollisionSetMatrix, lib, "NewtonCollisionSetMatrix")
	purego.RegisterLibFunc(&newtonCollisionGetMatrix, lib, "NewtonCollisionGetMatrix")
	purego.RegisterLibFunc(&newtonCollisionSetScale, lib, "NewtonCollisionSetScale")
	purego.RegisterLibFunc(&newtonCollisionGetScale, lib, "NewtonCollisionGetScale")
	purego.RegisterLibFunc(&newtonCollisionSetUserData, lib, "NewtonCollisionSetUserData")
	purego.RegisterLibFunc(&newtonCollisionGetUserData, lib, "NewtonCollisionGetUserData")
	purego.RegisterLibFunc(&newtonCollisionSetUserID, lib, "NewtonCollisionSetUserID")
	purego.RegisterLibFunc(&newtonCollisionGetUserID, lib, "NewtonCollisionGetUserID")
	purego.RegisterLibFunc(&newtonCollisionCalculateAABB, lib, "NewtonCollisionCalculateAABB")
	purego.RegisterLibFunc(&newtonCollisionForEachPolygonDo, lib, "NewtonCollisionForEachPolygonDo")
}

// CreateNull creates a collision with no geometry. Useful for bodies that
// participate in the simulation but never collide.
func CreateNull(world World) Collision {
	if world == nil || newtonCreateNull == nil {
		return nil
	}
	return newtonCreateNull(world)
}

// CreateBox creates a box collision with the given extents. offsetMatrix may
// be nil for the identity offset.
func CreateBox(world World, dx, dy, dz float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateBox == nil {
		return nil
	}
	return newtonCreateBox(world, dx, dy, dz, shapeID, offsetMatrix)
}

// CreateSphere creates a sphere collision.
func CreateSphere(world World, radius float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateSphere == nil {
		return nil
	}
	return newtonCreateSphere(world, radius, shapeID, offsetMatrix)
}

// CreateCapsule creates a capsule collision along the X axis.
func CreateCapsule(world World, radius0, radius1, height float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateCapsule == nil {
		return nil
	}
	return newtonCreateCapsule(world, radius0, radius1, height, shapeID, offsetMatrix)
}

// CreateCylinder creates a cylinder collision along the X axis.
func CreateCylinder(world World, radius0, radius1, height float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateCylinder == nil {
		return nil
	}
	return newtonCreateCylinder(world, radius0, radius1, height, shapeID, offsetMatrix)
}

// CreateChamferCylinder creates a chamfer cylinder (wheel-like) collision.
func CreateChamferCylinder(world World, radius, height float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateChamferCylinder == nil {
		return nil
	}
	return newtonCreateChamferCylinder(world, radius, height, shapeID, offsetMatrix)
}

// CreateCone creates a cone collision along the X axis.
func CreateCone(world World, radius, height float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateCone == nil {
		return nil
	}
	return newtonCreateCone(world, radius, height, shapeID, offsetMatrix)
}

// CreateConvexHull creates a convex hull from a point cloud. vertexCloud
// points at count vertices of strideInBytes each.
func CreateConvexHull(world World, count int32, vertexCloud *float32, strideInBytes int32, tolerance float32, shapeID int32, offsetMatrix *float32) Collision {
	if world == nil || newtonCreateConvexHull == nil {
		return nil
	}
	return newtonCreateConvexHull(world, count, vertexCloud, strideInBytes, tolerance, shapeID, offsetMatrix)
}

// CreateCompoundCollision creates an empty compound collision. Populate it
// between CompoundCollisionBeginAddRemove and CompoundCollisionEndAddRemove.
func CreateCompoundCollision(world World, shapeID int32) Collision {
	if world == nil || newtonCreateCompoundCollision == nil {
		return nil
	}
	return newtonCreateCompoundCollision(world, shapeID)
}

// CompoundCollisionBeginAddRemove opens the compound for mutation.
func CompoundCollisionBeginAddRemove(compound Collision) {
	if compound == nil || newtonCompoundCollisionBeginAddRemove == nil {
		return
	}
	newtonCompoundCollisionBeginAddRemove(compound)
}

// CompoundCollisionAddSubCollision adds a convex child and returns its node.
func CompoundCollisionAddSubCollision(compound, convex Collision) CompoundNode {
	if compound == nil || convex == nil || newtonCompoundCollisionAddSubCollision == nil {
		return nil
	}
	return newtonCompoundCollisionAddSubCollision(compound, convex)
}

// CompoundCollisionRemoveSubCollision removes a child by node.
func CompoundCollisionRemoveSubCollision(compound Collision, node CompoundNode) {
	if compound == nil || node == nil || newtonCompoundCollisionRemoveSubCollision == nil {
		return
	}
	newtonCompoundCollisionRemoveSubCollision(compound, node)
}

// CompoundCollisionRemoveSubCollisionByIndex removes a child by index.
func CompoundCollisionRemoveSubCollisionByIndex(compound Collision, index int32) {
	if compound == nil || newtonCompoundCollisionRemoveSubCollisionByIndex == nil {
		return
	}
	newtonCompoundCollisionRemoveSubCollisionByIndex(compound, index)
}

// CompoundCollisionEndAddRemove commits pending mutations and rebuilds the
// compound's internal acceleration structure.
func CompoundCollisionEndAddRemove(compound Collision) {
	if compound == nil || newtonCompoundCollisionEndAddRemove == nil {
		return
	}
	newtonCompoundCollisionEndAddRemove(compound)
}

// CompoundCollisionGetNodeByIndex returns the node at index, or nil.
func CompoundCollisionGetNodeByIndex(compound Collision, index int32) CompoundNode {
	if compound == nil || newtonCompoundCollisionGetNodeByIndex == nil {
		return nil
	}
	return newtonCompoundCollisionGetNodeByIndex(compound, index)
}

// CompoundCollisionGetNodeIndex returns the index of a node.
func CompoundCollisionGetNodeIndex(compound Collision, node CompoundNode) int32 {
	if compound == nil || node == nil || newtonCompoundCollisionGetNodeIndex == nil {
		return -1
	}
	return newtonCompoundCollisionGetNodeIndex(compound, node)
}

// CompoundCollisionGetCollisionFromNode returns the child shape stored at a
// node. The returned collision is owned by the compound.
func CompoundCollisionGetCollisionFromNode(compound Collision, node CompoundNode) Collision {
	if compound == nil || node == nil || newtonCompoundCollisionGetCollisionFromNode == nil {
		return nil
	}
	return newtonCompoundCollisionGetCollisionFromNode(compound, node)
}

// CompoundCollisionGetFirstNode returns the first child node, or nil.
func CompoundCollisionGetFirstNode(compound Collision) CompoundNode {
	if compound == nil || newtonCompoundCollisionGetFirstNode == nil {
		return nil
	}
	return newtonCompoundCollisionGetFirstNode(compound)
}

// CompoundCollisionGetNextNode returns the node after the given one, or nil.
func CompoundCollisionGetNextNode(compound Collision, node CompoundNode) CompoundNode {
	if compound == nil || node == nil || newtonCompoundCollisionGetNextNode == nil {
		return nil
	}
	return newtonCompoundCollisionGetNextNode(compound, node)
}

// CreateSceneCollision creates an empty scene collision. Unlike a compound,
// a scene accepts non-convex children (trees, height fields).
func CreateSceneCollision(world World, shapeID int32) Collision {
	if world == nil || newtonCreateSceneCollision == nil {
		return nil
	}
	return newtonCreateSceneCollision(world, shapeID)
}

// SceneCollisionBeginAddRemove opens the scene for mutation.
func SceneCollisionBeginAddRemove(scene Collision) {
	if scene == nil || newtonSceneCollisionBeginAddRemove == nil {
		return
	}
	newtonSceneCollisionBeginAddRemove(scene)
}

// SceneCollisionAddSubCollision adds a child and returns its node.
func SceneCollisionAddSubCollision(scene, collision Collision) CompoundNode {
	if scene == nil || collision == nil || newtonSceneCollisionAddSubCollision == nil {
		return nil
	}
	return newtonSceneCollisionAddSubCollision(scene, collision)
}

// SceneCollisionRemoveSubCollision removes a child by node.
func SceneCollisionRemoveSubCollision(scene Collision, node CompoundNode) {
	if scene == nil || node == nil || newtonSceneCollisionRemoveSubCollision == nil {
		return
	}
	newtonSceneCollisionRemoveSubCollision(scene, node)
}

// SceneCollisionRemoveSubCollisionByIndex removes a child by index.
func SceneCollisionRemoveSubCollisionByIndex(scene Collision, index int32) {
	if scene == nil || newtonSceneCollisionRemoveSubCollisionByIndex == nil {
		return
	}
	newtonSceneCollisionRemoveSubCollisionByIndex(scene, index)
}

// SceneCollisionEndAddRemove commits pending mutations.
func SceneCollisionEndAddRemove(scene Collision) {
	if scene == nil || newtonSceneCollisionEndAddRemove == nil {
		return
	}
	newtonSceneCollisionEndAddRemove(scene)
}

// SceneCollisionGetNodeByIndex returns the node at index, or nil.
func SceneCollisionGetNodeByIndex(scene Collision, index int32) CompoundNode {
	if scene == nil || newtonSceneCollisionGetNodeByIndex == nil {
		return nil
	}
	return newtonSceneCollisionGetNodeByIndex(scene, index)
}

// CreateTreeCollision creates an empty static triangle-mesh collision.
// Populate it between TreeCollisionBeginBuild and TreeCollisionEndBuild.
func CreateTreeCollision(world World, shapeID int32) Collision {
	if world == nil || newtonCreateTreeCollision == nil {
		return nil
	}
	return newtonCreateTreeCollision(world, shapeID)
}

// TreeCollisionBeginBuild opens the tree for face insertion.
func TreeCollisionBeginBuild(tree Collision) {
	if tree == nil || newtonTreeCollisionBeginBuild == nil {
		return
	}
	newtonTreeCollisionBeginBuild(tree)
}

// TreeCollisionAddFace adds one convex face of vertexCount vertices.
func TreeCollisionAddFace(tree Collision, vertexCount int32, vertexPtr *float32, strideInBytes, faceAttribute int32) {
	if tree == nil || newtonTreeCollisionAddFace == nil {
		return
	}
	newtonTreeCollisionAddFace(tree, vertexCount, vertexPtr, strideInBytes, faceAttribute)
}

// TreeCollisionEndBuild finishes the tree. optimize of 1 lets the engine
// merge coplanar faces.
func TreeCollisionEndBuild(tree Collision, optimize int32) {
	if tree == nil || newtonTreeCollisionEndBuild == nil {
		return
	}
	newtonTreeCollisionEndBuild(tree, optimize)
}

// CreateHeightFieldCollision creates a height-field collision from an
// elevation grid. elevationType selects HeightFieldFloat32 or
// HeightFieldUint16; elevationMap must match. attributeMap may be nil.
func CreateHeightFieldCollision(world World, width, height, gridsDiagonals, elevationType int32, elevationMap unsafe.Pointer, attributeMap *byte, verticalScale, horizontalScaleX, horizontalScaleZ float32, shapeID int32) Collision {
	if world == nil || elevationMap == nil || newtonCreateHeightFieldCollision == nil {
		return nil
	}
	return newtonCreateHeightFieldCollision(world, width, height, gridsDiagonals, elevationType, elevationMap, attributeMap, verticalScale, horizontalScaleX, horizontalScaleZ, shapeID)
}

// DestroyCollision releases one reference to a collision, destroying it when
// the engine's internal reference count reaches zero.
func DestroyCollision(collision Collision) {
	if collision == nil || newtonDestroyCollision == nil {
		return
	}
	newtonDestroyCollision(collision)
}

// CollisionCreateInstance returns a new reference to a collision sharing the
// same geometry.
func CollisionCreateInstance(collision Collision) Collision {
	if collision == nil || newtonCollisionCreateInstance == nil {
		return nil
	}
	return newtonCollisionCreateInstance(collision)
}

// CollisionGetType returns one of the Shape* constants.
func CollisionGetType(collision Collision) int32 {
	if collision == nil || newtonCollisionGetType == nil {
		return -1
	}
	return newtonCollisionGetType(collision)
}

// CollisionIsConvexShape reports whether the shape is convex.
func CollisionIsConvexShape(collision Collision) int32 {
	if collision == nil || newtonCollisionIsConvexShape == nil {
		return 0
	}
	return newtonCollisionIsConvexShape(collision)
}

// CollisionSetMatrix sets the shape's local offset transform.
func CollisionSetMatrix(collision Collision, matrix *float32) {
	if collision == nil || newtonCollisionSetMatrix == nil {
		return
	}
	newtonCollisionSetMatrix(collision, matrix)
}

// CollisionGetMatrix reads the shape's local offset transform.
func CollisionGetMatrix(collision Collision, matrix *float32) {
	if collision == nil || newtonCollisionGetMatrix == nil {
		return
	}
	newtonCollisionGetMatrix(collision, matrix)
}

// CollisionSetScale sets the shape's local scale.
func CollisionSetScale(collision Collision, x, y, z float32) {
	if collision == nil || newtonCollisionSetScale == nil {
		return
	}
	newtonCollisionSetScale(collision, x, y, z)
}

// CollisionGetScale reads the shape's local scale.
func CollisionGetScale(collision Collision, x, y, z *float32) {
	if collision == nil || newtonCollisionGetScale == nil {
		return
	}
	newtonCollisionGetScale(collision, x, y, z)
}

// CollisionSetUserData stores an opaque value on the shape.
func CollisionSetUserData(collision Collision, userData uintptr) {
	if collision == nil || newtonCollisionSetUserData == nil {
		return
	}
	newtonCollisionSetUserData(collision, userData)
}

// CollisionGetUserData returns the opaque value stored on the shape.
func CollisionGetUserData(collision Collision) uintptr {
	if collision == nil || newtonCollisionGetUserData == nil {
		return 0
	}
	return newtonCollisionGetUserData(collision)
}

// CollisionSetUserID stores a numeric tag on the shape.
func CollisionSetUserID(collision Collision, id uint32) {
	if collision == nil || newtonCollisionSetUserID == nil {
		return
	}
	newtonCollisionSetUserID(collision, id)
}

// CollisionGetUserID returns the shape's numeric tag.
func CollisionGetUserID(collision Collision) uint32 {
	if collision == nil || newtonCollisionGetUserID == nil {
		return 0
	}
	return newtonCollisionGetUserID(collision)
}

// CollisionCalculateAABB computes the shape's AABB under the given transform.
func CollisionCalculateAABB(collision Collision, matrix, p0, p1 *float32) {
	if collision == nil || newtonCollisionCalculateAABB == nil {
		return
	}
	newtonCollisionCalculateAABB(collision, matrix, p0, p1)
}

// CollisionForEachPolygonDo invokes callback for every polygon of the shape's
// debug-display tessellation under the given transform.
func CollisionForEachPolygonDo(collision Collision, matrix *float32, callback uintptr, userData uintptr) {
	if collision == nil || newtonCollisionForEachPolygonDo == nil {
		return
	}
	newtonCollisionForEachPolygonDo(collision, matrix, callback, userData)
}
