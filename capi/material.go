//go:build !ios && !android && (amd64 || arm64)

package capi

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Contact is an opaque contact entry inside a contact joint.
type Contact = unsafe.Pointer

var (
	newtonMaterialCreateGroupID     func(world World) int32
	newtonMaterialGetDefaultGroupID func(world World) int32
	newtonMaterialDestroyAllGroupID func(world World)

	newtonMaterialSetDefaultFriction   func(world World, id0, id1 int32, staticFriction, kineticFriction float32)
	newtonMaterialSetDefaultElasticity func(world World, id0, id1 int32, elasticity float32)
	newtonMaterialSetDefaultSoftness   func(world World, id0, id1 int32, softness float32)
	newtonMaterialSetDefaultCollidable func(world World, id0, id1, state int32)
	newtonMaterialSetSurfaceThickness  func(world World, id0, id1 int32, thickness float32)
	newtonMaterialSetCollisionCallback func(world World, id0, id1 int32, aabbOverlap, process uintptr)
	newtonMaterialSetCallbackUserData  func(world World, id0, id1 int32, userData uintptr)

	newtonContactJointGetFirstContact  func(contactJoint Joint) Contact
	newtonContactJointGetNextContact   func(contactJoint Joint, contact Contact) Contact
	newtonContactJointGetContactCount  func(contactJoint Joint) int32
	newtonContactJointRemoveContact    func(contactJoint Joint, contact Contact)
	newtonContactGetMaterial           func(contact Contact) Material

	newtonMaterialGetContactPositionAndNormal func(material Material, body Body, position, normal *float32)
	newtonMaterialGetContactForce             func(material Material, body Body, force *float32)
	newtonMaterialGetContactPenetration       func(material Material) float32
	newtonMaterialGetContactNormalSpeed       func(material Material) float32
	newtonMaterialGetContactFaceAttribute     func(material Material) uint32
	newtonMaterialGetBodyCollidingShape       func(material Material, body Body) Collision
	newtonMaterialSetContactFrictionCoef      func(material Material, staticCoef, kineticCoef float32, index int32)
	newtonMaterialSetContactElasticity        func(material Material, restitution float32)
)

func registerMaterial(lib uintptr) {
	purego.RegisterLibFunc(&newtonMaterialCreateGroupID, lib, "NewtonMaterialCreateGroupID")
	purego.RegisterLibFunc(&newtonMaterialGetDefaultGroupID, lib, "NewtonMaterialGetDefaultGroupID")
	purego.RegisterLibFunc(&newtonMaterialDestroyAllGroupID, lib, "NewtonMaterialDestroyAllGroupID")

	purego.RegisterLibFunc(&newtonMaterialSetDefaultFriction, lib, "NewtonMaterialSetDefaultFriction")
	purego.RegisterLibFunc(&newtonMaterialSetDefaultElasticity, lib, "NewtonMaterialSetDefaultElasticity")
	purego.RegisterLibFunc(&newtonMaterialSetDefaultSoftness, lib, "NewtonMaterialSetDefaultSoftness")
	purego.RegisterLibFunc(&newtonMaterialSetDefaultCollidable, lib, "NewtonMaterialSetDefaultCollidable")
	purego.RegisterLibFunc(&newtonMaterialSetSurfaceThickness, lib, "NewtonMaterialSetSurfaceThickness")
	purego.RegisterLibFunc(&newtonMaterialSetCollisionCallback, lib, "NewtonMaterialSetCollisionCallback")
	purego.RegisterLibFunc(&newtonMaterialSetCallbackUserData, lib, "NewtonMaterialSetCallbackUserData")

	purego.RegisterLibFunc(&newtonContactJointGetFirstContact, lib, "NewtonContactJointGetFirstContact")
	purego.RegisterLibFunc(&newtonContactJointGetNextContact, lib, "NewtonContactJointGetNextContact")
	purego.RegisterLibFunc(&newtonContactJointGetContactCount, lib, "NewtonContactJointGetContactCount")
	purego.RegisterLibFunc(&newtonContactJointRemoveContact, lib, "NewtonContactJointRemoveContact")
	purego.RegisterLibFunc(&newtonContactGetMaterial, lib, "NewtonContactGetMaterial")

	purego.RegisterLibFunc(&newtonMaterialGetContactPositionAndNormal, lib, "NewtonMaterialGetContactPositionAndNormal")
	purego.RegisterLibFunc(&newtonMaterialGetContactForce, lib, "NewtonMaterialGetContactForce")
	purego.RegisterLibFunc(&newtonMaterialGetContactPenetration, lib, "NewtonMaterialGetContactPenetration")
	purego.RegisterLibFunc(&newtonMaterialGetContactNormalSpeed, lib, "NewtonMaterialGetContactNormalSpeed")
	purego.RegisterLibFunc(&newtonMaterialGetContactFaceAttribute, lib, "NewtonMaterialGetContactFaceAttribute")
	purego.RegisterLibFunc(&newtonMaterialGetBodyCollidingShape, lib, "NewtonMaterialGetBodyCollidingShape")
	purego.RegisterLibFunc(&newtonMaterialSetContactFrictionCoef, lib, "NewtonMaterialSetContactFrictionCoef")
	purego.RegisterLibFunc(&newtonMaterialSetContactElasticity, lib, "NewtonMaterialSetContactElasticity")
}

// MaterialCreateGroupID allocates a new material group. Returns -1 if the
// library is not loaded.
func MaterialCreateGroupID(world World) int32 {
	if world == nil || newtonMaterialCreateGroupID == nil {
		return -1
	}
	return newtonMaterialCreateGroupID(world)
}

// MaterialGetDefaultGroupID returns the built-in default group.
func MaterialGetDefaultGroupID(world World) int32 {
	if world == nil || newtonMaterialGetDefaultGroupID == nil {
		return -1
	}
	return newtonMaterialGetDefaultGroupID(world)
}

// MaterialDestroyAllGroupID destroys every material group except the default
// one. Called during world teardown.
func MaterialDestroyAllGroupID(world World) {
	if world == nil || newtonMaterialDestroyAllGroupID == nil {
		return
	}
	newtonMaterialDestroyAllGroupID(world)
}

// MaterialSetDefaultFriction sets the friction coefficients for a group pair.
func MaterialSetDefaultFriction(world World, id0, id1 int32, staticFriction, kineticFriction float32) {
	if world == nil || newtonMaterialSetDefaultFriction == nil {
		return
	}
	newtonMaterialSetDefaultFriction(world, id0, id1, staticFriction, kineticFriction)
}

// MaterialSetDefaultElasticity sets the restitution for a group pair.
func MaterialSetDefaultElasticity(world World, id0, id1 int32, elasticity float32) {
	if world == nil || newtonMaterialSetDefaultElasticity == nil {
		return
	}
	newtonMaterialSetDefaultElasticity(world, id0, id1, elasticity)
}

// MaterialSetDefaultSoftness sets the contact softness for a group pair.
func MaterialSetDefaultSoftness(world World, id0, id1 int32, softness float32) {
	if world == nil || newtonMaterialSetDefaultSoftness == nil {
		return
	}
	newtonMaterialSetDefaultSoftness(world, id0, id1, softness)
}

// MaterialSetDefaultCollidable enables (1) or disables (0) collision for a
// group pair.
func MaterialSetDefaultCollidable(world World, id0, id1, state int32) {
	if world == nil || newtonMaterialSetDefaultCollidable == nil {
		return
	}
	newtonMaterialSetDefaultCollidable(world, id0, id1, state)
}

// MaterialSetSurfaceThickness sets the surface separation kept between
// bodies of a group pair.
func MaterialSetSurfaceThickness(world World, id0, id1 int32, thickness float32) {
	if world == nil || newtonMaterialSetSurfaceThickness == nil {
		return
	}
	newtonMaterialSetSurfaceThickness(world, id0, id1, thickness)
}

// MaterialSetCollisionCallback installs the AABB-overlap and contact-process
// callbacks for a group pair. Pointers come from purego.NewCallback; zero
// disables a slot.
func MaterialSetCollisionCallback(world World, id0, id1 int32, aabbOverlap, process uintptr) {
	if world == nil || newtonMaterialSetCollisionCallback == nil {
		return
	}
	newtonMaterialSetCollisionCallback(world, id0, id1, aabbOverlap, process)
}

// MaterialSetCallbackUserData stores an opaque value for a group pair,
// retrievable inside pair callbacks.
func MaterialSetCallbackUserData(world World, id0, id1 int32, userData uintptr) {
	if world == nil || newtonMaterialSetCallbackUserData == nil {
		return
	}
	newtonMaterialSetCallbackUserData(world, id0, id1, userData)
}

// ContactJointGetFirstContact returns the first contact of a contact joint,
// or nil.
func ContactJointGetFirstContact(contactJoint Joint) Contact {
	if contactJoint == nil || newtonContactJointGetFirstContact == nil {
		return nil
	}
	return newtonContactJointGetFirstContact(contactJoint)
}

// ContactJointGetNextContact returns the contact after the given one, or nil.
func ContactJointGetNextContact(contactJoint Joint, contact Contact) Contact {
	if contactJoint == nil || contact == nil || newtonContactJointGetNextContact == nil {
		return nil
	}
	return newtonContactJointGetNextContact(contactJoint, contact)
}

// ContactJointGetContactCount returns the number of contacts in the joint.
func ContactJointGetContactCount(contactJoint Joint) int32 {
	if contactJoint == nil || newtonContactJointGetContactCount == nil {
		return 0
	}
	return newtonContactJointGetContactCount(contactJoint)
}

// ContactJointRemoveContact discards a contact before it reaches the solver.
func ContactJointRemoveContact(contactJoint Joint, contact Contact) {
	if contactJoint == nil || contact == nil || newtonContactJointRemoveContact == nil {
		return
	}
	newtonContactJointRemoveContact(contactJoint, contact)
}

// ContactGetMaterial returns the contact material of a contact entry.
func ContactGetMaterial(contact Contact) Material {
	if contact == nil || newtonContactGetMaterial == nil {
		return nil
	}
	return newtonContactGetMaterial(contact)
}

// MaterialGetContactPositionAndNormal reads a contact's world-space position
// and normal relative to body.
func MaterialGetContactPositionAndNormal(material Material, body Body, position, normal *float32) {
	if material == nil || newtonMaterialGetContactPositionAndNormal == nil {
		return
	}
	newtonMaterialGetContactPositionAndNormal(material, body, position, normal)
}

// MaterialGetContactForce reads the force applied at the contact.
func MaterialGetContactForce(material Material, body Body, force *float32) {
	if material == nil || newtonMaterialGetContactForce == nil {
		return
	}
	newtonMaterialGetContactForce(material, body, force)
}

// MaterialGetContactPenetration returns the contact penetration depth.
func MaterialGetContactPenetration(material Material) float32 {
	if material == nil || newtonMaterialGetContactPenetration == nil {
		return 0
	}
	return newtonMaterialGetContactPenetration(material)
}

// MaterialGetContactNormalSpeed returns the closing speed along the contact
// normal.
func MaterialGetContactNormalSpeed(material Material) float32 {
	if material == nil || newtonMaterialGetContactNormalSpeed == nil {
		return 0
	}
	return newtonMaterialGetContactNormalSpeed(material)
}

// MaterialGetContactFaceAttribute returns the face attribute of the contact
// geometry (meaningful for tree and height-field shapes).
func MaterialGetContactFaceAttribute(material Material) uint32 {
	if material == nil || newtonMaterialGetContactFaceAttribute == nil {
		return 0
	}
	return newtonMaterialGetContactFaceAttribute(material)
}

// MaterialGetBodyCollidingShape returns the shape of body involved in the
// contact.
func MaterialGetBodyCollidingShape(material Material, body Body) Collision {
	if material == nil || body == nil || newtonMaterialGetBodyCollidingShape == nil {
		return nil
	}
	return newtonMaterialGetBodyCollidingShape(material, body)
}

// MaterialSetContactFrictionCoef overrides friction for one contact. index
// selects the friction direction (0 or 1).
func MaterialSetContactFrictionCoef(material Material, staticCoef, kineticCoef float32, index int32) {
	if material == nil || newtonMaterialSetContactFrictionCoef == nil {
		return
	}
	newtonMaterialSetContactFrictionCoef(material, staticCoef, kineticCoef, index)
}

// MaterialSetContactElasticity overrides restitution for one contact.
func MaterialSetContactElasticity(material Material, restitution float32) {
	if material == nil || newtonMaterialSetContactElasticity == nil {
		return
	}
	newtonMaterialSetContactElasticity(material, restitution)
}
