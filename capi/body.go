//go:build !ios && !android && (amd64 || arm64)

package capi

import (
	"github.com/ebitengine/purego"
)

var (
	newtonCreateDynamicBody   func(world World, collision Collision, matrix *float32) Body
	newtonCreateKinematicBody func(world World, collision Collision, matrix *float32) Body
	newtonDestroyBody         func(body Body)

	newtonBodyGetWorld    func(body Body) World
	newtonBodyGetType     func(body Body) int32
	newtonBodySetUserData func(body Body, userData uintptr)
	newtonBodyGetUserData func(body Body) uintptr

	newtonBodySetMatrix   func(body Body, matrix *float32)
	newtonBodyGetMatrix   func(body Body, matrix *float32)
	newtonBodyGetPosition func(body Body, position *float32)
	newtonBodyGetRotation func(body Body, rotation *float32)

	newtonBodySetVelocity func(body Body, velocity *float32)
	newtonBodyGetVelocity func(body Body, velocity *float32)
	newtonBodySetOmega    func(body Body, omega *float32)
	newtonBodyGetOmega    func(body Body, omega *float32)
	newtonBodySetForce    func(body Body, force *float32)
	newtonBodyGetForce    func(body Body, force *float32)
	newtonBodyAddForce    func(body Body, force *float32)
	newtonBodySetTorque   func(body Body, torque *float32)
	newtonBodyGetTorque   func(body Body, torque *float32)
	newtonBodyAddTorque   func(body Body, torque *float32)
	newtonBodyAddImpulse  func(body Body, deltaVelocity, point *float32, timestep float32)

	newtonBodySetMassMatrix     func(body Body, mass, ixx, iyy, izz float32)
	newtonBodySetMassProperties func(body Body, mass float32, collision Collision)
	newtonBodyGetMass           func(body Body, mass, ixx, iyy, izz *float32)
	newtonBodyGetInvMass        func(body Body, invMass, invIxx, invIyy, invIzz *float32)

	newtonBodySetLinearDamping  func(body Body, damping float32)
	newtonBodyGetLinearDamping  func(body Body) float32
	newtonBodySetAngularDamping func(body Body, damping *float32)
	newtonBodyGetAngularDamping func(body Body, damping *float32)

	newtonBodySetSleepState              func(body Body, state int32)
	newtonBodyGetSleepState              func(body Body) int32
	newtonBodySetAutoSleep               func(body Body, state int32)
	newtonBodyGetAutoSleep               func(body Body) int32
	newtonBodySetFreezeState             func(body Body, state int32)
	newtonBodyGetFreezeState             func(body Body) int32
	newtonBodySetContinuousCollisionMode func(body Body, state uint32)
	newtonBodyGetContinuousCollisionMode func(body Body) int32
	newtonBodySetCollidable              func(body Body, state int32)
	newtonBodyGetCollidable              func(body Body) int32

	newtonBodySetMaterialGroupID func(body Body, id int32)
	newtonBodyGetMaterialGroupID func(body Body) int32
	newtonBodyGetAABB            func(body Body, p0, p1 *float32)
	newtonBodySetCollision       func(body Body, collision Collision)
	newtonBodyGetCollision       func(body Body) Collision

	newtonBodySetForceAndTorqueCallback func(body Body, callback uintptr)
	newtonBodyGetForceAndTorqueCallback func(body Body) uintptr
	newtonBodySetTransformCallback      func(body Body, callback uintptr)
	newtonBodySetDestructorCallback     func(body Body, callback uintptr)
)

func registerBody(lib uintptr) {
	purego.RegisterLibFunc(&newtonCreateDynamicBody, lib, "NewtonCreateDynamicBody")
	purego.RegisterLibFunc(&newtonCreateKinematicBody, lib, "NewtonCreateKinematicBody")
	purego.RegisterLibFunc(&newtonDestroyBody, lib, "NewtonDestroyBody")

	purego.RegisterLibFunc(&newtonBodyGetWorld, lib, "NewtonBodyGetWorld")
	purego.RegisterLibFunc(&newtonBodyGetType, lib, "NewtonBodyGetType")
	purego.RegisterLibFunc(&newtonBodySetUserData, lib, "NewtonBodySetUserData")
	purego.RegisterLibFunc(&newtonBodyGetUserData, lib, "NewtonBodyGetUserData")

	purego.RegisterLibFunc(&newtonBodySetMatrix, lib, "NewtonBodySetMatrix")
	purego.RegisterLibFunc(&newtonBodyGetMatrix, lib, "NewtonBodyGetMatrix")
	purego.RegisterLibFunc(&newtonBodyGetPosition, lib, "NewtonBodyGetPosition")
	purego.RegisterLibFunc(&newtonBodyGetRotation, lib, "NewtonBodyGetRotation")

	purego.RegisterLibFunc(&newtonBodySetVelocity, lib, "NewtonBodySetVelocity")
	purego.RegisterLibFunc(&newtonBodyGetVelocity, lib, "NewtonBodyGetVelocity")
	purego.RegisterLibFunc(&newtonBodySetOmega, lib, "NewtonBodySetOmega")
	purego.RegisterLibFunc(&newtonBodyGetOmega, lib, "NewtonBodyGetOmega")
	purego.RegisterLibFunc(&newtonBodySetForce, lib, "NewtonBodySetForce")
	purego.RegisterLibFunc(&newtonBodyGetForce, lib, "NewtonBodyGetForce")
	purego.RegisterLibFunc(&newtonBodyAddForce, lib, "NewtonBodyAddForce")
	purego.RegisterLibFunc(&newtonBodySetTorque, lib, "NewtonBodySetTorque")
	purego.RegisterLibFunc(&newtonBodyGetTorque, lib, "NewtonBodyGetTorque")
	purego.RegisterLibFunc(&newtonBodyAddTorque, lib, "NewtonBodyAddTorque")
	purego.RegisterLibFunc(&newtonBodyAddImpulse, lib, "NewtonBodyAddImpulse")

	purego.RegisterLibFunc(&newtonBodySetMassMatrix, lib, "NewtonBodySetMassMatrix")
	purego.RegisterLibFunc(&newtonBodySetMassProperties, lib, "NewtonBodySetMassProperties")
	purego.RegisterLibFunc(&newtonBodyGetMass, lib, "NewtonBodyGetMass")
	purego.RegisterLibFunc(&newtonBodyGetInvMass, lib, "NewtonBodyGetInvMass")

	purego.RegisterLibFunc(&newtonBodySetLinearDamping, lib, "NewtonBodySetLinearDamping")
	purego.RegisterLibFunc(&newtonBodyGetLinearDamping, lib, "NewtonBodyGetLinearDamping")
	purego.RegisterLibFunc(&newtonBodySetAngularDamping, lib, "NewtonBodySetAngularDamping")
	purego.RegisterLibFunc(&newtonBodyGetAngularDamping, lib, "NewtonBodyGetAngularDamping")

	purego.RegisterLibFunc(&newtonBodySetSleepState, lib, "NewtonBodySetSleepState")
	purego.RegisterLibFunc(&newtonBodyGetSleepState, lib, "NewtonBodyGetSleepState")
	purego.RegisterLibFunc(&newtonBodySetAutoSleep, lib, "NewtonBodySetAutoSleep")
	purego.RegisterLibFunc(&newtonBodyGetAutoSleep, lib, "NewtonBodyGetAutoSleep")
	purego.RegisterLibFunc(&newtonBodySetFreezeState, lib, "NewtonBodySetFreezeState")
	purego.RegisterLibFunc(&newtonBodyGetFreezeState, lib, "NewtonBodyGetFreezeState")
	purego.RegisterLibFunc(&newtonBodySetContinuousCollisionMode, lib, "NewtonBodySetContinuousCollisionMode")
	purego.RegisterLibFunc(&newtonBodyGetContinuousCollisionMode, lib, "NewtonBodyGetContinuousCollisionMode")
	purego.RegisterLibFunc(&newtonBodySetCollidable, lib, "NewtonBodySetCollidable")
	purego.RegisterLibFunc(&newtonBodyGetCollidable, lib, "NewtonBodyGetCollidable")

	purego.RegisterLibFunc(&newtonBodySetMaterialGroupID, lib, "NewtonBodySetMaterialGroupID")
	purego.RegisterLibFunc(&newtonBodyGetMaterialGroupID, lib, "NewtonBodyGetMaterialGroupID")
	purego.RegisterLibFunc(&newtonBodyGetAABB, lib, "NewtonBodyGetAABB")
	purego.RegisterLibFunc(&newtonBodySetCollision, lib, "NewtonBodySetCollision")
	purego.RegisterLibFunc(&newtonBodyGetCollision, lib, "NewtonBodyGetCollision")

	purego.RegisterLibFunc(&newtonBodySetForceAndTorqueCallback, lib, "NewtonBodySetForceAndTorqueCallback")
	purego.RegisterLibFunc(&newtonBodyGetForceAndTorqueCallback, lib, "NewtonBodyGetForceAndTorqueCallback")
	purego.RegisterLibFunc(&newtonBodySetTransformCallback, lib, "NewtonBodySetTransformCallback")
	purego.RegisterLibFunc(&newtonBodySetDestructorCallback, lib, "NewtonBodySetDestructorCallback")
}

// CreateDynamicBody creates a dynamic rigid body from a collision shape and a
// 4x4 transform.
func CreateDynamicBody(world World, collision Collision, matrix *float32) Body {
	if world == nil || newtonCreateDynamicBody == nil {
		return nil
	}
	return newtonCreateDynamicBody(world, collision, matrix)
}

// CreateKinematicBody creates a kinematic body from a collision shape and a
// 4x4 transform.
func CreateKinematicBody(world World, collision Collision, matrix *float32) Body {
	if world == nil || newtonCreateKinematicBody == nil {
		return nil
	}
	return newtonCreateKinematicBody(world, collision, matrix)
}

// DestroyBody destroys a body. Must not be called while the engine is
// stepping.
func DestroyBody(body Body) {
	if body == nil || newtonDestroyBody == nil {
		return
	}
	newtonDestroyBody(body)
}

// BodyGetWorld returns the world that owns the body.
func BodyGetWorld(body Body) World {
	if body == nil || newtonBodyGetWorld == nil {
		return nil
	}
	return newtonBodyGetWorld(body)
}

// BodyGetType returns DynamicBody or KinematicBody.
func BodyGetType(body Body) int32 {
	if body == nil || newtonBodyGetType == nil {
		return 0
	}
	return newtonBodyGetType(body)
}

// BodySetUserData stores an opaque value on the body.
func BodySetUserData(body Body, userData uintptr) {
	if body == nil || newtonBodySetUserData == nil {
		return
	}
	newtonBodySetUserData(body, userData)
}

// BodyGetUserData returns the opaque value stored on the body.
func BodyGetUserData(body Body) uintptr {
	if body == nil || newtonBodyGetUserData == nil {
		return 0
	}
	return newtonBodyGetUserData(body)
}

// BodySetMatrix sets the body's 4x4 transform.
func BodySetMatrix(body Body, matrix *float32) {
	if body == nil || newtonBodySetMatrix == nil {
		return
	}
	newtonBodySetMatrix(body, matrix)
}

// BodyGetMatrix reads the body's 4x4 transform into matrix.
func BodyGetMatrix(body Body, matrix *float32) {
	if body == nil || newtonBodyGetMatrix == nil {
		return
	}
	newtonBodyGetMatrix(body, matrix)
}

// BodyGetPosition reads the body's position into a 3-float vector.
func BodyGetPosition(body Body, position *float32) {
	if body == nil || newtonBodyGetPosition == nil {
		return
	}
	newtonBodyGetPosition(body, position)
}

// BodyGetRotation reads the body's orientation quaternion into a 4-float
// vector.
func BodyGetRotation(body Body, rotation *float32) {
	if body == nil || newtonBodyGetRotation == nil {
		return
	}
	newtonBodyGetRotation(body, rotation)
}

// BodySetVelocity sets the body's linear velocity.
func BodySetVelocity(body Body, velocity *float32) {
	if body == nil || newtonBodySetVelocity == nil {
		return
	}
	newtonBodySetVelocity(body, velocity)
}

// BodyGetVelocity reads the body's linear velocity.
func BodyGetVelocity(body Body, velocity *float32) {
	if body == nil || newtonBodyGetVelocity == nil {
		return
	}
	newtonBodyGetVelocity(body, velocity)
}

// BodySetOmega sets the body's angular velocity.
func BodySetOmega(body Body, omega *float32) {
	if body == nil || newtonBodySetOmega == nil {
		return
	}
	newtonBodySetOmega(body, omega)
}

// BodyGetOmega reads the body's angular velocity.
func BodyGetOmega(body Body, omega *float32) {
	if body == nil || newtonBodyGetOmega == nil {
		return
	}
	newtonBodyGetOmega(body, omega)
}

// BodySetForce sets the net force for this step. Only valid inside a
// force-and-torque callback.
func BodySetForce(body Body, force *float32) {
	if body == nil || newtonBodySetForce == nil {
		return
	}
	newtonBodySetForce(body, force)
}

// BodyGetForce reads the net force applied in the last step.
func BodyGetForce(body Body, force *float32) {
	if body == nil || newtonBodyGetForce == nil {
		return
	}
	newtonBodyGetForce(body, force)
}

// BodyAddForce accumulates force for this step. Only valid inside a
// force-and-torque callback.
func BodyAddForce(body Body, force *float32) {
	if body == nil || newtonBodyAddForce == nil {
		return
	}
	newtonBodyAddForce(body, force)
}

// BodySetTorque sets the net torque for this step. Only valid inside a
// force-and-torque callback.
func BodySetTorque(body Body, torque *float32) {
	if body == nil || newtonBodySetTorque == nil {
		return
	}
	newtonBodySetTorque(body, torque)
}

// BodyGetTorque reads the net torque applied in the last step.
func BodyGetTorque(body Body, torque *float32) {
	if body == nil || newtonBodyGetTorque == nil {
		return
	}
	newtonBodyGetTorque(body, torque)
}

// BodyAddTorque accumulates torque for this step. Only valid inside a
// force-and-torque callback.
func BodyAddTorque(body Body, torque *float32) {
	if body == nil || newtonBodyAddTorque == nil {
		return
	}
	newtonBodyAddTorque(body, torque)
}

// BodyAddImpulse applies an instantaneous velocity change at a world-space
// point.
func BodyAddImpulse(body Body, deltaVelocity, point *float32, timestep float32) {
	if body == nil || newtonBodyAddImpulse == nil {
		return
	}
	newtonBodyAddImpulse(body, deltaVelocity, point, timestep)
}

// BodySetMassMatrix sets the mass and the principal moments of inertia.
func BodySetMassMatrix(body Body, mass, ixx, iyy, izz float32) {
	if body == nil || newtonBodySetMassMatrix == nil {
		return
	}
	newtonBodySetMassMatrix(body, mass, ixx, iyy, izz)
}

// BodySetMassProperties sets the mass and computes inertia from the collision
// shape geometry.
func BodySetMassProperties(body Body, mass float32, collision Collision) {
	if body == nil || newtonBodySetMassProperties == nil {
		return
	}
	newtonBodySetMassProperties(body, mass, collision)
}

// BodyGetMass reads the mass and principal moments of inertia.
func BodyGetMass(body Body, mass, ixx, iyy, izz *float32) {
	if body == nil || newtonBodyGetMass == nil {
		return
	}
	newtonBodyGetMass(body, mass, ixx, iyy, izz)
}

// BodyGetInvMass reads the inverse mass and inverse principal moments.
func BodyGetInvMass(body Body, invMass, invIxx, invIyy, invIzz *float32) {
	if body == nil || newtonBodyGetInvMass == nil {
		return
	}
	newtonBodyGetInvMass(body, invMass, invIxx, invIyy, invIzz)
}

// BodySetLinearDamping sets the linear velocity damping coefficient.
func BodySetLinearDamping(body Body, damping float32) {
	if body == nil || newtonBodySetLinearDamping == nil {
		return
	}
	newtonBodySetLinearDamping(body, damping)
}

// BodyGetLinearDamping returns the linear velocity damping coefficient.
func BodyGetLinearDamping(body Body) float32 {
	if body == nil || newtonBodyGetLinearDamping == nil {
		return 0
	}
	return newtonBodyGetLinearDamping(body)
}

// BodySetAngularDamping sets the per-axis angular damping (3-float vector).
func BodySetAngularDamping(body Body, damping *float32) {
	if body == nil || newtonBodySetAngularDamping == nil {
		return
	}
	newtonBodySetAngularDamping(body, damping)
}

// BodyGetAngularDamping reads the per-axis angular damping.
func BodyGetAngularDamping(body Body, damping *float32) {
	if body == nil || newtonBodyGetAngularDamping == nil {
		return
	}
	newtonBodyGetAngularDamping(body, damping)
}

// BodySetSleepState sets BodyAwake or BodySleeping.
func BodySetSleepState(body Body, state int32) {
	if body == nil || newtonBodySetSleepState == nil {
		return
	}
	newtonBodySetSleepState(body, state)
}

// BodyGetSleepState returns BodyAwake or BodySleeping.
func BodyGetSleepState(body Body) int32 {
	if body == nil || newtonBodyGetSleepState == nil {
		return 0
	}
	return newtonBodyGetSleepState(body)
}

// BodySetAutoSleep enables or disables automatic sleeping at equilibrium.
func BodySetAutoSleep(body Body, state int32) {
	if body == nil || newtonBodySetAutoSleep == nil {
		return
	}
	newtonBodySetAutoSleep(body, state)
}

// BodyGetAutoSleep reports whether automatic sleeping is enabled.
func BodyGetAutoSleep(body Body) int32 {
	if body == nil || newtonBodyGetAutoSleep == nil {
		return 0
	}
	return newtonBodyGetAutoSleep(body)
}

// BodySetFreezeState sets BodyFrozen or BodyUnfrozen.
func BodySetFreezeState(body Body, state int32) {
	if body == nil || newtonBodySetFreezeState == nil {
		return
	}
	newtonBodySetFreezeState(body, state)
}

// BodyGetFreezeState returns BodyFrozen or BodyUnfrozen.
func BodyGetFreezeState(body Body) int32 {
	if body == nil || newtonBodyGetFreezeState == nil {
		return 0
	}
	return newtonBodyGetFreezeState(body)
}

// BodySetContinuousCollisionMode enables swept collision for fast bodies.
func BodySetContinuousCollisionMode(body Body, state uint32) {
	if body == nil || newtonBodySetContinuousCollisionMode == nil {
		return
	}
	newtonBodySetContinuousCollisionMode(body, state)
}

// BodyGetContinuousCollisionMode reports whether swept collision is enabled.
func BodyGetContinuousCollisionMode(body Body) int32 {
	if body == nil || newtonBodyGetContinuousCollisionMode == nil {
		return 0
	}
	return newtonBodyGetContinuousCollisionMode(body)
}

// BodySetCollidable enables or disables collision for the body.
func BodySetCollidable(body Body, state int32) {
	if body == nil || newtonBodySetCollidable == nil {
		return
	}
	newtonBodySetCollidable(body, state)
}

// BodyGetCollidable reports whether the body collides.
func BodyGetCollidable(body Body) int32 {
	if body == nil || newtonBodyGetCollidable == nil {
		return 0
	}
	return newtonBodyGetCollidable(body)
}

// BodySetMaterialGroupID assigns the body to a material group.
func BodySetMaterialGroupID(body Body, id int32) {
	if body == nil || newtonBodySetMaterialGroupID == nil {
		return
	}
	newtonBodySetMaterialGroupID(body, id)
}

// BodyGetMaterialGroupID returns the body's material group.
func BodyGetMaterialGroupID(body Body) int32 {
	if body == nil || newtonBodyGetMaterialGroupID == nil {
		return 0
	}
	return newtonBodyGetMaterialGroupID(body)
}

// BodyGetAABB reads the body's world-space bounding box corners (3 floats
// each).
func BodyGetAABB(body Body, p0, p1 *float32) {
	if body == nil || newtonBodyGetAABB == nil {
		return
	}
	newtonBodyGetAABB(body, p0, p1)
}

// BodySetCollision swaps the body's collision shape.
func BodySetCollision(body Body, collision Collision) {
	if body == nil || newtonBodySetCollision == nil {
		return
	}
	newtonBodySetCollision(body, collision)
}

// BodyGetCollision returns the body's current collision shape.
func BodyGetCollision(body Body) Collision {
	if body == nil || newtonBodyGetCollision == nil {
		return nil
	}
	return newtonBodyGetCollision(body)
}

// BodySetForceAndTorqueCallback installs the per-step force callback.
// The pointer comes from purego.NewCallback; zero clears it.
func BodySetForceAndTorqueCallback(body Body, callback uintptr) {
	if body == nil || newtonBodySetForceAndTorqueCallback == nil {
		return
	}
	newtonBodySetForceAndTorqueCallback(body, callback)
}

// BodyGetForceAndTorqueCallback returns the installed force callback pointer.
func BodyGetForceAndTorqueCallback(body Body) uintptr {
	if body == nil || newtonBodyGetForceAndTorqueCallback == nil {
		return 0
	}
	return newtonBodyGetForceAndTorqueCallback(body)
}

// BodySetTransformCallback installs the transform-changed callback.
func BodySetTransformCallback(body Body, callback uintptr) {
	if body == nil || newtonBodySetTransformCallback == nil {
		return
	}
	newtonBodySetTransformCallback(body, callback)
}

// BodySetDestructorCallback installs the body destructor callback.
func BodySetDestructorCallback(body Body, callback uintptr) {
	if body == nil || newtonBodySetDestructorCallback == nil {
		return
	}
	newtonBodySetDestructorCallback(body, callback)
}
