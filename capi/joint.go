//go:build !ios && !android && (amd64 || arm64)

package capi

import (
	"github.com/ebitengine/purego"
)

var (
	newtonConstraintCreateBall      func(world World, pivotPoint *float32, childBody, parentBody Body) Joint
	newtonConstraintCreateSlider    func(world World, pivotPoint, pinDir *float32, childBody, parentBody Body) Joint
	newtonConstraintCreateHinge     func(world World, pivotPoint, pinDir *float32, childBody, parentBody Body) Joint
	newtonConstraintCreateCorkscrew func(world World, pivotPoint, pinDir *float32, childBody, parentBody Body) Joint
	newtonConstraintCreateUniversal func(world World, pivotPoint, pinDir0, pinDir1 *float32, childBody, parentBody Body) Joint
	newtonConstraintCreateUpVector  func(world World, pinDir *float32, body Body) Joint
	newtonConstraintCreateUserJoint func(world World, maxDOF int32, callback uintptr, childBody, parentBody Body) Joint
	newtonDestroyJoint              func(world World, joint Joint)

	newtonJointGetBody0            func(joint Joint) Body
	newtonJointGetBody1            func(joint Joint) Body
	newtonJointSetUserData         func(joint Joint, userData uintptr)
	newtonJointGetUserData         func(joint Joint) uintptr
	newtonJointSetStiffness        func(joint Joint, stiffness float32)
	newtonJointGetStiffness        func(joint Joint) float32
	newtonJointSetCollisionState   func(joint Joint, state int32)
	newtonJointGetCollisionState   func(joint Joint) int32
	newtonJointIsActive            func(joint Joint) int32
	newtonJointSetDestructor       func(joint Joint, destructor uintptr)

	newtonBallSetUserCallback func(ball Joint, callback uintptr)
	newtonBallGetJointAngle   func(ball Joint, angle *float32)
	newtonBallGetJointOmega   func(ball Joint, omega *float32)
	newtonBallGetJointForce   func(ball Joint, force *float32)
	newtonBallSetConeLimits   func(ball Joint, pin *float32, maxConeAngle, maxTwistAngle float32)

	newtonUpVectorGetPin func(upVector Joint, pin *float32)
	newtonUpVectorSetPin func(upVector Joint, pin *float32)
)

func registerJoint(lib uintptr) {
	purego.RegisterLibFunc(&newtonConstraintCreateBall, lib, "NewtonConstraintCreateBall")
	purego.RegisterLibFunc(&newtonConstraintCreateSlider, lib, "NewtonConstraintCreateSlider")
	purego.RegisterLibFunc(&newtonConstraintCreateHinge, lib, "NewtonConstraintCreateHinge")
	purego.RegisterLibFunc(&newtonConstraintCreateCorkscrew, lib, "NewtonConstraintCreateCorkscrew")
	purego.RegisterLibFunc(&newtonConstraintCreateUniversal, lib, "NewtonConstraintCreateUniversal")
	purego.RegisterLibFunc(&newtonConstraintCreateUpVector, lib, "NewtonConstraintCreateUpVector")
	purego.RegisterLibFunc(&newtonConstraintCreateUserJoint, lib, "NewtonConstraintCreateUserJoint")
	purego.RegisterLibFunc(&newtonDestroyJoint, lib, "NewtonDestroyJoint")

	purego.RegisterLibFunc(&newtonJointGetBody0, lib, "NewtonJointGetBody0")
	purego.RegisterLibFunc(&newtonJointGetBody1, lib, "NewtonJointGetBody1")
	purego.RegisterLibFunc(&newtonJointSetUserData, lib, "NewtonJointSetUserData")
	purego.RegisterLibFunc(&newtonJointGetUserData, lib, "NewtonJointGetUserData")
	purego.RegisterLibFunc(&newtonJointSetStiffness, lib, "NewtonJointSetStiffness")
	purego.RegisterLibFunc(&newtonJointGetStiffness, lib, "NewtonJointGetStiffness")
	purego.RegisterLibFunc(&newtonJointSetCollisionState, lib, "NewtonJointSetCollisionState")
	purego.RegisterLibFunc(&newtonJointGetCollisionState, lib, "NewtonJointGetCollisionState")
	purego.RegisterLibFunc(&newtonJointIsActive, lib, "NewtonJointIsActive")
	purego.RegisterLibFunc(&newtonJointSetDestructor, lib, "NewtonJointSetDestructor")

	purego.RegisterLibFunc(&newtonBallSetUserCallback, lib, "NewtonBallSetUserCallback")
	purego.RegisterLibFunc(&newtonBallGetJointAngle, lib, "NewtonBallGetJointAngle")
	purego.RegisterLibFunc(&newtonBallGetJointOmega, lib, "NewtonBallGetJointOmega")
	purego.RegisterLibFunc(&newtonBallGetJointForce, lib, "NewtonBallGetJointForce")
	purego.RegisterLibFunc(&newtonBallSetConeLimits, lib, "NewtonBallSetConeLimits")

	purego.RegisterLibFunc(&newtonUpVectorGetPin, lib, "NewtonUpVectorGetPin")
	purego.RegisterLibFunc(&newtonUpVectorSetPin, lib, "NewtonUpVectorSetPin")
}

// ConstraintCreateBall creates a ball-and-socket joint at pivotPoint (world
// space). parentBody may be nil to anchor against the world.
func ConstraintCreateBall(world World, pivotPoint *float32, childBody, parentBody Body) Joint {
	if world == nil || childBody == nil || newtonConstraintCreateBall == nil {
		return nil
	}
	return newtonConstraintCreateBall(world, pivotPoint, childBody, parentBody)
}

// ConstraintCreateSlider creates a slider joint along pinDir.
func ConstraintCreateSlider(world World, pivotPoint, pinDir *float32, childBody, parentBody Body) Joint {
	if world == nil || childBody == nil || newtonConstraintCreateSlider == nil {
		return nil
	}
	return newtonConstraintCreateSlider(world, pivotPoint, pinDir, childBody, parentBody)
}

// ConstraintCreateHinge creates a hinge joint around pinDir.
func ConstraintCreateHinge(world World, pivotPoint, pinDir *float32, childBody, parentBody Body) Joint {
	if world == nil || childBody == nil || newtonConstraintCreateHinge == nil {
		return nil
	}
	return newtonConstraintCreateHinge(world, pivotPoint, pinDir, childBody, parentBody)
}

// ConstraintCreateCorkscrew creates a corkscrew joint along pinDir.
func ConstraintCreateCorkscrew(world World, pivotPoint, pinDir *float32, childBody, parentBody Body) Joint {
	if world == nil || childBody == nil || newtonConstraintCreateCorkscrew == nil {
		return nil
	}
	return newtonConstraintCreateCorkscrew(world, pivotPoint, pinDir, childBody, parentBody)
}

// ConstraintCreateUniversal creates a universal joint around two
// perpendicular pins.
func ConstraintCreateUniversal(world World, pivotPoint, pinDir0, pinDir1 *float32, childBody, parentBody Body) Joint {
	if world == nil || childBody == nil || newtonConstraintCreateUniversal == nil {
		return nil
	}
	return newtonConstraintCreateUniversal(world, pivotPoint, pinDir0, pinDir1, childBody, parentBody)
}

// ConstraintCreateUpVector constrains a body's orientation to keep pinDir
// fixed in world space.
func ConstraintCreateUpVector(world World, pinDir *float32, body Body) Joint {
	if world == nil || body == nil || newtonConstraintCreateUpVector == nil {
		return nil
	}
	return newtonConstraintCreateUpVector(world, pinDir, body)
}

// ConstraintCreateUserJoint creates a fully user-defined joint of up to
// maxDOF constrained degrees of freedom. callback comes from
// purego.NewCallback and is invoked every step to submit constraint rows.
func ConstraintCreateUserJoint(world World, maxDOF int32, callback uintptr, childBody, parentBody Body) Joint {
	if world == nil || childBody == nil || newtonConstraintCreateUserJoint == nil {
		return nil
	}
	return newtonConstraintCreateUserJoint(world, maxDOF, callback, childBody, parentBody)
}

// DestroyJoint destroys a joint. The joint's destructor callback fires before
// this returns.
func DestroyJoint(world World, joint Joint) {
	if world == nil || joint == nil || newtonDestroyJoint == nil {
		return
	}
	newtonDestroyJoint(world, joint)
}

// JointGetBody0 returns the joint's child body.
func JointGetBody0(joint Joint) Body {
	if joint == nil || newtonJointGetBody0 == nil {
		return nil
	}
	return newtonJointGetBody0(joint)
}

// JointGetBody1 returns the joint's parent body, or nil for world-anchored
// joints.
func JointGetBody1(joint Joint) Body {
	if joint == nil || newtonJointGetBody1 == nil {
		return nil
	}
	return newtonJointGetBody1(joint)
}

// JointSetUserData stores an opaque value on the joint.
func JointSetUserData(joint Joint, userData uintptr) {
	if joint == nil || newtonJointSetUserData == nil {
		return
	}
	newtonJointSetUserData(joint, userData)
}

// JointGetUserData returns the opaque value stored on the joint.
func JointGetUserData(joint Joint) uintptr {
	if joint == nil || newtonJointGetUserData == nil {
		return 0
	}
	return newtonJointGetUserData(joint)
}

// JointSetStiffness sets the joint stiffness in [0, 1].
func JointSetStiffness(joint Joint, stiffness float32) {
	if joint == nil || newtonJointSetStiffness == nil {
		return
	}
	newtonJointSetStiffness(joint, stiffness)
}

// JointGetStiffness returns the joint stiffness.
func JointGetStiffness(joint Joint) float32 {
	if joint == nil || newtonJointGetStiffness == nil {
		return 0
	}
	return newtonJointGetStiffness(joint)
}

// JointSetCollisionState enables (1) or disables (0) collision between the
// two linked bodies.
func JointSetCollisionState(joint Joint, state int32) {
	if joint == nil || newtonJointSetCollisionState == nil {
		return
	}
	newtonJointSetCollisionState(joint, state)
}

// JointGetCollisionState reports whether the linked bodies collide.
func JointGetCollisionState(joint Joint) int32 {
	if joint == nil || newtonJointGetCollisionState == nil {
		return 0
	}
	return newtonJointGetCollisionState(joint)
}

// JointIsActive reports whether the joint participated in the last step.
func JointIsActive(joint Joint) int32 {
	if joint == nil || newtonJointIsActive == nil {
		return 0
	}
	return newtonJointIsActive(joint)
}

// JointSetDestructor installs the joint destructor callback. The pointer
// comes from purego.NewCallback; zero clears it.
func JointSetDestructor(joint Joint, destructor uintptr) {
	if joint == nil || newtonJointSetDestructor == nil {
		return
	}
	newtonJointSetDestructor(joint, destructor)
}

// BallSetUserCallback installs a per-step callback on a ball joint.
func BallSetUserCallback(ball Joint, callback uintptr) {
	if ball == nil || newtonBallSetUserCallback == nil {
		return
	}
	newtonBallSetUserCallback(ball, callback)
}

// BallGetJointAngle reads the ball joint's relative Euler angles (3 floats).
func BallGetJointAngle(ball Joint, angle *float32) {
	if ball == nil || newtonBallGetJointAngle == nil {
		return
	}
	newtonBallGetJointAngle(ball, angle)
}

// BallGetJointOmega reads the ball joint's relative angular velocity.
func BallGetJointOmega(ball Joint, omega *float32) {
	if ball == nil || newtonBallGetJointOmega == nil {
		return
	}
	newtonBallGetJointOmega(ball, omega)
}

// BallGetJointForce reads the reaction force applied by the ball joint.
func BallGetJointForce(ball Joint, force *float32) {
	if ball == nil || newtonBallGetJointForce == nil {
		return
	}
	newtonBallGetJointForce(ball, force)
}

// BallSetConeLimits restricts the ball joint to a cone around pin with the
// given maximum cone and twist angles (radians).
func BallSetConeLimits(ball Joint, pin *float32, maxConeAngle, maxTwistAngle float32) {
	if ball == nil || newtonBallSetConeLimits == nil {
		return
	}
	newtonBallSetConeLimits(ball, pin, maxConeAngle, maxTwistAngle)
}

// UpVectorGetPin reads the up-vector joint's pin direction.
func UpVectorGetPin(upVector Joint, pin *float32) {
	if upVector == nil || newtonUpVectorGetPin == nil {
		return
	}
	newtonUpVectorGetPin(upVector, pin)
}

// UpVectorSetPin sets the up-vector joint's pin direction.
func UpVectorSetPin(upVector Joint, pin *float32) {
	if upVector == nil || newtonUpVectorSetPin == nil {
		return
	}
	newtonUpVectorSetPin(upVector, pin)
}
