//go:build !ios && !android && (amd64 || arm64)

package capi

import (
	"github.com/ebitengine/purego"
)

var (
	newtonWorldGetVersion func() int32
	newtonWorldFloatSize  func() int32
	newtonGetMemoryUsed   func() int32

	newtonCreate           func() World
	newtonDestroy          func(world World)
	newtonDestroyAllBodies func(world World)

	newtonUpdate                func(world World, timestep float32)
	newtonUpdateAsync           func(world World, timestep float32)
	newtonWaitForUpdateToFinish func(world World)
	newtonInvalidateCache       func(world World)

	newtonSetThreadsCount             func(world World, threads int32)
	newtonGetThreadsCount             func(world World) int32
	newtonSetSolverModel              func(world World, model int32)
	newtonSelectBroadphaseAlgorithm   func(world World, algorithm int32)
	newtonWorldSetUserData            func(world World, userData uintptr)
	newtonWorldGetUserData            func(world World) uintptr
	newtonWorldGetBodyCount           func(world World) int32
	newtonWorldGetConstraintCount     func(world World) int32
	newtonWorldGetFirstBody           func(world World) Body
	newtonWorldGetNextBody            func(world World, body Body) Body
	newtonWorldCriticalSectionLock    func(world World, threadIndex int32)
	newtonWorldCriticalSectionUnlock  func(world World)
	newtonWorldRayCast                func(world World, p0, p1 *float32, filter uintptr, userData uintptr, prefilter uintptr, threadIndex int32)
	newtonWorldConvexCast             func(world World, matrix, target *float32, shape Collision, param *float32, userData uintptr, prefilter uintptr, info *ConvexCastReturnInfo, maxContacts, threadIndex int32) int32
	newtonWorldForEachBodyInAABBDo    func(world World, p0, p1 *float32, callback uintptr, userData uintptr)
)

func registerWorld(lib uintptr) {
	purego.RegisterLibFunc(&newtonWorldGetVersion, lib, "NewtonWorldGetVersion")
	purego.RegisterLibFunc(&newtonWorldFloatSize, lib, "NewtonWorldFloatSize")
	purego.RegisterLibFunc(&newtonGetMemoryUsed, lib, "NewtonGetMemoryUsed")

	purego.RegisterLibFunc(&newtonCreate, lib, "NewtonCreate")
	purego.RegisterLibFunc(&newtonDestroy, lib, "NewtonDestroy")
	purego.RegisterLibFunc(&newtonDestroyAllBodies, lib, "NewtonDestroyAllBodies")

	purego.RegisterLibFunc(&newtonUpdate, lib, "NewtonUpdate")
	purego.RegisterLibFunc(&newtonUpdateAsync, lib, "NewtonUpdateAsync")
	purego.RegisterLibFunc(&newtonWaitForUpdateToFinish, lib, "NewtonWaitForUpdateToFinish")
	purego.RegisterLibFunc(&newtonInvalidateCache, lib, "NewtonInvalidateCache")

	purego.RegisterLibFunc(&newtonSetThreadsCount, lib, "NewtonSetThreadsCount")
	purego.RegisterLibFunc(&newtonGetThreadsCount, lib, "NewtonGetThreadsCount")
	purego.RegisterLibFunc(&newtonSetSolverModel, lib, "NewtonSetSolverModel")
	purego.RegisterLibFunc(&newtonSelectBroadphaseAlgorithm, lib, "NewtonSelectBroadphaseAlgorithm")
	purego.RegisterLibFunc(&newtonWorldSetUserData, lib, "NewtonWorldSetUserData")
	purego.RegisterLibFunc(&newtonWorldGetUserData, lib, "NewtonWorldGetUserData")
	purego.RegisterLibFunc(&newtonWorldGetBodyCount, lib, "NewtonWorldGetBodyCount")
	purego.RegisterLibFunc(&newtonWorldGetConstraintCount, lib, "NewtonWorldGetConstraintCount")
	purego.RegisterLibFunc(&newtonWorldGetFirstBody, lib, "NewtonWorldGetFirstBody")
	purego.RegisterLibFunc(&newtonWorldGetNextBody, lib, "NewtonWorldGetNextBody")
	purego.RegisterLibFunc(&newtonWorldCriticalSectionLock, lib, "NewtonWorldCriticalSectionLock")
	purego.RegisterLibFunc(&newtonWorldCriticalSectionUnlock, lib, "NewtonWorldCriticalSectionUnlock")
	purego.RegisterLibFunc(&newtonWorldRayCast, lib, "NewtonWorldRayCast")
	purego.RegisterLibFunc(&newtonWorldConvexCast, lib, "NewtonWorldConvexCast")
	purego.RegisterLibFunc(&newtonWorldForEachBodyInAABBDo, lib, "NewtonWorldForEachBodyInAABBDo")
}

// WorldGetVersion returns the Newton engine version (e.g. 314 for 3.14).
// Returns 0 if the library is not loaded.
func WorldGetVersion() int32 {
	if newtonWorldGetVersion == nil {
		return 0
	}
	return newtonWorldGetVersion()
}

// WorldFloatSize returns sizeof(dFloat) of the loaded engine build.
// Returns 0 if the library is not loaded.
func WorldFloatSize() int32 {
	if newtonWorldFloatSize == nil {
		return 0
	}
	return newtonWorldFloatSize()
}

// GetMemoryUsed returns the bytes currently allocated by the engine.
func GetMemoryUsed() int32 {
	if newtonGetMemoryUsed == nil {
		return 0
	}
	return newtonGetMemoryUsed()
}

// Create allocates a new Newton world. Returns nil if the library is not
// loaded.
func Create() World {
	if newtonCreate == nil {
		return nil
	}
	return newtonCreate()
}

// Destroy destroys a world and everything still inside it.
func Destroy(world World) {
	if world == nil || newtonDestroy == nil {
		return
	}
	newtonDestroy(world)
}

// DestroyAllBodies destroys every body in the world.
func DestroyAllBodies(world World) {
	if world == nil || newtonDestroyAllBodies == nil {
		return
	}
	newtonDestroyAllBodies(world)
}

// Update advances the simulation synchronously by timestep seconds.
func Update(world World, timestep float32) {
	if world == nil || newtonUpdate == nil {
		return
	}
	newtonUpdate(world, timestep)
}

// UpdateAsync starts an asynchronous simulation step. Pair with
// WaitForUpdateToFinish.
func UpdateAsync(world World, timestep float32) {
	if world == nil || newtonUpdateAsync == nil {
		return
	}
	newtonUpdateAsync(world, timestep)
}

// WaitForUpdateToFinish blocks until an asynchronous step completes.
func WaitForUpdateToFinish(world World) {
	if world == nil || newtonWaitForUpdateToFinish == nil {
		return
	}
	newtonWaitForUpdateToFinish(world)
}

// InvalidateCache flushes all internal contact and island caches. Call after
// teleporting bodies or bulk-editing the scene.
func InvalidateCache(world World) {
	if world == nil || newtonInvalidateCache == nil {
		return
	}
	newtonInvalidateCache(world)
}

// SetThreadsCount sets the number of worker threads used inside Update.
func SetThreadsCount(world World, threads int32) {
	if world == nil || newtonSetThreadsCount == nil {
		return
	}
	newtonSetThreadsCount(world, threads)
}

// GetThreadsCount returns the engine's worker thread count.
func GetThreadsCount(world World) int32 {
	if world == nil || newtonGetThreadsCount == nil {
		return 0
	}
	return newtonGetThreadsCount(world)
}

// SetSolverModel selects the solver: SolverExact or a positive linear step
// count.
func SetSolverModel(world World, model int32) {
	if world == nil || newtonSetSolverModel == nil {
		return
	}
	newtonSetSolverModel(world, model)
}

// SelectBroadphaseAlgorithm selects BroadphaseDefault or
// BroadphasePersistent.
func SelectBroadphaseAlgorithm(world World, algorithm int32) {
	if world == nil || newtonSelectBroadphaseAlgorithm == nil {
		return
	}
	newtonSelectBroadphaseAlgorithm(world, algorithm)
}

// WorldSetUserData stores an opaque value on the world.
func WorldSetUserData(world World, userData uintptr) {
	if world == nil || newtonWorldSetUserData == nil {
		return
	}
	newtonWorldSetUserData(world, userData)
}

// WorldGetUserData returns the opaque value stored on the world.
func WorldGetUserData(world World) uintptr {
	if world == nil || newtonWorldGetUserData == nil {
		return 0
	}
	return newtonWorldGetUserData(world)
}

// WorldGetBodyCount returns the number of bodies in the world.
func WorldGetBodyCount(world World) int32 {
	if world == nil || newtonWorldGetBodyCount == nil {
		return 0
	}
	return newtonWorldGetBodyCount(world)
}

// WorldGetConstraintCount returns the number of joints in the world.
func WorldGetConstraintCount(world World) int32 {
	if world == nil || newtonWorldGetConstraintCount == nil {
		return 0
	}
	return newtonWorldGetConstraintCount(world)
}

// WorldGetFirstBody returns the first body in the world's body list, or nil.
func WorldGetFirstBody(world World) Body {
	if world == nil || newtonWorldGetFirstBody == nil {
		return nil
	}
	return newtonWorldGetFirstBody(world)
}

// WorldGetNextBody returns the body after the given one, or nil at the end.
func WorldGetNextBody(world World, body Body) Body {
	if world == nil || body == nil || newtonWorldGetNextBody == nil {
		return nil
	}
	return newtonWorldGetNextBody(world, body)
}

// WorldCriticalSectionLock takes the engine's internal critical section.
// Only meaningful inside engine callbacks on multithreaded worlds.
func WorldCriticalSectionLock(world World, threadIndex int32) {
	if world == nil || newtonWorldCriticalSectionLock == nil {
		return
	}
	newtonWorldCriticalSectionLock(world, threadIndex)
}

// WorldCriticalSectionUnlock releases the engine's internal critical section.
func WorldCriticalSectionUnlock(world World) {
	if world == nil || newtonWorldCriticalSectionUnlock == nil {
		return
	}
	newtonWorldCriticalSectionUnlock(world)
}

// WorldRayCast shoots a ray from p0 to p1 (both *[4]float32 or longer),
// invoking filter for every intersection and prefilter before narrowphase
// tests. Callback pointers come from purego.NewCallback; zero disables the
// prefilter.
func WorldRayCast(world World, p0, p1 *float32, filter uintptr, userData uintptr, prefilter uintptr, threadIndex int32) {
	if world == nil || newtonWorldRayCast == nil {
		return
	}
	newtonWorldRayCast(world, p0, p1, filter, userData, prefilter, threadIndex)
}

// WorldConvexCast sweeps shape from matrix toward target, filling info with
// up to maxContacts hits. Returns the number of hits written; param receives
// the normalized travel fraction at first impact.
func WorldConvexCast(world World, matrix, target *float32, shape Collision, param *float32, userData uintptr, prefilter uintptr, info *ConvexCastReturnInfo, maxContacts, threadIndex int32) int32 {
	if world == nil || newtonWorldConvexCast == nil {
		return 0
	}
	return newtonWorldConvexCast(world, matrix, target, shape, param, userData, prefilter, info, maxContacts, threadIndex)
}

// WorldForEachBodyInAABBDo invokes callback for every body whose AABB
// overlaps the box [p0, p1].
func WorldForEachBodyInAABBDo(world World, p0, p1 *float32, callback uintptr, userData uintptr) {
	if world == nil || newtonWorldForEachBodyInAABBDo == nil {
		return
	}
	newtonWorldForEachBodyInAABBDo(world, p0, p1, callback, userData)
}
