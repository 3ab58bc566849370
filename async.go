//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"sync"
	"time"

	"github.com/obinnaokechukwu/newtongo/capi"
)

// AsyncUpdate is a simulation step running on the engine's worker threads.
// The world stays exclusively held until Finish is called; every structural
// or query call in between reports contention.
type AsyncUpdate struct {
	world   *World
	release func()
	once    sync.Once
	err     error
}

// StepAsync kicks off a simulation step without waiting for it to complete.
// The caller must call Finish (or Close) on the returned update before
// touching the world again.
func (w *World) StepAsync(dt time.Duration) (*AsyncUpdate, error) {
	release, err := w.lock.tryWrite("World.StepAsync")
	if err != nil {
		return nil, err
	}
	w.flushPendingLocked()
	capi.UpdateAsync(w.raw, durationToSeconds(dt))
	return &AsyncUpdate{world: w, release: release}, nil
}

// Finish blocks until the step completes and releases the world. Safe to
// call more than once; later calls return the first call's result.
func (u *AsyncUpdate) Finish() error {
	u.once.Do(func() {
		capi.WaitForUpdateToFinish(u.world.raw)
		u.err = u.world.takeCallbackPanic()
		u.release()
	})
	return u.err
}

// Close is Finish. It exists so an in-flight step can sit in a defer chain;
// note that it blocks until the engine finishes the step.
func (u *AsyncUpdate) Close() error {
	return u.Finish()
}
