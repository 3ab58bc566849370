//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"sync"
)

// lockCoordinator enforces the shared-read / exclusive-write discipline over
// a world and everything created from it. Bodies, collisions, and joints are
// never independently lockable; their operations acquire the owning world's
// coordinator transitively, which is what keeps object access aligned with
// Newton's non-reentrant stepping model.
//
// Alongside the RWMutex it tracks who holds what, so contention failures can
// name the current holder instead of reporting a bare "would block".
type lockCoordinator struct {
	mu sync.RWMutex

	stateMu   sync.Mutex
	writer    string
	readers   int
	destroyed bool
}

// tryRead acquires a shared lock without blocking. The release function must
// be called exactly once.
func (c *lockCoordinator) tryRead(op string) (func(), error) {
	if !c.mu.TryRLock() {
		return nil, c.contention(op)
	}
	if err := c.checkDestroyed(); err != nil {
		c.mu.RUnlock()
		return nil, err
	}
	c.addReader(1)
	return func() {
		c.addReader(-1)
		c.mu.RUnlock()
	}, nil
}

// read acquires a shared lock, blocking until available.
func (c *lockCoordinator) read(op string) (func(), error) {
	c.mu.RLock()
	if err := c.checkDestroyed(); err != nil {
		c.mu.RUnlock()
		return nil, err
	}
	c.addReader(1)
	return func() {
		c.addReader(-1)
		c.mu.RUnlock()
	}, nil
}

// tryWrite acquires the exclusive lock without blocking. holder is recorded
// for contention diagnostics while the lock is held.
func (c *lockCoordinator) tryWrite(holder string) (func(), error) {
	if !c.mu.TryLock() {
		return nil, c.contention(holder)
	}
	if err := c.checkDestroyed(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.setWriter(holder)
	return func() {
		c.setWriter("")
		c.mu.Unlock()
	}, nil
}

// write acquires the exclusive lock, blocking until available.
func (c *lockCoordinator) write(holder string) (func(), error) {
	c.mu.Lock()
	if err := c.checkDestroyed(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.setWriter(holder)
	return func() {
		c.setWriter("")
		c.mu.Unlock()
	}, nil
}

// markDestroyed flips the coordinator into its terminal state. Must be called
// while holding the exclusive lock. Every later acquisition fails with
// ErrDestroyed.
func (c *lockCoordinator) markDestroyed() {
	c.stateMu.Lock()
	c.destroyed = true
	c.stateMu.Unlock()
}

func (c *lockCoordinator) checkDestroyed() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.destroyed {
		return ErrDestroyed
	}
	return nil
}

func (c *lockCoordinator) contention(op string) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.destroyed {
		return ErrDestroyed
	}
	return &ContentionError{Op: op, Holder: c.writer, Readers: c.readers}
}

func (c *lockCoordinator) setWriter(holder string) {
	c.stateMu.Lock()
	c.writer = holder
	c.stateMu.Unlock()
}

func (c *lockCoordinator) addReader(delta int) {
	c.stateMu.Lock()
	c.readers += delta
	c.stateMu.Unlock()
}
