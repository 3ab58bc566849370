//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"fmt"
	"runtime"

	"github.com/obinnaokechukwu/newtongo/capi"
)

// Broadphase selects Newton's broadphase collision-culling algorithm.
type Broadphase int32

const (
	// BroadphaseDefault is Newton's general-purpose broadphase.
	BroadphaseDefault Broadphase = capi.BroadphaseDefault

	// BroadphasePersistent favors mostly-static scenes.
	BroadphasePersistent Broadphase = capi.BroadphasePersistent
)

// Config holds world construction parameters. Populate it through Options;
// the zero Config is usable, but prefer NewWorld's defaults.
type Config struct {
	// Threads is the number of worker threads Newton uses inside a step.
	// Zero leaves the engine default (single-threaded).
	Threads int

	// SolverSteps selects the solver model: 0 for the exact solver, a
	// positive count for the iterative linear solver with that many
	// passes.
	SolverSteps int

	// Broadphase selects the collision culling algorithm.
	Broadphase Broadphase

	// Registry overrides the default map-backed registry.
	Registry Registry

	// Name labels the world in lock-contention diagnostics.
	Name string
}

func defaultConfig() Config {
	return Config{Broadphase: BroadphaseDefault, Name: "world"}
}

func (c *Config) validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("newtongo: negative thread count %d", c.Threads)
	}
	if c.SolverSteps < 0 {
		return fmt.Errorf("newtongo: negative solver step count %d", c.SolverSteps)
	}
	if c.Broadphase != BroadphaseDefault && c.Broadphase != BroadphasePersistent {
		return fmt.Errorf("newtongo: unknown broadphase %d", c.Broadphase)
	}
	return nil
}

// Option customizes world construction.
type Option func(*Config)

// WithThreads sets the engine's worker thread count.
func WithThreads(n int) Option {
	return func(c *Config) { c.Threads = n }
}

// WithMaxThreads uses one worker thread per CPU.
func WithMaxThreads() Option {
	return func(c *Config) { c.Threads = runtime.NumCPU() }
}

// WithLinearSolver selects the iterative solver with the given pass count.
// Faster and less accurate than the exact solver.
func WithLinearSolver(steps int) Option {
	return func(c *Config) { c.SolverSteps = steps }
}

// WithExactSolver selects the exact solver.
func WithExactSolver() Option {
	return func(c *Config) { c.SolverSteps = capi.SolverExact }
}

// WithBroadphase selects the broadphase algorithm.
func WithBroadphase(b Broadphase) Option {
	return func(c *Config) { c.Broadphase = b }
}

// WithRegistry supplies a custom registry implementation.
func WithRegistry(r Registry) Option {
	return func(c *Config) { c.Registry = r }
}

// WithName labels the world in diagnostics.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}
