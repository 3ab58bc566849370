//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Broadphase != BroadphaseDefault {
		t.Errorf("default broadphase = %d", cfg.Broadphase)
	}
	if cfg.Name != "world" {
		t.Errorf("default name = %q", cfg.Name)
	}
}

func TestOptions(t *testing.T) {
	reg := NewRegistry()
	cfg := defaultConfig()
	for _, opt := range []Option{
		WithThreads(4),
		WithLinearSolver(8),
		WithBroadphase(BroadphasePersistent),
		WithRegistry(reg),
		WithName("arena"),
	} {
		opt(&cfg)
	}

	if cfg.Threads != 4 {
		t.Errorf("Threads = %d, want 4", cfg.Threads)
	}
	if cfg.SolverSteps != 8 {
		t.Errorf("SolverSteps = %d, want 8", cfg.SolverSteps)
	}
	if cfg.Broadphase != BroadphasePersistent {
		t.Errorf("Broadphase = %d, want persistent", cfg.Broadphase)
	}
	if cfg.Registry != reg {
		t.Error("Registry not applied")
	}
	if cfg.Name != "arena" {
		t.Errorf("Name = %q, want arena", cfg.Name)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("configured options invalid: %v", err)
	}
}

func TestWithMaxThreads(t *testing.T) {
	cfg := defaultConfig()
	WithMaxThreads()(&cfg)
	if cfg.Threads != runtime.NumCPU() {
		t.Errorf("Threads = %d, want NumCPU %d", cfg.Threads, runtime.NumCPU())
	}
}

func TestWithExactSolver(t *testing.T) {
	cfg := defaultConfig()
	WithLinearSolver(4)(&cfg)
	WithExactSolver()(&cfg)
	if cfg.SolverSteps != 0 {
		t.Errorf("SolverSteps = %d, want 0 for the exact solver", cfg.SolverSteps)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{Threads: -1},
		{SolverSteps: -2},
		{Broadphase: 99},
	}
	for _, cfg := range bad {
		if err := cfg.validate(); err == nil {
			t.Errorf("validate accepted %+v", cfg)
		}
	}
}
