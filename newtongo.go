//go:build !ios && !android && (amd64 || arm64)

// Package newtongo provides Go bindings for the Newton Game Dynamics physics
// engine using purego, requiring no cgo.
//
// Call Init() once to locate and load the Newton shared library, then create
// a World and step it:
//
//	if err := newtongo.Init(); err != nil {
//		log.Fatal(err)
//	}
//	world, err := newtongo.NewWorld()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer world.Close()
//	world.Step(16 * time.Millisecond)
package newtongo

import (
	"fmt"
	"sync"

	"github.com/obinnaokechukwu/newtongo/capi"
	"github.com/obinnaokechukwu/newtongo/internal/bindings"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init locates and loads the Newton shared library and verifies it is a
// supported single-precision 3.x build. It is safe to call multiple times;
// subsequent calls return the first result.
func Init() error {
	initOnce.Do(func() {
		if err := capi.Load(); err != nil {
			initErr = err
			return
		}
		if size := capi.WorldFloatSize(); size != 4 {
			initErr = fmt.Errorf("%w: dFloat is %d bytes", ErrDoublePrecision, size)
			return
		}
		if v := capi.WorldGetVersion(); v < 300 || v >= 400 {
			initErr = fmt.Errorf("%w: engine reports version %d.%02d", ErrUnsupportedVersion, v/100, v%100)
			return
		}
		logf(LogInfo, "loaded Newton %s", versionString(capi.WorldGetVersion()))
	})
	return initErr
}

// MustInit is Init but panics on failure. Intended for examples and tests.
func MustInit() {
	if err := Init(); err != nil {
		panic(err)
	}
}

// Loaded reports whether Init has succeeded.
func Loaded() bool {
	return capi.Loaded() && initErr == nil
}

// Version returns the engine version as reported by the library, e.g.
// "3.14". Empty before a successful Init.
func Version() string {
	if !Loaded() {
		return ""
	}
	return versionString(capi.WorldGetVersion())
}

func versionString(v int32) string {
	return fmt.Sprintf("%d.%d", v/100, v%100)
}

// EngineMemoryUsed returns the number of bytes the engine has allocated
// across all worlds.
func EngineMemoryUsed() int {
	return int(capi.GetMemoryUsed())
}

// LibraryPath returns the full path of the Newton shared library that would
// be (or was) loaded. Useful for diagnostics.
func LibraryPath() (string, error) {
	return bindings.FindLibrary()
}
