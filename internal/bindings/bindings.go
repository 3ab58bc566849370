//go:build !ios && !android && (amd64 || arm64)

// Package bindings handles locating and loading the Newton Game Dynamics
// shared library using purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/newtongo/internal/platform"
)

// ErrNotLoaded is returned when Newton functions are called before Load().
var ErrNotLoaded = errors.New("newtongo: Newton library not loaded; call newtongo.Init() first")

// ErrLibraryNotFound is returned when the Newton library cannot be found.
var ErrLibraryNotFound = errors.New("newtongo: Newton library not found")

// EnvLibraryPath names the environment variable that overrides the library
// search. When set it must point at a directory containing the Newton shared
// library, and it is tried before every default path.
const EnvLibraryPath = "NEWTONGO_LIBRARY_PATH"

// Newton 3.x sonames to try, newest first. Version 0 means the unversioned
// name.
var sonameVersions = []int{3, 0}

var (
	libNewton uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// IsLoaded returns true if the Newton library has been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads the Newton library. It is safe to call multiple times; subsequent
// calls are no-ops and return the first result.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	lib, err := loadLibrary("Newton", sonameVersions)
	if err != nil {
		return fmt.Errorf("loading libNewton: %w", err)
	}
	libNewton = lib
	return nil
}

// loadLibrary attempts to load the library by trying versioned names across
// the search paths, falling back to letting the system resolver find it.
func loadLibrary(name string, versions []int) (uintptr, error) {
	names := candidateNames(name, versions)

	for _, searchPath := range LibrarySearchPaths() {
		for _, libName := range names {
			lib, err := tryOpen(filepath.Join(searchPath, libName))
			if err == nil {
				return lib, nil
			}
		}
	}

	// Bare names: let the dynamic linker search its own configuration.
	for _, libName := range names {
		lib, err := tryOpen(libName)
		if err == nil {
			return lib, nil
		}
	}

	return 0, fmt.Errorf("%w: %s (searched %s)",
		ErrLibraryNotFound, name, strings.Join(LibrarySearchPaths(), ", "))
}

// candidateNames expands a base name into every filename worth trying,
// versioned names first, then the lowercase spelling some distributions use.
func candidateNames(name string, versions []int) []string {
	var names []string
	for _, base := range platform.LowercaseVariants(name) {
		for _, ver := range versions {
			names = append(names, platform.LibraryName(base, ver))
		}
	}
	return names
}

// tryOpen attempts to open a library with RTLD_NOW | RTLD_GLOBAL.
func tryOpen(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return lib, nil
}

// FindLibrary searches for the Newton library and returns its full path.
// This is useful for diagnostics.
func FindLibrary() (string, error) {
	names := candidateNames("Newton", sonameVersions)
	for _, searchPath := range LibrarySearchPaths() {
		for _, libName := range names {
			fullPath := filepath.Join(searchPath, libName)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
	}
	return "", fmt.Errorf("%w: Newton", ErrLibraryNotFound)
}

// LibrarySearchPaths returns the directories searched for the Newton library,
// in order. The NEWTONGO_LIBRARY_PATH override always comes first.
func LibrarySearchPaths() []string {
	var paths []string

	if override := os.Getenv(EnvLibraryPath); override != "" {
		paths = append(paths, filepath.SplitList(override)...)
	}

	switch runtime.GOOS {
	case "linux":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/opt/homebrew/lib", // Apple Silicon
			"/usr/local/lib",    // Intel
			"/opt/homebrew/opt/newton-dynamics/lib",
			"/usr/local/opt/newton-dynamics/lib",
		)

	case "windows":
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths,
			"C:\\newton-dynamics\\bin",
			"C:\\Program Files\\newton-dynamics\\bin",
		)

	case "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
		)
	}

	return paths
}

// Lib returns the Newton library handle, or 0 before a successful Load.
func Lib() uintptr {
	return libNewton
}
