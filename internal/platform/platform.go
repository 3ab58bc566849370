//go:build !ios && !android && (amd64 || arm64)

// Package platform resolves OS-specific shared library naming for the Newton
// Game Dynamics runtime. Newton installs under different conventions per
// platform (libNewton.so on Linux, libNewton.dylib via Homebrew on macOS,
// newton.dll on Windows), and distributions disagree on whether the soname
// carries the major version.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// newtongo only supports 64-bit platforms due to purego limitations.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// LibraryName returns the platform-specific filename for the Newton library.
// If version is 0, the unversioned name is returned.
//
// Examples:
//   - Linux:   LibraryName("Newton", 3) -> "libNewton.so.3"
//   - macOS:   LibraryName("Newton", 3) -> "libNewton.3.dylib"
//   - Windows: LibraryName("Newton", 3) -> "Newton-3.dll"
func LibraryName(name string, version int) string {
	switch runtime.GOOS {
	case "darwin":
		if version > 0 {
			return fmt.Sprintf("%s%s.%d%s", LibraryPrefix, name, version, LibraryExtension)
		}
		return fmt.Sprintf("%s%s%s", LibraryPrefix, name, LibraryExtension)
	case "windows":
		if version > 0 {
			return fmt.Sprintf("%s%s-%d%s", LibraryPrefix, name, version, LibraryExtension)
		}
		return fmt.Sprintf("%s%s%s", LibraryPrefix, name, LibraryExtension)
	default: // linux, freebsd
		if version > 0 {
			return fmt.Sprintf("%s%s%s.%d", LibraryPrefix, name, LibraryExtension, version)
		}
		return fmt.Sprintf("%s%s%s", LibraryPrefix, name, LibraryExtension)
	}
}

// LowercaseVariants returns alternative spellings of the library base name.
// Some package managers ship Newton as "libnewton" rather than "libNewton".
func LowercaseVariants(name string) []string {
	lower := ""
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		lower += string(r)
	}
	if lower == name {
		return []string{name}
	}
	return []string{name, lower}
}

// GOOS returns the current operating system.
func GOOS() string {
	return runtime.GOOS
}

// GOARCH returns the current architecture.
func GOARCH() string {
	return runtime.GOARCH
}
