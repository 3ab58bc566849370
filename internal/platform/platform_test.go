//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"
)

func TestIs64Bit(t *testing.T) {
	// We only support 64-bit platforms
	if !Is64Bit {
		t.Error("Platform should be 64-bit")
	}
}

func TestLibraryExtension(t *testing.T) {
	switch runtime.GOOS {
	case "darwin":
		if LibraryExtension != ".dylib" {
			t.Errorf("expected .dylib, got %s", LibraryExtension)
		}
	case "windows":
		if LibraryExtension != ".dll" {
			t.Errorf("expected .dll, got %s", LibraryExtension)
		}
	default:
		if LibraryExtension != ".so" {
			t.Errorf("expected .so, got %s", LibraryExtension)
		}
	}
}

func TestLibraryPrefix(t *testing.T) {
	switch runtime.GOOS {
	case "windows":
		if LibraryPrefix != "" {
			t.Errorf("expected empty prefix on Windows, got %s", LibraryPrefix)
		}
	default:
		if LibraryPrefix != "lib" {
			t.Errorf("expected 'lib' prefix, got %s", LibraryPrefix)
		}
	}
}

func TestLibraryName(t *testing.T) {
	tests := []struct {
		name    string
		version int
		goos    string
		want    string
	}{
		{"Newton", 3, "linux", "libNewton.so.3"},
		{"Newton", 0, "linux", "libNewton.so"},
		{"Newton", 3, "darwin", "libNewton.3.dylib"},
		{"Newton", 0, "darwin", "libNewton.dylib"},
		{"Newton", 3, "windows", "Newton-3.dll"},
		{"Newton", 0, "windows", "Newton.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.goos, func(t *testing.T) {
			if runtime.GOOS != tt.goos {
				t.Skipf("test only applies to %s", tt.goos)
			}
			got := LibraryName(tt.name, tt.version)
			if got != tt.want {
				t.Errorf("LibraryName(%q, %d) = %q, want %q", tt.name, tt.version, got, tt.want)
			}
		})
	}
}

func TestLowercaseVariants(t *testing.T) {
	got := LowercaseVariants("Newton")
	if len(got) != 2 || got[0] != "Newton" || got[1] != "newton" {
		t.Errorf("LowercaseVariants(Newton) = %v, want [Newton newton]", got)
	}

	got = LowercaseVariants("newton")
	if len(got) != 1 || got[0] != "newton" {
		t.Errorf("LowercaseVariants(newton) = %v, want [newton]", got)
	}
}
