//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"strings"
	"testing"
)

func TestLibrarySearchPaths(t *testing.T) {
	paths := LibrarySearchPaths()
	if len(paths) == 0 {
		t.Error("LibrarySearchPaths should return at least one path")
	}
}

func TestCandidateNames(t *testing.T) {
	names := candidateNames("Newton", []int{3, 0})
	if len(names) != 4 {
		t.Fatalf("expected 4 candidate names, got %d: %v", len(names), names)
	}

	// Versioned spellings come before unversioned, capitalized before lowercase.
	if !strings.Contains(names[0], "3") {
		t.Errorf("first candidate should be versioned, got %q", names[0])
	}
	for _, n := range names[:2] {
		if !strings.Contains(n, "Newton") {
			t.Errorf("capitalized spelling should come first, got %q", n)
		}
	}
	for _, n := range names[2:] {
		if !strings.Contains(n, "newton") {
			t.Errorf("lowercase fallback expected, got %q", n)
		}
	}
}

func TestFindLibrary(t *testing.T) {
	// We just verify the search itself works; Newton may not be installed.
	path, err := FindLibrary()
	if err != nil {
		t.Logf("Newton not found (expected if not installed): %v", err)
		return
	}
	t.Logf("Newton library at %s", path)
}

// Integration test - only runs if Newton is available.
func TestLoadNewton(t *testing.T) {
	if err := Load(); err != nil {
		t.Skipf("Newton not available: %v", err)
	}

	if !IsLoaded() {
		t.Error("IsLoaded should be true after successful Load")
	}
	if Lib() == 0 {
		t.Error("Lib should return a non-zero handle after Load")
	}
}
