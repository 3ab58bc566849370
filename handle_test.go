//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"strings"
	"testing"
)

func TestHandleNull(t *testing.T) {
	var h Handle
	if !h.IsNull() {
		t.Error("zero Handle should be null")
	}
	if _, ok := h.Pointer(); ok {
		t.Error("null handle should not expose a pointer")
	}
	if _, ok := h.Index(); ok {
		t.Error("null handle should not expose an index")
	}
	if HandleFromPointer(0) != h {
		t.Error("HandleFromPointer(0) should be the null handle")
	}
}

func TestHandleFromPointer(t *testing.T) {
	h := HandleFromPointer(0xdeadbeef)
	if h.IsNull() {
		t.Fatal("pointer handle reported null")
	}
	p, ok := h.Pointer()
	if !ok || p != 0xdeadbeef {
		t.Errorf("Pointer() = %#x, %v; want 0xdeadbeef, true", p, ok)
	}
	if _, ok := h.Index(); ok {
		t.Error("pointer handle should not expose an index")
	}
}

func TestHandleFromIndex(t *testing.T) {
	h := HandleFromIndex(7)
	if h.IsNull() {
		t.Fatal("index handle reported null")
	}
	i, ok := h.Index()
	if !ok || i != 7 {
		t.Errorf("Index() = %d, %v; want 7, true", i, ok)
	}
	if _, ok := h.Pointer(); ok {
		t.Error("index handle should not expose a pointer")
	}

	// Same value, different kind: must not compare equal.
	if h == HandleFromPointer(7) {
		t.Error("index handle compared equal to pointer handle with same value")
	}
}

func TestHandleAsMapKey(t *testing.T) {
	m := map[Handle]string{
		HandleFromPointer(1): "ptr",
		HandleFromIndex(1):   "idx",
	}
	if m[HandleFromPointer(1)] != "ptr" || m[HandleFromIndex(1)] != "idx" {
		t.Error("handles of different kinds collided as map keys")
	}
}

func TestHandleString(t *testing.T) {
	if s := (Handle{}).String(); s != "Handle(null)" {
		t.Errorf("null String() = %q", s)
	}
	if s := HandleFromPointer(0xff).String(); !strings.Contains(s, "0xff") {
		t.Errorf("pointer String() = %q, want the address in it", s)
	}
	if s := HandleFromIndex(3).String(); !strings.Contains(s, "3") {
		t.Errorf("index String() = %q, want the index in it", s)
	}
}
