//go:build !ios && !android && (amd64 || arm64)

package newtongo

import "fmt"

type handleKind uint8

const (
	handleNull handleKind = iota
	handlePointer
	handleIndex
)

// Handle is an opaque, copyable identifier for a Newton object. It implies
// neither ownership nor liveness: constructing one never touches the engine,
// and a handle whose referent has been destroyed simply stops resolving.
//
// Two representations exist. Pointer handles carry the object's address and
// stay stable for its lifetime; they are the usual registry key. Index
// handles identify a position inside a foreign container, such as a child
// slot of a compound collision.
//
// Handle is comparable and usable as a map key.
type Handle struct {
	kind  handleKind
	value uint64
}

// HandleFromPointer returns a pointer-identity handle.
func HandleFromPointer(p uintptr) Handle {
	if p == 0 {
		return Handle{}
	}
	return Handle{kind: handlePointer, value: uint64(p)}
}

// HandleFromIndex returns a positional handle.
func HandleFromIndex(i uint64) Handle {
	return Handle{kind: handleIndex, value: i}
}

// IsNull reports whether h is the zero handle.
func (h Handle) IsNull() bool {
	return h.kind == handleNull
}

// Pointer returns the address behind a pointer handle.
func (h Handle) Pointer() (uintptr, bool) {
	if h.kind != handlePointer {
		return 0, false
	}
	return uintptr(h.value), true
}

// Index returns the position behind an index handle.
func (h Handle) Index() (uint64, bool) {
	if h.kind != handleIndex {
		return 0, false
	}
	return h.value, true
}

func (h Handle) String() string {
	switch h.kind {
	case handlePointer:
		return fmt.Sprintf("Handle(ptr:0x%x)", h.value)
	case handleIndex:
		return fmt.Sprintf("Handle(index:%d)", h.value)
	default:
		return "Handle(null)"
	}
}
