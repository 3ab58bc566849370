package handles

import (
	"sync"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	type bodyState struct {
		Name string
		Mass float64
	}

	data := &bodyState{Name: "crate", Mass: 12.5}
	handle := Register(data)

	if handle == 0 {
		t.Error("Register should return non-zero handle")
	}

	got := Lookup(handle)
	if got == nil {
		t.Error("Lookup should return non-nil value")
	}

	gotData, ok := got.(*bodyState)
	if !ok {
		t.Errorf("Lookup returned wrong type: %T", got)
	}

	if gotData.Name != "crate" || gotData.Mass != 12.5 {
		t.Errorf("Lookup returned wrong data: %+v", gotData)
	}

	Unregister(handle)
}

func TestLookupAs(t *testing.T) {
	type jointState struct{ Kind string }

	h := Register(&jointState{Kind: "ball"})
	defer Unregister(h)

	js, ok := LookupAs[*jointState](h)
	if !ok {
		t.Fatal("LookupAs should find the registered value")
	}
	if js.Kind != "ball" {
		t.Errorf("LookupAs returned wrong data: %+v", js)
	}

	// Wrong type assert degrades to not-found, not panic.
	if _, ok := LookupAs[*int](h); ok {
		t.Error("LookupAs with wrong type should report false")
	}

	// Stale handle degrades to not-found.
	if _, ok := LookupAs[*jointState](999999999); ok {
		t.Error("LookupAs of unknown handle should report false")
	}
}

func TestUnregister(t *testing.T) {
	data := "world diagnostics"
	handle := Register(data)

	if Lookup(handle) == nil {
		t.Error("Expected value before Unregister")
	}

	Unregister(handle)

	if Lookup(handle) != nil {
		t.Error("Expected nil after Unregister")
	}
}

func TestLookupNonExistent(t *testing.T) {
	got := Lookup(999999)
	if got != nil {
		t.Error("Lookup of non-existent handle should return nil")
	}
}

func TestConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numOps = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				data := struct {
					ID  int
					Seq int
				}{id, j}
				handle := Register(&data)
				got := Lookup(handle)
				if got == nil {
					t.Errorf("Lookup returned nil for handle %d", handle)
				}
				Unregister(handle)
			}
		}(i)
	}

	wg.Wait()
}

func TestHandlesAreUnique(t *testing.T) {
	seen := make(map[uintptr]bool)

	for i := 0; i < 1000; i++ {
		h := Register(i)
		if seen[h] {
			t.Errorf("Handle %d was returned twice", h)
		}
		seen[h] = true
	}

	for h := range seen {
		Unregister(h)
	}
}
