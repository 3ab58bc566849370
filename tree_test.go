//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"errors"
	"testing"
)

func TestTreeBuilderClosed(t *testing.T) {
	w := newTestWorld()
	b := &TreeBuilder{tree: newTestCollision(w)}

	face := []Vector3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}
	if err := b.AddFace(face, 0); err != nil {
		t.Fatalf("AddFace failed: %v", err)
	}
	if err := b.End(false); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if err := b.AddFace(face, 0); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("AddFace after End = %v, want ErrBuilderClosed", err)
	}
	// End and Close stay idempotent after the bracket commits.
	if err := b.End(true); err != nil {
		t.Errorf("second End = %v, want nil", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close after End = %v, want nil", err)
	}
}

func TestTreeBuilderRejectsDegenerateFace(t *testing.T) {
	w := newTestWorld()
	b := &TreeBuilder{tree: newTestCollision(w)}
	if err := b.AddFace([]Vector3{{0, 0, 0}, {1, 0, 0}}, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddFace with 2 vertices = %v, want ErrNotFound", err)
	}
}

func TestHeightFieldParamsValidate(t *testing.T) {
	grid := func(n int) []float32 { return make([]float32, n) }

	valid := HeightFieldParams{
		Width: 4, Height: 3,
		ElevationsF32:    grid(12),
		VerticalScale:    1,
		HorizontalScaleX: 1, HorizontalScaleZ: 1,
	}
	if err := valid.validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*HeightFieldParams)
	}{
		{"width too small", func(p *HeightFieldParams) { p.Width = 1 }},
		{"height too small", func(p *HeightFieldParams) { p.Height = 1 }},
		{"no elevations", func(p *HeightFieldParams) { p.ElevationsF32 = nil }},
		{"both elevation kinds", func(p *HeightFieldParams) { p.ElevationsU16 = make([]uint16, 12) }},
		{"short float grid", func(p *HeightFieldParams) { p.ElevationsF32 = grid(11) }},
		{"short uint16 grid", func(p *HeightFieldParams) {
			p.ElevationsF32 = nil
			p.ElevationsU16 = make([]uint16, 11)
		}},
		{"attribute count mismatch", func(p *HeightFieldParams) { p.Attributes = make([]byte, 5) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			if err := p.validate(); err == nil {
				t.Error("validate accepted invalid params")
			}
		})
	}

	// uint16 grids are accepted on their own.
	u16 := valid
	u16.ElevationsF32 = nil
	u16.ElevationsU16 = make([]uint16, 12)
	if err := u16.validate(); err != nil {
		t.Errorf("uint16 grid rejected: %v", err)
	}
}
