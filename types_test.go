//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"testing"
	"time"
)

func TestDurationConversion(t *testing.T) {
	cases := []struct {
		d    time.Duration
		secs float32
	}{
		{0, 0},
		{time.Second, 1},
		{16 * time.Millisecond, 0.016},
		{time.Second / 60, 1.0 / 60},
	}
	for _, c := range cases {
		got := durationToSeconds(c.d)
		if diff := got - c.secs; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("durationToSeconds(%v) = %v, want %v", c.d, got, c.secs)
		}
		back := secondsToDuration(got)
		if diff := back - c.d; diff > time.Microsecond || diff < -time.Microsecond {
			t.Errorf("round trip of %v drifted to %v", c.d, back)
		}
	}
}

func TestTranslationMatrix(t *testing.T) {
	m := TranslationMatrix(Vector3{1, 2, 3})
	// Column-major: translation lives in the last column.
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("translation column = %v, %v, %v; want 1, 2, 3", m[12], m[13], m[14])
	}
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("rotation block should stay identity")
	}
}

func TestIdentity(t *testing.T) {
	m := Identity()
	for i, v := range m {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Fatalf("Identity()[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMakePairKeyNormalizesOrder(t *testing.T) {
	if makePairKey(3, 1) != makePairKey(1, 3) {
		t.Error("pair keys should be order-insensitive")
	}
	if makePairKey(2, 2) != (pairKey{id0: 2, id1: 2}) {
		t.Error("self-pair key mangled")
	}
}
