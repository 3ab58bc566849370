//go:build !ios && !android && (amd64 || arm64)

package newtongo

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Math types used across the API. Newton is a single-precision engine; these
// are flat float32 arrays whose element pointers are passed straight through
// the C boundary, so values round-trip bit-exact.
type (
	// Vector3 is a 3-component float vector.
	Vector3 = mgl32.Vec3

	// Vector4 is a 4-component float vector.
	Vector4 = mgl32.Vec4

	// Quaternion is a rotation quaternion.
	Quaternion = mgl32.Quat

	// Matrix4 is a column-major 4x4 transform matrix.
	Matrix4 = mgl32.Mat4
)

// Identity returns the identity transform.
func Identity() Matrix4 {
	return mgl32.Ident4()
}

// TranslationMatrix returns a transform placing an object at position.
func TranslationMatrix(position Vector3) Matrix4 {
	return mgl32.Translate3D(position[0], position[1], position[2])
}

// Newton exchanges time as float seconds at the C boundary; the public API
// uses time.Duration. Conversion happens here and nowhere else.

func durationToSeconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

func secondsToDuration(s float32) time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
