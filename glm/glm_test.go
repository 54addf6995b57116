package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, expected, actual Vec3f) {
	t.Helper()

	for idx := range expected {
		assert.InDelta(t, expected[idx], actual[idx], 1e-4, "component %d of %v", idx, actual)
	}
}

func TestQuatFromAxisAngleRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3Y, math.Pi/2)

	// rotating +X by 90 degrees around +Y ends up at -Z
	assertVecInDelta(t, Vec3f{0, 0, -1}, q.Rotate(Vec3X))
}

func TestQuatFromBasisRoundTrip(t *testing.T) {
	q := QuatFromEulerYXZ[float32](0.3, -0.4, 0.1)

	x := q.Rotate(Vec3X)
	y := q.Rotate(Vec3Y)
	z := q.Rotate(Vec3Z)

	rebuilt := QuatFromBasis(x, y, z)

	for _, axis := range []Vec3f{Vec3X, Vec3Y, Vec3Z, {1, 2, 3}} {
		assertVecInDelta(t, q.Rotate(axis), rebuilt.Rotate(axis))
	}
}

func TestEulerYXZ(t *testing.T) {
	q := QuatFromEulerYXZ[float32](0.5, 0.25, 0)

	yaw, pitch, roll := q.EulerYXZ()
	assert.InDelta(t, 0.5, float64(yaw), 1e-4)
	assert.InDelta(t, 0.25, float64(pitch), 1e-4)
	assert.InDelta(t, 0, float64(roll), 1e-4)
}

func TestEulerYXZSmallAngles(t *testing.T) {
	// a single pixel of mouse movement turns the camera by about 1.5 mrad
	for _, angle := range []Rad{0.0015, -0.0015, 1e-4} {
		yaw, _, _ := QuatFromEulerYXZ[float32](angle, 0, 0).EulerYXZ()
		assert.InDelta(t, float64(angle), float64(yaw), 1e-6)

		_, pitch, _ := QuatFromEulerYXZ[float32](0, angle, 0).EulerYXZ()
		assert.InDelta(t, float64(angle), float64(pitch), 1e-6)
	}
}

func TestMat4FromTRS(t *testing.T) {
	m := Mat4FromTRS(Vec3f{1, 2, 3}, IdentityQuat[float32](), Vec3f{2, 2, 2})

	assertVecInDelta(t, Vec3f{3, 4, 5}, m.TransformPoint(Vec3f{1, 1, 1}))
}

func TestMat4Invert(t *testing.T) {
	m := Mat4FromTRS(
		Vec3f{4, -2, 1},
		QuatFromAxisAngle(Vec3f{1, 1, 0}, 0.7),
		Vec3f{1, 0.3, 1},
	)

	inv, ok := m.Invert()
	require.True(t, ok)

	identity := m.Mul(inv)
	for idx, value := range IdentityMat4[float32]() {
		assert.InDelta(t, value, identity[idx], 1e-4, "element %d", idx)
	}

	_, ok = Mat4f{}.Invert()
	assert.False(t, ok)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective[float32](math.Pi/4, 1, 0.1, 100)

	near := proj.TransformPoint(Vec3f{0, 0, -0.1})
	far := proj.TransformPoint(Vec3f{0, 0, -100})

	assert.InDelta(t, 0, near[2], 1e-4)
	assert.InDelta(t, 1, far[2], 1e-4)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}
