package glm

import "math"

// Quat is a rotation quaternion with the vector part V and the scalar part S.
type Quat[T float] struct {
	V Vec3[T]
	S T
}

func IdentityQuat[T float]() Quat[T] {
	return Quat[T]{S: 1}
}

// QuatFromAxisAngle creates a rotation of angle around the given axis.
func QuatFromAxisAngle[T float](axis Vec3[T], angle Rad) Quat[T] {
	s, c := math.Sincos(float64(angle) * 0.5)

	return Quat[T]{
		V: axis.Normalize().MulScalar(T(s)),
		S: T(c),
	}
}

// QuatFromEulerYXZ applies yaw around Y first, then pitch around X, then roll around Z
func QuatFromEulerYXZ[T float](yaw, pitch, roll Rad) Quat[T] {
	qYaw := QuatFromAxisAngle(Vec3[T]{0, 1, 0}, yaw)
	qPitch := QuatFromAxisAngle(Vec3[T]{1, 0, 0}, pitch)
	qRoll := QuatFromAxisAngle(Vec3[T]{0, 0, 1}, roll)

	return qYaw.Mul(qPitch).Mul(qRoll)
}

// QuatFromBasis builds the rotation that maps the unit axes onto the given
// orthonormal basis vectors.
func QuatFromBasis[T float](x, y, z Vec3[T]) Quat[T] {
	m00, m10, m20 := x.XYZ()
	m01, m11, m21 := y.XYZ()
	m02, m12, m22 := z.XYZ()

	sqrt := func(value T) T {
		return T(math.Sqrt(float64(value)))
	}

	var q Quat[T]

	trace := m00 + m11 + m22

	switch {
	case trace > 0:
		s := sqrt(trace+1) * 2
		q.S = 0.25 * s
		q.V = Vec3[T]{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s}

	case m00 > m11 && m00 > m22:
		s := sqrt(1+m00-m11-m22) * 2
		q.S = (m21 - m12) / s
		q.V = Vec3[T]{0.25 * s, (m01 + m10) / s, (m02 + m20) / s}

	case m11 > m22:
		s := sqrt(1+m11-m00-m22) * 2
		q.S = (m02 - m20) / s
		q.V = Vec3[T]{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s}

	default:
		s := sqrt(1+m22-m00-m11) * 2
		q.S = (m10 - m01) / s
		q.V = Vec3[T]{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s}
	}

	return q.Normalize()
}

func (lhs Quat[T]) Mul(rhs Quat[T]) Quat[T] {
	return Quat[T]{
		V: rhs.V.MulScalar(lhs.S).
			Add(lhs.V.MulScalar(rhs.S)).
			Add(lhs.V.Cross(rhs.V)),
		S: lhs.S*rhs.S - lhs.V.Dot(rhs.V),
	}
}

func (lhs Quat[T]) Conjugate() Quat[T] {
	return Quat[T]{V: lhs.V.MulScalar(-1), S: lhs.S}
}

func (lhs Quat[T]) Length() T {
	return T(math.Sqrt(float64(lhs.V.Dot(lhs.V) + lhs.S*lhs.S)))
}

func (lhs Quat[T]) Normalize() Quat[T] {
	length := lhs.Length()
	if length == 0 {
		return IdentityQuat[T]()
	}

	return Quat[T]{V: lhs.V.MulScalar(1 / length), S: lhs.S / length}
}

// Rotate applies the rotation to the given vector
func (lhs Quat[T]) Rotate(vec Vec3[T]) Vec3[T] {
	t := lhs.V.Cross(vec).MulScalar(2)
	return vec.Add(t.MulScalar(lhs.S)).Add(lhs.V.Cross(t))
}

// EulerYXZ decomposes the rotation into yaw, pitch and roll, the inverse
// of QuatFromEulerYXZ.
func (lhs Quat[T]) EulerYXZ() (yaw, pitch, roll Rad) {
	x, y, z := lhs.V.XYZ()
	w := lhs.S

	sinPitch := 2 * (w*x - y*z)
	sinPitch = max(-1, min(1, sinPitch))

	pitch = Rad(math.Asin(float64(sinPitch)))
	yaw = Rad(math.Atan2(float64(2*(x*z+w*y)), float64(1-2*(x*x+y*y))))
	roll = Rad(math.Atan2(float64(2*(x*y+w*z)), float64(1-2*(x*x+z*z))))

	return
}

// Inverse returns the inverse rotation. For unit quaternions this is
// the same as the conjugate.
func (lhs Quat[T]) Inverse() Quat[T] {
	lengthSqr := lhs.V.Dot(lhs.V) + lhs.S*lhs.S
	if lengthSqr == 0 {
		return IdentityQuat[T]()
	}

	conj := lhs.Conjugate()
	return Quat[T]{V: conj.V.MulScalar(1 / lengthSqr), S: conj.S / lengthSqr}
}

// QuatLookTo returns the rotation that turns the -Z axis into dir, keeping
// the Y axis as close to up as possible. Returns false if dir is zero.
func QuatLookTo[T float](dir, up Vec3[T]) (Quat[T], bool) {
	back := dir.MulScalar(-1).Normalize()
	if back == (Vec3[T]{}) {
		return IdentityQuat[T](), false
	}

	right := up.Cross(back).Normalize()
	if right == (Vec3[T]{}) {
		// up is parallel to dir, fall back to any other axis
		right = Vec3[T]{1, 0, 0}.Cross(back).Normalize()
		if right == (Vec3[T]{}) {
			right = Vec3[T]{0, 0, 1}.Cross(back).Normalize()
		}
	}

	return QuatFromBasis(right, back.Cross(right), back), true
}
