package scene

import (
	"github.com/oliverbestmann/dodgeball/glm"
)

// Transform places an entity in the world. It scales first, then rotates
// and finally translates.
type Transform struct {
	Translation glm.Vec3f
	Rotation    glm.Quatf
	Scale       glm.Vec3f
}

func IdentityTransform() Transform {
	return Transform{
		Rotation: glm.IdentityQuat[float32](),
		Scale:    glm.Vec3One,
	}
}

func TransformFromXYZ(x, y, z float32) Transform {
	return TransformFromTranslation(glm.Vec3f{x, y, z})
}

func TransformFromTranslation(translation glm.Vec3f) Transform {
	t := IdentityTransform()
	t.Translation = translation
	return t
}

// LookingAt returns a copy of the transform rotated so that Forward points
// towards target, using up to resolve the roll around the forward axis.
func (t Transform) LookingAt(target, up glm.Vec3f) Transform {
	t.LookAt(target, up)
	return t
}

// LookAt rotates the transform so that Forward points towards target. If the
// target equals the translation, the rotation is not changed.
func (t *Transform) LookAt(target, up glm.Vec3f) {
	t.LookTo(target.Sub(t.Translation), up)
}

// LookTo rotates the transform so that Forward points into direction.
func (t *Transform) LookTo(direction, up glm.Vec3f) {
	if rotation, ok := glm.QuatLookTo(direction, up); ok {
		t.Rotation = rotation
	}
}

func (t Transform) WithScale(scale glm.Vec3f) Transform {
	t.Scale = scale
	return t
}

func (t Transform) WithRotation(rotation glm.Quatf) Transform {
	t.Rotation = rotation
	return t
}

// Forward returns the local -Z axis in world space
func (t Transform) Forward() glm.Vec3f {
	return t.Rotation.Rotate(glm.Vec3f{0, 0, -1})
}

// Right returns the local X axis in world space
func (t Transform) Right() glm.Vec3f {
	return t.Rotation.Rotate(glm.Vec3X)
}

// Up returns the local Y axis in world space
func (t Transform) Up() glm.Vec3f {
	return t.Rotation.Rotate(glm.Vec3Y)
}

func (t Transform) Matrix() glm.Mat4f {
	return glm.Mat4FromTRS(t.Translation, t.Rotation, t.Scale)
}
