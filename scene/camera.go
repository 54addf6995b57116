package scene

import (
	"math"

	"github.com/oliverbestmann/dodgeball/glm"
)

// Camera3d marks an entity as a camera rendering the 3d scene from
// the point of view of its Transform.
type Camera3d struct {
	// color to clear the screen with. Uses ClearColor resource if nil.
	ClearColor *Color

	// cameras with a higher order are rendered later
	Order int
}

// ClearColor is the default color to clear the screen with.
type ClearColor struct {
	Color Color
}

type Projection struct {
	FovY glm.Rad
	Near float32
	Far  float32
}

func DefaultProjection() Projection {
	return Projection{
		FovY: math.Pi / 4,
		Near: 0.1,
		Far:  1000,
	}
}

// Matrix returns the projection matrix for the given aspect ratio
func (p Projection) Matrix(aspect float32) glm.Mat4f {
	return glm.Perspective(p.FovY, aspect, p.Near, p.Far)
}

// ViewProjection calculates the matrix transforming world coordinates into
// clip space for a camera placed at the given transform.
func ViewProjection(transform Transform, projection Projection, aspect float32) glm.Mat4f {
	// cameras are not scaled
	transform.Scale = glm.Vec3One

	view, _ := transform.Matrix().Invert()
	return projection.Matrix(aspect).Mul(view)
}
