// Package infinitegrid draws endless reference grids that fade out
// with the distance to the camera.
package infinitegrid

import (
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/pulse/commands"
	"github.com/oliverbestmann/dodgeball/scene"
)

// InfiniteGrid marks an entity as grid. The grid lies in the local
// XZ plane of the entities Transform.
type InfiniteGrid struct{}

// GridShadowCamera marks a camera that renders the grids shadow tint
type GridShadowCamera struct{}

type InfiniteGridSettings struct {
	XAxisColor     scene.Color
	ZAxisColor     scene.Color
	MinorLineColor scene.Color
	MajorLineColor scene.Color

	// distance from the camera at which the grid is fully faded out
	FadeDistance float32

	// how fast the grid fades when looking at it at a flat angle
	DotFadeoutStrength float32

	// distance between two minor lines
	Scale float32

	// fill color of the plane between the lines, nil for none
	ShadowColor *scene.Color
}

func DefaultSettings() InfiniteGridSettings {
	shadow := scene.ColorRGBA(0.2, 0.2, 0.2, 0.7)

	return InfiniteGridSettings{
		XAxisColor:         scene.ColorRGB(1.0, 0.2, 0.2),
		ZAxisColor:         scene.ColorRGB(0.2, 0.2, 1.0),
		MinorLineColor:     scene.ColorRGB(0.1, 0.1, 0.1),
		MajorLineColor:     scene.ColorRGB(0.25, 0.25, 0.25),
		FadeDistance:       100,
		DotFadeoutStrength: 0.25,
		Scale:              1,
		ShadowColor:        &shadow,
	}
}

// NewInfiniteGrid returns the components of a grid at the origin.
func NewInfiniteGrid(settings InfiniteGridSettings) []any {
	return []any{
		InfiniteGrid{},
		settings,
		scene.IdentityTransform(),
	}
}

// View is the camera a grid is drawn for
type View struct {
	Position glm.Vec3f
	ViewProj glm.Mat4f

	// the camera is marked with GridShadowCamera
	Shadow bool
}

// Uniforms computes the shader parameters to draw one grid as
// seen by the given view.
func Uniforms(transform scene.Transform, settings InfiniteGridSettings, view View) commands.GridUniforms {
	invViewProj, _ := view.ViewProj.Invert()

	scale := settings.Scale
	if scale <= 0 {
		scale = 1
	}

	var shadow glm.Vec4f
	if view.Shadow && settings.ShadowColor != nil {
		shadow = *settings.ShadowColor
	}

	rotation := transform.Rotation

	return commands.GridUniforms{
		InvViewProj:        invViewProj,
		ViewProj:           view.ViewProj,
		PlaneOrigin:        transform.Translation.Extend(1),
		PlaneX:             rotation.Rotate(glm.Vec3f{1, 0, 0}).Extend(0),
		PlaneNormal:        rotation.Rotate(glm.Vec3f{0, 1, 0}).Extend(0),
		PlaneZ:             rotation.Rotate(glm.Vec3f{0, 0, 1}).Extend(0),
		CameraPosition:     view.Position.Extend(1),
		XAxisColor:         settings.XAxisColor,
		ZAxisColor:         settings.ZAxisColor,
		MinorLineColor:     settings.MinorLineColor,
		MajorLineColor:     settings.MajorLineColor,
		ShadowColor:        shadow,
		FadeDistance:       max(settings.FadeDistance, 1e-3),
		DotFadeoutStrength: settings.DotFadeoutStrength,
		Scale:              scale,
	}
}
