package render

import (
	"cmp"
	"slices"

	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/scene"
)

// DrawItem is a mesh entity that is ready to be drawn
type DrawItem struct {
	Entity    ecs.Entity
	Mesh      assets.Handle[scene.Mesh]
	Material  scene.StandardMaterial
	Transform scene.Transform
}

// Blended returns true if the item needs to be alpha blended
func (d DrawItem) Blended() bool {
	return d.Material.AlphaMode == scene.AlphaModeBlend
}

// CollectDraws returns all mesh entities with a loaded material. Opaque
// items come first, blended items follow sorted back to front as seen
// from the camera position.
func CollectDraws(w *ecs.World, cameraPosition glm.Vec3f) []DrawItem {
	materials, _ := ecs.Resource[assets.Assets[scene.StandardMaterial]](w)

	var opaque, blended []DrawItem

	for row := range ecs.Query2[scene.Mesh3d, scene.Transform](w) {
		item := DrawItem{
			Entity:    row.Entity,
			Mesh:      row.First.Handle,
			Transform: *row.Second,
			Material:  scene.DefaultStandardMaterial(),
		}

		if mm, ok := ecs.Get[scene.MeshMaterial3d](w, row.Entity); ok && materials != nil {
			material, ok := materials.Get(mm.Handle)
			if !ok {
				// material not yet available
				continue
			}

			item.Material = *material
		}

		if item.Blended() {
			blended = append(blended, item)
		} else {
			opaque = append(opaque, item)
		}
	}

	distance := func(item DrawItem) float32 {
		return item.Transform.Translation.Sub(cameraPosition).LengthSqr()
	}

	// entity order keeps the result stable between frames
	slices.SortFunc(opaque, func(a, b DrawItem) int {
		return cmp.Compare(a.Entity.ID, b.Entity.ID)
	})

	slices.SortStableFunc(blended, func(a, b DrawItem) int {
		return cmp.Or(
			cmp.Compare(distance(b), distance(a)),
			cmp.Compare(a.Entity.ID, b.Entity.ID),
		)
	})

	return append(opaque, blended...)
}

type cameraItem struct {
	Entity     ecs.Entity
	Camera     scene.Camera3d
	Transform  scene.Transform
	Projection scene.Projection
}

// collectCameras returns all cameras ordered by Camera3d.Order
func collectCameras(w *ecs.World) []cameraItem {
	var cameras []cameraItem

	for row := range ecs.Query2[scene.Camera3d, scene.Transform](w) {
		projection := scene.DefaultProjection()
		if p, ok := ecs.Get[scene.Projection](w, row.Entity); ok {
			projection = *p
		}

		cameras = append(cameras, cameraItem{
			Entity:     row.Entity,
			Camera:     *row.First,
			Transform:  *row.Second,
			Projection: projection,
		})
	}

	slices.SortFunc(cameras, func(a, b cameraItem) int {
		return cmp.Or(
			cmp.Compare(a.Camera.Order, b.Camera.Order),
			cmp.Compare(a.Entity.ID, b.Entity.ID),
		)
	})

	return cameras
}

// Light is the directional light used to shade the scene
type Light struct {
	// direction the light travels into
	Direction glm.Vec3f

	// color premultiplied with the relative intensity
	Color glm.Vec3f
}

// FirstDirectionalLight returns the light with the lowest entity id. Without any
// light, a dim light shining straight down is returned.
func FirstDirectionalLight(w *ecs.World) Light {
	var found *ecs.Row2[scene.DirectionalLight, scene.Transform]

	for row := range ecs.Query2[scene.DirectionalLight, scene.Transform](w) {
		if found == nil || row.Entity.ID < found.Entity.ID {
			found = &row
		}
	}

	if found == nil {
		return Light{
			Direction: glm.Vec3f{0, -1, 0},
			Color:     glm.Vec3f{0.3, 0.3, 0.3},
		}
	}

	intensity := found.First.Illuminance / scene.AmbientDaylight

	return Light{
		Direction: found.Second.Forward(),
		Color:     found.First.Color.Truncate().MulScalar(intensity),
	}
}
