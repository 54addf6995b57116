package dodgeball

import (
	"log/slog"

	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/plugins/flycam"
	"github.com/oliverbestmann/dodgeball/plugins/infinitegrid"
	"github.com/oliverbestmann/dodgeball/scene"
)

const (
	ColorMapPath  = "grid_C.png"
	NormalMapPath = "grid_N.png"
)

var (
	// DemoOrigin is the center of the floor, cameras and lights look at it
	DemoOrigin = glm.Vec3f{0, 0, 0}

	CameraSpawn   = glm.Vec3f{0, 4.37, 14.77}
	LightPosition = glm.Vec3f{15, 20, 0}

	FloorScale = glm.Vec3f{1.0, 0.3, 1.0}
)

var up = glm.Vec3f{0, 1, 0}

// DemoAssets are the textures of the demo floor
type DemoAssets struct {
	ColorMap  assets.Handle[scene.Image]
	NormalMap assets.Handle[scene.Image]
}

// Handles returns all handles that are set
func (d DemoAssets) Handles() []assets.Handle[scene.Image] {
	var handles []assets.Handle[scene.Image]

	for _, handle := range []assets.Handle[scene.Image]{d.ColorMap, d.NormalMap} {
		if !handle.IsZero() {
			handles = append(handles, handle)
		}
	}

	return handles
}

// SetupDebugFlycam spawns the fly camera of the debug scene
func SetupDebugFlycam(w *ecs.World) {
	w.Commands().Spawn(
		scene.Camera3d{},
		scene.DefaultProjection(),
		scene.TransformFromTranslation(CameraSpawn),
		flycam.FlyCam{},
		infinitegrid.GridShadowCamera{},
	)
}

// SetupDebugGrid spawns a default grid and a light shining onto the origin
func SetupDebugGrid(w *ecs.World) {
	commands := w.Commands()

	commands.Spawn(infinitegrid.NewInfiniteGrid(infinitegrid.DefaultSettings())...)

	commands.Spawn(
		scene.DefaultDirectionalLight(),
		scene.TransformFromTranslation(LightPosition).LookingAt(DemoOrigin, up),
	)
}

// SetupDemoScene starts loading the floor textures and spawns the demo
// scene. The returned handles are still loading.
func SetupDemoScene(w *ecs.World) DemoAssets {
	server := ecs.MustResource[assets.Server](w)

	demoAssets := DemoAssets{
		ColorMap:  assets.Load[scene.Image](server, ColorMapPath),
		NormalMap: assets.Load[scene.Image](server, NormalMapPath),
	}

	commands := w.Commands()

	light := scene.DefaultDirectionalLight()
	light.ShadowsEnabled = true

	commands.Spawn(
		light,
		scene.TransformFromTranslation(LightPosition).LookingAt(DemoOrigin, up),
	)

	material := scene.DefaultStandardMaterial()
	material.AlphaMode = scene.AlphaModeBlend
	material.BaseColorTexture = demoAssets.ColorMap
	material.NormalMapTexture = demoAssets.NormalMap

	materials := ecs.MustResource[assets.Assets[scene.StandardMaterial]](w)
	meshes := ecs.MustResource[assets.Assets[scene.Mesh]](w)

	commands.Spawn(
		Floor{},
		scene.Mesh3d{Handle: meshes.Add(scene.Cuboid(1, 1, 1))},
		scene.MeshMaterial3d{Handle: materials.Add(material)},
		scene.TransformFromTranslation(DemoOrigin).WithScale(FloorScale),
	)

	clearColor := scene.ColorRGB(0.1, 0.1, 0.1)

	commands.Spawn(
		scene.Camera3d{ClearColor: &clearColor},
		scene.DefaultProjection(),
		scene.TransformFromTranslation(CameraSpawn).LookingAt(DemoOrigin, up),
		flycam.FlyCam{},
		infinitegrid.GridShadowCamera{},
	)

	grid := infinitegrid.DefaultSettings()
	grid.FadeDistance = 200
	grid.DotFadeoutStrength = 0.25
	grid.ShadowColor = nil

	commands.Spawn(infinitegrid.NewInfiniteGrid(grid)...)

	slog.Info("Spawned demo scene",
		slog.String("colorMap", demoAssets.ColorMap.String()),
		slog.String("normalMap", demoAssets.NormalMap.String()),
	)

	return demoAssets
}

// Floor marks the floor of the demo scene
type Floor struct{}
