// Package render draws the scene of an orion app using webgpu.
package render

import (
	"log/slog"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/dodgeball/scene"
)

// the log targets of the native wgpu library
const (
	TargetWGPUCore = "wgpu_core"
	TargetWGPUHal  = "wgpu_hal"
)

type Settings struct {
	// render with 4x multisampling
	MSAA bool
}

// Frame describes the camera a hook renders for
type Frame struct {
	World   *ecs.World
	Context *pulse.Context
	Target  pulse.RenderTarget

	Camera           ecs.Entity
	CameraTransform  scene.Transform
	CameraProjection scene.Projection

	ViewProj glm.Mat4f
}

// Hook renders on top of the meshes of each camera
type Hook func(frame *Frame) error

type namedHook struct {
	name string
	hook Hook
}

type hooks struct {
	hooks []namedHook
}

// AddRenderHook registers a hook that is called once per camera and frame,
// after all meshes of the camera were drawn. Hooks run in registration order.
func AddRenderHook(app *orion.App, name string, hook Hook) {
	h := ecs.InitResource[hooks](app.World())
	h.hooks = append(h.hooks, namedHook{name: name, hook: hook})
}

type Plugin struct {
	Settings Settings
}

func (p Plugin) Build(app *orion.App) {
	app.InsertResource(&p.Settings)
	ecs.InitResource[hooks](app.World())

	level := slog.LevelWarn
	if settings, ok := ecs.Resource[orion.LogSettings](app.World()); ok {
		level = min(
			settings.Profile.LevelFor(TargetWGPUCore),
			settings.Profile.LevelFor(TargetWGPUHal),
		)
	}

	slog.Debug("Configure wgpu log level", slog.String("level", level.String()))
	pulse.SetLogLevel(level)
}
