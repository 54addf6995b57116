// Package desktop runs an orion app in a native window.
package desktop

import (
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/orion/render"
)

type WindowPlugin struct {
	Title  string
	Width  int
	Height int
}

func (p WindowPlugin) withDefaults() WindowPlugin {
	if p.Width == 0 {
		p.Width = 1280
	}

	if p.Height == 0 {
		p.Height = 720
	}

	if p.Title == "" {
		p.Title = "Orion"
	}

	return p
}

func (p WindowPlugin) Build(app *orion.App) {
	p = p.withDefaults()

	app.InsertResource(&orion.PrimaryWindow{
		Title:  p.Title,
		Width:  uint32(p.Width),
		Height: uint32(p.Height),
	})

	app.SetRunner(func(app *orion.App) error {
		return run(app, p)
	})
}

// DefaultPlugins contains everything to run an app in a window
func DefaultPlugins() orion.PluginGroup {
	return orion.MinimalPlugins().Add(
		WindowPlugin{},
		render.Plugin{Settings: render.Settings{MSAA: true}},
	)
}

// exitRequested returns the first AppExit sent since the last call
func exitRequested(w *ecs.World, reader *ecs.EventReader[orion.AppExit]) (orion.AppExit, bool) {
	events := reader.ReadFrom(w)
	if len(events) == 0 {
		return orion.AppExit{}, false
	}

	return events[0], true
}
