// Package dodgeball assembles the dodgeball scene: a fly camera above an
// infinite grid, lit by a single directional light, with a textured floor
// in the demo variant.
package dodgeball

import (
	"log/slog"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/plugins/flycam"
	"github.com/oliverbestmann/dodgeball/plugins/infinitegrid"
)

type Plugin struct {
	Variant Variant
}

func (p Plugin) Build(app *orion.App) {
	slog.Info("Build dodgeball", slog.String("variant", p.Variant.String()))

	settings := flycam.DefaultMovementSettings()

	// ascend and descend like in common editors
	bindings := flycam.DefaultKeyBindings()
	bindings.MoveAscend = glimpse.KeyE
	bindings.MoveDescend = glimpse.KeyQ

	app.InsertResource(&settings)
	app.InsertResource(&bindings)

	app.AddPlugin(infinitegrid.Plugin{}, flycam.NoCameraPlayerPlugin{})

	switch p.Variant {
	case VariantDebug:
		app.AddSystems(orion.Startup, SetupDebugFlycam, SetupDebugGrid)

	case VariantDemo:
		fixup := &TextureFixup{}

		app.AddSystems(orion.Startup, func(w *ecs.World) {
			fixup.Track(SetupDemoScene(w).Handles()...)
		})

		app.AddSystems(orion.Update, fixup.Run)
	}
}
