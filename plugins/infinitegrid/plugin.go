package infinitegrid

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/orion/render"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/dodgeball/pulse/commands"
	"github.com/oliverbestmann/dodgeball/scene"
)

type Plugin struct{}

func (Plugin) Build(app *orion.App) {
	var renderer gridRenderer
	render.AddRenderHook(app, "infinitegrid", renderer.draw)
}

type gridRenderer struct {
	ctx     *pulse.Context
	command *commands.GridCommand
}

func (r *gridRenderer) draw(frame *render.Frame) error {
	grids := Collect(frame.World, View{
		Position: frame.CameraTransform.Translation,
		ViewProj: frame.ViewProj,
		Shadow:   ecs.Has[GridShadowCamera](frame.World, frame.Camera),
	})

	if len(grids) == 0 {
		return nil
	}

	if err := r.commandFor(frame.Context).Draw(frame.Target, grids); err != nil {
		return fmt.Errorf("draw %d grids: %w", len(grids), err)
	}

	return nil
}

func (r *gridRenderer) commandFor(ctx *pulse.Context) *commands.GridCommand {
	if r.ctx != ctx {
		if r.command != nil {
			r.command.Release()
		}

		slog.Debug("Create grid command")

		r.ctx = ctx
		r.command = commands.NewGridCommand(ctx)
	}

	return r.command
}

// Collect returns the uniforms of every grid in the world for the given view.
// A grid without settings is drawn using DefaultSettings.
func Collect(w *ecs.World, view View) []commands.GridUniforms {
	var grids []commands.GridUniforms

	for entity := range ecs.Query[InfiniteGrid](w) {
		settings := DefaultSettings()
		if s, ok := ecs.Get[InfiniteGridSettings](w, entity); ok {
			settings = *s
		}

		transform := scene.IdentityTransform()
		if t, ok := ecs.Get[scene.Transform](w, entity); ok {
			transform = *t
		}

		grids = append(grids, Uniforms(transform, settings, view))
	}

	return grids
}
