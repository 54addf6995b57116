package desktop

import (
	"fmt"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/glimpse/window"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/orion/render"
	"github.com/oliverbestmann/dodgeball/pulse"
)

func run(app *orion.App, opts WindowPlugin) error {
	win, err := window.New(opts.Width, opts.Height, opts.Title)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	ctx, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()

	settings, _ := ecs.Resource[render.Settings](app.World())
	if settings == nil {
		settings = &render.Settings{}
	}

	view := pulse.NewView(ctx, settings.MSAA, true)
	defer view.Release()

	renderer, err := render.NewRenderer(ctx)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	defer renderer.Release()

	loopState := &LoopState{
		App:      app,
		Window:   win,
		View:     view,
		Renderer: renderer,
	}

	err = win.Run(func(inputState glimpse.UpdateInputState) error {
		return loopOnce(loopState, inputState)
	})

	if err == errExit {
		return loopState.ExitErr
	}

	return err
}
