package desktop

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/glimpse/window"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/orion/render"
	"github.com/oliverbestmann/dodgeball/pulse"
)

// stops the window loop after an AppExit
var errExit = errors.New("exit requested")

type LoopState struct {
	App      *orion.App
	Window   window.Window
	View     *pulse.View
	Renderer *render.Renderer

	SurfaceWidth  uint32
	SurfaceHeight uint32

	exitReader ecs.EventReader[orion.AppExit]
	ExitErr    error
}

func loopOnce(loopState *LoopState, inputState glimpse.UpdateInputState) error {
	world := loopState.App.World()

	// get surface size for next frame
	surfaceWidth, surfaceHeight := loopState.Window.GetSize()
	if surfaceWidth == 0 || surfaceHeight == 0 {
		// minimized, keep polling events
		inputState()
		return nil
	}

	// reconfigure surface if needed
	if loopState.SurfaceWidth != surfaceWidth || loopState.SurfaceHeight != surfaceHeight {
		slog.Debug("Resize surface",
			slog.Int("width", int(surfaceWidth)),
			slog.Int("height", int(surfaceHeight)),
		)

		if err := loopState.View.Configure(surfaceWidth, surfaceHeight); err != nil {
			return fmt.Errorf("configure surface: %w", err)
		}

		loopState.SurfaceWidth = surfaceWidth
		loopState.SurfaceHeight = surfaceHeight

		if primary, ok := ecs.Resource[orion.PrimaryWindow](world); ok {
			primary.Width = surfaceWidth
			primary.Height = surfaceHeight
		}
	}

	// get the surface texture (the actual screen)
	surface, err := loopState.View.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}

	defer func() {
		if surface != nil {
			surface.Release()
		}
	}()

	// get input after waiting for a texture to keep input lag low
	orion.ApplyInputState(world, inputState())

	loopState.App.Update()

	if cursor, ok := ecs.Resource[orion.CursorOptions](world); ok {
		loopState.Window.SetCursorGrabbed(cursor.Grabbed)
	}

	surfaceView, err := surface.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}

	defer surfaceView.Release()

	err = loopState.Renderer.Render(world, loopState.View.RenderTarget(surface, surfaceView))
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	// present the rendered image
	loopState.View.Surface.Present()

	// we do not need to release the screen if present was successful
	surface = nil

	if tm, ok := ecs.Resource[orion.Time](world); ok && tm.FrameCount%600 == 0 {
		slog.Debug("Frame stats",
			slog.Float64("fps", tm.FPS()),
			slog.Duration("max", tm.MaxDuration))
	}

	if exit, ok := exitRequested(world, &loopState.exitReader); ok {
		slog.Info("Exit requested")
		loopState.ExitErr = exit.Err
		return errExit
	}

	return nil
}
