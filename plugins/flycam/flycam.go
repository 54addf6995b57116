// Package flycam moves cameras marked with FlyCam using the keyboard
// and rotates them by moving the mouse while the cursor is grabbed.
package flycam

import (
	"log/slog"

	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/scene"
)

// maximum pitch, slightly less than straight up or down
const maxPitch = 1.54

// FlyCam marks a camera that is controlled by this plugin
type FlyCam struct{}

type MovementSettings struct {
	// mouse sensitivity, scaled by the window size
	Sensitivity float32

	// movement speed in units per second
	Speed float32
}

func DefaultMovementSettings() MovementSettings {
	return MovementSettings{
		Sensitivity: 0.00012,
		Speed:       12,
	}
}

type KeyBindings struct {
	MoveForward      orion.KeyCode
	MoveBackward     orion.KeyCode
	MoveLeft         orion.KeyCode
	MoveRight        orion.KeyCode
	MoveAscend       orion.KeyCode
	MoveDescend      orion.KeyCode
	ToggleGrabCursor orion.KeyCode
}

func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		MoveForward:      glimpse.KeyW,
		MoveBackward:     glimpse.KeyS,
		MoveLeft:         glimpse.KeyA,
		MoveRight:        glimpse.KeyD,
		MoveAscend:       glimpse.KeySpace,
		MoveDescend:      glimpse.KeyLeftShift,
		ToggleGrabCursor: glimpse.KeyEscape,
	}
}

// NoCameraPlayerPlugin adds the fly camera controls without spawning a
// camera. Mark any camera with FlyCam to control it. Settings and key
// bindings that were inserted before the plugin are kept.
type NoCameraPlayerPlugin struct{}

func (NoCameraPlayerPlugin) Build(app *orion.App) {
	w := app.World()

	if !ecs.HasResource[MovementSettings](w) {
		settings := DefaultMovementSettings()
		app.InsertResource(&settings)
	}

	if !ecs.HasResource[KeyBindings](w) {
		bindings := DefaultKeyBindings()
		app.InsertResource(&bindings)
	}

	app.AddSystems(orion.Startup, initialGrabCursor)
	app.AddSystems(orion.Update, playerMove, playerLook, cursorGrab)
}

func initialGrabCursor(w *ecs.World) {
	cursor := ecs.InitResource[orion.CursorOptions](w)
	cursor.Grabbed = true
}

func cursorGrab(w *ecs.World) {
	keys, ok := ecs.Resource[orion.ButtonInput[orion.KeyCode]](w)
	if !ok {
		return
	}

	bindings := ecs.MustResource[KeyBindings](w)
	if !keys.JustPressed(bindings.ToggleGrabCursor) {
		return
	}

	cursor := ecs.InitResource[orion.CursorOptions](w)
	cursor.Grabbed = !cursor.Grabbed

	slog.Debug("Toggle cursor grab", slog.Bool("grabbed", cursor.Grabbed))
}

// Velocity returns the normalized movement direction for the pressed keys.
// Horizontal movement follows the cameras heading, vertical movement
// always follows the world Y axis.
func Velocity(transform scene.Transform, keys *orion.ButtonInput[orion.KeyCode], bindings KeyBindings) glm.Vec3f {
	localZ := transform.Rotation.Rotate(glm.Vec3f{0, 0, 1})

	forward := glm.Vec3f{-localZ[0], 0, -localZ[2]}
	right := glm.Vec3f{localZ[2], 0, -localZ[0]}

	var velocity glm.Vec3f

	if keys.Pressed(bindings.MoveForward) {
		velocity = velocity.Add(forward)
	}

	if keys.Pressed(bindings.MoveBackward) {
		velocity = velocity.Sub(forward)
	}

	if keys.Pressed(bindings.MoveLeft) {
		velocity = velocity.Sub(right)
	}

	if keys.Pressed(bindings.MoveRight) {
		velocity = velocity.Add(right)
	}

	if keys.Pressed(bindings.MoveAscend) {
		velocity = velocity.Add(glm.Vec3f{0, 1, 0})
	}

	if keys.Pressed(bindings.MoveDescend) {
		velocity = velocity.Sub(glm.Vec3f{0, 1, 0})
	}

	if velocity.LengthSqr() < 1e-12 {
		return glm.Vec3f{}
	}

	return velocity.Normalize()
}

func playerMove(w *ecs.World) {
	if !cursorGrabbed(w) {
		return
	}

	keys, ok := ecs.Resource[orion.ButtonInput[orion.KeyCode]](w)
	if !ok {
		return
	}

	tm := ecs.MustResource[orion.Time](w)
	settings := ecs.MustResource[MovementSettings](w)
	bindings := ecs.MustResource[KeyBindings](w)

	for row := range ecs.Query2[FlyCam, scene.Transform](w) {
		transform := row.Second

		velocity := Velocity(*transform, keys, *bindings)
		transform.Translation = transform.Translation.Add(
			velocity.MulScalar(tm.DeltaSeconds() * settings.Speed),
		)
	}
}

// Look applies a mouse movement to the given rotation. The result has
// no roll and its pitch is limited to just below straight up or down.
func Look(rotation glm.Quatf, delta glm.Vec2f, sensitivity, windowScale float32) glm.Quatf {
	yaw, pitch, _ := rotation.EulerYXZ()

	pitch -= glm.DegToRad(sensitivity * delta[1] * windowScale)
	yaw -= glm.DegToRad(sensitivity * delta[0] * windowScale)

	pitch = max(-maxPitch, min(maxPitch, pitch))

	return glm.QuatFromEulerYXZ[float32](yaw, pitch, 0)
}

func playerLook(w *ecs.World) {
	if !cursorGrabbed(w) {
		return
	}

	motion, ok := ecs.Resource[orion.MouseMotion](w)
	if !ok || motion.Delta == (glm.Vec2f{}) {
		return
	}

	settings := ecs.MustResource[MovementSettings](w)

	windowScale := float32(1)
	if window, ok := ecs.Resource[orion.PrimaryWindow](w); ok && window.Scale() > 0 {
		windowScale = window.Scale()
	}

	for row := range ecs.Query2[FlyCam, scene.Transform](w) {
		row.Second.Rotation = Look(row.Second.Rotation, motion.Delta, settings.Sensitivity, windowScale)
	}
}

func cursorGrabbed(w *ecs.World) bool {
	cursor, ok := ecs.Resource[orion.CursorOptions](w)
	return ok && cursor.Grabbed
}
