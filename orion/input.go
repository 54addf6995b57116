package orion

import (
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/glm"
)

type KeyCode = glimpse.Key
type MouseButton = glimpse.MouseButton

// ButtonInput holds the state of buttons or keys in the current tick
type ButtonInput[T comparable] struct {
	pressed      map[T]bool
	justPressed  map[T]bool
	justReleased map[T]bool
}

func (b *ButtonInput[T]) Pressed(button T) bool {
	return b.pressed[button]
}

// AnyPressed returns true, if at least one of the buttons is pressed
func (b *ButtonInput[T]) AnyPressed(buttons ...T) bool {
	for _, button := range buttons {
		if b.pressed[button] {
			return true
		}
	}

	return false
}

func (b *ButtonInput[T]) JustPressed(button T) bool {
	return b.justPressed[button]
}

func (b *ButtonInput[T]) JustReleased(button T) bool {
	return b.justReleased[button]
}

func (b *ButtonInput[T]) Press(button T) {
	if b.pressed[button] {
		return
	}

	setTrue(&b.pressed, button)
	setTrue(&b.justPressed, button)
}

func (b *ButtonInput[T]) Release(button T) {
	if !b.pressed[button] {
		return
	}

	delete(b.pressed, button)
	setTrue(&b.justReleased, button)
}

// Clear resets the just pressed and just released state
func (b *ButtonInput[T]) Clear() {
	clear(b.justPressed)
	clear(b.justReleased)
}

func (b *ButtonInput[T]) set(pressed, justPressed, justReleased map[T]bool) {
	b.Clear()
	clear(b.pressed)

	for button, isPressed := range pressed {
		if isPressed {
			setTrue(&b.pressed, button)
		}
	}

	for button, value := range justPressed {
		if value {
			setTrue(&b.justPressed, button)
		}
	}

	for button, value := range justReleased {
		if value {
			setTrue(&b.justReleased, button)
		}
	}
}

// MouseMotion is the movement of the mouse during the current tick
type MouseMotion struct {
	Delta glm.Vec2f
}

// CursorPosition is the position of the cursor in window coordinates
type CursorPosition struct {
	Position glm.Vec2f
}

// CursorOptions is applied to the window after each tick.
// A grabbed cursor is locked to the window and hidden.
type CursorOptions struct {
	Grabbed bool
}

type InputPlugin struct{}

func (InputPlugin) Build(app *App) {
	w := app.World()

	ecs.InitResource[ButtonInput[KeyCode]](w)
	ecs.InitResource[ButtonInput[MouseButton]](w)
	ecs.InitResource[MouseMotion](w)
	ecs.InitResource[CursorPosition](w)
	ecs.InitResource[CursorOptions](w)
}

// ApplyInputState copies the input state polled from the window into
// the input resources of the world.
func ApplyInputState(w *ecs.World, state glimpse.InputState) {
	keys := ecs.InitResource[ButtonInput[KeyCode]](w)
	keys.set(state.Keys.Pressed, state.Keys.JustPressed, state.Keys.JustReleased)

	buttons := ecs.InitResource[ButtonInput[MouseButton]](w)
	buttons.set(state.Mouse.Pressed, state.Mouse.JustPressed, state.Mouse.JustReleased)

	motion := ecs.InitResource[MouseMotion](w)
	motion.Delta = glm.Vec2f{state.Mouse.DeltaX, state.Mouse.DeltaY}

	cursor := ecs.InitResource[CursorPosition](w)
	cursor.Position = glm.Vec2f{state.Mouse.CursorX, state.Mouse.CursorY}
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}
