package glimpse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysState(t *testing.T) {
	var input InputState

	input.Keys.Press(KeyW)
	assert.True(t, input.Keys.Pressed[KeyW])
	assert.True(t, input.Keys.JustPressed[KeyW])

	input.NextTick()
	assert.True(t, input.Keys.Pressed[KeyW])
	assert.False(t, input.Keys.JustPressed[KeyW])

	input.Keys.Release(KeyW)
	assert.False(t, input.Keys.Pressed[KeyW])
	assert.True(t, input.Keys.JustReleased[KeyW])
}

func TestMouseDelta(t *testing.T) {
	var input InputState

	input.Mouse.Position(10, 10)
	assert.Zero(t, input.Mouse.DeltaX)
	assert.Zero(t, input.Mouse.DeltaY)

	input.Mouse.Position(15, 8)
	input.Mouse.Position(20, 9)
	assert.Equal(t, float32(10), input.Mouse.DeltaX)
	assert.Equal(t, float32(-1), input.Mouse.DeltaY)

	input.NextTick()
	assert.Zero(t, input.Mouse.DeltaX)
	assert.Equal(t, float32(20), input.Mouse.CursorX)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "E", KeyE.String())
	assert.Equal(t, "LeftShift", KeyLeftShift.String())
	assert.Equal(t, "Key(1000)", Key(1000).String())
}
