package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float32 }
type velocity struct{ X, Y float32 }
type marker struct{}

func TestSpawnAndGet(t *testing.T) {
	w := NewWorld()

	entity := w.Spawn(position{1, 2}, marker{})

	pos, ok := Get[position](w, entity)
	require.True(t, ok)
	assert.Equal(t, position{1, 2}, *pos)

	assert.True(t, Has[marker](w, entity))
	assert.False(t, Has[velocity](w, entity))

	// components are mutable in place
	pos.X = 5
	pos, _ = Get[position](w, entity)
	assert.Equal(t, float32(5), pos.X)
}

func TestDespawnRecyclesWithNewVersion(t *testing.T) {
	w := NewWorld()

	first := w.Spawn(position{})
	require.True(t, w.Despawn(first))
	assert.False(t, w.IsAlive(first))
	assert.False(t, w.Despawn(first))

	second := w.Spawn(position{3, 4})
	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.Version, second.Version)

	_, ok := Get[position](w, first)
	assert.False(t, ok, "stale entity must not see the new component")
	assert.Equal(t, 1, w.EntityCount())
}

func TestQuery(t *testing.T) {
	w := NewWorld()

	a := w.Spawn(position{1, 0}, velocity{1, 1})
	w.Spawn(position{2, 0})
	c := w.Spawn(position{3, 0}, velocity{2, 2})

	assert.Equal(t, 3, Count[position](w))
	assert.Equal(t, 2, Count[velocity](w))

	var entities []Entity
	for row := range Query2[position, velocity](w) {
		entities = append(entities, row.Entity)
		row.First.X += row.Second.X
	}

	assert.Equal(t, []Entity{a, c}, entities)

	pos, _ := Get[position](w, c)
	assert.Equal(t, float32(5), pos.X)
}

func TestSingle(t *testing.T) {
	w := NewWorld()

	_, _, err := Single[marker](w)
	assert.ErrorContains(t, err, "found 0")

	entity := w.Spawn(marker{})
	found, _, err := Single[marker](w)
	require.NoError(t, err)
	assert.Equal(t, entity, found)

	w.Spawn(marker{})
	_, _, err = Single[marker](w)
	assert.ErrorContains(t, err, "found 2")
}

func TestRemove(t *testing.T) {
	w := NewWorld()

	entity := w.Spawn(position{}, marker{})
	assert.True(t, Remove[marker](w, entity))
	assert.False(t, Remove[marker](w, entity))
	assert.True(t, Has[position](w, entity))
}

func TestCommandsAreDeferred(t *testing.T) {
	w := NewWorld()

	entity := w.Commands().Spawn(position{1, 1})
	w.Commands().InsertResource(velocity{})

	assert.False(t, Has[position](w, entity))
	assert.False(t, HasResource[velocity](w))

	w.ApplyCommands()

	assert.True(t, Has[position](w, entity))
	assert.True(t, HasResource[velocity](w))
	assert.Zero(t, w.Commands().Len())
}

func TestResources(t *testing.T) {
	w := NewWorld()

	_, ok := Resource[position](w)
	assert.False(t, ok)

	w.InsertResource(position{1, 2})
	pos := MustResource[position](w)
	assert.Equal(t, position{1, 2}, *pos)

	// pointers are stored as is
	vel := &velocity{3, 4}
	w.InsertResource(vel)
	assert.Same(t, vel, MustResource[velocity](w))

	assert.Same(t, pos, InitResource[position](w))

	assert.True(t, RemoveResource[position](w))
	assert.Panics(t, func() { MustResource[position](w) })
}
