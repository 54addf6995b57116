package ecs

// Commands queues structural changes to the world. Entities spawned through
// Commands are reserved immediately, their components are added once the
// commands are applied.
type Commands struct {
	world *World
	queue []func(w *World)
}

func (c *Commands) Spawn(components ...any) Entity {
	entity := c.world.entities.reserve()

	c.Queue(func(w *World) {
		w.Insert(entity, components...)
	})

	return entity
}

func (c *Commands) Insert(entity Entity, components ...any) {
	c.Queue(func(w *World) {
		w.Insert(entity, components...)
	})
}

func (c *Commands) Despawn(entity Entity) {
	c.Queue(func(w *World) {
		w.Despawn(entity)
	})
}

func (c *Commands) InsertResource(value any) {
	c.Queue(func(w *World) {
		w.InsertResource(value)
	})
}

// Queue adds a custom command
func (c *Commands) Queue(command func(w *World)) {
	c.queue = append(c.queue, command)
}

func (c *Commands) Len() int {
	return len(c.queue)
}

func (c *Commands) apply() {
	// commands may queue new commands while being applied
	for len(c.queue) > 0 {
		queue := c.queue
		c.queue = nil

		for _, command := range queue {
			command(c.world)
		}
	}
}
