package orion

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/oliverbestmann/dodgeball/ecs"
)

//go:generate go tool stringer -type=Schedule
type Schedule uint8

const (
	// Startup runs exactly once, before the first tick
	Startup Schedule = iota
	First
	PreUpdate
	Update
	PostUpdate
	Last
)

// the schedules that run every tick, in order
var tickSchedules = []Schedule{First, PreUpdate, Update, PostUpdate, Last}

// System is a function that operates on the world. Systems of one schedule
// run in the order they were added. Commands queued by a system are applied
// after its schedule has finished.
type System func(w *ecs.World)

// Plugin configures an App. Each plugin type can only be added once.
type Plugin interface {
	Build(app *App)
}

type App struct {
	world   *ecs.World
	systems map[Schedule][]System
	plugins map[reflect.Type]Plugin
	runner  func(app *App) error
	onExit  []func()

	started bool
}

// NewApp creates an empty app. Only the AppExit event is registered.
func NewApp() *App {
	app := &App{
		world:   ecs.NewWorld(),
		systems: map[Schedule][]System{},
		plugins: map[reflect.Type]Plugin{},
	}

	AddEvent[AppExit](app)

	return app
}

func (a *App) World() *ecs.World {
	return a.world
}

// AddPlugin builds each of the given plugins. Adding a plugin
// of a type that was added before panics.
func (a *App) AddPlugin(plugins ...Plugin) *App {
	for _, plugin := range plugins {
		if group, ok := plugin.(PluginGroup); ok {
			group.Build(a)
			continue
		}

		typ := reflect.TypeOf(plugin)
		if _, exists := a.plugins[typ]; exists {
			panic(fmt.Sprintf("plugin %s was already added", typ))
		}

		a.plugins[typ] = plugin

		slog.Debug("Build plugin", slog.String("plugin", typ.String()))
		plugin.Build(a)
	}

	return a
}

// HasPlugin returns true, if a plugin of type P was added to the app
func HasPlugin[P Plugin](app *App) bool {
	_, ok := app.plugins[reflect.TypeFor[P]()]
	return ok
}

func (a *App) AddSystems(schedule Schedule, systems ...System) *App {
	a.systems[schedule] = append(a.systems[schedule], systems...)
	return a
}

func (a *App) InsertResource(value any) *App {
	a.world.InsertResource(value)
	return a
}

// SetRunner replaces the function that drives the app in Run.
// The default runner performs a single Update.
func (a *App) SetRunner(runner func(app *App) error) *App {
	a.runner = runner
	return a
}

// OnExit registers a function to be called once Run returns
func (a *App) OnExit(fn func()) *App {
	a.onExit = append(a.onExit, fn)
	return a
}

// Update runs one tick of the app. The Startup schedule is
// executed before the very first tick.
func (a *App) Update() {
	if !a.started {
		a.started = true
		a.runSchedule(Startup)
	}

	for _, schedule := range tickSchedules {
		a.runSchedule(schedule)
	}
}

// Run passes control to the runner and returns once the runner exits.
func (a *App) Run() error {
	defer func() {
		// run in reverse order of registration
		for idx := len(a.onExit) - 1; idx >= 0; idx-- {
			a.onExit[idx]()
		}
	}()

	if a.runner == nil {
		a.Update()
		return nil
	}

	return a.runner(a)
}

func (a *App) runSchedule(schedule Schedule) {
	for _, system := range a.systems[schedule] {
		system(a.world)
	}

	a.world.ApplyCommands()
}

// AddEvent registers the event queue for T. The queue is
// rotated at the beginning of every tick.
func AddEvent[T any](app *App) {
	if ecs.HasResource[ecs.Events[T]](app.world) {
		return
	}

	ecs.InitResource[ecs.Events[T]](app.world)

	app.AddSystems(First, func(w *ecs.World) {
		if events, ok := ecs.Resource[ecs.Events[T]](w); ok {
			events.Update()
		}
	})
}

// AppExit requests the runner to stop after the current tick
type AppExit struct {
	// error to return from Run, nil on a regular exit
	Err error
}
