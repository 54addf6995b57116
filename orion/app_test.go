package orion

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name string
	log  *[]string
}

func (p recordingPlugin) Build(app *App) {
	*p.log = append(*p.log, p.name)
}

type otherPlugin struct{}

func (otherPlugin) Build(app *App) {}

func testApp(t *testing.T) *App {
	t.Helper()

	app := NewApp()
	app.AddPlugin(MinimalPlugins().Set(AssetPlugin{FS: fstest.MapFS{}}))
	app.InsertResource(&TimeUpdateStrategy{ManualDuration: 16 * time.Millisecond})

	return app
}

func TestAppRunsStartupOnce(t *testing.T) {
	app := NewApp()

	var calls []string
	app.AddSystems(Startup, func(w *ecs.World) { calls = append(calls, "startup") })
	app.AddSystems(Update, func(w *ecs.World) { calls = append(calls, "update") })
	app.AddSystems(First, func(w *ecs.World) { calls = append(calls, "first") })
	app.AddSystems(Last, func(w *ecs.World) { calls = append(calls, "last") })

	app.Update()
	app.Update()

	assert.Equal(t, []string{
		"startup", "first", "update", "last",
		"first", "update", "last",
	}, calls)
}

func TestAppAppliesCommandsAfterSchedule(t *testing.T) {
	type marker struct{}

	app := NewApp()

	var seenDuringUpdate, seenAfterUpdate int

	app.AddSystems(Update,
		func(w *ecs.World) { w.Commands().Spawn(marker{}) },
		func(w *ecs.World) { seenDuringUpdate = ecs.Count[marker](w) },
	)

	app.AddSystems(PostUpdate, func(w *ecs.World) {
		seenAfterUpdate = ecs.Count[marker](w)
	})

	app.Update()

	assert.Equal(t, 0, seenDuringUpdate)
	assert.Equal(t, 1, seenAfterUpdate)
}

func TestAppDuplicatePluginPanics(t *testing.T) {
	var log []string

	app := NewApp()
	app.AddPlugin(recordingPlugin{name: "a", log: &log}, otherPlugin{})

	assert.True(t, HasPlugin[otherPlugin](app))
	assert.Panics(t, func() {
		app.AddPlugin(recordingPlugin{name: "b", log: &log})
	})

	assert.Equal(t, []string{"a"}, log)
}

func TestPluginGroupSet(t *testing.T) {
	var log []string

	group := NewPluginGroup(
		recordingPlugin{name: "first", log: &log},
		otherPlugin{},
	)

	replaced := group.Set(recordingPlugin{name: "second", log: &log})
	require.Len(t, replaced.Plugins(), 2)

	NewApp().AddPlugin(replaced)
	assert.Equal(t, []string{"second"}, log)

	// the original group is not modified
	assert.Equal(t, "first", group.Plugins()[0].(recordingPlugin).name)
}

func TestAppRunCallsOnExit(t *testing.T) {
	app := NewApp()

	var order []int
	app.OnExit(func() { order = append(order, 1) })
	app.OnExit(func() { order = append(order, 2) })

	updates := 0
	app.AddSystems(Update, func(w *ecs.World) { updates++ })

	require.NoError(t, app.Run())
	assert.Equal(t, 1, updates)
	assert.Equal(t, []int{2, 1}, order)
}

func TestAddEventReadersSeeEventsOnce(t *testing.T) {
	type ping struct{ value int }

	app := NewApp()
	AddEvent[ping](app)

	var reader ecs.EventReader[ping]
	var received []int

	app.AddSystems(Update, func(w *ecs.World) {
		for _, ev := range reader.ReadFrom(w) {
			received = append(received, ev.value)
		}
	})

	app.AddSystems(PostUpdate, func(w *ecs.World) {
		ecs.SendEvent(w, ping{value: len(received)})
	})

	for range 3 {
		app.Update()
	}

	assert.Equal(t, []int{0, 1}, received)
}

func TestTimeManualStrategy(t *testing.T) {
	app := testApp(t)

	app.Update()
	app.Update()

	tm := ecs.MustResource[Time](app.World())
	assert.Equal(t, uint64(2), tm.FrameCount)
	assert.Equal(t, 16*time.Millisecond, tm.Delta)
	assert.Equal(t, 32*time.Millisecond, tm.Elapsed)
	assert.InDelta(t, 0.016, tm.DeltaSeconds(), 1e-6)
}

func TestApplyInputState(t *testing.T) {
	app := testApp(t)

	var state glimpse.InputState
	state.Keys.Press(glimpse.KeyW)
	state.Mouse.Position(10, 10)
	state.Mouse.Position(13, 6)

	ApplyInputState(app.World(), state)

	keys := ecs.MustResource[ButtonInput[KeyCode]](app.World())
	assert.True(t, keys.Pressed(glimpse.KeyW))
	assert.True(t, keys.JustPressed(glimpse.KeyW))
	assert.False(t, keys.Pressed(glimpse.KeyS))
	assert.True(t, keys.AnyPressed(glimpse.KeyS, glimpse.KeyW))

	motion := ecs.MustResource[MouseMotion](app.World())
	assert.Equal(t, glm.Vec2f{3, -4}, motion.Delta)

	state.NextTick()
	state.Keys.Release(glimpse.KeyW)
	ApplyInputState(app.World(), state)

	assert.False(t, keys.Pressed(glimpse.KeyW))
	assert.False(t, keys.JustPressed(glimpse.KeyW))
	assert.True(t, keys.JustReleased(glimpse.KeyW))
	assert.Equal(t, glm.Vec2f{}, motion.Delta)
}

func TestButtonInput(t *testing.T) {
	var input ButtonInput[MouseButton]

	input.Press(glimpse.MouseButtonLeft)
	input.Press(glimpse.MouseButtonLeft)
	assert.True(t, input.Pressed(glimpse.MouseButtonLeft))
	assert.True(t, input.JustPressed(glimpse.MouseButtonLeft))

	input.Clear()
	assert.True(t, input.Pressed(glimpse.MouseButtonLeft))
	assert.False(t, input.JustPressed(glimpse.MouseButtonLeft))

	input.Release(glimpse.MouseButtonLeft)
	assert.False(t, input.Pressed(glimpse.MouseButtonLeft))
	assert.True(t, input.JustReleased(glimpse.MouseButtonLeft))
}

func TestAssetLoadEmitsCreated(t *testing.T) {
	app := NewApp()
	app.AddPlugin(MinimalPlugins().Set(AssetPlugin{FS: fstest.MapFS{
		"broken.png": &fstest.MapFile{Data: []byte("no png")},
	}}))

	var reader ecs.EventReader[assets.Event[scene.Image]]
	var events []assets.Event[scene.Image]

	app.AddSystems(Update, func(w *ecs.World) {
		events = append(events, reader.ReadFrom(w)...)
	})

	images := ecs.MustResource[assets.Assets[scene.Image]](app.World())
	handle := images.Add(scene.NewImage(1, 1, scene.ColorWhite))

	server := ecs.MustResource[assets.Server](app.World())
	broken := assets.Load[scene.Image](server, "broken.png")
	server.Wait()

	app.Update()
	app.Update()

	require.Len(t, events, 1)
	assert.Equal(t, assets.EventCreated, events[0].Kind)
	assert.Equal(t, handle, events[0].Handle)

	assert.Equal(t, assets.LoadStateFailed, server.LoadState(broken.ID()))
	assert.False(t, images.Contains(broken))

	// modifying an image publishes a Modified event
	_, ok := images.GetMut(handle)
	require.True(t, ok)

	app.Update()
	app.Update()
	require.Len(t, events, 2)
	assert.Equal(t, assets.EventModified, events[1].Kind)
}

func TestImagePluginKeepsClearColor(t *testing.T) {
	app := NewApp()
	app.InsertResource(&scene.ClearColor{Color: scene.ColorBlack})
	app.AddPlugin(MinimalPlugins().Set(AssetPlugin{FS: fstest.MapFS{}}))

	clearColor := ecs.MustResource[scene.ClearColor](app.World())
	assert.Equal(t, scene.ColorBlack, clearColor.Color)
}

func TestScheduleString(t *testing.T) {
	assert.Equal(t, "PreUpdate", PreUpdate.String())
}
