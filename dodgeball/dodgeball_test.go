package dodgeball

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/plugins/flycam"
	"github.com/oliverbestmann/dodgeball/plugins/infinitegrid"
	"github.com/oliverbestmann/dodgeball/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFile(t *testing.T) *fstest.MapFile {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return &fstest.MapFile{Data: buf.Bytes()}
}

func testApp(t *testing.T, variant Variant) *orion.App {
	t.Helper()

	fsys := fstest.MapFS{
		ColorMapPath:  pngFile(t),
		NormalMapPath: pngFile(t),
	}

	app := orion.NewApp()
	app.AddPlugin(orion.MinimalPlugins().Set(orion.AssetPlugin{FS: fsys}))
	app.InsertResource(&orion.TimeUpdateStrategy{ManualDuration: 16 * time.Millisecond})
	app.AddPlugin(Plugin{Variant: variant})

	return app
}

func assertVecInDelta(t *testing.T, expected, actual glm.Vec3f) {
	t.Helper()

	for idx := range expected {
		assert.InDelta(t, expected[idx], actual[idx], 1e-4, "component %d of %v", idx, actual)
	}
}

func TestDemoSpawnsScene(t *testing.T) {
	app := testApp(t, VariantDemo)
	app.Update()

	w := app.World()
	assert.Equal(t, 1, ecs.Count[scene.Camera3d](w))
	assert.Equal(t, 1, ecs.Count[scene.DirectionalLight](w))
	assert.Equal(t, 1, ecs.Count[infinitegrid.InfiniteGrid](w))
	assert.Equal(t, 1, ecs.Count[Floor](w))
}

func TestDemoFloor(t *testing.T) {
	app := testApp(t, VariantDemo)
	app.Update()

	floor, _, err := ecs.Single[Floor](app.World())
	require.NoError(t, err)

	transform, ok := ecs.Get[scene.Transform](app.World(), floor)
	require.True(t, ok)

	assert.Equal(t, glm.Vec3f{1.0, 0.3, 1.0}, transform.Scale)
	assert.Equal(t, DemoOrigin, transform.Translation)

	meshMaterial, ok := ecs.Get[scene.MeshMaterial3d](app.World(), floor)
	require.True(t, ok)

	materials := ecs.MustResource[assets.Assets[scene.StandardMaterial]](app.World())
	material, ok := materials.Get(meshMaterial.Handle)
	require.True(t, ok)

	server := ecs.MustResource[assets.Server](app.World())
	assert.Equal(t, scene.AlphaModeBlend, material.AlphaMode)
	assert.Equal(t, assets.Load[scene.Image](server, ColorMapPath), material.BaseColorTexture)
	assert.Equal(t, assets.Load[scene.Image](server, NormalMapPath), material.NormalMapTexture)
}

func TestDemoCamera(t *testing.T) {
	app := testApp(t, VariantDemo)
	app.Update()

	camera, cam, err := ecs.Single[scene.Camera3d](app.World())
	require.NoError(t, err)

	require.NotNil(t, cam.ClearColor)
	assert.Equal(t, scene.ColorRGB(0.1, 0.1, 0.1), *cam.ClearColor)

	assert.True(t, ecs.Has[flycam.FlyCam](app.World(), camera))
	assert.True(t, ecs.Has[infinitegrid.GridShadowCamera](app.World(), camera))

	transform, _ := ecs.Get[scene.Transform](app.World(), camera)
	assert.Equal(t, CameraSpawn, transform.Translation)

	expected := DemoOrigin.Sub(CameraSpawn).Normalize()
	assertVecInDelta(t, expected, transform.Forward())
}

func TestDemoLightAndGrid(t *testing.T) {
	app := testApp(t, VariantDemo)
	app.Update()

	lightEntity, light, err := ecs.Single[scene.DirectionalLight](app.World())
	require.NoError(t, err)
	assert.True(t, light.ShadowsEnabled)
	assert.Equal(t, scene.AmbientDaylight, light.Illuminance)

	transform, _ := ecs.Get[scene.Transform](app.World(), lightEntity)
	assert.Equal(t, LightPosition, transform.Translation)
	assertVecInDelta(t, DemoOrigin.Sub(LightPosition).Normalize(), transform.Forward())

	gridEntity, _, err := ecs.Single[infinitegrid.InfiniteGrid](app.World())
	require.NoError(t, err)

	settings, ok := ecs.Get[infinitegrid.InfiniteGridSettings](app.World(), gridEntity)
	require.True(t, ok)

	assert.Equal(t, float32(200), settings.FadeDistance)
	assert.Equal(t, float32(0.25), settings.DotFadeoutStrength)
	assert.Nil(t, settings.ShadowColor)
}

func TestDemoTexturesRepeatAfterLoading(t *testing.T) {
	app := testApp(t, VariantDemo)
	app.Update()

	server := ecs.MustResource[assets.Server](app.World())
	server.Wait()

	app.Update()
	app.Update()

	images := ecs.MustResource[assets.Assets[scene.Image]](app.World())

	for _, path := range []string{ColorMapPath, NormalMapPath} {
		img, ok := images.Get(assets.Load[scene.Image](server, path))
		require.True(t, ok, path)
		assert.True(t, img.Sampler.IsRepeating(), path)
	}
}

func TestDebugVariant(t *testing.T) {
	app := testApp(t, VariantDebug)
	app.Update()

	w := app.World()
	assert.Equal(t, 1, ecs.Count[scene.Camera3d](w))
	assert.Equal(t, 1, ecs.Count[scene.DirectionalLight](w))
	assert.Equal(t, 1, ecs.Count[infinitegrid.InfiniteGrid](w))
	assert.Equal(t, 0, ecs.Count[Floor](w))

	camera, _, err := ecs.Single[flycam.FlyCam](w)
	require.NoError(t, err)

	transform, _ := ecs.Get[scene.Transform](w, camera)
	assert.Equal(t, CameraSpawn, transform.Translation)
	assert.True(t, ecs.Has[infinitegrid.GridShadowCamera](w, camera))
}

func TestPluginKeyBindings(t *testing.T) {
	app := testApp(t, VariantDebug)

	bindings := ecs.MustResource[flycam.KeyBindings](app.World())
	assert.Equal(t, glimpse.KeyE, bindings.MoveAscend)
	assert.Equal(t, glimpse.KeyQ, bindings.MoveDescend)
	assert.Equal(t, glimpse.KeyW, bindings.MoveForward)

	settings := ecs.MustResource[flycam.MovementSettings](app.World())
	assert.Equal(t, flycam.DefaultMovementSettings(), *settings)
}

type fixupWorld struct {
	world  *ecs.World
	images *assets.Assets[scene.Image]
	events *ecs.Events[assets.Event[scene.Image]]
}

func newFixupWorld() fixupWorld {
	w := ecs.NewWorld()

	images := assets.NewAssets[scene.Image]()
	w.InsertResource(images)

	return fixupWorld{
		world:  w,
		images: images,
		events: ecs.InitResource[ecs.Events[assets.Event[scene.Image]]](w),
	}
}

func (f fixupWorld) send(kind assets.EventKind, handle assets.Handle[scene.Image]) {
	f.events.Send(assets.Event[scene.Image]{Kind: kind, Handle: handle})
}

func (f fixupWorld) sampler(t *testing.T, handle assets.Handle[scene.Image]) scene.ImageSampler {
	t.Helper()

	img, ok := f.images.Get(handle)
	require.True(t, ok)

	return img.Sampler
}

func TestFixupCreatedEvent(t *testing.T) {
	f := newFixupWorld()

	nearest := scene.ImageSampler{MagFilter: scene.FilterModeNearest}

	demo := DemoAssets{
		ColorMap:  f.images.Add(scene.Image{Width: 1, Height: 1, Pixels: make([]byte, 4), Sampler: nearest}),
		NormalMap: f.images.Add(scene.NewImage(1, 1, scene.ColorWhite)),
	}

	unrelated := f.images.Add(scene.NewImage(1, 1, scene.ColorBlack))

	var fixup TextureFixup
	fixup.Track(demo.Handles()...)

	f.send(assets.EventCreated, demo.ColorMap)
	f.send(assets.EventCreated, unrelated)
	fixup.Run(f.world)

	expected := scene.ImageSampler{
		AddressModeU: scene.AddressModeRepeat,
		AddressModeV: scene.AddressModeRepeat,
		AddressModeW: scene.AddressModeRepeat,
		MagFilter:    scene.FilterModeNearest,
	}

	if diff := cmp.Diff(expected, f.sampler(t, demo.ColorMap)); diff != "" {
		t.Errorf("color map sampler mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, scene.ImageSampler{}, f.sampler(t, unrelated))
	assert.Equal(t, scene.ImageSampler{}, f.sampler(t, demo.NormalMap))
}

func TestFixupIgnoresModifiedAndRemoved(t *testing.T) {
	f := newFixupWorld()

	demo := DemoAssets{
		ColorMap:  f.images.Add(scene.NewImage(1, 1, scene.ColorWhite)),
		NormalMap: f.images.Add(scene.NewImage(1, 1, scene.ColorWhite)),
	}

	var fixup TextureFixup
	fixup.Track(demo.Handles()...)

	f.send(assets.EventModified, demo.ColorMap)
	f.send(assets.EventRemoved, demo.NormalMap)

	assert.NotPanics(t, func() { fixup.Run(f.world) })

	assert.Equal(t, scene.ImageSampler{}, f.sampler(t, demo.ColorMap))
	assert.Equal(t, scene.ImageSampler{}, f.sampler(t, demo.NormalMap))
}

func TestFixupSkipsMissingImage(t *testing.T) {
	f := newFixupWorld()

	missing := assets.NewHandle[scene.Image]()
	present := f.images.Add(scene.NewImage(1, 1, scene.ColorWhite))

	var fixup TextureFixup
	fixup.Track(missing, present)

	f.send(assets.EventCreated, missing)
	f.send(assets.EventCreated, present)

	assert.NotPanics(t, func() { fixup.Run(f.world) })
	assert.True(t, f.sampler(t, present).IsRepeating())
}

func TestFixupReadsEachEventOnce(t *testing.T) {
	f := newFixupWorld()

	handle := f.images.Add(scene.NewImage(1, 1, scene.ColorWhite))

	var fixup TextureFixup
	fixup.Track(handle)

	f.send(assets.EventCreated, handle)
	fixup.Run(f.world)

	// reset the sampler, a second run must not see the event again
	img, _ := f.images.Get(handle)
	img.Sampler = scene.ImageSampler{}

	fixup.Run(f.world)
	assert.Equal(t, scene.ImageSampler{}, f.sampler(t, handle))
}

func TestFixupKeepsEventsUntilImagesExist(t *testing.T) {
	w := ecs.NewWorld()
	events := ecs.InitResource[ecs.Events[assets.Event[scene.Image]]](w)

	images := assets.NewAssets[scene.Image]()
	handle := images.Add(scene.NewImage(1, 1, scene.ColorWhite))

	var fixup TextureFixup
	fixup.Track(handle)

	events.Send(assets.Event[scene.Image]{Kind: assets.EventCreated, Handle: handle})

	// no image store yet, the event must not be consumed
	fixup.Run(w)

	w.InsertResource(images)
	fixup.Run(w)

	img, ok := images.Get(handle)
	require.True(t, ok)
	assert.True(t, img.Sampler.IsRepeating())
}

func TestDemoAssetsHandles(t *testing.T) {
	assert.Empty(t, DemoAssets{}.Handles())

	colorMap := assets.NewHandle[scene.Image]()
	assert.Equal(t, []assets.Handle[scene.Image]{colorMap}, DemoAssets{ColorMap: colorMap}.Handles())
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "Debug", VariantDebug.String())
	assert.Equal(t, "Demo", VariantDemo.String())
}
