package render

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/scene"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplerDescriptor(t *testing.T) {
	desc := SamplerDescriptor(scene.ImageSampler{})
	assert.Equal(t, wgpu.AddressModeClampToEdge, desc.AddressModeU)
	assert.Equal(t, wgpu.AddressModeClampToEdge, desc.AddressModeW)
	assert.Equal(t, wgpu.FilterModeLinear, desc.MagFilter)

	desc = SamplerDescriptor(scene.ImageSampler{
		AddressModeU: scene.AddressModeRepeat,
		AddressModeV: scene.AddressModeMirrorRepeat,
		AddressModeW: scene.AddressModeRepeat,
		MinFilter:    scene.FilterModeNearest,
		MipmapFilter: scene.FilterModeNearest,
	})

	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeU)
	assert.Equal(t, wgpu.AddressModeMirrorRepeat, desc.AddressModeV)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeW)
	assert.Equal(t, wgpu.FilterModeNearest, desc.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeNearest, desc.MipmapFilter)
}

func TestImageCacheKeepsSamplerDescriptor(t *testing.T) {
	cache := newImageCache(nil)

	image := scene.NewImage(2, 2, scene.ColorWhite)
	id := uuid.New()

	cache.cache.Add(id, &gpuImage{
		width:   image.Width,
		height:  image.Height,
		pixels:  firstPixel(image.Pixels),
		sampler: SamplerDescriptor(image.Sampler),
	})

	// only the sampler changes, the texture stays
	image.Sampler = scene.ImageSampler{
		AddressModeU: scene.AddressModeRepeat,
		AddressModeV: scene.AddressModeRepeat,
		AddressModeW: scene.AddressModeRepeat,
	}

	require.NoError(t, cache.update(id, &image))

	cached, ok := cache.cache.Peek(id)
	require.True(t, ok)

	// the descriptor is stored, not a sampler the shared cache may evict
	assert.Equal(t, SamplerDescriptor(image.Sampler), cached.sampler)
	assert.Equal(t, wgpu.AddressModeRepeat, cached.sampler.AddressModeU)
}

func TestMeshVertices(t *testing.T) {
	cube := scene.Cuboid(1, 1, 1)

	vertices := MeshVertices(&cube)
	require.Len(t, vertices, 24)
	assert.Equal(t, cube.Positions[5], vertices[5].Position)
	assert.Equal(t, cube.UVs[5], vertices[5].UV)

	// missing attributes get defaults
	partial := scene.Mesh{Positions: []glm.Vec3f{{1, 2, 3}}}
	vertices = MeshVertices(&partial)
	require.Len(t, vertices, 1)
	assert.Equal(t, glm.Vec3Y, vertices[0].Normal)
	assert.Equal(t, glm.Vec4f{1, 0, 0, 1}, vertices[0].Tangent)
}

func TestCollectDrawsOrdersBlendedBackToFront(t *testing.T) {
	w := ecs.NewWorld()

	meshes := assets.NewAssets[scene.Mesh]()
	materials := assets.NewAssets[scene.StandardMaterial]()
	w.InsertResource(meshes)
	w.InsertResource(materials)

	mesh := meshes.Add(scene.Cuboid(1, 1, 1))

	opaque := materials.Add(scene.DefaultStandardMaterial())

	blendMaterial := scene.DefaultStandardMaterial()
	blendMaterial.AlphaMode = scene.AlphaModeBlend
	blend := materials.Add(blendMaterial)

	near := w.Spawn(scene.Mesh3d{Handle: mesh}, scene.MeshMaterial3d{Handle: blend}, scene.TransformFromXYZ(0, 0, 1))
	far := w.Spawn(scene.Mesh3d{Handle: mesh}, scene.MeshMaterial3d{Handle: blend}, scene.TransformFromXYZ(0, 0, -10))
	solid := w.Spawn(scene.Mesh3d{Handle: mesh}, scene.MeshMaterial3d{Handle: opaque}, scene.TransformFromXYZ(0, 0, 5))

	// material that is not loaded yet
	w.Spawn(scene.Mesh3d{Handle: mesh}, scene.MeshMaterial3d{Handle: assets.NewHandle[scene.StandardMaterial]()}, scene.IdentityTransform())

	draws := CollectDraws(w, glm.Vec3f{0, 0, 10})
	require.Len(t, draws, 3)

	assert.Equal(t, solid, draws[0].Entity)
	assert.Equal(t, far, draws[1].Entity)
	assert.Equal(t, near, draws[2].Entity)
	assert.True(t, draws[1].Blended())
}

func TestFirstDirectionalLight(t *testing.T) {
	w := ecs.NewWorld()

	fallback := FirstDirectionalLight(w)
	assert.Equal(t, glm.Vec3f{0, -1, 0}, fallback.Direction)

	light := scene.DefaultDirectionalLight()
	w.Spawn(light, scene.TransformFromXYZ(15, 20, 0).LookingAt(glm.Vec3Zero, glm.Vec3Y))

	result := FirstDirectionalLight(w)

	expected := glm.Vec3Zero.Sub(glm.Vec3f{15, 20, 0}).Normalize()
	for idx := range 3 {
		assert.InDelta(t, expected[idx], result.Direction[idx], 1e-4)
	}

	assert.Equal(t, glm.Vec3f{1, 1, 1}, result.Color)
}

func TestCollectCamerasByOrder(t *testing.T) {
	w := ecs.NewWorld()

	second := w.Spawn(scene.Camera3d{Order: 1}, scene.IdentityTransform())
	first := w.Spawn(scene.Camera3d{Order: -1}, scene.IdentityTransform(), scene.Projection{FovY: 1, Near: 1, Far: 2})

	cameras := collectCameras(w)
	require.Len(t, cameras, 2)

	assert.Equal(t, first, cameras[0].Entity)
	assert.Equal(t, scene.Projection{FovY: 1, Near: 1, Far: 2}, cameras[0].Projection)
	assert.Equal(t, second, cameras[1].Entity)
	assert.Equal(t, scene.DefaultProjection(), cameras[1].Projection)
}

func TestClearColorOf(t *testing.T) {
	w := ecs.NewWorld()
	assert.Equal(t, scene.ColorBlack, clearColorOf(w, nil))

	w.InsertResource(&scene.ClearColor{Color: scene.ColorWhite})
	assert.Equal(t, scene.ColorWhite, clearColorOf(w, nil))

	override := scene.ColorRGB(0.1, 0.1, 0.1)
	assert.Equal(t, override, clearColorOf(w, &override))
}
