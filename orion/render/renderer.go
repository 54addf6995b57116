package render

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/dodgeball/pulse/commands"
	"github.com/oliverbestmann/dodgeball/scene"
)

const ambientLight = 0.15

// Renderer draws the world into a render target. It is owned by the
// runner, which also owns the webgpu context.
type Renderer struct {
	ctx *pulse.Context

	clear  *commands.ClearCommand
	meshes *commands.Mesh3dCommand

	imageCache *imageCache
	meshCache  *meshCache
}

func NewRenderer(ctx *pulse.Context) (*Renderer, error) {
	meshes, err := commands.NewMesh3dCommand(ctx)
	if err != nil {
		return nil, fmt.Errorf("create mesh3d command: %w", err)
	}

	r := &Renderer{
		ctx:        ctx,
		clear:      commands.NewClear(ctx),
		meshes:     meshes,
		imageCache: newImageCache(ctx),
		meshCache:  newMeshCache(ctx),
	}

	return r, nil
}

// Render draws the view of every camera into the target
func (r *Renderer) Render(w *ecs.World, target pulse.RenderTarget) error {
	r.imageCache.sync(w)
	r.meshCache.sync(w)

	cameras := collectCameras(w)
	if len(cameras) == 0 {
		if err := r.clear.Clear(target, clearColorOf(w, nil)); err != nil {
			return fmt.Errorf("clear target: %w", err)
		}

		return nil
	}

	for idx, camera := range cameras {
		if idx == 0 || camera.Camera.ClearColor != nil {
			if err := r.clear.Clear(target, clearColorOf(w, camera.Camera.ClearColor)); err != nil {
				return fmt.Errorf("clear target: %w", err)
			}
		}

		if err := r.renderCamera(w, target, camera); err != nil {
			return fmt.Errorf("render camera %s: %w", camera.Entity, err)
		}
	}

	return nil
}

func (r *Renderer) renderCamera(w *ecs.World, target pulse.RenderTarget, camera cameraItem) error {
	viewProj := scene.ViewProjection(camera.Transform, camera.Projection, target.Aspect())

	light := FirstDirectionalLight(w)

	frame := commands.FrameUniforms{
		ViewProj:       viewProj,
		CameraPosition: camera.Transform.Translation.Extend(1),
		LightDirection: light.Direction.Extend(0),
		LightColor:     light.Color.Extend(1),
		Ambient:        glm.Vec4f{ambientLight, ambientLight, ambientLight, 1},
	}

	err := r.meshes.Draw(target, frame, r.prepareDraws(w, camera.Transform.Translation))
	if err != nil {
		return fmt.Errorf("draw meshes: %w", err)
	}

	h, _ := ecs.Resource[hooks](w)
	if h == nil {
		return nil
	}

	hookFrame := &Frame{
		World:            w,
		Context:          r.ctx,
		Target:           target,
		Camera:           camera.Entity,
		CameraTransform:  camera.Transform,
		CameraProjection: camera.Projection,
		ViewProj:         viewProj,
	}

	for _, hook := range h.hooks {
		if err := hook.hook(hookFrame); err != nil {
			return fmt.Errorf("render hook %q: %w", hook.name, err)
		}
	}

	return nil
}

func (r *Renderer) prepareDraws(w *ecs.World, cameraPosition glm.Vec3f) []commands.DrawMeshOptions {
	meshes, ok := ecs.Resource[assets.Assets[scene.Mesh]](w)
	if !ok {
		return nil
	}

	images, _ := ecs.Resource[assets.Assets[scene.Image]](w)
	if images == nil {
		images = assets.NewAssets[scene.Image]()
	}

	var draws []commands.DrawMeshOptions

	for _, item := range CollectDraws(w, cameraPosition) {
		gpuMesh, ok := r.meshCache.get(meshes, item.Mesh)
		if !ok {
			continue
		}

		material := item.Material

		var flags uint32
		if material.Unlit {
			flags |= commands.MaterialFlagUnlit
		}

		if material.AlphaMode == scene.AlphaModeMask {
			flags |= commands.MaterialFlagAlphaMask
		}

		draw := commands.DrawMeshOptions{
			Mesh:        gpuMesh,
			Model:       item.Transform.Matrix(),
			BaseColor:   material.BaseColor,
			AlphaCutoff: material.AlphaCutoff,
			Roughness:   material.PerceptualRoughness,
			Flags:       flags,
			Blend:       item.Blended(),
		}

		// textures that are still loading are replaced by defaults
		draw.BaseColorTexture, _ = r.imageCache.get(images, material.BaseColorTexture)
		draw.NormalMapTexture, _ = r.imageCache.get(images, material.NormalMapTexture)

		draws = append(draws, draw)
	}

	return draws
}

func clearColorOf(w *ecs.World, override *scene.Color) glm.Vec4f {
	if override != nil {
		return *override
	}

	if clearColor, ok := ecs.Resource[scene.ClearColor](w); ok {
		return clearColor.Color
	}

	return scene.ColorBlack
}

func (r *Renderer) Release() {
	slog.Debug("Release renderer")

	r.meshCache.release()
	r.imageCache.release()
	r.meshes.Release()
}
