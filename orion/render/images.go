package render

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/dodgeball/pulse/commands"
	"github.com/oliverbestmann/dodgeball/scene"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// maximum number of images kept on the gpu
const maxGPUImages = 256

type gpuImage struct {
	texture *pulse.Texture

	// resolved through the shared sampler cache on every use,
	// the cache releases samplers it evicts
	sampler wgpu.SamplerDescriptor

	// identity of the uploaded pixels
	width, height uint32
	pixels        *byte
}

func (g *gpuImage) binding(dev *wgpu.Device) (commands.TextureBinding, error) {
	sampler, err := pulse.CachedSampler(dev, g.sampler)
	if err != nil {
		return commands.TextureBinding{}, err
	}

	binding := commands.TextureBinding{
		View:    g.texture.SourceView(),
		Sampler: sampler,
	}

	return binding, nil
}

// imageCache mirrors the images of the asset store on the gpu
type imageCache struct {
	ctx    *pulse.Context
	cache  *lru.Cache[uuid.UUID, *gpuImage]
	reader ecs.EventReader[assets.Event[scene.Image]]
}

func newImageCache(ctx *pulse.Context) *imageCache {
	cache, _ := lru.NewWithEvict[uuid.UUID, *gpuImage](maxGPUImages, func(_ uuid.UUID, image *gpuImage) {
		image.texture.Release()
	})

	return &imageCache{ctx: ctx, cache: cache}
}

// sync applies the asset events of the last tick to the gpu copies
func (c *imageCache) sync(w *ecs.World) {
	images, ok := ecs.Resource[assets.Assets[scene.Image]](w)
	if !ok {
		return
	}

	for _, event := range c.reader.ReadFrom(w) {
		switch event.Kind {
		case assets.EventCreated, assets.EventModified:
			image, ok := images.Get(event.Handle)
			if !ok {
				continue
			}

			if err := c.update(event.Handle.ID(), image); err != nil {
				slog.Warn("Failed to upload image",
					slog.String("handle", event.Handle.String()),
					slog.String("err", err.Error()))
			}

		case assets.EventRemoved:
			c.cache.Remove(event.Handle.ID())
		}
	}
}

// update uploads the image. If only the sampler changed, the existing
// texture is kept and only the sampler is replaced.
func (c *imageCache) update(id uuid.UUID, image *scene.Image) error {
	sampler := SamplerDescriptor(image.Sampler)

	if existing, ok := c.cache.Peek(id); ok && existing.matches(image) {
		existing.sampler = sampler
		return nil
	}

	texture, err := pulse.NewTextureFromPixels(c.ctx, "Image:"+id.String(), image.Width, image.Height, image.Pixels)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}

	c.cache.Add(id, &gpuImage{
		texture: texture,
		sampler: sampler,
		width:   image.Width,
		height:  image.Height,
		pixels:  firstPixel(image.Pixels),
	})

	return nil
}

// get returns the gpu copy of the image, uploading it if needed
func (c *imageCache) get(images *assets.Assets[scene.Image], handle assets.Handle[scene.Image]) (commands.TextureBinding, bool) {
	if handle.IsZero() {
		return commands.TextureBinding{}, false
	}

	if cached, ok := c.cache.Get(handle.ID()); ok {
		return c.bindingOf(handle, cached)
	}

	image, ok := images.Get(handle)
	if !ok {
		// not yet loaded
		return commands.TextureBinding{}, false
	}

	if err := c.update(handle.ID(), image); err != nil {
		slog.Warn("Failed to upload image", slog.String("handle", handle.String()), slog.String("err", err.Error()))
		return commands.TextureBinding{}, false
	}

	cached, _ := c.cache.Get(handle.ID())
	return c.bindingOf(handle, cached)
}

func (c *imageCache) bindingOf(handle assets.Handle[scene.Image], image *gpuImage) (commands.TextureBinding, bool) {
	binding, err := image.binding(c.ctx.Device)
	if err != nil {
		slog.Warn("Failed to create sampler", slog.String("handle", handle.String()), slog.String("err", err.Error()))
		return commands.TextureBinding{}, false
	}

	return binding, true
}

func (c *imageCache) release() {
	c.cache.Purge()
}

func (g *gpuImage) matches(image *scene.Image) bool {
	return g.width == image.Width &&
		g.height == image.Height &&
		g.pixels == firstPixel(image.Pixels)
}

func firstPixel(pixels []byte) *byte {
	if len(pixels) == 0 {
		return nil
	}

	return &pixels[0]
}

// SamplerDescriptor converts the sampler of an image into a wgpu sampler descriptor
func SamplerDescriptor(sampler scene.ImageSampler) wgpu.SamplerDescriptor {
	return wgpu.SamplerDescriptor{
		Label:         "ImageSampler",
		AddressModeU:  addressModeOf(sampler.AddressModeU),
		AddressModeV:  addressModeOf(sampler.AddressModeV),
		AddressModeW:  addressModeOf(sampler.AddressModeW),
		MagFilter:     filterModeOf(sampler.MagFilter),
		MinFilter:     filterModeOf(sampler.MinFilter),
		MipmapFilter:  mipmapFilterModeOf(sampler.MipmapFilter),
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

func addressModeOf(mode scene.AddressMode) wgpu.AddressMode {
	switch mode {
	case scene.AddressModeRepeat:
		return wgpu.AddressModeRepeat
	case scene.AddressModeMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeClampToEdge
	}
}

func filterModeOf(mode scene.FilterMode) wgpu.FilterMode {
	if mode == scene.FilterModeNearest {
		return wgpu.FilterModeNearest
	}

	return wgpu.FilterModeLinear
}

func mipmapFilterModeOf(mode scene.FilterMode) wgpu.MipmapFilterMode {
	if mode == scene.FilterModeNearest {
		return wgpu.MipmapFilterModeNearest
	}

	return wgpu.MipmapFilterModeLinear
}
