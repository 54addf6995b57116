package pulse

import (
	"fmt"

	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
// For multisample textures a Texture also holds the resolve target
// texture.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	resolveTarget *Texture

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	// equal to texture.GetSampleCount()
	sampleCount uint32

	region Rectangle2u

	// true if the textures are owned by someone else
	wrapped bool
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	MSAA  bool
	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	var sampleCount uint32 = 1

	if opts.MSAA {
		sampleCount = 4
	}

	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   sampleCount,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		// allow to do almost everything with this texture
		Usage: wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopyDst |
			wgpu.TextureUsageCopySrc,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view of texture %q: %w", desc.Label, err)
	}

	var resolveTarget *Texture

	if desc.SampleCount > 1 {
		descResolve := *desc
		descResolve.SampleCount = 1

		resolveTarget, err = NewTextureFromDesc(ctx, &descResolve)
		if err != nil {
			textureView.Release()
			texture.Release()

			return nil, fmt.Errorf("create resolveTarget texture: %w", err)
		}
	}

	return &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,
		format:        desc.Format,
		sampleCount:   desc.SampleCount,
		region:        RectangleFromSize(glm.Vec2u{}, glm.Vec2u{desc.Size.Width, desc.Size.Height}),
	}, nil
}

// WrapTexture creates a texture from an existing wgpu.Texture and wgpu.TextureView. If it is a
// multisample texture, you also need to specify a resolve target. Release does not release
// a wrapped texture.
func WrapTexture(texture *wgpu.Texture, textureView *wgpu.TextureView, resolveTarget *Texture) *Texture {
	if texture.GetSampleCount() > 1 && resolveTarget == nil {
		panic("no resolveTarget specified for multisample texture")
	}

	if texture.GetSampleCount() == 1 && resolveTarget != nil {
		panic("resolveTarget specified for single sample texture")
	}

	return &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,
		format:        texture.GetFormat(),
		sampleCount:   texture.GetSampleCount(),
		region:        RectangleFromSize(glm.Vec2u{}, glm.Vec2u{texture.GetWidth(), texture.GetHeight()}),
		wrapped:       true,
	}
}

// SourceView returns the view to sample from. For multisample
// textures this is the resolved texture.
func (t *Texture) SourceView() *wgpu.TextureView {
	if t.resolveTarget != nil {
		return t.resolveTarget.textureView
	}

	return t.textureView
}

// RenderViews returns the view to render into together with the view
// multisampled fragments are resolved to, which is nil for
// single sample textures.
func (t *Texture) RenderViews() (view, resolveView *wgpu.TextureView) {
	view = t.textureView

	if t.resolveTarget != nil {
		resolveView = t.resolveTarget.textureView
	}

	return
}

func (t *Texture) Width() uint32 {
	return t.region.Width()
}

func (t *Texture) Height() uint32 {
	return t.region.Height()
}

func (t *Texture) Size() glm.Vec2u {
	return t.region.Size()
}

func (t *Texture) Region() Rectangle2u {
	return t.region
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) SampleCount() uint32 {
	return t.sampleCount
}

// Release releases the texture and its view. You must be sure to not use the
// texture after calling release.
func (t *Texture) Release() {
	if t.wrapped {
		return
	}

	t.textureView.Release()
	t.texture.Release()

	if t.resolveTarget != nil {
		t.resolveTarget.Release()
	}
}

type WritePixelsOptions struct {
	Pixels   []byte
	Region   Rectangle2u
	Stride   uint32
	MipLevel uint32
}

// WritePixels uploads rgba8 pixels covering the full texture
func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	return t.WritePixelsToRect(ctx, WritePixelsOptions{
		Pixels: pixels,
		Region: t.region,
	})
}

func (t *Texture) WritePixelsToRect(ctx *Context, opts WritePixelsOptions) error {
	if !t.region.Contains(opts.Region) {
		return fmt.Errorf("target rect %v not in texture region %v", opts.Region, t.region)
	}

	if opts.Stride == 0 {
		opts.Stride = opts.Region.Width() * 4
	}

	if expected := int(opts.Stride * opts.Region.Height()); len(opts.Pixels) < expected {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", expected, len(opts.Pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  opts.Stride,
		RowsPerImage: opts.Region.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              opts.Region.Width(),
		Height:             opts.Region.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: opts.MipLevel,
		Origin: wgpu.Origin3D{
			X: opts.Region.Min[0],
			Y: opts.Region.Min[1],
		},
		Aspect: wgpu.TextureAspectAll,
	}

	// send data to the gpu
	if err := ctx.WriteTexture(dest, opts.Pixels, layout, size); err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}

// NewTextureFromPixels creates a texture of the given size and
// uploads the rgba8 pixels into it.
func NewTextureFromPixels(ctx *Context, label string, width, height uint32, pixels []byte) (*Texture, error) {
	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  width,
		Height: height,
		Label:  label,
	})

	if err != nil {
		return nil, err
	}

	if err := t.WritePixels(ctx, pixels); err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}
