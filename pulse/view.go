package pulse

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration

	// only configured if we have a multisample texture configured
	msaaTexture *Texture

	// depth texture to render to.
	// has the same sampleCount as the surface itself
	depthTexture *Texture

	sampleCount uint32

	// true if depth is enabled
	depth bool
}

func NewView(dev *Context, msaa bool, depth bool) *View {
	st := &View{Context: dev, depth: depth}

	if msaa {
		st.sampleCount = 4
	} else {
		st.sampleCount = 1
	}

	caps := dev.Surface.GetCapabilities(dev.Adapter)
	slog.Debug("Available surface formats", slog.Any("formats", caps.Formats))

	st.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      wgpu.TextureFormatBGRA8Unorm,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	return st
}

func (vs *View) MSAA() bool {
	return vs.sampleCount > 1
}

func (vs *View) SurfaceAsTexture(screen *wgpu.Texture, screenView *wgpu.TextureView) *Texture {
	if vs.MSAA() {
		screenTexture := WrapTexture(screen, screenView, nil)

		return WrapTexture(
			vs.msaaTexture.texture,
			vs.msaaTexture.textureView,
			screenTexture,
		)
	} else {
		return WrapTexture(
			screen,
			screenView,
			nil,
		)
	}
}

// RenderTarget describes the surface texture together with the
// multisample and depth textures of this view.
func (vs *View) RenderTarget(screen *wgpu.Texture, screenView *wgpu.TextureView) RenderTarget {
	view, resolveView := vs.SurfaceAsTexture(screen, screenView).RenderViews()

	target := RenderTarget{
		View:          view,
		ResolveTarget: resolveView,
		Format:        vs.surfaceConfig.Format,
		Width:         vs.surfaceConfig.Width,
		Height:        vs.surfaceConfig.Height,
		SampleCount:   vs.sampleCount,
	}

	if vs.depthTexture != nil {
		target.DepthView, _ = vs.depthTexture.RenderViews()
		target.DepthFormat = vs.depthTexture.Format()
	}

	return target
}

func (vs *View) Size() (width, height uint32) {
	return vs.surfaceConfig.Width, vs.surfaceConfig.Height
}

func (vs *View) ReleaseTexture() {
	if vs.depthTexture != nil {
		vs.depthTexture.Release()
		vs.depthTexture = nil
	}

	if vs.msaaTexture != nil {
		vs.msaaTexture.Release()
		vs.msaaTexture = nil
	}
}

func (vs *View) Release() {
	vs.ReleaseTexture()
}

func (vs *View) Configure(width, height uint32) error {
	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Device, vs.surfaceConfig)

	vs.ReleaseTexture()

	// create depth texture
	if vs.depth {
		depthTexture, err := createDepthTexture(vs.Context, width, height, vs.sampleCount)
		if err != nil {
			return fmt.Errorf("create depth texture: %w", err)
		}

		vs.depthTexture = depthTexture
	}

	if vs.MSAA() {
		// create msaa render target texture
		msaaTexture, err := createMultisampleTexture(vs.Context, vs.surfaceConfig, vs.sampleCount)
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}

		vs.msaaTexture = msaaTexture
	}

	return nil
}

// DepthFormat is the format of the depth buffer of every View
const DepthFormat = wgpu.TextureFormatDepth32Float

func createMultisampleTexture(ctx *Context, surfaceConfig *wgpu.SurfaceConfiguration, sampleCount uint32) (*Texture, error) {
	return NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label: "MultisampleRenderTarget",
		Usage: wgpu.TextureUsageRenderAttachment,
		Size: wgpu.Extent3D{
			Width:              surfaceConfig.Width,
			Height:             surfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        surfaceConfig.Format,
		Dimension:     wgpu.TextureDimension2D,
		SampleCount:   sampleCount,
		MipLevelCount: 1,
	})
}

func createDepthTexture(ctx *Context, width, height, sampleCount uint32) (*Texture, error) {
	return NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label:     "DepthTexture",
		Usage:     wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        DepthFormat,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
	})
}
