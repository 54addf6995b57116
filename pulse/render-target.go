package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

// RenderTarget holds all the information of something that can be rendered to.
// This is normally the screen, together with its depth buffer.
type RenderTarget struct {
	View *wgpu.TextureView

	// In case of multisample rendering, this might hold the
	// texture the multisampled fragment is resolved to.
	ResolveTarget *wgpu.TextureView

	// Texture format of View
	Format wgpu.TextureFormat

	// depth buffer, might be nil
	DepthView   *wgpu.TextureView
	DepthFormat wgpu.TextureFormat

	// Size of the target to render to
	Width  uint32
	Height uint32

	// The number of samples of the View texture
	SampleCount uint32
}

// Aspect returns the ratio of width to height
func (t *RenderTarget) Aspect() float32 {
	if t.Height == 0 {
		return 1
	}

	return float32(t.Width) / float32(t.Height)
}

// HasDepth returns true, if the target has a depth attachment
func (t *RenderTarget) HasDepth() bool {
	return t.DepthView != nil
}
