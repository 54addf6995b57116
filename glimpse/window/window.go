package window

import (
	"github.com/oliverbestmann/dodgeball/glimpse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type Window interface {
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SetCursorGrabbed locks and hides the cursor while grabbed
	SetCursorGrabbed(grabbed bool)

	// Run calls frame until the window is closed or frame returns an error.
	Run(frame func(input glimpse.UpdateInputState) error) error
	Terminate()
}
