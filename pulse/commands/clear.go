package commands

import (
	"fmt"

	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type ClearCommand struct {
	context *pulse.Context
}

func NewClear(ctx *pulse.Context) *ClearCommand {
	return &ClearCommand{context: ctx}
}

// Clear fills the target with the given color and resets its depth buffer
func (c *ClearCommand) Clear(target pulse.RenderTarget, color glm.Vec4f) error {
	enc, err := c.context.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "ClearTarget"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	desc := &wgpu.RenderPassDescriptor{
		Label: "ClearTarget",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          target.View,
				ResolveTarget: target.ResolveTarget,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue:    pulse.ToWGPU(color),
			},
		},
	}

	if target.HasDepth() {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            target.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		}
	}

	pass := enc.BeginRenderPass(desc)
	if err := pass.End(); err != nil {
		pass.Release()
		return err
	}

	pass.Release()

	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTarget"})
	if err != nil {
		return err
	}

	defer buf.Release()

	c.context.Submit(buf)

	return nil
}
