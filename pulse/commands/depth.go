package commands

import (
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

func depthStencilState(format wgpu.TextureFormat, write bool) *wgpu.DepthStencilState {
	if format == wgpu.TextureFormatUndefined {
		return nil
	}

	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}

	depthWrite := wgpu.OptionalBoolFalse
	if write {
		depthWrite = wgpu.OptionalBoolTrue
	}

	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: depthWrite,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      stencil,
		StencilBack:       stencil,
	}
}

func depthAttachment(target pulse.RenderTarget) *wgpu.RenderPassDepthStencilAttachment {
	if !target.HasDepth() {
		return nil
	}

	return &wgpu.RenderPassDepthStencilAttachment{
		View:         target.DepthView,
		DepthLoadOp:  wgpu.LoadOpLoad,
		DepthStoreOp: wgpu.StoreOpStore,
	}
}

func depthFormatOf(target pulse.RenderTarget) wgpu.TextureFormat {
	if !target.HasDepth() {
		return wgpu.TextureFormatUndefined
	}

	return target.DepthFormat
}
