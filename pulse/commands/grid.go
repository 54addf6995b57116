package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed grid.wgsl
var gridShaderCode string

// GridUniforms describe one infinite grid plane as seen from one camera
type GridUniforms struct {
	_ structs.HostLayout

	InvViewProj glm.Mat4f
	ViewProj    glm.Mat4f

	// plane of the grid: origin and its local axes in world space
	PlaneOrigin glm.Vec4f
	PlaneX      glm.Vec4f
	PlaneNormal glm.Vec4f
	PlaneZ      glm.Vec4f

	CameraPosition glm.Vec4f

	XAxisColor     glm.Vec4f
	ZAxisColor     glm.Vec4f
	MinorLineColor glm.Vec4f
	MajorLineColor glm.Vec4f

	// alpha of zero disables the shadow tint
	ShadowColor glm.Vec4f

	FadeDistance       float32
	DotFadeoutStrength float32
	Scale              float32
	_                  float32
}

type GridCommand struct {
	ctx           *pulse.Context
	pipelineCache *pulse.PipelineCache[gridPipelineConfig]
}

func NewGridCommand(ctx *pulse.Context) *GridCommand {
	return &GridCommand{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[gridPipelineConfig](ctx),
	}
}

// Draw renders each grid as a full screen pass, blended on top of the target.
func (c *GridCommand) Draw(target pulse.RenderTarget, grids []GridUniforms) error {
	if len(grids) == 0 {
		return nil
	}

	pc, err := c.pipelineCache.Get(gridPipelineConfig{
		TargetFormat:      target.Format,
		TargetSampleCount: target.SampleCount,
		DepthFormat:       depthFormatOf(target),
	})
	if err != nil {
		return fmt.Errorf("get new pipeline: %w", err)
	}

	encoder, err := c.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassGrid",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          target.View,
				ResolveTarget: target.ResolveTarget,
				LoadOp:        wgpu.LoadOpLoad,
				StoreOp:       wgpu.StoreOpStore,
			},
		},
		DepthStencilAttachment: depthAttachment(target),
	})

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	pass.SetPipeline(pc.Pipeline)

	for idx := range grids {
		buf, err := c.ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "Grid.Uniforms",
			Contents: pulse.AsByteSlice(&grids[idx]),
			Usage:    wgpu.BufferUsageUniform,
		})
		if err != nil {
			return fmt.Errorf("create grid uniforms: %w", err)
		}

		defer buf.Release()

		bindGroup, err := c.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Grid.BindGroup",
			Layout: pc.GetBindGroupLayout(0),
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			return fmt.Errorf("create grid bind group: %w", err)
		}

		defer bindGroup.Release()

		pass.SetBindGroup(0, bindGroup, nil)

		// one triangle covering the full screen
		pass.Draw(3, 1, 0, 0)
	}

	if err := pass.End(); err != nil {
		return err
	}

	// must release pass before finishing the encoder
	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}

	defer cmdBuffer.Release()

	c.ctx.Submit(cmdBuffer)

	return nil
}

func (c *GridCommand) Release() {
	c.pipelineCache.Purge()
}

type gridPipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	DepthFormat       wgpu.TextureFormat
}

func (conf gridPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for grid",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Grid.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: gridShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile grid shader: %w", err)
	}

	defer shader.Release()

	pipeline, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Grid.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &wgpu.BlendStateAlphaBlending,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthStencilState(conf.DepthFormat, false),
		Multisample: wgpu.MultisampleState{
			Count: conf.TargetSampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build grid pipeline: %w", err)
	}

	return pipeline, nil
}

// uniform buffer sizes must be a multiple of 16
var _ = [1]struct{}{}[unsafe.Sizeof(GridUniforms{})%16]
