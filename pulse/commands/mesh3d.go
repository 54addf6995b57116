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

//go:embed mesh3d.wgsl
var mesh3dShaderCode string

type MeshVertex struct {
	_ structs.HostLayout

	Position glm.Vec3f
	Normal   glm.Vec3f
	UV       glm.Vec2f
	Tangent  glm.Vec4f
}

// GPUMesh holds the vertex and index buffers of an uploaded mesh
type GPUMesh struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

func UploadMesh(ctx *pulse.Context, label string, vertices []MeshVertex, indices []uint32) (*GPUMesh, error) {
	bufVertices, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + ".Vertices",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	bufIndices, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + ".Indices",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		bufVertices.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	return &GPUMesh{
		vertices:   bufVertices,
		indices:    bufIndices,
		indexCount: uint32(len(indices)),
	}, nil
}

func (m *GPUMesh) Release() {
	m.vertices.Release()
	m.indices.Release()
}

// FrameUniforms are shared by all meshes drawn in one frame
type FrameUniforms struct {
	_ structs.HostLayout

	ViewProj       glm.Mat4f
	CameraPosition glm.Vec4f

	// direction the light travels into
	LightDirection glm.Vec4f

	// light color, premultiplied with its intensity
	LightColor glm.Vec4f

	Ambient glm.Vec4f
}

const (
	MaterialFlagUnlit     uint32 = 1
	MaterialFlagAlphaMask uint32 = 2
)

type objectUniforms struct {
	_ structs.HostLayout

	Model        glm.Mat4f
	NormalMatrix glm.Mat4f

	BaseColor   glm.Vec4f
	AlphaCutoff float32
	Roughness   float32
	Flags       uint32
	_           uint32
}

// TextureBinding is a texture view together with the sampler to use
type TextureBinding struct {
	View    *wgpu.TextureView
	Sampler *wgpu.Sampler
}

type DrawMeshOptions struct {
	Mesh  *GPUMesh
	Model glm.Mat4f

	BaseColor   glm.Vec4f
	AlphaCutoff float32
	Roughness   float32
	Flags       uint32

	// textures are replaced by neutral defaults if not set
	BaseColorTexture TextureBinding
	NormalMapTexture TextureBinding

	// alpha blend the mesh. Blended meshes do not write depth
	Blend bool
}

type Mesh3dCommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[mesh3dPipelineConfig]

	bufFrame *wgpu.Buffer

	white      *pulse.Texture
	flatNormal *pulse.Texture
}

func NewMesh3dCommand(ctx *pulse.Context) (*Mesh3dCommand, error) {
	bufFrame, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Mesh3d.Frame",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(FrameUniforms{})),
	})
	if err != nil {
		return nil, fmt.Errorf("create frame buffer: %w", err)
	}

	white, err := pulse.NewTextureFromPixels(ctx, "Mesh3d.White", 1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		bufFrame.Release()
		return nil, fmt.Errorf("create default texture: %w", err)
	}

	flatNormal, err := pulse.NewTextureFromPixels(ctx, "Mesh3d.FlatNormal", 1, 1, []byte{128, 128, 255, 255})
	if err != nil {
		bufFrame.Release()
		white.Release()
		return nil, fmt.Errorf("create default normal map: %w", err)
	}

	cmd := &Mesh3dCommand{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[mesh3dPipelineConfig](ctx),
		bufFrame:      bufFrame,
		white:         white,
		flatNormal:    flatNormal,
	}

	return cmd, nil
}

// Draw renders all meshes in the given order into the target.
func (c *Mesh3dCommand) Draw(target pulse.RenderTarget, frame FrameUniforms, draws []DrawMeshOptions) error {
	if len(draws) == 0 {
		return nil
	}

	slog.Debug("Rendering meshes", slog.Int("meshCount", len(draws)))

	err := c.ctx.WriteBuffer(c.bufFrame, 0, pulse.AsByteSlice(&frame))
	if err != nil {
		return fmt.Errorf("update frame uniforms: %w", err)
	}

	defaultSampler, err := pulse.CachedSampler(c.ctx.Device, wgpu.SamplerDescriptor{
		Label:         "Mesh3d.DefaultSampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("default sampler: %w", err)
	}

	var releasables []interface{ Release() }
	defer func() {
		for _, r := range releasables {
			r.Release()
		}
	}()

	encoder, err := c.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassMesh3d",
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

	for _, draw := range draws {
		pc, err := c.pipelineCache.Get(mesh3dPipelineConfig{
			TargetFormat:      target.Format,
			TargetSampleCount: target.SampleCount,
			DepthFormat:       depthFormatOf(target),
			Blend:             draw.Blend,
		})
		if err != nil {
			return fmt.Errorf("get new pipeline: %w", err)
		}

		baseColor := withDefault(draw.BaseColorTexture, c.white, defaultSampler)
		normalMap := withDefault(draw.NormalMapTexture, c.flatNormal, defaultSampler)

		normalMatrix, ok := draw.Model.Invert()
		if !ok {
			// degenerated transform, nothing visible to draw
			continue
		}

		object := objectUniforms{
			Model:        draw.Model,
			NormalMatrix: normalMatrix.Transpose(),
			BaseColor:    draw.BaseColor,
			AlphaCutoff:  draw.AlphaCutoff,
			Roughness:    draw.Roughness,
			Flags:        draw.Flags,
		}

		bufObject, err := c.ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "Mesh3d.Object",
			Contents: pulse.AsByteSlice(&object),
			Usage:    wgpu.BufferUsageUniform,
		})
		if err != nil {
			return fmt.Errorf("create object uniforms: %w", err)
		}

		releasables = append(releasables, bufObject)

		frameGroup, err := c.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Mesh3d.FrameBindGroup",
			Layout: pc.GetBindGroupLayout(0),
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: c.bufFrame, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			return fmt.Errorf("create frame bind group: %w", err)
		}

		releasables = append(releasables, frameGroup)

		objectGroup, err := c.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Mesh3d.ObjectBindGroup",
			Layout: pc.GetBindGroupLayout(1),
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: bufObject, Size: wgpu.WholeSize},
				{Binding: 1, TextureView: baseColor.View},
				{Binding: 2, Sampler: baseColor.Sampler},
				{Binding: 3, TextureView: normalMap.View},
				{Binding: 4, Sampler: normalMap.Sampler},
			},
		})
		if err != nil {
			return fmt.Errorf("create object bind group: %w", err)
		}

		releasables = append(releasables, objectGroup)

		pass.SetPipeline(pc.Pipeline)
		pass.SetBindGroup(0, frameGroup, nil)
		pass.SetBindGroup(1, objectGroup, nil)
		pass.SetVertexBuffer(0, draw.Mesh.vertices, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(draw.Mesh.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(draw.Mesh.indexCount, 1, 0, 0, 0)
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

func withDefault(binding TextureBinding, fallback *pulse.Texture, sampler *wgpu.Sampler) TextureBinding {
	if binding.View == nil {
		binding.View = fallback.SourceView()
	}

	if binding.Sampler == nil {
		binding.Sampler = sampler
	}

	return binding
}

func (c *Mesh3dCommand) Release() {
	c.pipelineCache.Purge()
	c.bufFrame.Release()
	c.white.Release()
	c.flatNormal.Release()
}

type mesh3dPipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	DepthFormat       wgpu.TextureFormat
	Blend             bool
}

func (conf mesh3dPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for mesh3d",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
		slog.Bool("blend", conf.Blend),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Mesh3d.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: mesh3dShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh3d shader: %w", err)
	}

	defer shader.Release()

	blendState := wgpu.BlendStateReplace
	if conf.Blend {
		blendState = wgpu.BlendStateAlphaBlending
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Mesh3d.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(MeshVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Normal)),
							ShaderLocation: 1,
						},
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.UV)),
							ShaderLocation: 2,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Tangent)),
							ShaderLocation: 3,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &blendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: depthStencilState(conf.DepthFormat, !conf.Blend),
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build mesh3d pipeline: %w", err)
	}

	return pipeline, nil
}
