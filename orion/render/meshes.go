package render

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/glm"
	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/dodgeball/pulse/commands"
	"github.com/oliverbestmann/dodgeball/scene"
)

type meshCache struct {
	ctx    *pulse.Context
	meshes map[uuid.UUID]*commands.GPUMesh
	reader ecs.EventReader[assets.Event[scene.Mesh]]
}

func newMeshCache(ctx *pulse.Context) *meshCache {
	return &meshCache{ctx: ctx, meshes: map[uuid.UUID]*commands.GPUMesh{}}
}

// sync drops gpu meshes that were modified or removed, they are
// uploaded again when needed.
func (c *meshCache) sync(w *ecs.World) {
	for _, event := range c.reader.ReadFrom(w) {
		if event.Kind == assets.EventCreated {
			continue
		}

		if mesh, ok := c.meshes[event.Handle.ID()]; ok {
			mesh.Release()
			delete(c.meshes, event.Handle.ID())
		}
	}
}

func (c *meshCache) get(meshes *assets.Assets[scene.Mesh], handle assets.Handle[scene.Mesh]) (*commands.GPUMesh, bool) {
	if gpuMesh, ok := c.meshes[handle.ID()]; ok {
		return gpuMesh, true
	}

	mesh, ok := meshes.Get(handle)
	if !ok || len(mesh.Indices) == 0 {
		return nil, false
	}

	gpuMesh, err := commands.UploadMesh(c.ctx, "Mesh:"+handle.String(), MeshVertices(mesh), mesh.Indices)
	if err != nil {
		slog.Warn("Failed to upload mesh", slog.String("handle", handle.String()), slog.String("err", err.Error()))
		return nil, false
	}

	c.meshes[handle.ID()] = gpuMesh

	return gpuMesh, true
}

func (c *meshCache) release() {
	for id, mesh := range c.meshes {
		mesh.Release()
		delete(c.meshes, id)
	}
}

// MeshVertices interleaves the attributes of the mesh. Missing
// attributes are filled with defaults.
func MeshVertices(mesh *scene.Mesh) []commands.MeshVertex {
	vertices := make([]commands.MeshVertex, len(mesh.Positions))

	for idx, pos := range mesh.Positions {
		vertex := commands.MeshVertex{
			Position: pos,
			Normal:   glm.Vec3Y,
			Tangent:  glm.Vec4f{1, 0, 0, 1},
		}

		if idx < len(mesh.Normals) {
			vertex.Normal = mesh.Normals[idx]
		}

		if idx < len(mesh.UVs) {
			vertex.UV = mesh.UVs[idx]
		}

		if idx < len(mesh.Tangents) {
			vertex.Tangent = mesh.Tangents[idx]
		}

		vertices[idx] = vertex
	}

	return vertices
}
