package scene

import (
	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/glm"
)

// Mesh is an indexed triangle list. All vertex attributes have
// the same length as Positions.
type Mesh struct {
	Positions []glm.Vec3f
	Normals   []glm.Vec3f
	UVs       []glm.Vec2f

	// tangents with the handedness of the bitangent in W
	Tangents []glm.Vec4f

	Indices []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Mesh3d renders the referenced mesh at the entities Transform
type Mesh3d struct {
	Handle assets.Handle[Mesh]
}

// MeshMaterial3d selects the material used for the entities Mesh3d
type MeshMaterial3d struct {
	Handle assets.Handle[StandardMaterial]
}

type cuboidFace struct {
	normal  glm.Vec3f
	tangent glm.Vec3f
}

var cuboidFaces = []cuboidFace{
	{normal: glm.Vec3f{0, 0, 1}, tangent: glm.Vec3f{1, 0, 0}},
	{normal: glm.Vec3f{0, 0, -1}, tangent: glm.Vec3f{-1, 0, 0}},
	{normal: glm.Vec3f{1, 0, 0}, tangent: glm.Vec3f{0, 0, -1}},
	{normal: glm.Vec3f{-1, 0, 0}, tangent: glm.Vec3f{0, 0, 1}},
	{normal: glm.Vec3f{0, 1, 0}, tangent: glm.Vec3f{1, 0, 0}},
	{normal: glm.Vec3f{0, -1, 0}, tangent: glm.Vec3f{1, 0, 0}},
}

// Cuboid builds an axis aligned box centered at the origin. Each face
// gets its own four vertices, uvs span 0 to 1 per face.
func Cuboid(x, y, z float32) Mesh {
	half := glm.Vec3f{x / 2, y / 2, z / 2}

	var mesh Mesh

	for _, face := range cuboidFaces {
		bitangent := face.normal.Cross(face.tangent)

		base := uint32(len(mesh.Positions))

		corners := [4]glm.Vec2f{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, corner := range corners {
			pos := face.normal.
				Add(face.tangent.MulScalar(corner[0])).
				Add(bitangent.MulScalar(corner[1])).
				Mul(half)

			mesh.Positions = append(mesh.Positions, pos)
			mesh.Normals = append(mesh.Normals, face.normal)
			mesh.Tangents = append(mesh.Tangents, face.tangent.Extend(1))
			mesh.UVs = append(mesh.UVs, glm.Vec2f{
				(corner[0] + 1) / 2,
				(1 - corner[1]) / 2,
			})
		}

		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	return mesh
}
