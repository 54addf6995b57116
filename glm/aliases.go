package glm

type Mat4f = Mat4[float32]

type Vec2f = Vec2[float32]
type Vec3f = Vec3[float32]
type Vec4f = Vec4[float32]

type Vec2u = Vec2[uint32]
type Vec3u = Vec3[uint32]
type Vec4u = Vec4[uint32]

type Quatf = Quat[float32]
