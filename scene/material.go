package scene

import "github.com/oliverbestmann/dodgeball/assets"

//go:generate go tool stringer -type=AlphaMode -trimprefix=AlphaMode
type AlphaMode uint8

const (
	AlphaModeOpaque AlphaMode = iota
	AlphaModeMask
	AlphaModeBlend
)

// StandardMaterial describes the surface of a mesh
type StandardMaterial struct {
	BaseColor        Color
	BaseColorTexture assets.Handle[Image]
	NormalMapTexture assets.Handle[Image]

	AlphaMode AlphaMode

	// fragments with an alpha below the cutoff are discarded
	// if AlphaMode is AlphaModeMask
	AlphaCutoff float32

	PerceptualRoughness float32

	// ignore lighting
	Unlit bool
}

func DefaultStandardMaterial() StandardMaterial {
	return StandardMaterial{
		BaseColor:           ColorWhite,
		AlphaCutoff:         0.5,
		PerceptualRoughness: 0.5,
	}
}
