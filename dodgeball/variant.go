package dodgeball

//go:generate go tool stringer -type=Variant -trimprefix=Variant
type Variant uint8

const (
	// VariantDebug spawns a fly camera, a grid and a light
	VariantDebug Variant = iota

	// VariantDemo additionally spawns a textured floor
	VariantDemo
)
