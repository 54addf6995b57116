package scene

// Illuminance of full daylight in lux
const AmbientDaylight float32 = 10_000

// DirectionalLight shines into the Forward direction of
// its entities Transform, like the sun.
type DirectionalLight struct {
	Color          Color
	Illuminance    float32
	ShadowsEnabled bool
}

func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{
		Color:       ColorWhite,
		Illuminance: AmbientDaylight,
	}
}
