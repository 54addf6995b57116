package scene

import "github.com/oliverbestmann/dodgeball/glm"

// Color is a straight rgba color in linear rgb space
type Color = glm.Vec4f

var ColorWhite = Color{1, 1, 1, 1}
var ColorBlack = Color{0, 0, 0, 1}

func ColorRGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

func ColorRGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}
