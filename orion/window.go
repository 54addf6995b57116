package orion

// PrimaryWindow describes the window the app renders into. Width
// and Height are updated whenever the surface is resized.
type PrimaryWindow struct {
	Title  string
	Width  uint32
	Height uint32
}

// Scale returns the smaller of the two window dimensions, or
// zero if no size is known yet.
func (w PrimaryWindow) Scale() float32 {
	return float32(min(w.Width, w.Height))
}
