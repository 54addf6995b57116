package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
)

type AddressMode uint8

const (
	AddressModeClampToEdge AddressMode = iota
	AddressModeRepeat
	AddressModeMirrorRepeat
)

type FilterMode uint8

const (
	FilterModeLinear FilterMode = iota
	FilterModeNearest
)

// ImageSampler describes how an Image is sampled. The zero value
// clamps to the edge and filters linearly.
type ImageSampler struct {
	AddressModeU AddressMode
	AddressModeV AddressMode
	AddressModeW AddressMode

	MagFilter    FilterMode
	MinFilter    FilterMode
	MipmapFilter FilterMode
}

// IsRepeating returns true, if the sampler repeats on all three axes
func (s ImageSampler) IsRepeating() bool {
	return s.AddressModeU == AddressModeRepeat &&
		s.AddressModeV == AddressModeRepeat &&
		s.AddressModeW == AddressModeRepeat
}

// Image holds pixels in non-premultiplied RGBA8 format
type Image struct {
	Width  uint32
	Height uint32
	Pixels []byte

	Sampler ImageSampler
}

// NewImage creates an image with the given size. All pixels are set to color.
func NewImage(width, height uint32, color Color) Image {
	pixel := [4]byte{
		toByte(color[0]),
		toByte(color[1]),
		toByte(color[2]),
		toByte(color[3]),
	}

	pixels := make([]byte, 0, int(width*height)*4)
	for range width * height {
		pixels = append(pixels, pixel[:]...)
	}

	return Image{Width: width, Height: height, Pixels: pixels}
}

// ImageFromRGBA copies the pixels of the given image
func ImageFromRGBA(img image.Image) Image {
	bounds := img.Bounds()

	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)

	return Image{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Pixels: rgba.Pix,
	}
}

// LoadImage decodes a png or jpeg encoded image. It is
// usable as a loader for the asset server.
func LoadImage(buf []byte, path string) (Image, error) {
	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return Image{}, fmt.Errorf("decode image %q: %w", path, err)
	}

	return ImageFromRGBA(img), nil
}

// ImageExtensions lists the file extensions LoadImage understands
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

func toByte(value float32) byte {
	return byte(max(0, min(1, value))*255 + 0.5)
}
