package fimage

import (
	"image"

	"github.com/pkg/errors"
)

// Image is a fixed extent grid of feature vectors with the same spatial
// extent as the input it was expanded from. It is built in full by Expand
// and read only afterwards, so concurrent readers are safe as long as the
// caller does not replace it while classification calls are in flight.
type Image struct {
	data          []Pixel
	width, height int
	maxValue      float64
}

// Expand converts every pixel of img into a six channel feature vector.
// maxValue is the maximum value one RGB channel can take (255 for 8 bit
// input); a non positive value is a configuration error since the derived
// channels would be undefined.
func Expand(img image.Image, maxValue float64) (*Image, error) {
	if maxValue <= 0 {
		return nil, errors.Errorf("max RGB value must be positive, got %v", maxValue)
	}

	bounds := img.Bounds()
	fi := &Image{
		data:     make([]Pixel, bounds.Dx()*bounds.Dy()),
		width:    bounds.Dx(),
		height:   bounds.Dy(),
		maxValue: maxValue,
	}

	// color.Color channels are 16 bit regardless of the source depth.
	scale := maxValue / 65535.0
	for y := 0; y < fi.height; y++ {
		for x := 0; x < fi.width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			fi.data[fi.kxy(x, y)] = NewPixel(
				float64(r)*scale, float64(g)*scale, float64(b)*scale, maxValue)
		}
	}
	return fi, nil
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

// In reports whether the point lies inside the image.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

func (i *Image) Width() int {
	return i.width
}

func (i *Image) Height() int {
	return i.height
}

func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// MaxValue returns the channel range the image was expanded with.
func (i *Image) MaxValue() float64 {
	return i.maxValue
}

func (i *Image) Get(p image.Point) Pixel {
	return i.data[i.kxy(p.X, p.Y)]
}

func (i *Image) GetXY(x, y int) Pixel {
	return i.data[i.kxy(x, y)]
}
