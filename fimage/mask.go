package fimage

import (
	"image"
	"image/color"
)

// Mask is a binary object mask with the same extent as the image it
// annotates. On pixels mark "object".
type Mask struct {
	data          []bool
	width, height int
}

// NewMask creates an all off mask of the given extent.
func NewMask(width, height int) *Mask {
	return &Mask{
		data:   make([]bool, width*height),
		width:  width,
		height: height,
	}
}

// NewMaskFromImage thresholds img on luminance: pixels at or above
// threshold (8 bit scale) are on. Useful for loading a prior mask from a
// grayscale file.
func NewMaskFromImage(img image.Image, threshold float64) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 256.0
			if lum >= threshold {
				m.data[m.kxy(x, y)] = true
			}
		}
	}
	return m
}

func (m *Mask) kxy(x, y int) int {
	return (y * m.width) + x
}

func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Mask) Width() int {
	return m.width
}

func (m *Mask) Height() int {
	return m.height
}

func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

func (m *Mask) Get(p image.Point) bool {
	return m.data[m.kxy(p.X, p.Y)]
}

func (m *Mask) GetXY(x, y int) bool {
	return m.data[m.kxy(x, y)]
}

func (m *Mask) Set(p image.Point, on bool) {
	m.data[m.kxy(p.X, p.Y)] = on
}

func (m *Mask) SetXY(x, y int, on bool) {
	m.data[m.kxy(x, y)] = on
}

// CountOn returns the number of on pixels.
func (m *Mask) CountOn() int {
	n := 0
	for _, on := range m.data {
		if on {
			n++
		}
	}
	return n
}

// Image renders the mask as a grayscale image, white for on pixels.
func (m *Mask) Image() *image.Gray {
	out := image.NewGray(m.Bounds())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.data[m.kxy(x, y)] {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
