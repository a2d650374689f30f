// Package fimage provides the six channel feature image used for color
// homogeneity testing: the original R, G, B channels of each pixel plus
// derived hue, chroma and value channels.
package fimage

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel indices into a Pixel, fixed order.
const (
	ChannelRed = iota
	ChannelGreen
	ChannelBlue
	ChannelHue
	ChannelChroma
	ChannelValue

	// NumChannels is the length of the feature vector.
	NumChannels = 6
)

// Pixel is one six channel feature vector. R, G and B are the original
// channels in [0, maxValue]. The derived channels are
//
//	V = max(R, G, B)
//	C = max(R, G, B) - min(R, G, B)
//	H = hue in degrees * maxValue / 360
//
// so every channel shares the [0, maxValue] range. An achromatic pixel
// (C == 0) has H = 0.
type Pixel struct {
	R, G, B float64
	H, C, V float64
}

// NewPixel derives the hue, chroma and value channels for an RGB triple
// whose components lie in [0, maxValue]. maxValue must be positive; Expand
// validates it once per image.
func NewPixel(r, g, b, maxValue float64) Pixel {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))

	cc := colorful.Color{R: r / maxValue, G: g / maxValue, B: b / maxValue}
	hue, _, _ := cc.Hsv() // 0 for achromatic input

	return Pixel{
		R: r,
		G: g,
		B: b,
		H: hue * maxValue / 360.0,
		C: maxC - minC,
		V: maxC,
	}
}

// Channel returns the feature value at the given channel index.
func (p Pixel) Channel(i int) float64 {
	switch i {
	case ChannelRed:
		return p.R
	case ChannelGreen:
		return p.G
	case ChannelBlue:
		return p.B
	case ChannelHue:
		return p.H
	case ChannelChroma:
		return p.C
	case ChannelValue:
		return p.V
	}
	panic(fmt.Errorf("invalid channel index %d", i))
}
