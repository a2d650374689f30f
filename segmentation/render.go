package segmentation

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Overlay draws the object mask of a result over the source image.
func Overlay(src image.Image, res *Result, c color.Color) image.Image {
	dc := gg.NewContextForImage(src)
	dc.SetColor(c)
	min := src.Bounds().Min
	for y := 0; y < res.ObjectMask.Height(); y++ {
		for x := 0; x < res.ObjectMask.Width(); x++ {
			if !res.ObjectMask.GetXY(x, y) {
				continue
			}
			dc.DrawCircle(float64(min.X+x), float64(min.Y+y), 1)
			dc.Fill()
		}
	}
	return dc.Image()
}

// LabelImage renders the final partition with one color per accepted cell;
// rejected cells stay black.
func LabelImage(res *Result) image.Image {
	out := image.NewRGBA(res.ObjectMask.Bounds())
	palette := colorful.FastHappyPalette(res.Cells.N())
	for i, ok := range res.Accepted {
		if !ok {
			continue
		}
		r, g, b := palette[i].RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		for _, p := range res.Cells.Region(i) {
			out.Set(p.X, p.Y, c)
		}
	}
	return out
}
