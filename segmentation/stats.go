package segmentation

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/hybridvision/vorseg/fimage"
)

// All statistics in this package use the population convention (divide by
// N, no Bessel correction): target statistics estimated from a prior mask
// and region statistics compared against them must agree on it. A single
// pixel sample therefore has a standard deviation of zero.

// maskStatistics computes the per channel mean and standard deviation over
// the pixels the mask marks as object.
func maskStatistics(w *fimage.Image, mask *fimage.Mask) (mean, std [fimage.NumChannels]float64, err error) {
	var samples [fimage.NumChannels][]float64
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			if !mask.GetXY(x, y) {
				continue
			}
			p := w.GetXY(x, y)
			for ch := 0; ch < fimage.NumChannels; ch++ {
				samples[ch] = append(samples[ch], p.Channel(ch))
			}
		}
	}
	if len(samples[0]) == 0 {
		return mean, std, errors.New("prior mask selects no pixels, statistics undefined")
	}
	for ch := 0; ch < fimage.NumChannels; ch++ {
		mean[ch], std[ch] = stat.PopMeanStdDev(samples[ch], nil)
	}
	return mean, std, nil
}

// regionStatistics computes the mean and standard deviation of one channel
// over the given pixel locations.
func regionStatistics(w *fimage.Image, region []image.Point, ch int) (float64, float64) {
	vals := make([]float64, 0, len(region))
	for _, pt := range region {
		vals = append(vals, w.Get(pt).Channel(ch))
	}
	return stat.PopMeanStdDev(vals, nil)
}
