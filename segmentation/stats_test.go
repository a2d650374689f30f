package segmentation

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"

	"github.com/hybridvision/vorseg/fimage"
)

func TestMaskStatisticsPopulationConvention(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	img.Set(1, 0, color.RGBA{R: 20, G: 20, B: 20, A: 255})

	w, err := fimage.Expand(img, 255)
	test.That(t, err, test.ShouldBeNil)

	mask := fimage.NewMask(2, 1)
	mask.SetXY(0, 0, true)
	mask.SetXY(1, 0, true)

	mean, std, err := maskStatistics(w, mask)
	test.That(t, err, test.ShouldBeNil)
	// population std of {10, 20} is 5, not the sample value ~7.07
	test.That(t, mean[fimage.ChannelRed], test.ShouldAlmostEqual, 15, 1e-9)
	test.That(t, std[fimage.ChannelRed], test.ShouldAlmostEqual, 5, 1e-9)
	test.That(t, mean[fimage.ChannelValue], test.ShouldAlmostEqual, 15, 1e-9)
	test.That(t, std[fimage.ChannelHue], test.ShouldEqual, 0.0)
}

func TestMaskStatisticsEmptyMask(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	w, err := fimage.Expand(img, 255)
	test.That(t, err, test.ShouldBeNil)

	_, _, err = maskStatistics(w, fimage.NewMask(2, 2))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no pixels")
}

func TestRegionStatistics(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{R: 30, A: 255})
	img.Set(1, 0, color.RGBA{R: 60, A: 255})
	img.Set(2, 0, color.RGBA{R: 90, A: 255})

	w, err := fimage.Expand(img, 255)
	test.That(t, err, test.ShouldBeNil)

	region := []image.Point{{0, 0}, {1, 0}, {2, 0}}
	mean, std := regionStatistics(w, region, fimage.ChannelRed)
	test.That(t, mean, test.ShouldAlmostEqual, 60, 1e-9)
	test.That(t, std, test.ShouldAlmostEqual, 24.49489742783178, 1e-9)

	// a single pixel region has zero spread
	_, std = regionStatistics(w, region[:1], fimage.ChannelRed)
	test.That(t, std, test.ShouldEqual, 0.0)
}
