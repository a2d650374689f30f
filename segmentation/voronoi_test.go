package segmentation

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/hybridvision/vorseg/fimage"
)

// halfAndHalf builds an image whose left half is the object color and whose
// right half is background.
func halfAndHalf(size int, obj, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < size/2 {
				img.Set(x, y, obj)
			} else {
				img.Set(x, y, bg)
			}
		}
	}
	return img
}

func TestConfigValidate(t *testing.T) {
	test.That(t, DefaultConfig().Validate(), test.ShouldBeNil)

	err := Config{}.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "NumberOfSeeds")
	test.That(t, err.Error(), test.ShouldContainSubstring, "Steps")

	err = Config{NumberOfSeeds: 10, Steps: 2, MinRegionSize: 5, SeedsPerSplit: 0}.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "SeedsPerSplit")
}

func TestSegmentErrors(t *testing.T) {
	logger := golog.NewTestLogger(t)
	c := NewRGBHCVClassifier(logger)

	_, err := Segment(context.Background(), nil, c, DefaultConfig(), logger)
	test.That(t, err, test.ShouldNotBeNil)

	w, err := fimage.Expand(image.NewRGBA(image.Rect(0, 0, 4, 4)), 255)
	test.That(t, err, test.ShouldBeNil)

	_, err = Segment(context.Background(), w, c, Config{}, logger)
	test.That(t, err, test.ShouldNotBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Segment(ctx, w, c, DefaultConfig(), logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSegmentFindsColoredObject(t *testing.T) {
	logger := golog.NewTestLogger(t)
	size := 64
	img := halfAndHalf(size,
		color.RGBA{R: 200, G: 30, B: 30, A: 255},
		color.RGBA{R: 30, G: 30, B: 200, A: 255})

	c := NewRGBHCVClassifier(logger)
	test.That(t, c.SetInput(img), test.ShouldBeNil)

	prior := fimage.NewMask(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size/2; x++ {
			prior.SetXY(x, y, true)
		}
	}
	test.That(t, c.TakeAPrior(prior), test.ShouldBeNil)

	cfg := Config{
		NumberOfSeeds: 150,
		Steps:         3,
		MinRegionSize: 10,
		SeedsPerSplit: 2,
		RandSeed:      99,
	}
	res, err := Segment(context.Background(), c.WorkingImage(), c, cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Iterations, test.ShouldBeLessThanOrEqualTo, cfg.Steps)
	test.That(t, res.AcceptedCount(), test.ShouldBeGreaterThan, 0)

	// The object is uniformly colored, so accepted cells are exactly the
	// cells lying fully inside the left half: every object pixel must be on
	// the object side, and a good share of the object must be recovered.
	on := res.ObjectMask.CountOn()
	test.That(t, on, test.ShouldBeGreaterThan, 500)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if res.ObjectMask.GetXY(x, y) {
				test.That(t, x, test.ShouldBeLessThan, size/2)
			}
		}
	}
}

func TestSegmentsBookkeeping(t *testing.T) {
	s := NewSegments()
	test.That(t, s.N(), test.ShouldEqual, 0)

	s.AssignPixel(image.Point{0, 0}, 2)
	test.That(t, s.N(), test.ShouldEqual, 3)
	s.AssignPixel(image.Point{1, 0}, 2)
	s.AssignPixel(image.Point{2, 0}, 0)

	test.That(t, s.Region(2), test.ShouldHaveLength, 2)
	test.That(t, s.Region(0), test.ShouldHaveLength, 1)
	test.That(t, s.Region(1), test.ShouldHaveLength, 0)
	test.That(t, s.Indices[image.Point{1, 0}], test.ShouldEqual, 2)
}
