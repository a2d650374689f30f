package segmentation

import (
	"image"
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/hybridvision/vorseg/fimage"
)

// DefaultMaxValueOfRGB assumes 8 bit input channels.
const DefaultMaxValueOfRGB = 255.0

// RGBHCVClassifier tests candidate regions for homogeneity in the six
// channel RGBHCV feature space. The target object is described by a per
// channel mean and standard deviation, either set directly or estimated
// from a prior mask; percent error parameters turn those statistics into
// absolute tolerance bands. Three of the six channels are tested for mean
// homogeneity and three for variance homogeneity.
//
// Configuration is expected to happen in a single threaded phase; once
// configured, TestHomogeneity may be called concurrently for different
// regions.
type RGBHCVClassifier struct {
	logger golog.Logger

	input   image.Image
	working *fimage.Image

	maxValueOfRGB float64

	mean [fimage.NumChannels]float64
	// std holds the standard deviation of the object, not the variance.
	std [fimage.NumChannels]float64

	meanPercentError [fimage.NumChannels]float64
	varPercentError  [fimage.NumChannels]float64

	meanTolerance [fimage.NumChannels]float64
	varTolerance  [fimage.NumChannels]float64

	testMean [3]int
	testVar  [3]int
}

// NewRGBHCVClassifier creates a classifier with 8 bit channel range,
// percent errors of 0.10 on every channel, the mean test on R, G, B and the
// variance test on H, C, V.
func NewRGBHCVClassifier(logger golog.Logger) *RGBHCVClassifier {
	c := &RGBHCVClassifier{
		logger:        logger,
		maxValueOfRGB: DefaultMaxValueOfRGB,
		testMean:      [3]int{fimage.ChannelRed, fimage.ChannelGreen, fimage.ChannelBlue},
		testVar:       [3]int{fimage.ChannelHue, fimage.ChannelChroma, fimage.ChannelValue},
	}
	for i := 0; i < fimage.NumChannels; i++ {
		c.meanPercentError[i] = 0.10
		c.varPercentError[i] = 0.10
	}
	return c
}

// SetInput expands img into the six channel working image, replacing any
// previous working image in full.
func (c *RGBHCVClassifier) SetInput(img image.Image) error {
	w, err := fimage.Expand(img, c.maxValueOfRGB)
	if err != nil {
		return err
	}
	c.input = img
	c.working = w
	return nil
}

// Input returns the image last passed to SetInput.
func (c *RGBHCVClassifier) Input() image.Image {
	return c.input
}

// WorkingImage returns the current six channel working image, or nil before
// SetInput.
func (c *RGBHCVClassifier) WorkingImage() *fimage.Image {
	return c.working
}

// SetMaxValueOfRGB sets the maximum value an input channel can take and
// rebuilds the working image if an input is held. It must be positive.
func (c *RGBHCVClassifier) SetMaxValueOfRGB(v float64) error {
	if v <= 0 {
		return errors.Errorf("max RGB value must be positive, got %v", v)
	}
	c.maxValueOfRGB = v
	if c.input != nil {
		w, err := fimage.Expand(c.input, v)
		if err != nil {
			return err
		}
		c.working = w
	}
	return nil
}

func (c *RGBHCVClassifier) MaxValueOfRGB() float64 {
	return c.maxValueOfRGB
}

// SetMeanPercentError sets the fractional tolerance multipliers for the
// mean test. Negative entries are clamped to zero (demanding an exact
// match) with a logged warning. Values above 1 are allowed and simply widen
// the band.
func (c *RGBHCVClassifier) SetMeanPercentError(pe [fimage.NumChannels]float64) {
	c.meanPercentError = clampPercentError(pe, "mean", c.logger)
	c.recomputeTolerances()
}

// SetVarPercentError sets the fractional tolerance multipliers for the
// variance test, with the same clamping policy as SetMeanPercentError.
func (c *RGBHCVClassifier) SetVarPercentError(pe [fimage.NumChannels]float64) {
	c.varPercentError = clampPercentError(pe, "variance", c.logger)
	c.recomputeTolerances()
}

func (c *RGBHCVClassifier) MeanPercentError() [fimage.NumChannels]float64 {
	return c.meanPercentError
}

func (c *RGBHCVClassifier) VarPercentError() [fimage.NumChannels]float64 {
	return c.varPercentError
}

// SetMean sets the target object mean per channel directly.
func (c *RGBHCVClassifier) SetMean(mean [fimage.NumChannels]float64) {
	c.mean = mean
	c.recomputeTolerances()
}

// SetVar sets the target object standard deviation per channel directly.
func (c *RGBHCVClassifier) SetVar(std [fimage.NumChannels]float64) {
	c.std = std
	c.recomputeTolerances()
}

func (c *RGBHCVClassifier) Mean() [fimage.NumChannels]float64 {
	return c.mean
}

func (c *RGBHCVClassifier) Var() [fimage.NumChannels]float64 {
	return c.std
}

func (c *RGBHCVClassifier) MeanTolerance() [fimage.NumChannels]float64 {
	return c.meanTolerance
}

func (c *RGBHCVClassifier) VarTolerance() [fimage.NumChannels]float64 {
	return c.varTolerance
}

// SetTestMean selects the three channels used by the mean test. Duplicate
// indices are allowed and make that channel count twice toward the
// decision.
func (c *RGBHCVClassifier) SetTestMean(t1, t2, t3 int) error {
	sel, err := channelSelection(t1, t2, t3)
	if err != nil {
		return err
	}
	c.testMean = sel
	return nil
}

// SetTestVar selects the three channels used by the variance test.
func (c *RGBHCVClassifier) SetTestVar(t1, t2, t3 int) error {
	sel, err := channelSelection(t1, t2, t3)
	if err != nil {
		return err
	}
	c.testVar = sel
	return nil
}

func (c *RGBHCVClassifier) TestMean() [3]int {
	return c.testMean
}

func (c *RGBHCVClassifier) TestVar() [3]int {
	return c.testVar
}

// TakeAPrior estimates the target statistics from a binary mask of known
// object pixels, overwriting any statistics set directly. SetInput must
// have been called first, and the mask extent must match the working image.
func (c *RGBHCVClassifier) TakeAPrior(mask *fimage.Mask) error {
	if c.working == nil {
		return errors.New("no working image: call SetInput before TakeAPrior")
	}
	if mask == nil {
		return errors.New("prior mask is nil")
	}
	if mask.Width() != c.working.Width() || mask.Height() != c.working.Height() {
		return errors.Errorf("prior mask extent %dx%d does not match image %dx%d",
			mask.Width(), mask.Height(), c.working.Width(), c.working.Height())
	}
	mean, std, err := maskStatistics(c.working, mask)
	if err != nil {
		return err
	}
	c.mean = mean
	c.std = std
	c.recomputeTolerances()
	return nil
}

// TestHomogeneity implements HomogeneityTester. The region is accepted only
// if, for every selected mean channel, the region mean lies within the mean
// tolerance band around the target mean, and for every selected variance
// channel the region standard deviation lies within the variance tolerance
// band. A single failing channel rejects the region.
func (c *RGBHCVClassifier) TestHomogeneity(region []image.Point) bool {
	if c.working == nil || len(region) == 0 {
		return false
	}
	for _, ch := range c.testMean {
		m, _ := regionStatistics(c.working, region, ch)
		if math.Abs(m-c.mean[ch]) > c.meanTolerance[ch] {
			return false
		}
	}
	for _, ch := range c.testVar {
		_, s := regionStatistics(c.working, region, ch)
		if math.Abs(s-c.std[ch]) > c.varTolerance[ch] {
			return false
		}
	}
	return true
}

// recomputeTolerances rebuilds both tolerance bands. Called on every
// statistics or percent error mutation so classification never sees a
// partially updated configuration.
func (c *RGBHCVClassifier) recomputeTolerances() {
	for i := 0; i < fimage.NumChannels; i++ {
		c.meanTolerance[i] = math.Abs(c.mean[i] * c.meanPercentError[i])
		c.varTolerance[i] = math.Abs(c.std[i] * c.varPercentError[i])
	}
}

func clampPercentError(pe [fimage.NumChannels]float64, which string, logger golog.Logger) [fimage.NumChannels]float64 {
	for i, v := range pe {
		if v < 0 {
			if logger != nil {
				logger.Warnf("negative %s percent error %v on channel %d clamped to 0", which, v, i)
			}
			pe[i] = 0
		}
	}
	return pe
}

func channelSelection(t1, t2, t3 int) ([3]int, error) {
	sel := [3]int{t1, t2, t3}
	for _, idx := range sel {
		if idx < 0 || idx >= fimage.NumChannels {
			return sel, errors.Errorf("channel index %d out of range [0,%d]", idx, fimage.NumChannels-1)
		}
	}
	return sel, nil
}
