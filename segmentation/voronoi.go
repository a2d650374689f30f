package segmentation

import (
	"context"
	"image"
	"math/rand"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/hybridvision/vorseg/fimage"
)

// Config controls the Voronoi refinement driver.
type Config struct {
	// NumberOfSeeds is the initial seed count scattered over the image.
	NumberOfSeeds int
	// Steps bounds the number of subdivision rounds.
	Steps int
	// MinRegionSize is the pixel count under which a rejected cell is no
	// longer subdivided.
	MinRegionSize int
	// SeedsPerSplit is how many new seeds are scattered into each rejected
	// cell per round.
	SeedsPerSplit int
	// RandSeed makes a run reproducible; 0 means time based.
	RandSeed int64
}

// DefaultConfig returns driver parameters that work for images around VGA
// size.
func DefaultConfig() Config {
	return Config{
		NumberOfSeeds: 200,
		Steps:         6,
		MinRegionSize: 20,
		SeedsPerSplit: 4,
	}
}

// Validate checks the config, reporting every bad field.
func (cfg Config) Validate() error {
	var err error
	if cfg.NumberOfSeeds <= 0 {
		err = multierr.Append(err, errors.New("NumberOfSeeds must be positive"))
	}
	if cfg.Steps <= 0 {
		err = multierr.Append(err, errors.New("Steps must be positive"))
	}
	if cfg.MinRegionSize < 1 {
		err = multierr.Append(err, errors.New("MinRegionSize must be at least 1"))
	}
	if cfg.SeedsPerSplit <= 0 {
		err = multierr.Append(err, errors.New("SeedsPerSplit must be positive"))
	}
	return err
}

// Result is the outcome of one segmentation run.
type Result struct {
	// ObjectMask marks the pixels of every accepted cell.
	ObjectMask *fimage.Mask
	// Cells is the final partition.
	Cells *Segments
	// Accepted holds the verdict for each cell in Cells.
	Accepted []bool
	// Iterations is the number of refinement rounds actually run.
	Iterations int
}

// AcceptedCount returns how many cells were accepted.
func (r *Result) AcceptedCount() int {
	n := 0
	for _, ok := range r.Accepted {
		if ok {
			n++
		}
	}
	return n
}

// Segment partitions the working image into nearest seed cells, classifies
// every cell with the tester, and scatters new seeds into rejected cells so
// the partition tightens around the object boundary. It stops after
// cfg.Steps rounds or as soon as a round adds no seeds.
//
// The tester's configuration must not be mutated while Segment runs.
func Segment(ctx context.Context, working *fimage.Image, tester HomogeneityTester, cfg Config, logger golog.Logger) (*Result, error) {
	if working == nil {
		return nil, errors.New("no working image to segment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	randSeed := cfg.RandSeed
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(randSeed))

	width := float64(working.Width())
	height := float64(working.Height())
	seeds := make([]r2.Point, 0, cfg.NumberOfSeeds)
	for i := 0; i < cfg.NumberOfSeeds; i++ {
		seeds = append(seeds, r2.Point{X: rnd.Float64() * width, Y: rnd.Float64() * height})
	}

	var cells *Segments
	var accepted []bool
	iterations := 0

	for step := 0; step < cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations = step + 1

		cells = partition(working, seeds)

		accepted = make([]bool, cells.N())
		added := 0
		for i := 0; i < cells.N(); i++ {
			region := cells.Region(i)
			accepted[i] = tester.TestHomogeneity(region)
			if accepted[i] || len(region) < cfg.MinRegionSize {
				continue
			}
			// Rejected cells straddle the object boundary (or are pure
			// background); tightening them needs more seeds inside the cell.
			for s := 0; s < cfg.SeedsPerSplit; s++ {
				p := region[rnd.Intn(len(region))]
				seeds = append(seeds, r2.Point{
					X: float64(p.X) + rnd.Float64(),
					Y: float64(p.Y) + rnd.Float64(),
				})
				added++
			}
		}

		if logger != nil {
			logger.Debugf("step %d: %d cells, %d accepted, %d seeds added",
				step, cells.N(), countTrue(accepted), added)
		}
		if added == 0 {
			break
		}
	}

	mask := fimage.NewMask(working.Width(), working.Height())
	for i, ok := range accepted {
		if !ok {
			continue
		}
		for _, p := range cells.Region(i) {
			mask.Set(p, true)
		}
	}

	return &Result{
		ObjectMask: mask,
		Cells:      cells,
		Accepted:   accepted,
		Iterations: iterations,
	}, nil
}

// partition assigns every pixel to its nearest seed. This is the naive
// O(pixels * seeds) scan; fine for the image and seed counts this driver is
// used with.
func partition(working *fimage.Image, seeds []r2.Point) *Segments {
	cells := NewSegments()
	for y := 0; y < working.Height(); y++ {
		for x := 0; x < working.Width(); x++ {
			p := r2.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			best := 0
			bestDist := squaredDistance(p, seeds[0])
			for i := 1; i < len(seeds); i++ {
				if d := squaredDistance(p, seeds[i]); d < bestDist {
					best = i
					bestDist = d
				}
			}
			cells.AssignPixel(image.Point{X: x, Y: y}, best)
		}
	}
	return cells
}

func squaredDistance(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
