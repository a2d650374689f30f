// Command vorseg segments a color image into object and background using
// Voronoi refinement with an RGBHCV homogeneity classifier. Target
// statistics come from a prior mask image (white marks known object
// pixels).
package main

import (
	"context"
	"flag"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/hybridvision/vorseg/fimage"
	"github.com/hybridvision/vorseg/segmentation"
)

var logger = golog.NewDevelopmentLogger("vorseg")

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		logger.Fatal(err)
	}
}

func realMain(args []string) error {
	flags := flag.NewFlagSet("vorseg", flag.ContinueOnError)

	in := flags.String("in", "", "input color image (png, jpeg or tiff)")
	prior := flags.String("prior", "", "prior mask image, white marks object pixels")
	out := flags.String("out", "", "output object mask file")
	overlayOut := flags.String("overlay", "", "optional overlay image file")
	labelsOut := flags.String("labels", "", "optional cell label image file")

	maxRGB := flags.Float64("maxrgb", segmentation.DefaultMaxValueOfRGB, "maximum value of one RGB channel")
	meanErr := flags.String("meanerr", "0.1", "mean percent errors, one value or six comma separated")
	varErr := flags.String("varerr", "0.1", "variance percent errors, one value or six comma separated")
	testMean := flags.String("testmean", "0,1,2", "three channel indices for the mean test")
	testVar := flags.String("testvar", "3,4,5", "three channel indices for the variance test")

	seeds := flags.Int("seeds", 200, "initial number of Voronoi seeds")
	steps := flags.Int("steps", 6, "maximum refinement rounds")
	minRegion := flags.Int("minregion", 20, "cells smaller than this are not subdivided")
	seedsPerSplit := flags.Int("seedspersplit", 4, "seeds added per rejected cell per round")
	randSeed := flags.Int64("randseed", 0, "random seed, 0 for time based")
	overlayColor := flags.String("overlaycolor", "#ff0000", "overlay color as hex")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *in == "" || *prior == "" || *out == "" {
		return errors.New("need -in, -prior and -out")
	}

	img, err := fimage.NewImageFromFile(*in)
	if err != nil {
		return err
	}
	priorImg, err := fimage.NewImageFromFile(*prior)
	if err != nil {
		return err
	}

	classifier := segmentation.NewRGBHCVClassifier(logger)
	if err := classifier.SetMaxValueOfRGB(*maxRGB); err != nil {
		return err
	}
	if err := classifier.SetInput(img); err != nil {
		return err
	}

	pe, err := parseSix(*meanErr)
	if err != nil {
		return errors.Wrap(err, "bad -meanerr")
	}
	classifier.SetMeanPercentError(pe)
	pe, err = parseSix(*varErr)
	if err != nil {
		return errors.Wrap(err, "bad -varerr")
	}
	classifier.SetVarPercentError(pe)

	tm, err := parseTriple(*testMean)
	if err != nil {
		return errors.Wrap(err, "bad -testmean")
	}
	if err := classifier.SetTestMean(tm[0], tm[1], tm[2]); err != nil {
		return err
	}
	tv, err := parseTriple(*testVar)
	if err != nil {
		return errors.Wrap(err, "bad -testvar")
	}
	if err := classifier.SetTestVar(tv[0], tv[1], tv[2]); err != nil {
		return err
	}

	mask := fimage.NewMaskFromImage(priorImg, 128)
	if err := classifier.TakeAPrior(mask); err != nil {
		return err
	}
	logger.Infof("prior mask: %d object pixels, mean %v", mask.CountOn(), classifier.Mean())

	cfg := segmentation.Config{
		NumberOfSeeds: *seeds,
		Steps:         *steps,
		MinRegionSize: *minRegion,
		SeedsPerSplit: *seedsPerSplit,
		RandSeed:      *randSeed,
	}
	res, err := segmentation.Segment(context.Background(), classifier.WorkingImage(), classifier, cfg, logger)
	if err != nil {
		return err
	}
	logger.Infof("segmented in %d rounds: %d/%d cells accepted, %d object pixels",
		res.Iterations, res.AcceptedCount(), res.Cells.N(), res.ObjectMask.CountOn())

	if err := fimage.WriteImageToFile(*out, res.ObjectMask.Image()); err != nil {
		return err
	}
	if *overlayOut != "" {
		oc, err := colorful.Hex(*overlayColor)
		if err != nil {
			return errors.Wrap(err, "bad -overlaycolor")
		}
		r, g, b := oc.RGB255()
		over := segmentation.Overlay(img, res, color.RGBA{R: r, G: g, B: b, A: 255})
		if err := fimage.WriteImageToFile(*overlayOut, over); err != nil {
			return err
		}
	}
	if *labelsOut != "" {
		if err := fimage.WriteImageToFile(*labelsOut, segmentation.LabelImage(res)); err != nil {
			return err
		}
	}
	return nil
}

// parseSix reads one float (broadcast to all six channels) or six comma
// separated floats.
func parseSix(s string) ([fimage.NumChannels]float64, error) {
	var out [fimage.NumChannels]float64
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return out, err
		}
		for i := range out {
			out[i] = v
		}
	case fimage.NumChannels:
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return out, err
			}
			out[i] = v
		}
	default:
		return out, errors.Errorf("need 1 or %d values, got %d", fimage.NumChannels, len(parts))
	}
	return out, nil
}

func parseTriple(s string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, errors.Errorf("need 3 channel indices, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
