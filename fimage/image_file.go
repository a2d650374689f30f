package fimage

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

// NewImageFromFile loads a color image from a PNG, JPEG or TIFF file.
func NewImageFromFile(fn string) (image.Image, error) {
	if isTiff(fn) {
		f, err := os.Open(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, err := tiff.Decode(f)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot decode tiff %s", fn)
		}
		return img, nil
	}
	return imaging.Open(fn)
}

// WriteImageToFile writes img to fn; the format is chosen from the
// extension.
func WriteImageToFile(fn string, img image.Image) error {
	if isTiff(fn) {
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()
		return tiff.Encode(f, img, nil)
	}
	return imaging.Save(img, fn)
}

func isTiff(fn string) bool {
	ext := strings.ToLower(filepath.Ext(fn))
	return ext == ".tif" || ext == ".tiff"
}
