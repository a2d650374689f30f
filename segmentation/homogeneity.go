// Package segmentation segments a two dimensional color image into object
// and background regions. A Voronoi style partition of the image is refined
// iteratively; each candidate cell is accepted or rejected by a color
// homogeneity test against target object statistics.
package segmentation

import "image"

// A HomogeneityTester decides whether one candidate region belongs to the
// target object. Implementations exist per color model; the refinement
// driver depends only on this interface.
type HomogeneityTester interface {
	// TestHomogeneity reports whether the region covering the given pixel
	// locations is statistically homogeneous with the target object. An
	// empty region is never homogeneous. The call is a pure function of the
	// tester's current configuration; the region slice is not retained.
	TestHomogeneity(region []image.Point) bool
}
