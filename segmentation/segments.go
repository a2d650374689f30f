package segmentation

import "image"

// Segments keeps track of the cells of the current partition as they are
// built. Regions is a slice of pixel lists, one per cell, and Indices maps
// each pixel to the cell it is part of.
type Segments struct {
	Regions [][]image.Point
	Indices map[image.Point]int
}

// NewSegments creates an empty partition.
func NewSegments() *Segments {
	return &Segments{
		Regions: make([][]image.Point, 0),
		Indices: make(map[image.Point]int),
	}
}

// N gives the number of cells in the partition.
func (s *Segments) N() int {
	return len(s.Regions)
}

// AssignPixel adds the pixel to the cell with the given index, growing the
// partition as needed.
func (s *Segments) AssignPixel(p image.Point, index int) {
	for index >= len(s.Regions) {
		s.Regions = append(s.Regions, nil)
	}
	s.Indices[p] = index
	s.Regions[index] = append(s.Regions[index], p)
}

// Region returns the pixel list of one cell.
func (s *Segments) Region(index int) []image.Point {
	return s.Regions[index]
}
