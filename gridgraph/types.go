package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrLabelsLength indicates a flat labeling whose length is not Width×Height.
	ErrLabelsLength = errors.New("gridgraph: labels length must equal width×height")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// GridGraph is the neighborhood structure of a Width×Height pixel lattice.
// Cells are numbered row-major: index = y*Width + x. It is immutable once built.
type GridGraph struct {
	Width, Height   int
	Conn            Connectivity
	neighborOffsets [][2]int
}
