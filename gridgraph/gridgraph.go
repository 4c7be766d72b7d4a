package gridgraph

// New returns the lattice of a width×height grid.
// Returns ErrEmptyGrid if either dimension is < 1.
// Complexity: O(1).
func New(width, height int, conn Connectivity) (*GridGraph, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyGrid
	}
	var offsets [][2]int
	if conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &GridGraph{Width: width, Height: height, Conn: conn, neighborOffsets: offsets}, nil
}

// FromRows builds the lattice of a non-empty, rectangular 2D slice and
// returns its values flattened in row-major order.
// Returns ErrEmptyGrid or ErrNonRectangular.
// Complexity: O(W×H) time and memory.
func FromRows(values [][]int, conn Connectivity) (*GridGraph, []int, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	flat := make([]int, 0, w*h)
	for _, row := range values {
		if len(row) != w {
			return nil, nil, ErrNonRectangular
		}
		flat = append(flat, row...)
	}
	gg, err := New(w, h, conn)
	if err != nil {
		return nil, nil, err
	}

	return gg, flat, nil
}

// Size returns Width×Height.
func (gg *GridGraph) Size() int { return gg.Width * gg.Height }

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// NeighborOffsets returns the neighbor offsets of gg.Conn.
// Complexity: O(1).
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// Index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) Index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}

// Edges returns every neighbor pair once, as (lower index, higher index),
// in row-major order of the lower cell.
// Complexity: O(W×H×d).
func (gg *GridGraph) Edges() [][2]int {
	var out [][2]int
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			u := gg.Index(x, y)
			for _, d := range gg.neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if !gg.InBounds(nx, ny) {
					continue
				}
				if v := gg.Index(nx, ny); v > u {
					out = append(out, [2]int{u, v})
				}
			}
		}
	}

	return out
}

// Blocks returns every 2×2 window as [top-left, top-right, bottom-left,
// bottom-right] cell indices, row-major by top-left corner.
// Complexity: O(W×H).
func (gg *GridGraph) Blocks() [][4]int {
	var out [][4]int
	for y := 0; y+1 < gg.Height; y++ {
		for x := 0; x+1 < gg.Width; x++ {
			i := gg.Index(x, y)
			out = append(out, [4]int{i, i + 1, i + gg.Width, i + gg.Width + 1})
		}
	}

	return out
}

// Rows reshapes a flat labeling into Height rows of Width cells.
// Returns ErrLabelsLength for a labeling of the wrong size.
// Complexity: O(W×H).
func (gg *GridGraph) Rows(labels []int) ([][]int, error) {
	if len(labels) != gg.Size() {
		return nil, ErrLabelsLength
	}
	out := make([][]int, gg.Height)
	for y := range out {
		out[y] = append([]int(nil), labels[y*gg.Width:(y+1)*gg.Width]...)
	}

	return out, nil
}
