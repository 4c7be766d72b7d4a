package gridgraph

// Segments finds all connected regions of equal label, according to gg.Conn
// connectivity. labels is a flat row-major labeling of the grid.
// Returns the segments in order of their first cell; each segment lists its
// cell indices in BFS order. Returns ErrLabelsLength for a wrong-size input.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) Segments(labels []int) ([][]int, error) {
	total := gg.Size()
	if len(labels) != total {
		return nil, ErrLabelsLength
	}
	seen := make([]bool, total)
	var comps [][]int

	for i0 := 0; i0 < total; i0++ {
		if seen[i0] {
			continue
		}
		want := labels[i0]
		// BFS to collect the segment
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			ux, uy := gg.Coordinate(queue[qi])
			for _, d := range gg.neighborOffsets {
				vx, vy := ux+d[0], uy+d[1]
				if !gg.InBounds(vx, vy) {
					continue
				}
				vi := gg.Index(vx, vy)
				if !seen[vi] && labels[vi] == want {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps, nil
}
