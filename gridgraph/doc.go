// Package gridgraph is the lattice underneath pixel-labeling models.
//
// What:
//
//   - GridGraph numbers the cells of a Width×Height grid row-major, the same
//     order used by flat labelings of grid models.
//   - Edges lists every neighbor pair once; Blocks lists every 2×2 window.
//     Together they are the cliques of denoising and segmentation energies.
//   - Segments groups cells of equal label into connected regions.
//   - Rows reshapes a flat labeling for display.
//
// Complexity:
//
//   - Edges, Segments: O(W×H×d), Memory: O(W×H)    (d = number of neighbors, 4 or 8).
//   - Blocks, Rows:    O(W×H).
//
// Options:
//
//   - Conn4 (4-neighbors) or Conn8 (8-neighbors).
//
// Errors:
//
//   - ErrEmptyGrid: zero rows or zero columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrLabelsLength: flat labeling of the wrong size.
package gridgraph
