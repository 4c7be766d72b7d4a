package gridgraph_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/katalvlaran/lvfusion/gridgraph"
)

// TestSegments_Simple4 tests Segments on a 4×3 labeling with orthogonal connectivity.
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// Expected segments (Conn4): {0}, the 1-region of size 4, the 0-region of
// size 3 on the right, the 0-pair bottom-left, the 1-pair bottom-right.
func TestSegments_Simple4(t *testing.T) {
	gg, labels, err := gridgraph.FromRows([][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}, gridgraph.Conn4)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}

	segs, err := gg.Segments(labels)
	if err != nil {
		t.Fatalf("Segments failed: %v", err)
	}
	sizes := make([]int, len(segs))
	for i, s := range segs {
		sizes[i] = len(s)
	}
	sort.Ints(sizes)
	if want := []int{1, 2, 2, 3, 4}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("segment sizes = %v; want %v", sizes, want)
	}
	// Segments are ordered by their first cell.
	if segs[0][0] != 0 || segs[1][0] != 1 {
		t.Errorf("segment order = %v", segs)
	}
}

// TestSegments_Diagonal8 checks that corner-touching cells join under Conn8 only.
func TestSegments_Diagonal8(t *testing.T) {
	rows := [][]int{
		{1, 0},
		{0, 1},
	}
	gg4, labels, _ := gridgraph.FromRows(rows, gridgraph.Conn4)
	gg8, _, _ := gridgraph.FromRows(rows, gridgraph.Conn8)

	s4, _ := gg4.Segments(labels)
	s8, _ := gg8.Segments(labels)
	if len(s4) != 4 {
		t.Errorf("Conn4 segments = %d; want 4", len(s4))
	}
	if len(s8) != 2 {
		t.Errorf("Conn8 segments = %d; want 2", len(s8))
	}
}

// TestSegments_LengthGuard ensures a wrong-size labeling is rejected.
func TestSegments_LengthGuard(t *testing.T) {
	gg, _ := gridgraph.New(2, 2, gridgraph.Conn4)
	if _, err := gg.Segments([]int{0, 0, 0}); !errors.Is(err, gridgraph.ErrLabelsLength) {
		t.Errorf("Segments error = %v; want ErrLabelsLength", err)
	}
}
