// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// validators.go: parameter checks shared by constructors.

package builder

import "github.com/katalvlaran/lvfusion/model"

// MaxTableEntries bounds the size of a generated dense factor table.
const MaxTableEntries = 1 << 20

// validateMin ensures that got ≥ min, reporting ErrTooFewVariables otherwise.
// Complexity: O(1).
func validateMin(method string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrTooFewVariables, "parameter must be ≥ %d, got %d", min, got)
	}

	return nil
}

// validateLabels ensures a label count of at least min.
// Complexity: O(1).
func validateLabels(method string, labels, min int) error {
	if labels < min {
		return builderErrorf(method, ErrTooFewLabels, "labels must be ≥ %d, got %d", min, labels)
	}

	return nil
}

// validateImage checks that img is non-empty, rectangular and that every
// pixel lies in [0, labels).
// Complexity: O(W×H).
func validateImage(method string, img [][]int, labels int) error {
	if len(img) == 0 || len(img[0]) == 0 {
		return builderErrorf(method, ErrBadImage, "empty image")
	}
	w := len(img[0])
	for y, row := range img {
		if len(row) != w {
			return builderErrorf(method, ErrBadImage, "row %d has %d pixels, want %d", y, len(row), w)
		}
		for x, v := range row {
			if v < 0 || v >= labels {
				return builderErrorf(method, ErrBadImage, "pixel (%d,%d)=%d outside [0,%d)", x, y, v, labels)
			}
		}
	}

	return nil
}

// validateTableSize checks that a dense table of labels^order entries stays
// within MaxTableEntries and returns its size. Orders beyond
// model.HardMaxOrder report model.ErrOrderExceeded.
// Complexity: O(order).
func validateTableSize(method string, labels, order int) (int, error) {
	if order > model.HardMaxOrder {
		return 0, builderErrorf(method, model.ErrOrderExceeded, "order=%d > %d", order, model.HardMaxOrder)
	}
	size := 1
	for j := 0; j < order; j++ {
		if size > MaxTableEntries/labels {
			return 0, builderErrorf(method, ErrTableTooLarge, "%d^%d entries > %d", labels, order, MaxTableEntries)
		}
		size *= labels
	}

	return size, nil
}
