// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Constructors attach context with %w; model errors pass through wrapped.
//   • Validation panics are confined to option constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVariables indicates that a size parameter (n, width, height, order)
// is smaller than the allowed minimum for the requested constructor.
var ErrTooFewVariables = errors.New("builder: parameter too small")

// ErrTooFewLabels indicates a label count below the constructor's minimum.
var ErrTooFewLabels = errors.New("builder: too few labels")

// ErrNeedRandSource indicates that a stochastic constructor requires a non-nil
// *rand.Rand in the resolved builderConfig (WithSeed/WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrTableTooLarge indicates a dense factor table with more than
// MaxTableEntries entries (labels^order).
var ErrTableTooLarge = errors.New("builder: factor table too large")

// ErrBadImage indicates an observation image that is empty, ragged, or holds
// pixels outside [0, labels).
var ErrBadImage = errors.New("builder: invalid image")

// ErrConstructFailed indicates a nil constructor or a failure while
// registering factors on the model.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes a sentinel with the method context:
// "<Method>: <formatted message>: <sentinel>".
// Complexity: O(len(format) + Σlen(args)).
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	inner := fmt.Sprintf(format, args...)

	return fmt.Errorf("%s: %s: %w", method, inner, sentinel)
}
