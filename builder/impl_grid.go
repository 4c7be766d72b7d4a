// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// impl_grid.go - grid denoising models and their synthetic images.
//
// Canonical model (Denoise):
//   - One variable per pixel, row-major (gridgraph numbering).
//   - Unary: dataWeight when the label differs from the observed pixel, else 0.
//   - Pairwise: Potts or truncated linear on every gridgraph edge (cfg.conn).
//   - Optional 2×2 block Potts of weight cfg.higherOrder (order-4 cliques).
//
// Determinism: unaries (pixel asc), edges (gridgraph.Edges order), blocks
// (gridgraph.Blocks order).

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvfusion/gridgraph"
	"github.com/katalvlaran/lvfusion/model"
)

const (
	methodDenoise   = "Denoise"
	methodCorrupt   = "Corrupt"
	minDenoiseLabel = 2
)

// Denoise returns a Constructor for the grid model of observed.
func Denoise(observed [][]int, labels int) Constructor {
	return func(cfg builderConfig) (*model.Model, error) {
		if err := validateLabels(methodDenoise, labels, minDenoiseLabel); err != nil {
			return nil, err
		}
		if err := validateImage(methodDenoise, observed, labels); err != nil {
			return nil, err
		}
		gg, flat, err := gridgraph.FromRows(observed, cfg.conn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodDenoise, err)
		}
		m, err := model.NewUniformModel(gg.Size(), labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodDenoise, err)
		}

		for i, obs := range flat {
			u := make(model.Unary, labels)
			for l := range u {
				if l != obs {
					u[l] = cfg.dataWeight
				}
			}
			if _, err = m.AddFactor([]int{i}, u); err != nil {
				return nil, fmt.Errorf("%s: pixel %d: %w", methodDenoise, i, err)
			}
		}
		pair := cfg.pairwise()
		for _, e := range gg.Edges() {
			if _, err = m.AddFactor([]int{e[0], e[1]}, pair); err != nil {
				return nil, fmt.Errorf("%s: edge %v: %w", methodDenoise, e, err)
			}
		}
		if cfg.higherOrder > 0 {
			block := model.Potts{Weight: cfg.higherOrder}
			for _, b := range gg.Blocks() {
				if _, err = m.AddFactor(b[:], block); err != nil {
					return nil, fmt.Errorf("%s: block %v: %w", methodDenoise, b, err)
				}
			}
		}

		return m, nil
	}
}

// StripeImage returns a width×height image of vertical stripes cycling
// through labels: pixel (x,y) = x·labels/width. Returns nil on invalid sizes.
// Complexity: O(W×H).
func StripeImage(width, height, labels int) [][]int {
	if width < 1 || height < 1 || labels < 1 {
		return nil
	}
	img := make([][]int, height)
	for y := range img {
		img[y] = make([]int, width)
		for x := range img[y] {
			img[y][x] = x * labels / width
		}
	}

	return img
}

// Corrupt returns a copy of img where each pixel, with probability cfg.noise,
// is replaced by a uniformly drawn label. Requires an RNG when noise > 0.
// Complexity: O(W×H).
func Corrupt(img [][]int, labels int, opts ...BuilderOption) ([][]int, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateImage(methodCorrupt, img, labels); err != nil {
		return nil, err
	}
	if cfg.noise > 0 && cfg.rng == nil {
		return nil, builderErrorf(methodCorrupt, ErrNeedRandSource, "noise=%.3f", cfg.noise)
	}
	out := make([][]int, len(img))
	for y, row := range img {
		out[y] = append([]int(nil), row...)
		if cfg.noise == 0 {
			continue
		}
		for x := range out[y] {
			if cfg.rng.Float64() < cfg.noise {
				out[y][x] = cfg.rng.Intn(labels)
			}
		}
	}

	return out, nil
}
