// Package builder provides internal helper functions and types
// for drawing factor table entries in random model constructors.
package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// EnergyFn produces one table entry given an optional *rand.Rand source.
// It must be deterministic for a given RNG seed.
type EnergyFn func(rng *rand.Rand) float64

// ConstantEnergyFn returns an EnergyFn that always yields value.
// Complexity: O(1).
func ConstantEnergyFn(value float64) EnergyFn {
	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformEnergyFn returns an EnergyFn drawing integers uniformly in [min, max].
// Integer entries keep energy sums exact. Panics if max < min.
// If rng is nil, yields min.
// Complexity: O(1).
func UniformEnergyFn(min, max int) EnergyFn {
	if max < min {
		panic(fmt.Sprintf("UniformEnergyFn: require min ≤ max, got min=%d, max=%d", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil || max == min {
			return float64(min)
		}

		return float64(min + rng.Intn(max-min+1))
	}
}

// NormalEnergyFn returns an EnergyFn sampling N(mean, stddev) rounded to the
// nearest integer. Negative entries are allowed: table energies are not
// restricted in sign. Panics if stddev < 0. If rng is nil, yields mean.
// Complexity: O(1).
func NormalEnergyFn(mean, stddev float64) EnergyFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalEnergyFn: stddev must be ≥ 0, got %f", stddev))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return mean
		}

		return math.Round(rng.NormFloat64()*stddev + mean)
	}
}

// WithUniformEnergy sets table entries ∼ U{min..max} via UniformEnergyFn.
func WithUniformEnergy(min, max int) BuilderOption {
	return WithEnergyFn(UniformEnergyFn(min, max))
}

// WithNormalEnergy sets table entries ∼ round(N(mean,stddev)) via NormalEnergyFn.
func WithNormalEnergy(mean, stddev float64) BuilderOption {
	return WithEnergyFn(NormalEnergyFn(mean, stddev))
}
